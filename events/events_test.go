package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBus_EmitReachesAllSubscribers(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)

	var mu sync.Mutex
	received := []string{}

	for i := 0; i < 2; i++ {
		bus.Subscribe(EventTypeUserRegistered, func(ctx context.Context, event Event) {
			defer wg.Done()
			e, ok := event.(UserRegisteredEvent)
			assert.True(t, ok)
			mu.Lock()
			received = append(received, e.OsuID)
			mu.Unlock()
		})
	}

	bus.Emit(ctx, UserRegisteredEvent{
		DiscordID: "111",
		GuildID:   "g1",
		ChannelID: "chan1",
		OsuID:     "2",
		Username:  "peppy",
	})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handlers did not run in time")
	}

	assert.Equal(t, []string{"2", "2"}, received)
}

func TestBus_PanickingHandlerDoesNotCrash(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)

	bus.Subscribe(EventTypeUserRegistered, func(ctx context.Context, event Event) {
		defer wg.Done()
		panic("boom")
	})

	bus.Emit(ctx, UserRegisteredEvent{DiscordID: "111"})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not run in time")
	}
}

func TestBus_EmitWithNoSubscribers(t *testing.T) {
	bus := NewBus()

	// No handlers registered for the type: a no-op, not a panic.
	bus.Emit(context.Background(), UserRegisteredEvent{DiscordID: "111"})
}
