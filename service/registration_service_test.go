package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bonkers/events"
	"bonkers/models"
	"bonkers/osu"
)

func TestRegistrationService_Register_NewUser(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	mockClient := new(MockOsuClient)
	mockPublisher := new(MockEventPublisher)

	service := NewRegistrationService(mockUserRepo, mockClient, mockPublisher)

	mockClient.On("GetUser", ctx, "peppy", osu.ModeStandard).Return(
		&osu.User{ID: "2", Username: "peppy"}, nil)
	mockUserRepo.On("Get", ctx, "111").Return(&models.UserRecord{Guilds: []string{}}, nil)
	mockUserRepo.On("LinkOsuAccount", ctx, "111", "2", "g1").Return(nil)
	mockPublisher.On("Emit", ctx, mock.MatchedBy(func(e events.Event) bool {
		event, ok := e.(events.UserRegisteredEvent)
		return ok && event.DiscordID == "111" && event.GuildID == "g1" &&
			event.ChannelID == "chan1" && event.OsuID == "2" && event.Username == "peppy"
	})).Return()

	result, err := service.Register(ctx, "111", "g1", "chan1", "peppy")

	assert.NoError(t, err)
	assert.False(t, result.AlreadyRegistered)
	assert.Equal(t, "peppy", result.User.Username)

	mockUserRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestRegistrationService_Register_AlreadyRegisteredSameGuild(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	mockClient := new(MockOsuClient)
	mockPublisher := new(MockEventPublisher)

	service := NewRegistrationService(mockUserRepo, mockClient, mockPublisher)

	mockClient.On("GetUser", ctx, "peppy", osu.ModeStandard).Return(
		&osu.User{ID: "2", Username: "peppy"}, nil)
	mockUserRepo.On("Get", ctx, "111").Return(
		&models.UserRecord{OsuID: "2", Guilds: []string{"g1"}}, nil)

	result, err := service.Register(ctx, "111", "g1", "chan1", "peppy")

	assert.NoError(t, err)
	assert.True(t, result.AlreadyRegistered)

	// Nothing written, nothing emitted.
	mockUserRepo.AssertNotCalled(t, "LinkOsuAccount",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockPublisher.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything)
}

func TestRegistrationService_Register_SameAccountNewGuild(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	mockClient := new(MockOsuClient)
	mockPublisher := new(MockEventPublisher)

	service := NewRegistrationService(mockUserRepo, mockClient, mockPublisher)

	// Same linked account, but the calling guild is new: the registration
	// goes through so the guild gets subscribed.
	mockClient.On("GetUser", ctx, "peppy", osu.ModeStandard).Return(
		&osu.User{ID: "2", Username: "peppy"}, nil)
	mockUserRepo.On("Get", ctx, "111").Return(
		&models.UserRecord{OsuID: "2", Guilds: []string{"g1"}}, nil)
	mockUserRepo.On("LinkOsuAccount", ctx, "111", "2", "g2").Return(nil)
	mockPublisher.On("Emit", ctx, mock.AnythingOfType("events.UserRegisteredEvent")).Return()

	result, err := service.Register(ctx, "111", "g2", "chan2", "peppy")

	assert.NoError(t, err)
	assert.False(t, result.AlreadyRegistered)

	mockUserRepo.AssertExpectations(t)
}

func TestRegistrationService_Register_UnknownAccount(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	mockClient := new(MockOsuClient)
	mockPublisher := new(MockEventPublisher)

	service := NewRegistrationService(mockUserRepo, mockClient, mockPublisher)

	mockClient.On("GetUser", ctx, "nobody", osu.ModeStandard).Return(nil, osu.ErrUserNotFound)

	result, err := service.Register(ctx, "111", "g1", "chan1", "nobody")

	assert.Error(t, err)
	assert.ErrorIs(t, err, osu.ErrUserNotFound)
	assert.Nil(t, result)

	mockUserRepo.AssertNotCalled(t, "LinkOsuAccount",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRegistrationService_Unregister_MultipleTargets(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	mockClient := new(MockOsuClient)
	mockPublisher := new(MockEventPublisher)

	service := NewRegistrationService(mockUserRepo, mockClient, mockPublisher)

	mockUserRepo.On("RemoveGuild", ctx, "111", "g1").Return(nil)
	mockUserRepo.On("RemoveGuild", ctx, "222", "g1").Return(nil)

	err := service.Unregister(ctx, []string{"111", "222"}, "g1")

	assert.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
}

func TestRegistrationService_Unregister_StoreFailure(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	mockClient := new(MockOsuClient)
	mockPublisher := new(MockEventPublisher)

	service := NewRegistrationService(mockUserRepo, mockClient, mockPublisher)

	mockUserRepo.On("RemoveGuild", ctx, "111", "g1").Return(errors.New("disk full"))

	err := service.Unregister(ctx, []string{"111"}, "g1")

	assert.Error(t, err)
}
