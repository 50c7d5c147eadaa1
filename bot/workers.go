package bot

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"bonkers/service"
)

// StartAutoUpdateWorker starts the background worker driving the auto-update
// tracker at its fixed cadence. Ticks are strictly serial: a slow tick delays
// the next one, it never overlaps it. Returns a cleanup function to stop the
// worker gracefully.
func (b *Bot) StartAutoUpdateWorker(ctx context.Context) func() {
	ticker := time.NewTicker(service.PollInterval)
	stopChan := make(chan struct{})

	go func() {
		log.Info("Auto-update worker started")

		// Run immediately on startup
		b.trackerService.RunTick(ctx)

		for {
			select {
			case <-ctx.Done():
				log.Info("Auto-update worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Auto-update worker shutting down (stop requested)...")
				return
			case <-ticker.C:
				b.trackerService.RunTick(ctx)
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(stopChan)
	}
}
