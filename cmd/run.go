package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"bonkers/bot"
	"bonkers/config"
	"bonkers/events"
	"bonkers/osu"
	"bonkers/repository"
	"bonkers/service"
	"bonkers/storage"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting bonkers bot...")

	// Load configuration
	cfg := config.Get()

	if cfg.OsuAPIKey == "" {
		log.Warn("OSU_API_KEY is not set, osu! API calls will fail")
	}

	// Initialize flat-file stores and repositories
	userRepo := repository.NewUserRepository(storage.New(cfg.UserDataFile))
	guildRepo := repository.NewGuildRepository(storage.New(cfg.GuildDataFile))
	log.WithFields(log.Fields{
		"users":  cfg.UserDataFile,
		"guilds": cfg.GuildDataFile,
	}).Info("Storage initialized")

	// Initialize osu! API client
	osuClient := osu.NewClient(cfg.OsuAPIKey, cfg.OsuAPIEndpoint, cfg.OsuTrackEndpoint)

	// Initialize event bus
	eventBus := events.NewBus()

	// Initialize services
	userService := service.NewUserService(userRepo)
	registrationService := service.NewRegistrationService(userRepo, osuClient, eventBus)
	guildSettingsService := service.NewGuildSettingsService(guildRepo)

	// Initialize Discord bot
	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:         cfg.DiscordToken,
		DefaultPrefix: cfg.DefaultPrefix,
	}
	discordBot, err := bot.New(botConfig, userService, registrationService, guildSettingsService, osuClient, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	// The bot doubles as the tracker's notifier, so the tracker is wired in
	// before the session connects.
	trackerService := service.NewTrackerService(userRepo, guildRepo, osuClient, discordBot)
	if err := discordBot.Start(trackerService); err != nil {
		return fmt.Errorf("failed to connect Discord bot: %w", err)
	}
	log.Info("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}
