package config

import (
	"fmt"
	"os"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string

	// osu! API configuration
	OsuAPIKey        string
	OsuAPIEndpoint   string
	OsuTrackEndpoint string

	// Bot configuration
	DefaultPrefix string

	// Storage file paths
	UserDataFile  string
	GuildDataFile string

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken: os.Getenv("DISCORD_TOKEN"),

		// osu! API
		OsuAPIKey:        os.Getenv("OSU_API_KEY"),
		OsuAPIEndpoint:   os.Getenv("OSU_API_ENDPOINT"),
		OsuTrackEndpoint: os.Getenv("OSU_TRACK_ENDPOINT"),

		// Bot settings with defaults
		DefaultPrefix: "$",
		UserDataFile:  "users.json",
		GuildDataFile: "guilds.json",

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if prefix := os.Getenv("DEFAULT_PREFIX"); prefix != "" {
		config.DefaultPrefix = prefix
	}
	if path := os.Getenv("USER_DATA_FILE"); path != "" {
		config.UserDataFile = path
	}
	if path := os.Getenv("GUILD_DATA_FILE"); path != "" {
		config.GuildDataFile = path
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
	}

	return config, nil
}
