package service

import (
	"context"

	"bonkers/events"
	"bonkers/models"
	"bonkers/osu"
)

// UserRepository defines the interface for user record access
type UserRepository interface {
	// GetAll returns every known user record keyed by Discord ID
	GetAll(ctx context.Context) (map[string]*models.UserRecord, error)

	// Get returns the record for a Discord ID, an empty record if unknown
	Get(ctx context.Context, discordID string) (*models.UserRecord, error)

	// LinkOsuAccount stores the linked osu! account and unions the guild
	// into the user's subscriptions
	LinkOsuAccount(ctx context.Context, discordID, osuID, guildID string) error

	// RemoveGuild removes a guild from the user's subscriptions, a no-op if
	// absent
	RemoveGuild(ctx context.Context, discordID, guildID string) error

	// IncrementBonks bumps the bonk counter and returns the new count
	IncrementBonks(ctx context.Context, discordID string) (int, error)
}

// GuildRepository defines the interface for guild record access
type GuildRepository interface {
	// GetAll returns every known guild record keyed by guild ID
	GetAll(ctx context.Context) (map[string]*models.GuildRecord, error)

	// Get returns the record for a guild ID, defaults if unknown
	Get(ctx context.Context, guildID string) (*models.GuildRecord, error)

	// SetPrefix stores the guild's command prefix override
	SetPrefix(ctx context.Context, guildID, prefix string) error

	// SetUpdateChannel stores the auto-update destination channel
	SetUpdateChannel(ctx context.Context, guildID, channelID string) error

	// SetScoreRankCutoff stores the broadcast rank cutoff
	SetScoreRankCutoff(ctx context.Context, guildID string, cutoff int) error
}

// OsuClient defines the interface for the upstream stats API
type OsuClient interface {
	// GetUser fetches a profile by user id or username
	GetUser(ctx context.Context, idOrName string, mode int) (*osu.User, error)

	// GetBeatmap fetches beatmap metadata
	GetBeatmap(ctx context.Context, beatmapID string) (*osu.Beatmap, error)

	// GetUserBest fetches up to limit top scores, best first, with Ranking
	// assigned by response position
	GetUserBest(ctx context.Context, idOrName string, limit int) ([]osu.Score, error)

	// RequestUpdate triggers an osutrack stats update and returns the delta
	RequestUpdate(ctx context.Context, osuID string, mode int) (*osu.TrackUpdate, error)
}

// ScoreNotifier is the channel-send capability the tracker dispatches
// through. The implementation owns all message formatting.
type ScoreNotifier interface {
	// NotifyNewScores sends one notice for the user followed by one score
	// card per score, in the given order, to the channel
	NotifyNewScores(ctx context.Context, channelID, discordID string, user *osu.User, scores []osu.Score) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Emit(ctx context.Context, event events.Event)
}

// UserService defines the interface for per-user operations
type UserService interface {
	// Bonk increments the caller's bonk counter and returns the new count
	Bonk(ctx context.Context, discordID string) (int, error)

	// OsuID returns the caller's linked osu! account id, empty if none
	OsuID(ctx context.Context, discordID string) (string, error)
}

// RegistrationService defines the interface for the register/unregister
// workflow
type RegistrationService interface {
	// Register links an osu! account to the Discord user and subscribes the
	// calling guild to their auto-updates
	Register(ctx context.Context, discordID, guildID, channelID, identifier string) (*RegisterResult, error)

	// Unregister removes the calling guild from each target user's
	// subscriptions, idempotently
	Unregister(ctx context.Context, discordIDs []string, guildID string) error
}

// GuildSettingsService defines the interface for guild configuration
type GuildSettingsService interface {
	// Settings returns the guild's configuration, defaults if unknown
	Settings(ctx context.Context, guildID string) (*models.GuildRecord, error)

	// SetPrefix updates the command prefix, rejecting empty prefixes
	SetPrefix(ctx context.Context, guildID, prefix string) error

	// SetUpdateChannel points auto-update broadcasts at a channel
	SetUpdateChannel(ctx context.Context, guildID, channelID string) error

	// SetScoreRankCutoff updates the broadcast cutoff, rejecting values
	// outside [1,100]
	SetScoreRankCutoff(ctx context.Context, guildID string, cutoff int) error
}

// TrackerService defines the interface for the auto-update engine
type TrackerService interface {
	// RunTick performs one full polling pass over all registered users
	RunTick(ctx context.Context)
}
