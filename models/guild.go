package models

// Score rank cutoff bounds. A cutoff of N means "broadcast scores ranked
// strictly above position N in the user's top-100", so the default of 100
// filters nothing.
const (
	MinScoreRankCutoff     = 1
	MaxScoreRankCutoff     = 100
	DefaultScoreRankCutoff = 100
)

// GuildRecord holds the persisted configuration for a guild.
type GuildRecord struct {
	// Prefix overrides the default command prefix, empty if unset.
	Prefix string
	// UpdateChannelID is the channel where auto-update broadcasts land.
	// Empty means auto-updates have never been enabled for this guild.
	UpdateChannelID string
	// ScoreRankCutoff is the exclusive maximum score ranking eligible for
	// broadcast, always within [MinScoreRankCutoff, MaxScoreRankCutoff].
	ScoreRankCutoff int
}
