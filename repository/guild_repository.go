package repository

import (
	"context"
	"fmt"

	"bonkers/models"
	"bonkers/storage"
)

// Field names in the guild store, kept compatible with the historical
// guilds.json layout.
const (
	guildFieldPrefix        = "prefix"
	guildFieldUpdateChannel = "osu_update_channel"
	guildFieldRankCutoff    = "score_rank_cutoff"
)

// GuildRepository provides typed access to guild records in a flat-file
// store.
type GuildRepository struct {
	store *storage.Store
}

// NewGuildRepository creates a guild repository over the given store.
func NewGuildRepository(store *storage.Store) *GuildRepository {
	return &GuildRepository{store: store}
}

// GetAll returns every known guild record keyed by guild ID.
func (r *GuildRepository) GetAll(ctx context.Context) (map[string]*models.GuildRecord, error) {
	all := r.store.ReadAll()
	guilds := make(map[string]*models.GuildRecord, len(all))
	for id, record := range all {
		guilds[id] = decodeGuildRecord(record)
	}
	return guilds, nil
}

// Get returns the record for guildID. An unknown id yields a record with
// defaults, never an error.
func (r *GuildRepository) Get(ctx context.Context, guildID string) (*models.GuildRecord, error) {
	return decodeGuildRecord(r.store.ReadAll()[guildID]), nil
}

// SetPrefix stores the guild's command prefix override.
func (r *GuildRepository) SetPrefix(ctx context.Context, guildID, prefix string) error {
	err := r.store.Write(guildID, storage.Record{guildFieldPrefix: prefix}, storage.Merge)
	if err != nil {
		return fmt.Errorf("failed to set prefix for guild %s: %w", guildID, err)
	}
	return nil
}

// SetUpdateChannel stores the channel where auto-update broadcasts land.
func (r *GuildRepository) SetUpdateChannel(ctx context.Context, guildID, channelID string) error {
	err := r.store.Write(guildID, storage.Record{guildFieldUpdateChannel: channelID}, storage.Merge)
	if err != nil {
		return fmt.Errorf("failed to set update channel for guild %s: %w", guildID, err)
	}
	return nil
}

// SetScoreRankCutoff stores the guild's score rank cutoff, clamped to the
// valid range. User-facing validation happens in the service layer; the clamp
// here keeps the invariant even for writes that bypass it.
func (r *GuildRepository) SetScoreRankCutoff(ctx context.Context, guildID string, cutoff int) error {
	cutoff = clampCutoff(cutoff)
	err := r.store.Write(guildID, storage.Record{guildFieldRankCutoff: cutoff}, storage.Merge)
	if err != nil {
		return fmt.Errorf("failed to set score rank cutoff for guild %s: %w", guildID, err)
	}
	return nil
}

// decodeGuildRecord validates a raw store record into a GuildRecord. A nil
// record decodes to the defaults.
func decodeGuildRecord(record storage.Record) *models.GuildRecord {
	guild := &models.GuildRecord{ScoreRankCutoff: models.DefaultScoreRankCutoff}
	if record == nil {
		return guild
	}
	guild.Prefix = decodeString(record[guildFieldPrefix])
	guild.UpdateChannelID = decodeString(record[guildFieldUpdateChannel])
	guild.ScoreRankCutoff = clampCutoff(decodeInt(record[guildFieldRankCutoff], models.DefaultScoreRankCutoff))
	return guild
}

func clampCutoff(cutoff int) int {
	if cutoff < models.MinScoreRankCutoff {
		return models.MinScoreRankCutoff
	}
	if cutoff > models.MaxScoreRankCutoff {
		return models.MaxScoreRankCutoff
	}
	return cutoff
}
