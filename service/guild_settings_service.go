package service

import (
	"context"
	"errors"
	"fmt"

	"bonkers/models"
)

// ErrEmptyPrefix is returned when a guild tries to set an empty command
// prefix.
var ErrEmptyPrefix = errors.New("command prefix must not be empty")

// ErrCutoffOutOfRange is returned when a score rank cutoff falls outside
// [1,100]. Nothing is written in that case.
var ErrCutoffOutOfRange = fmt.Errorf("score rank cutoff must be between %d and %d",
	models.MinScoreRankCutoff, models.MaxScoreRankCutoff)

// guildSettingsService implements the GuildSettingsService interface
type guildSettingsService struct {
	guildRepo GuildRepository
}

// NewGuildSettingsService creates a new guild settings service
func NewGuildSettingsService(guildRepo GuildRepository) GuildSettingsService {
	return &guildSettingsService{guildRepo: guildRepo}
}

// Settings returns the guild's configuration, defaults for unknown guilds.
func (s *guildSettingsService) Settings(ctx context.Context, guildID string) (*models.GuildRecord, error) {
	guild, err := s.guildRepo.Get(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild settings: %w", err)
	}
	return guild, nil
}

// SetPrefix updates the guild's command prefix override.
func (s *guildSettingsService) SetPrefix(ctx context.Context, guildID, prefix string) error {
	if prefix == "" {
		return ErrEmptyPrefix
	}
	if err := s.guildRepo.SetPrefix(ctx, guildID, prefix); err != nil {
		return fmt.Errorf("failed to set prefix: %w", err)
	}
	return nil
}

// SetUpdateChannel points the guild's auto-update broadcasts at channelID.
func (s *guildSettingsService) SetUpdateChannel(ctx context.Context, guildID, channelID string) error {
	if err := s.guildRepo.SetUpdateChannel(ctx, guildID, channelID); err != nil {
		return fmt.Errorf("failed to set update channel: %w", err)
	}
	return nil
}

// SetScoreRankCutoff updates the guild's broadcast cutoff. Out-of-range
// values are rejected before any write.
func (s *guildSettingsService) SetScoreRankCutoff(ctx context.Context, guildID string, cutoff int) error {
	if cutoff < models.MinScoreRankCutoff || cutoff > models.MaxScoreRankCutoff {
		return ErrCutoffOutOfRange
	}
	if err := s.guildRepo.SetScoreRankCutoff(ctx, guildID, cutoff); err != nil {
		return fmt.Errorf("failed to set score rank cutoff: %w", err)
	}
	return nil
}
