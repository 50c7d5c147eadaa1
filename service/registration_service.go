package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"bonkers/events"
	"bonkers/osu"
)

// RegisterResult describes the outcome of a registration attempt.
type RegisterResult struct {
	// User is the resolved osu! profile.
	User *osu.User
	// AlreadyRegistered is true when the same account was already linked
	// and the calling guild already subscribed, in which case nothing was
	// written.
	AlreadyRegistered bool
}

// registrationService implements the RegistrationService interface
type registrationService struct {
	userRepo       UserRepository
	osuClient      OsuClient
	eventPublisher EventPublisher
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(userRepo UserRepository, osuClient OsuClient, eventPublisher EventPublisher) RegistrationService {
	return &registrationService{
		userRepo:       userRepo,
		osuClient:      osuClient,
		eventPublisher: eventPublisher,
	}
}

// Register resolves identifier against the osu! API, links the account to
// the Discord user and adds the calling guild to their subscriptions. The
// guild set is always a union: registering from a second guild keeps the
// first, and switching accounts keeps every guild subscription.
func (s *registrationService) Register(ctx context.Context, discordID, guildID, channelID, identifier string) (*RegisterResult, error) {
	osuUser, err := s.osuClient.GetUser(ctx, identifier, osu.ModeStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve osu account %q: %w", identifier, err)
	}

	record, err := s.userRepo.Get(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user record: %w", err)
	}

	if record.OsuID == osuUser.ID && record.InGuild(guildID) {
		log.WithFields(log.Fields{
			"discordID": discordID,
			"osuID":     osuUser.ID,
			"guildID":   guildID,
		}).Info("User already registered")
		return &RegisterResult{User: osuUser, AlreadyRegistered: true}, nil
	}

	if err := s.userRepo.LinkOsuAccount(ctx, discordID, osuUser.ID, guildID); err != nil {
		return nil, fmt.Errorf("failed to store registration: %w", err)
	}

	log.WithFields(log.Fields{
		"discordID": discordID,
		"osuID":     osuUser.ID,
		"username":  osuUser.Username,
		"guildID":   guildID,
	}).Info("Registered osu account")

	s.eventPublisher.Emit(ctx, events.UserRegisteredEvent{
		DiscordID: discordID,
		GuildID:   guildID,
		ChannelID: channelID,
		OsuID:     osuUser.ID,
		Username:  osuUser.Username,
	})

	return &RegisterResult{User: osuUser}, nil
}

// Unregister removes guildID from each target user's subscriptions. Removal
// is idempotent: targets that were never subscribed, or never registered at
// all, are left unchanged without error. The linked account id is preserved.
func (s *registrationService) Unregister(ctx context.Context, discordIDs []string, guildID string) error {
	for _, discordID := range discordIDs {
		if err := s.userRepo.RemoveGuild(ctx, discordID, guildID); err != nil {
			return fmt.Errorf("failed to unregister user %s: %w", discordID, err)
		}
		log.WithFields(log.Fields{
			"discordID": discordID,
			"guildID":   guildID,
		}).Info("Unregistered user from guild auto-updates")
	}
	return nil
}
