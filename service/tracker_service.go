package service

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"bonkers/models"
	"bonkers/osu"
)

const (
	// PollInterval is the fixed cadence of the auto-update engine.
	PollInterval = 10 * time.Minute

	// recencyWindow is how far back a tick looks for new scores. The extra
	// slack over the poll interval tolerates drift between the tick
	// boundary and score submission time; a score submitted just before a
	// tick still falls inside the next one's window.
	recencyWindow = PollInterval + 10*time.Second

	// topScoreFetchLimit is how many top scores are polled per user.
	topScoreFetchLimit = 100
)

// trackerService implements the TrackerService interface: the timer-driven
// engine that polls every registered user's top scores and broadcasts the
// recent ones to each subscribed guild's configured channel.
type trackerService struct {
	userRepo  UserRepository
	guildRepo GuildRepository
	osuClient OsuClient
	notifier  ScoreNotifier
	now       func() time.Time
}

// NewTrackerService creates a new tracker service
func NewTrackerService(userRepo UserRepository, guildRepo GuildRepository, osuClient OsuClient, notifier ScoreNotifier) TrackerService {
	return &trackerService{
		userRepo:  userRepo,
		guildRepo: guildRepo,
		osuClient: osuClient,
		notifier:  notifier,
		now:       time.Now,
	}
}

// RunTick performs one full polling pass. The user and guild tables are
// snapshotted independently at the start; failures polling one user or
// sending to one guild never abort the rest of the pass.
func (s *trackerService) RunTick(ctx context.Context) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		log.Errorf("Tracker tick aborted, failed to load users: %v", err)
		return
	}
	guilds, err := s.guildRepo.GetAll(ctx)
	if err != nil {
		log.Errorf("Tracker tick aborted, failed to load guilds: %v", err)
		return
	}

	log.WithFields(log.Fields{
		"users":  len(users),
		"guilds": len(guilds),
	}).Info("Running top score update")

	for discordID, user := range users {
		if user.OsuID == "" || len(user.Guilds) == 0 {
			continue
		}
		s.pollUser(ctx, discordID, user, guilds)
	}
}

// pollUser fetches one user's top scores and dispatches the recent
// qualifying ones to each of their subscribed guilds.
func (s *trackerService) pollUser(ctx context.Context, discordID string, user *models.UserRecord, guilds map[string]*models.GuildRecord) {
	scores, err := s.osuClient.GetUserBest(ctx, user.OsuID, topScoreFetchLimit)
	if err != nil {
		// Distinct from "user has no recent scores": the fetch itself
		// failed, so nothing can be said about this user until next tick.
		log.WithFields(log.Fields{
			"discordID": discordID,
			"osuID":     user.OsuID,
			"error":     err,
		}).Error("Failed to fetch top scores")
		return
	}

	recent := s.filterRecent(scores)
	if len(recent) == 0 {
		return
	}

	// Profile lookup is cosmetic on the cards; a failure must not cost the
	// broadcast itself.
	osuUser, err := s.osuClient.GetUser(ctx, user.OsuID, osu.ModeStandard)
	if err != nil {
		log.WithFields(log.Fields{
			"osuID": user.OsuID,
			"error": err,
		}).Error("Failed to fetch profile for broadcast")
		osuUser = &osu.User{ID: user.OsuID, Username: user.OsuID}
	}

	for _, guildID := range user.Guilds {
		guild := guilds[guildID]
		if guild == nil || guild.UpdateChannelID == "" {
			log.WithFields(log.Fields{
				"guildID":   guildID,
				"discordID": discordID,
			}).Warn("Guild has no update channel configured, skipping broadcast")
			continue
		}

		qualifying := filterByCutoff(recent, guild.ScoreRankCutoff)
		if len(qualifying) == 0 {
			continue
		}

		if err := s.notifier.NotifyNewScores(ctx, guild.UpdateChannelID, discordID, osuUser, qualifying); err != nil {
			// Isolate per-guild send failures from the rest of the pass.
			log.WithFields(log.Fields{
				"guildID":   guildID,
				"channelID": guild.UpdateChannelID,
				"discordID": discordID,
				"error":     err,
			}).Error("Failed to broadcast new scores")
			continue
		}

		log.WithFields(log.Fields{
			"guildID":   guildID,
			"discordID": discordID,
			"scores":    len(qualifying),
		}).Info("Broadcast new top scores")
	}
}

// filterRecent keeps scores submitted within the recency window of now.
func (s *trackerService) filterRecent(scores []osu.Score) []osu.Score {
	now := s.now().UTC()
	recent := make([]osu.Score, 0)
	for _, score := range scores {
		if now.Sub(score.Date) < recencyWindow {
			recent = append(recent, score)
		}
	}
	return recent
}

// filterByCutoff keeps scores ranked strictly above the guild's cutoff
// position, preserving fetch order (best score first).
func filterByCutoff(scores []osu.Score, cutoff int) []osu.Score {
	qualifying := make([]osu.Score, 0, len(scores))
	for _, score := range scores {
		if score.Ranking < cutoff {
			qualifying = append(qualifying, score)
		}
	}
	return qualifying
}
