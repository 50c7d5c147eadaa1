package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bonkers/events"
	"bonkers/models"
	"bonkers/osu"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetAll(ctx context.Context) (map[string]*models.UserRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*models.UserRecord), args.Error(1)
}

func (m *MockUserRepository) Get(ctx context.Context, discordID string) (*models.UserRecord, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserRecord), args.Error(1)
}

func (m *MockUserRepository) LinkOsuAccount(ctx context.Context, discordID, osuID, guildID string) error {
	args := m.Called(ctx, discordID, osuID, guildID)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveGuild(ctx context.Context, discordID, guildID string) error {
	args := m.Called(ctx, discordID, guildID)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementBonks(ctx context.Context, discordID string) (int, error) {
	args := m.Called(ctx, discordID)
	return args.Int(0), args.Error(1)
}

// MockGuildRepository is a mock implementation of GuildRepository
type MockGuildRepository struct {
	mock.Mock
}

func (m *MockGuildRepository) GetAll(ctx context.Context) (map[string]*models.GuildRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*models.GuildRecord), args.Error(1)
}

func (m *MockGuildRepository) Get(ctx context.Context, guildID string) (*models.GuildRecord, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildRecord), args.Error(1)
}

func (m *MockGuildRepository) SetPrefix(ctx context.Context, guildID, prefix string) error {
	args := m.Called(ctx, guildID, prefix)
	return args.Error(0)
}

func (m *MockGuildRepository) SetUpdateChannel(ctx context.Context, guildID, channelID string) error {
	args := m.Called(ctx, guildID, channelID)
	return args.Error(0)
}

func (m *MockGuildRepository) SetScoreRankCutoff(ctx context.Context, guildID string, cutoff int) error {
	args := m.Called(ctx, guildID, cutoff)
	return args.Error(0)
}

// MockOsuClient is a mock implementation of OsuClient
type MockOsuClient struct {
	mock.Mock
}

func (m *MockOsuClient) GetUser(ctx context.Context, idOrName string, mode int) (*osu.User, error) {
	args := m.Called(ctx, idOrName, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*osu.User), args.Error(1)
}

func (m *MockOsuClient) GetBeatmap(ctx context.Context, beatmapID string) (*osu.Beatmap, error) {
	args := m.Called(ctx, beatmapID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*osu.Beatmap), args.Error(1)
}

func (m *MockOsuClient) GetUserBest(ctx context.Context, idOrName string, limit int) ([]osu.Score, error) {
	args := m.Called(ctx, idOrName, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]osu.Score), args.Error(1)
}

func (m *MockOsuClient) RequestUpdate(ctx context.Context, osuID string, mode int) (*osu.TrackUpdate, error) {
	args := m.Called(ctx, osuID, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*osu.TrackUpdate), args.Error(1)
}

// MockScoreNotifier is a mock implementation of ScoreNotifier
type MockScoreNotifier struct {
	mock.Mock
}

func (m *MockScoreNotifier) NotifyNewScores(ctx context.Context, channelID, discordID string, user *osu.User, scores []osu.Score) error {
	args := m.Called(ctx, channelID, discordID, user, scores)
	return args.Error(0)
}

// MockTrackerService is a mock implementation of TrackerService
type MockTrackerService struct {
	mock.Mock
}

func (m *MockTrackerService) RunTick(ctx context.Context) {
	m.Called(ctx)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Emit(ctx context.Context, event events.Event) {
	m.Called(ctx, event)
}
