package service

import (
	"context"
	"fmt"
)

// userService implements the UserService interface
type userService struct {
	userRepo UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Bonk increments the caller's bonk counter and returns the new count. The
// user record is created on first bonk.
func (s *userService) Bonk(ctx context.Context, discordID string) (int, error) {
	bonks, err := s.userRepo.IncrementBonks(ctx, discordID)
	if err != nil {
		return 0, fmt.Errorf("failed to bonk: %w", err)
	}
	return bonks, nil
}

// OsuID returns the caller's linked osu! account id, empty if they never
// registered.
func (s *userService) OsuID(ctx context.Context, discordID string) (string, error) {
	user, err := s.userRepo.Get(ctx, discordID)
	if err != nil {
		return "", fmt.Errorf("failed to get user record: %w", err)
	}
	return user.OsuID, nil
}
