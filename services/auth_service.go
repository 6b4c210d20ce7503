package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/delmonaco/poker-tracker/models"
	"github.com/delmonaco/poker-tracker/repositories"
)

type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*models.Player, error)
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authService struct {
	playerRepo repositories.PlayerRepository
}

func NewAuthService(playerRepo repositories.PlayerRepository) AuthService {
	return &authService{
		playerRepo: playerRepo,
	}
}

// Login authenticates a player by email and password and returns the player
// with roles loaded (the token claims need them). Disabled accounts and
// accounts without a password are rejected without revealing which case it
// was.
func (s *authService) Login(ctx context.Context, input LoginInput) (*models.Player, error) {
	email, err := models.ValidateEmail(input.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	player, err := s.playerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find player by email: %w", err)
	}

	if !player.IsActive {
		return nil, ErrInvalidCredentials
	}
	if !player.CheckPassword(input.Password) {
		return nil, ErrInvalidCredentials
	}

	if err := s.playerRepo.LoadRoles(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to load player roles: %w", err)
	}

	player.PasswordHash = nil
	return player, nil
}
