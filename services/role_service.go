package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/delmonaco/poker-tracker/models"
	"github.com/delmonaco/poker-tracker/repositories"
)

type RoleService interface {
	EnsureDefaultRoles(ctx context.Context) error
	GetByName(ctx context.Context, name string) (*models.Role, error)
	List(ctx context.Context) ([]models.Role, error)
	AssignToPlayer(ctx context.Context, exec repositories.SQLExecutor, roleName string, playerID int) error
	RemoveFromPlayer(ctx context.Context, roleName string, playerID int) error
}

type roleService struct {
	roleRepo repositories.RoleRepository
	logger   *slog.Logger
}

func NewRoleService(roleRepo repositories.RoleRepository, logger *slog.Logger) RoleService {
	return &roleService{
		roleRepo: roleRepo,
		logger:   logger,
	}
}

// EnsureDefaultRoles creates any missing default role. Safe to run on every
// startup and from the CLI; existing roles are left untouched, and a
// concurrent seeder losing the insert race is treated as success.
func (s *roleService) EnsureDefaultRoles(ctx context.Context) error {
	for name, description := range models.DefaultRoles {
		_, err := s.roleRepo.GetByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repositories.ErrRoleNotFound) {
			return fmt.Errorf("failed to look up role %q: %w", name, err)
		}

		desc := description
		role := &models.Role{Name: name, Description: &desc}
		if err := s.roleRepo.Create(ctx, role); err != nil {
			if errors.Is(err, repositories.ErrRoleNameConflict) {
				continue
			}
			return fmt.Errorf("failed to create role %q: %w", name, err)
		}
		s.logger.Info("created default role", "role", name)
	}
	return nil
}

func (s *roleService) GetByName(ctx context.Context, name string) (*models.Role, error) {
	role, err := s.roleRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repositories.ErrRoleNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return role, nil
}

func (s *roleService) List(ctx context.Context) ([]models.Role, error) {
	return s.roleRepo.List(ctx)
}

func (s *roleService) AssignToPlayer(ctx context.Context, exec repositories.SQLExecutor, roleName string, playerID int) error {
	role, err := s.GetByName(ctx, roleName)
	if err != nil {
		return err
	}
	return s.roleRepo.AssignToPlayer(ctx, exec, role.ID, playerID)
}

// RemoveFromPlayer revokes a role. Removing a role the player does not hold
// reports ErrNotFound.
func (s *roleService) RemoveFromPlayer(ctx context.Context, roleName string, playerID int) error {
	role, err := s.GetByName(ctx, roleName)
	if err != nil {
		return err
	}
	if err := s.roleRepo.RemoveFromPlayer(ctx, role.ID, playerID); err != nil {
		if errors.Is(err, repositories.ErrRoleNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
