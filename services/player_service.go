package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/delmonaco/poker-tracker/models"
	"github.com/delmonaco/poker-tracker/repositories"
	"github.com/delmonaco/poker-tracker/storage"
)

type PlayerService interface {
	Create(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetByID(ctx context.Context, id int) (*models.Player, error)
	GetWithParticipations(ctx context.Context, id int) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	ListByRole(ctx context.Context, roleName string) ([]models.Player, error)
	Update(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error)
	Delete(ctx context.Context, id int) error
	UploadAvatar(ctx context.Context, playerID int, contentType string, file io.Reader) (*models.Player, error)
}

type CreatePlayerInput struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Nickname  string  `json:"nickname"`
	Email     string  `json:"email"`
	Password  *string `json:"password"`
	Country   *string `json:"country"`
	IsAdmin   bool    `json:"is_admin"`
}

type UpdatePlayerInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Nickname  *string `json:"nickname"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	Country   *string `json:"country"`
	IsActive  *bool   `json:"is_active"`
}

type playerService struct {
	db          *sql.DB
	playerRepo  repositories.PlayerRepository
	partRepo    repositories.TournamentPlayerRepository
	roleService RoleService
	uploader    storage.FileUploader
	logger      *slog.Logger
}

func NewPlayerService(
	db *sql.DB,
	playerRepo repositories.PlayerRepository,
	partRepo repositories.TournamentPlayerRepository,
	roleService RoleService,
	uploader storage.FileUploader,
	logger *slog.Logger,
) PlayerService {
	return &playerService{
		db:          db,
		playerRepo:  playerRepo,
		partRepo:    partRepo,
		roleService: roleService,
		uploader:    uploader,
		logger:      logger,
	}
}

// Create validates the input, inserts the player and assigns the default
// role (plus admin when requested) in one transaction. A nil password
// leaves the account in the pending-activation state.
func (s *playerService) Create(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	player := &models.Player{IsActive: true}

	var err error
	if player.FirstName, err = models.ValidateName("first_name", input.FirstName); err != nil {
		return nil, err
	}
	if player.LastName, err = models.ValidateName("last_name", input.LastName); err != nil {
		return nil, err
	}
	if player.Nickname, err = models.ValidateNickname(input.Nickname); err != nil {
		return nil, err
	}
	if player.Email, err = models.ValidateEmail(input.Email); err != nil {
		return nil, err
	}
	if player.Country, err = models.ValidateCountry(input.Country); err != nil {
		return nil, err
	}
	if input.Password != nil {
		if err := player.SetPassword(*input.Password); err != nil {
			return nil, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.playerRepo.Create(ctx, tx, player); err != nil {
		return nil, mapPlayerRepoError(err)
	}
	if err := s.roleService.AssignToPlayer(ctx, tx, models.RoleUser, player.ID); err != nil {
		return nil, err
	}
	if input.IsAdmin {
		if err := s.roleService.AssignToPlayer(ctx, tx, models.RoleAdmin, player.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if err := s.playerRepo.LoadRoles(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

func (s *playerService) GetByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapPlayerRepoError(err)
	}
	if err := s.playerRepo.LoadRoles(ctx, player); err != nil {
		return nil, err
	}
	s.populateAvatarURL(player)
	return player, nil
}

// GetWithParticipations loads the player together with their full
// participation history, ready for statistics computation.
func (s *playerService) GetWithParticipations(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	participations, err := s.partRepo.ListByPlayerID(ctx, id)
	if err != nil {
		return nil, err
	}
	player.Participations = participations
	return player, nil
}

func (s *playerService) List(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range players {
		s.populateAvatarURL(&players[i])
	}
	return players, nil
}

// ListByRole returns the players holding the named role. The match is
// case-insensitive, like role checks everywhere else.
func (s *playerService) ListByRole(ctx context.Context, roleName string) ([]models.Player, error) {
	players, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Player, 0, len(players))
	for i := range players {
		if err := s.playerRepo.LoadRoles(ctx, &players[i]); err != nil {
			return nil, err
		}
		if players[i].HasRole(roleName) {
			filtered = append(filtered, players[i])
		}
	}
	return filtered, nil
}

func (s *playerService) Update(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapPlayerRepoError(err)
	}

	if input.FirstName != nil {
		if player.FirstName, err = models.ValidateName("first_name", *input.FirstName); err != nil {
			return nil, err
		}
	}
	if input.LastName != nil {
		if player.LastName, err = models.ValidateName("last_name", *input.LastName); err != nil {
			return nil, err
		}
	}
	if input.Nickname != nil {
		if player.Nickname, err = models.ValidateNickname(*input.Nickname); err != nil {
			return nil, err
		}
	}
	if input.Email != nil {
		if player.Email, err = models.ValidateEmail(*input.Email); err != nil {
			return nil, err
		}
	}
	if input.Country != nil {
		if player.Country, err = models.ValidateCountry(input.Country); err != nil {
			return nil, err
		}
	}
	if input.IsActive != nil {
		player.IsActive = *input.IsActive
	}
	if input.Password != nil {
		if err := player.SetPassword(*input.Password); err != nil {
			return nil, err
		}
	}

	if err := s.playerRepo.Update(ctx, nil, player); err != nil {
		return nil, mapPlayerRepoError(err)
	}
	if err := s.playerRepo.LoadRoles(ctx, player); err != nil {
		return nil, err
	}
	s.populateAvatarURL(player)
	return player, nil
}

// Delete refuses to remove a player who has tournament results on record.
// The check is a business rule, not a database constraint: participations
// cascade on delete, so without it history would silently vanish.
func (s *playerService) Delete(ctx context.Context, id int) error {
	count, err := s.partRepo.CountByPlayerID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrPlayerHasParticipations
	}

	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return mapPlayerRepoError(err)
	}

	if err := s.playerRepo.Delete(ctx, id); err != nil {
		return mapPlayerRepoError(err)
	}

	if player.AvatarKey != nil && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *player.AvatarKey); err != nil {
			s.logger.Warn("failed to delete avatar after player removal",
				"player_id", id, "key", *player.AvatarKey, "error", err)
		}
	}
	return nil
}

func (s *playerService) UploadAvatar(ctx context.Context, playerID int, contentType string, file io.Reader) (*models.Player, error) {
	if s.uploader == nil {
		return nil, errors.New("avatar storage is not configured")
	}

	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, mapPlayerRepoError(err)
	}

	key := fmt.Sprintf("avatars/player_%d", playerID)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.playerRepo.UpdateAvatarKey(ctx, playerID, &result.Key); err != nil {
		return nil, mapPlayerRepoError(err)
	}
	player.AvatarKey = &result.Key
	s.populateAvatarURL(player)
	return player, nil
}

func (s *playerService) populateAvatarURL(player *models.Player) {
	if player == nil || player.AvatarKey == nil || *player.AvatarKey == "" || s.uploader == nil {
		return
	}
	url := s.uploader.GetPublicURL(*player.AvatarKey)
	if url != "" {
		player.AvatarURL = &url
	}
}

func mapPlayerRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrPlayerEmailConflict):
		return ErrPlayerEmailConflict
	case errors.Is(err, repositories.ErrPlayerNicknameConflict):
		return ErrPlayerNicknameConflict
	default:
		return err
	}
}
