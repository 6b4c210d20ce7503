package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/delmonaco/poker-tracker/models"
	"github.com/delmonaco/poker-tracker/repositories"
	"github.com/shopspring/decimal"
)

// LeaderboardNotifier pushes a freshly computed leaderboard to connected
// live subscribers. Implemented by the websocket hub.
type LeaderboardNotifier interface {
	BroadcastLeaderboard(rows []models.LeaderboardRow)
}

type TournamentService interface {
	Create(ctx context.Context, adminID int, input TournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, filter models.TournamentFilter) ([]models.Tournament, error)
	Update(ctx context.Context, id int, input TournamentInput) (*models.Tournament, error)
	Delete(ctx context.Context, id int) error
}

type ParticipationInput struct {
	PlayerID        int              `json:"player_id"`
	Position        *int             `json:"position"`
	Rebuy           *int             `json:"rebuy"`
	RebuyTotalSpent *decimal.Decimal `json:"rebuy_total_spent"`
	Prize           *decimal.Decimal `json:"prize"`
}

// TournamentInput is the full tournament payload for create and edit. On
// edit, a nil Participants slice leaves the participant set untouched; a
// non-nil slice (empty included) replaces it.
type TournamentInput struct {
	Name           string               `json:"name"`
	TournamentDate string               `json:"tournament_date"`
	BuyIn          decimal.Decimal      `json:"buy_in"`
	PrizePool      *decimal.Decimal     `json:"prize_pool"`
	Location       *string              `json:"location"`
	Participants   []ParticipationInput `json:"participants"`
}

type tournamentService struct {
	db       *sql.DB
	tourRepo repositories.TournamentRepository
	partRepo repositories.TournamentPlayerRepository
	stats    StatsService
	notifier LeaderboardNotifier
	logger   *slog.Logger
}

func NewTournamentService(
	db *sql.DB,
	tourRepo repositories.TournamentRepository,
	partRepo repositories.TournamentPlayerRepository,
	stats StatsService,
	notifier LeaderboardNotifier,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		db:       db,
		tourRepo: tourRepo,
		partRepo: partRepo,
		stats:    stats,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, adminID int, input TournamentInput) (*models.Tournament, error) {
	tournament := &models.Tournament{AdminID: adminID}
	if err := s.applyTournamentFields(tournament, input); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.tourRepo.Create(ctx, tx, tournament); err != nil {
		return nil, mapTournamentRepoError(err)
	}
	for _, pi := range input.Participants {
		tp, err := s.buildParticipation(tournament, pi)
		if err != nil {
			return nil, err
		}
		if err := s.partRepo.Create(ctx, tx, tp); err != nil {
			return nil, mapTournamentRepoError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.notifyLeaderboard(ctx)
	return s.GetByID(ctx, tournament.ID)
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tourRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTournamentRepoError(err)
	}
	participants, err := s.partRepo.ListByTournamentID(ctx, id)
	if err != nil {
		return nil, err
	}
	tournament.Participants = participants
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, filter models.TournamentFilter) ([]models.Tournament, error) {
	return s.tourRepo.List(ctx, filter)
}

// Update rewrites the tournament fields and, when a participant list is
// supplied, reconciles the stored set against it: changed rows are updated,
// new players inserted, absent players removed. Everything happens in one
// transaction, so a failed edit leaves the tournament untouched.
func (s *tournamentService) Update(ctx context.Context, id int, input TournamentInput) (*models.Tournament, error) {
	tournament, err := s.tourRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTournamentRepoError(err)
	}
	if err := s.applyTournamentFields(tournament, input); err != nil {
		return nil, err
	}

	var existing []models.TournamentPlayer
	if input.Participants != nil {
		if existing, err = s.partRepo.ListByTournamentID(ctx, id); err != nil {
			return nil, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.tourRepo.Update(ctx, tx, tournament); err != nil {
		return nil, mapTournamentRepoError(err)
	}

	if input.Participants != nil {
		if err := s.reconcileParticipants(ctx, tx, tournament, existing, input.Participants); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.notifyLeaderboard(ctx)
	return s.GetByID(ctx, id)
}

func (s *tournamentService) Delete(ctx context.Context, id int) error {
	if err := s.tourRepo.Delete(ctx, id); err != nil {
		return mapTournamentRepoError(err)
	}
	s.notifyLeaderboard(ctx)
	return nil
}

func (s *tournamentService) applyTournamentFields(t *models.Tournament, input TournamentInput) error {
	var err error
	if t.Name, err = models.ValidateTournamentName(input.Name); err != nil {
		return err
	}
	if t.TournamentDate, err = models.ParseTournamentDate(input.TournamentDate); err != nil {
		return err
	}
	if t.BuyIn, err = models.ValidateBuyIn(input.BuyIn); err != nil {
		return err
	}
	if t.PrizePool, err = models.ValidatePrizePool(input.PrizePool); err != nil {
		return err
	}
	if t.Location, err = models.ValidateLocation(input.Location); err != nil {
		return err
	}
	return nil
}

func (s *tournamentService) buildParticipation(t *models.Tournament, input ParticipationInput) (*models.TournamentPlayer, error) {
	tp := &models.TournamentPlayer{
		TournamentID: t.ID,
		PlayerID:     input.PlayerID,
		Tournament:   t,
	}

	var err error
	if tp.Rebuy, err = models.ValidateRebuyCount(input.Rebuy); err != nil {
		return nil, err
	}
	if tp.Position, err = models.ValidatePosition(input.Position); err != nil {
		return nil, err
	}
	if tp.Prize, err = models.ValidatePrize(input.Prize); err != nil {
		return nil, err
	}
	if input.RebuyTotalSpent != nil {
		tp.RebuyTotalSpent = *input.RebuyTotalSpent
	} else {
		tp.RebuyTotalSpent = decimal.Zero
	}
	if tp.RebuyTotalSpent, err = models.ValidateRebuyTotalSpent(tp, s.logger); err != nil {
		return nil, err
	}
	return tp, nil
}

func (s *tournamentService) reconcileParticipants(
	ctx context.Context,
	tx repositories.SQLExecutor,
	tournament *models.Tournament,
	existing []models.TournamentPlayer,
	desired []ParticipationInput,
) error {
	current := make(map[int]struct{}, len(existing))
	for _, tp := range existing {
		current[tp.PlayerID] = struct{}{}
	}

	seen := make(map[int]struct{}, len(desired))
	for _, pi := range desired {
		if _, dup := seen[pi.PlayerID]; dup {
			return ErrParticipationConflict
		}
		seen[pi.PlayerID] = struct{}{}

		tp, err := s.buildParticipation(tournament, pi)
		if err != nil {
			return err
		}
		if _, ok := current[pi.PlayerID]; ok {
			err = s.partRepo.Update(ctx, tx, tp)
		} else {
			err = s.partRepo.Create(ctx, tx, tp)
		}
		if err != nil {
			return mapTournamentRepoError(err)
		}
	}

	for _, tp := range existing {
		if _, keep := seen[tp.PlayerID]; keep {
			continue
		}
		if err := s.partRepo.Delete(ctx, tx, tournament.ID, tp.PlayerID); err != nil {
			return mapTournamentRepoError(err)
		}
	}
	return nil
}

// notifyLeaderboard recomputes the aggregated leaderboard and pushes it to
// live subscribers. Best effort: a failure here never fails the mutation
// that triggered it.
func (s *tournamentService) notifyLeaderboard(ctx context.Context) {
	if s.notifier == nil || s.stats == nil {
		return
	}
	rows, err := s.stats.Leaderboard(ctx)
	if err != nil {
		s.logger.Error("failed to refresh leaderboard for live subscribers", "error", err)
		return
	}
	s.notifier.BroadcastLeaderboard(rows)
}

func mapTournamentRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrParticipationNotFound):
		return ErrParticipationNotFound
	case errors.Is(err, repositories.ErrParticipationConflict):
		return ErrParticipationConflict
	case errors.Is(err, repositories.ErrParticipationInvalid),
		errors.Is(err, repositories.ErrTournamentAdminInvalid):
		return ErrValidationFailed
	default:
		return err
	}
}
