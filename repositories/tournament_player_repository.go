package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/delmonaco/poker-tracker/models"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

var (
	ErrParticipationNotFound = errors.New("participation not found")
	ErrParticipationConflict = errors.New("player already registered in tournament")
	ErrParticipationInvalid  = errors.New("participation references unknown tournament or player")
)

type TournamentPlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, tp *models.TournamentPlayer) error
	Update(ctx context.Context, exec SQLExecutor, tp *models.TournamentPlayer) error
	Delete(ctx context.Context, exec SQLExecutor, tournamentID, playerID int) error
	ListByTournamentID(ctx context.Context, tournamentID int) ([]models.TournamentPlayer, error)
	ListByPlayerID(ctx context.Context, playerID int) ([]models.TournamentPlayer, error)
	CountByPlayerID(ctx context.Context, playerID int) (int, error)
}

type postgresTournamentPlayerRepository struct {
	db *sql.DB
}

func NewPostgresTournamentPlayerRepository(db *sql.DB) TournamentPlayerRepository {
	return &postgresTournamentPlayerRepository{db: db}
}

func (r *postgresTournamentPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func mapParticipationConstraintError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			return ErrParticipationConflict
		case "23503":
			return ErrParticipationInvalid
		}
	}
	return err
}

func (r *postgresTournamentPlayerRepository) Create(ctx context.Context, exec SQLExecutor, tp *models.TournamentPlayer) error {
	query := `
		INSERT INTO tournaments_players (tournament_id, player_id, position, rebuy, rebuy_total_spent, prize)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.getExecutor(exec).ExecContext(ctx, query,
		tp.TournamentID,
		tp.PlayerID,
		tp.Position,
		tp.Rebuy,
		tp.RebuyTotalSpent,
		nullDecimal(tp.Prize),
	)
	if err != nil {
		return mapParticipationConstraintError(err)
	}
	return nil
}

func (r *postgresTournamentPlayerRepository) Update(ctx context.Context, exec SQLExecutor, tp *models.TournamentPlayer) error {
	query := `
		UPDATE tournaments_players SET
			position = $1,
			rebuy = $2,
			rebuy_total_spent = $3,
			prize = $4
		WHERE tournament_id = $5 AND player_id = $6`

	result, err := r.getExecutor(exec).ExecContext(ctx, query,
		tp.Position,
		tp.Rebuy,
		tp.RebuyTotalSpent,
		nullDecimal(tp.Prize),
		tp.TournamentID,
		tp.PlayerID,
	)
	if err != nil {
		return mapParticipationConstraintError(err)
	}
	return checkAffectedRows(result, ErrParticipationNotFound)
}

func (r *postgresTournamentPlayerRepository) Delete(ctx context.Context, exec SQLExecutor, tournamentID, playerID int) error {
	query := `DELETE FROM tournaments_players WHERE tournament_id = $1 AND player_id = $2`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, tournamentID, playerID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrParticipationNotFound)
}

// ListByTournamentID loads a tournament's participations with each player's
// identity attached, ordered for display.
func (r *postgresTournamentPlayerRepository) ListByTournamentID(ctx context.Context, tournamentID int) ([]models.TournamentPlayer, error) {
	query := `
		SELECT
			tp.tournament_id, tp.player_id, tp.position, tp.rebuy, tp.rebuy_total_spent, tp.prize,
			p.first_name, p.last_name, p.nickname, p.is_active
		FROM tournaments_players tp
		JOIN players p ON tp.player_id = p.id
		WHERE tp.tournament_id = $1
		ORDER BY tp.position ASC NULLS LAST, p.nickname ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participations := make([]models.TournamentPlayer, 0)
	for rows.Next() {
		var tp models.TournamentPlayer
		var position sql.NullInt64
		var prize decimal.NullDecimal
		var player models.Player

		if err := rows.Scan(
			&tp.TournamentID,
			&tp.PlayerID,
			&position,
			&tp.Rebuy,
			&tp.RebuyTotalSpent,
			&prize,
			&player.FirstName,
			&player.LastName,
			&player.Nickname,
			&player.IsActive,
		); err != nil {
			return nil, err
		}
		if position.Valid {
			pos := int(position.Int64)
			tp.Position = &pos
		}
		if prize.Valid {
			tp.Prize = &prize.Decimal
		}
		player.ID = tp.PlayerID
		tp.Player = &player
		participations = append(participations, tp)
	}
	return participations, rows.Err()
}

// ListByPlayerID loads a player's participations with the owning tournament
// attached. The tournament association carries the buy-in that the derived
// statistics need.
func (r *postgresTournamentPlayerRepository) ListByPlayerID(ctx context.Context, playerID int) ([]models.TournamentPlayer, error) {
	query := `
		SELECT
			tp.tournament_id, tp.player_id, tp.position, tp.rebuy, tp.rebuy_total_spent, tp.prize,
			t.admin_id, t.name, t.tournament_date, t.buy_in, t.prize_pool, t.location, t.created_at
		FROM tournaments_players tp
		JOIN tournaments t ON tp.tournament_id = t.id
		WHERE tp.player_id = $1
		ORDER BY t.tournament_date DESC, t.id DESC`

	rows, err := r.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participations := make([]models.TournamentPlayer, 0)
	for rows.Next() {
		var tp models.TournamentPlayer
		var position sql.NullInt64
		var prize, prizePool decimal.NullDecimal
		var t models.Tournament

		if err := rows.Scan(
			&tp.TournamentID,
			&tp.PlayerID,
			&position,
			&tp.Rebuy,
			&tp.RebuyTotalSpent,
			&prize,
			&t.AdminID,
			&t.Name,
			&t.TournamentDate,
			&t.BuyIn,
			&prizePool,
			&t.Location,
			&t.CreatedAt,
		); err != nil {
			return nil, err
		}
		if position.Valid {
			pos := int(position.Int64)
			tp.Position = &pos
		}
		if prize.Valid {
			tp.Prize = &prize.Decimal
		}
		if prizePool.Valid {
			t.PrizePool = &prizePool.Decimal
		}
		t.ID = tp.TournamentID
		tp.Tournament = &t
		participations = append(participations, tp)
	}
	return participations, rows.Err()
}

func (r *postgresTournamentPlayerRepository) CountByPlayerID(ctx context.Context, playerID int) (int, error) {
	query := `SELECT COUNT(*) FROM tournaments_players WHERE player_id = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, playerID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
