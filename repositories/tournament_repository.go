package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/delmonaco/poker-tracker/models"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentAdminInvalid = errors.New("tournament admin invalid")
)

type TournamentRepository interface {
	Create(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, filter models.TournamentFilter) ([]models.Tournament, error)
	Update(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error
	Delete(ctx context.Context, id int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTournamentRepository) Create(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error {
	query := `
		INSERT INTO tournaments (admin_id, name, tournament_date, buy_in, prize_pool, location)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		tournament.AdminID,
		tournament.Name,
		tournament.TournamentDate,
		tournament.BuyIn,
		nullDecimal(tournament.PrizePool),
		tournament.Location,
	).Scan(&tournament.ID, &tournament.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTournamentAdminInvalid
		}
		return err
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `
		SELECT
			t.id, t.admin_id, t.name, t.tournament_date, t.buy_in, t.prize_pool, t.location, t.created_at,
			p.nickname, p.first_name, p.last_name
		FROM tournaments t
		LEFT JOIN players p ON t.admin_id = p.id
		WHERE t.id = $1`

	var t models.Tournament
	var prizePool decimal.NullDecimal
	var adminNickname, adminFirst, adminLast sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID,
		&t.AdminID,
		&t.Name,
		&t.TournamentDate,
		&t.BuyIn,
		&prizePool,
		&t.Location,
		&t.CreatedAt,
		&adminNickname,
		&adminFirst,
		&adminLast,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	if prizePool.Valid {
		t.PrizePool = &prizePool.Decimal
	}
	if adminNickname.Valid {
		t.Admin = &models.Player{
			ID:        t.AdminID,
			Nickname:  adminNickname.String,
			FirstName: adminFirst.String,
			LastName:  adminLast.String,
		}
	}
	return &t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter models.TournamentFilter) ([]models.Tournament, error) {
	query := `
		SELECT id, admin_id, name, tournament_date, buy_in, prize_pool, location, created_at
		FROM tournaments`

	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 5)
	if filter.AdminID != nil {
		args = append(args, *filter.AdminID)
		conditions = append(conditions, fmt.Sprintf("admin_id = $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conditions = append(conditions, fmt.Sprintf("tournament_date >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conditions = append(conditions, fmt.Sprintf("tournament_date <= $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conditions, " AND ")
	}
	query += "\n\t\tORDER BY tournament_date DESC, id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf("\n\t\tLIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf("\n\t\tOFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		var prizePool decimal.NullDecimal
		if err := rows.Scan(
			&t.ID,
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
		if prizePool.Valid {
			t.PrizePool = &prizePool.Decimal
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

func (r *postgresTournamentRepository) Update(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error {
	query := `
		UPDATE tournaments SET
			name = $1,
			tournament_date = $2,
			buy_in = $3,
			prize_pool = $4,
			location = $5
		WHERE id = $6`

	result, err := r.getExecutor(exec).ExecContext(ctx, query,
		tournament.Name,
		tournament.TournamentDate,
		tournament.BuyIn,
		nullDecimal(tournament.PrizePool),
		tournament.Location,
		tournament.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

// Delete removes a tournament; participations go with it via ON DELETE
// CASCADE on tournaments_players.
func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM tournaments WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
