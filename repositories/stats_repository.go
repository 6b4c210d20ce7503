package repositories

import (
	"context"
	"database/sql"

	"github.com/delmonaco/poker-tracker/models"
)

// LeaderboardAggregate is one player's raw totals as computed by the
// aggregated SQL query, before metric derivation.
type LeaderboardAggregate struct {
	PlayerID  int
	Nickname  string
	FirstName string
	LastName  string
	Totals    models.StatTotals
}

type StatsRepository interface {
	LeaderboardTotals(ctx context.Context) ([]LeaderboardAggregate, error)
	PlayerIDsWithMinTournaments(ctx context.Context, min int) ([]int, error)
}

type postgresStatsRepository struct {
	db *sql.DB
}

func NewPostgresStatsRepository(db *sql.DB) StatsRepository {
	return &postgresStatsRepository{db: db}
}

// LeaderboardTotals aggregates every player's participation totals in one
// query. The inner joins drop players with zero tournaments. The SUM/CASE
// expressions mirror the accumulation in models.ComputePlayerStats; the
// derived formulas themselves live in models.StatTotals.Derive so both
// paths stay numerically identical.
func (r *postgresStatsRepository) LeaderboardTotals(ctx context.Context) ([]LeaderboardAggregate, error) {
	query := `
		SELECT
			p.id, p.nickname, p.first_name, p.last_name,
			COALESCE(SUM(tp.prize), 0)                                   AS winnings,
			COALESCE(SUM(t.buy_in), 0)                                   AS buyin_spent,
			COALESCE(SUM(tp.rebuy_total_spent), 0)                       AS rebuy_spent,
			COUNT(*)                                                     AS tournaments,
			SUM(CASE WHEN tp.position = 1 THEN 1 ELSE 0 END)             AS wins,
			SUM(CASE WHEN tp.position <= $1 THEN 1 ELSE 0 END)           AS itm,
			COALESCE(SUM(tp.rebuy), 0)                                   AS rebuys,
			SUM(CASE WHEN tp.rebuy = 0 THEN 1 ELSE 0 END)                AS zero_rebuy,
			COALESCE(SUM(CASE WHEN tp.prize > 0 THEN tp.prize END), 0)   AS paid_sum,
			SUM(CASE WHEN tp.prize > 0 THEN 1 ELSE 0 END)                AS paid_count
		FROM players p
		JOIN tournaments_players tp ON tp.player_id = p.id
		JOIN tournaments t ON t.id = tp.tournament_id
		GROUP BY p.id, p.nickname, p.first_name, p.last_name
		ORDER BY p.nickname ASC`

	rows, err := r.db.QueryContext(ctx, query, models.TopITMPosition)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	aggregates := make([]LeaderboardAggregate, 0)
	for rows.Next() {
		var a LeaderboardAggregate
		if err := rows.Scan(
			&a.PlayerID,
			&a.Nickname,
			&a.FirstName,
			&a.LastName,
			&a.Totals.Winnings,
			&a.Totals.BuyInSpent,
			&a.Totals.RebuySpent,
			&a.Totals.Tournaments,
			&a.Totals.Wins,
			&a.Totals.ITM,
			&a.Totals.Rebuys,
			&a.Totals.ZeroRebuy,
			&a.Totals.PaidSum,
			&a.Totals.PaidCount,
		); err != nil {
			return nil, err
		}
		aggregates = append(aggregates, a)
	}
	return aggregates, rows.Err()
}

// PlayerIDsWithMinTournaments filters the population server-side before the
// top-performers ranking loads full participation sets.
func (r *postgresStatsRepository) PlayerIDsWithMinTournaments(ctx context.Context, min int) ([]int, error) {
	query := `
		SELECT player_id
		FROM tournaments_players
		GROUP BY player_id
		HAVING COUNT(*) >= $1
		ORDER BY player_id ASC`

	rows, err := r.db.QueryContext(ctx, query, min)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
