package services

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/delmonaco/poker-tracker/models"
	"github.com/delmonaco/poker-tracker/repositories"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// maxStatsLoaders bounds how many players' participation sets are loaded
// concurrently during a top-performers ranking.
const maxStatsLoaders = 8

type StatsService interface {
	Leaderboard(ctx context.Context) ([]models.LeaderboardRow, error)
	TopPerformers(ctx context.Context, input TopPerformersInput) []models.LeaderboardRow
}

type TopPerformersInput struct {
	Limit          int
	OrderBy        string
	Descending     bool
	MinTournaments int
}

type statsService struct {
	statsRepo  repositories.StatsRepository
	playerRepo repositories.PlayerRepository
	partRepo   repositories.TournamentPlayerRepository
	logger     *slog.Logger
}

func NewStatsService(
	statsRepo repositories.StatsRepository,
	playerRepo repositories.PlayerRepository,
	partRepo repositories.TournamentPlayerRepository,
	logger *slog.Logger,
) StatsService {
	return &statsService{
		statsRepo:  statsRepo,
		playerRepo: playerRepo,
		partRepo:   partRepo,
		logger:     logger,
	}
}

// Leaderboard computes every active player's metrics with a single
// aggregated query. The SQL produces raw totals only; the formulas run
// through the same derivation as the per-player path, so both agree to the
// cent. Sorted by net profit, best first.
func (s *statsService) Leaderboard(ctx context.Context) ([]models.LeaderboardRow, error) {
	aggregates, err := s.statsRepo.LeaderboardTotals(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]models.LeaderboardRow, 0, len(aggregates))
	for _, a := range aggregates {
		rows = append(rows, models.LeaderboardRow{
			PlayerID:  a.PlayerID,
			Nickname:  a.Nickname,
			FirstName: a.FirstName,
			LastName:  a.LastName,
			Stats:     a.Totals.Derive(),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Stats.NetProfit.GreaterThan(rows[j].Stats.NetProfit)
	})
	return rows, nil
}

// TopPerformers ranks players by one derived metric. Candidates are
// filtered server-side to those with enough tournaments, then their
// participation sets are loaded concurrently and the metric computed in
// memory. A database failure is logged and yields an empty ranking rather
// than an error; the callers treat the ranking as best-effort display data.
func (s *statsService) TopPerformers(ctx context.Context, input TopPerformersInput) []models.LeaderboardRow {
	min := input.MinTournaments
	if min < 1 {
		min = 1
	}
	ids, err := s.statsRepo.PlayerIDsWithMinTournaments(ctx, min)
	if err != nil {
		s.logger.Error("failed to select top performer candidates", "error", err)
		return []models.LeaderboardRow{}
	}
	if len(ids) == 0 {
		return []models.LeaderboardRow{}
	}

	var mu sync.Mutex
	rows := make([]models.LeaderboardRow, 0, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxStatsLoaders)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			player, err := s.playerRepo.GetByID(gctx, id)
			if err != nil {
				return err
			}
			participations, err := s.partRepo.ListByPlayerID(gctx, id)
			if err != nil {
				return err
			}
			row := models.LeaderboardRow{
				PlayerID:  player.ID,
				Nickname:  player.Nickname,
				FirstName: player.FirstName,
				LastName:  player.LastName,
				Stats:     models.ComputePlayerStats(participations),
			}
			mu.Lock()
			rows = append(rows, row)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load participations for ranking", "error", err)
		return []models.LeaderboardRow{}
	}

	sortRows(rows, input.OrderBy, input.Descending)

	if input.Limit > 0 && len(rows) > input.Limit {
		rows = rows[:input.Limit]
	}
	return rows
}

// statKey extracts the requested metric for ordering. The boolean reports
// whether the metric is defined for this player; undefined values always
// sort after defined ones.
func statKey(s *models.PlayerStats, orderBy string) (decimal.Decimal, bool) {
	switch orderBy {
	case "roi":
		return derefStat(s.ROI)
	case "win_rate":
		return derefStat(s.WinRate)
	case "itm_rate":
		return derefStat(s.ITMRate)
	case "avg_profit_per_tournament":
		return derefStat(s.AvgProfitPerTournament)
	case "total_winnings":
		return s.TotalWinnings, true
	case "num_tournaments":
		return decimal.NewFromInt(int64(s.NumTournaments)), true
	case "num_wins":
		return decimal.NewFromInt(int64(s.NumWins)), true
	default:
		return s.NetProfit, true
	}
}

func derefStat(d *decimal.Decimal) (decimal.Decimal, bool) {
	if d == nil {
		return decimal.Zero, false
	}
	return *d, true
}

func sortRows(rows []models.LeaderboardRow, orderBy string, descending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, aOK := statKey(rows[i].Stats, orderBy)
		b, bOK := statKey(rows[j].Stats, orderBy)
		if aOK != bOK {
			return aOK
		}
		if descending {
			return a.GreaterThan(b)
		}
		return a.LessThan(b)
	})
}
