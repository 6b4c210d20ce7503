package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(i int) *int {
	return &i
}

func TestComputePlayerStatsNoParticipations(t *testing.T) {
	stats := ComputePlayerStats(nil)

	if !stats.TotalWinnings.Equal(decimal.Zero) {
		t.Errorf("total winnings = %s, want 0.00", stats.TotalWinnings)
	}
	if !stats.TotalSpent.Equal(decimal.Zero) {
		t.Errorf("total spent = %s, want 0.00", stats.TotalSpent)
	}
	if !stats.NetProfit.Equal(decimal.Zero) {
		t.Errorf("net profit = %s, want 0.00", stats.NetProfit)
	}
	if stats.NumTournaments != 0 || stats.NumWins != 0 || stats.NumITM != 0 {
		t.Errorf("counters = %d/%d/%d, want all zero", stats.NumTournaments, stats.NumWins, stats.NumITM)
	}

	// Undefined ratios must be nil, not zero.
	for name, v := range map[string]*decimal.Decimal{
		"win_rate":                  stats.WinRate,
		"itm_rate":                  stats.ITMRate,
		"roi":                       stats.ROI,
		"avg_profit_per_tournament": stats.AvgProfitPerTournament,
		"avg_rebuy_per_tournament":  stats.AvgRebuyPerTournament,
		"win_to_itm_ratio":          stats.WinToITMRatio,
		"rebuy_frequency":           stats.RebuyFrequency,
	} {
		if v != nil {
			t.Errorf("%s = %s, want nil", name, v)
		}
	}

	if !stats.ABI.Equal(decimal.Zero) || !stats.CPC.Equal(decimal.Zero) || !stats.AvgPrizeWhenPaid.Equal(decimal.Zero) {
		t.Errorf("abi/cpc/avg_prize_when_paid = %s/%s/%s, want all 0.00", stats.ABI, stats.CPC, stats.AvgPrizeWhenPaid)
	}
}

func TestComputePlayerStatsSingleTournament(t *testing.T) {
	// Buy-in 100, two half-price rebuys (100 total), first place, prize 300.
	tournament := &Tournament{ID: 1, BuyIn: dec("100")}
	participations := []TournamentPlayer{
		{
			TournamentID:    1,
			PlayerID:        7,
			Position:        intPtr(1),
			Rebuy:           2,
			RebuyTotalSpent: dec("100.00"),
			Prize:           decPtr("300"),
			Tournament:      tournament,
		},
	}

	stats := ComputePlayerStats(participations)

	if !stats.TotalSpent.Equal(dec("200.00")) {
		t.Errorf("total spent = %s, want 200.00", stats.TotalSpent)
	}
	if !stats.NetProfit.Equal(dec("100.00")) {
		t.Errorf("net profit = %s, want 100.00", stats.NetProfit)
	}
	if stats.ROI == nil || !stats.ROI.Equal(dec("50.00")) {
		t.Errorf("roi = %v, want 50.00", stats.ROI)
	}
	if stats.NumTournaments != 1 || stats.NumWins != 1 || stats.NumITM != 1 {
		t.Errorf("counters = %d/%d/%d, want 1/1/1", stats.NumTournaments, stats.NumWins, stats.NumITM)
	}
	if stats.WinRate == nil || !stats.WinRate.Equal(dec("100.00")) {
		t.Errorf("win rate = %v, want 100.00", stats.WinRate)
	}
	if stats.AvgPrizeWhenPaid.Cmp(dec("300")) != 0 {
		t.Errorf("avg prize when paid = %s, want 300.00", stats.AvgPrizeWhenPaid)
	}
	if stats.RebuyFrequency == nil || !stats.RebuyFrequency.Equal(dec("100.00")) {
		t.Errorf("rebuy frequency = %v, want 100.00", stats.RebuyFrequency)
	}
}

func TestComputePlayerStatsMixedHistory(t *testing.T) {
	t1 := &Tournament{ID: 1, BuyIn: dec("50")}
	t2 := &Tournament{ID: 2, BuyIn: dec("50")}
	t3 := &Tournament{ID: 3, BuyIn: dec("100")}
	participations := []TournamentPlayer{
		{TournamentID: 1, Position: intPtr(1), Prize: decPtr("200"), Tournament: t1},
		{TournamentID: 2, Position: intPtr(4), Prize: decPtr("60"), Rebuy: 1, RebuyTotalSpent: dec("50"), Tournament: t2},
		{TournamentID: 3, Position: intPtr(9), Tournament: t3},
	}

	stats := ComputePlayerStats(participations)

	// spent = 200 buy-ins + 50 rebuy, winnings = 260
	if !stats.TotalSpent.Equal(dec("250.00")) {
		t.Errorf("total spent = %s, want 250.00", stats.TotalSpent)
	}
	if !stats.NetProfit.Equal(dec("10.00")) {
		t.Errorf("net profit = %s, want 10.00", stats.NetProfit)
	}
	if stats.NumITM != 2 {
		t.Errorf("itm = %d, want 2 (positions 1 and 4)", stats.NumITM)
	}
	if stats.WinToITMRatio == nil || !stats.WinToITMRatio.Equal(dec("0.50")) {
		t.Errorf("win to itm = %v, want 0.50", stats.WinToITMRatio)
	}
	if stats.ITMRate == nil || !stats.ITMRate.Equal(dec("66.67")) {
		t.Errorf("itm rate = %v, want 66.67", stats.ITMRate)
	}
	if !stats.CPC.Equal(dec("125.00")) {
		t.Errorf("cpc = %s, want 125.00", stats.CPC)
	}
	if stats.NumZeroRebuyTournaments != 2 {
		t.Errorf("zero rebuy tournaments = %d, want 2", stats.NumZeroRebuyTournaments)
	}
	if stats.RebuyFrequency == nil || !stats.RebuyFrequency.Equal(dec("33.33")) {
		t.Errorf("rebuy frequency = %v, want 33.33", stats.RebuyFrequency)
	}
	// avg_prize_when_paid averages the two positive prizes only.
	if !stats.AvgPrizeWhenPaid.Equal(dec("130.00")) {
		t.Errorf("avg prize when paid = %s, want 130.00", stats.AvgPrizeWhenPaid)
	}
}

// The leaderboard query accumulates the same totals in SQL that
// ComputePlayerStats accumulates in a loop. Both must derive identical
// metrics from the same history.
func TestDeriveMatchesComputePlayerStats(t *testing.T) {
	t1 := &Tournament{ID: 1, BuyIn: dec("25")}
	t2 := &Tournament{ID: 2, BuyIn: dec("100")}
	participations := []TournamentPlayer{
		{TournamentID: 1, Position: intPtr(2), Prize: decPtr("75"), Rebuy: 2, RebuyTotalSpent: dec("25"), Tournament: t1},
		{TournamentID: 2, Position: intPtr(15), Rebuy: 1, RebuyTotalSpent: dec("100"), Tournament: t2},
	}

	computed := ComputePlayerStats(participations)

	// Totals as the SQL SUM/COUNT/CASE expressions would produce them.
	sqlTotals := StatTotals{
		Winnings:   dec("75"),
		BuyInSpent: dec("125"),
		RebuySpent: dec("125"),

		Tournaments: 2,
		Wins:        0,
		ITM:         1,
		Rebuys:      3,
		ZeroRebuy:   0,

		PaidSum:   dec("75"),
		PaidCount: 1,
	}
	derived := sqlTotals.Derive()

	assertEqualDec := func(name string, a, b decimal.Decimal) {
		t.Helper()
		if !a.Equal(b) {
			t.Errorf("%s: loop path %s, aggregate path %s", name, a, b)
		}
	}
	assertEqualPtr := func(name string, a, b *decimal.Decimal) {
		t.Helper()
		if (a == nil) != (b == nil) {
			t.Errorf("%s: loop path %v, aggregate path %v", name, a, b)
			return
		}
		if a != nil && !a.Equal(*b) {
			t.Errorf("%s: loop path %s, aggregate path %s", name, a, b)
		}
	}

	assertEqualDec("total_winnings", computed.TotalWinnings, derived.TotalWinnings)
	assertEqualDec("total_spent", computed.TotalSpent, derived.TotalSpent)
	assertEqualDec("net_profit", computed.NetProfit, derived.NetProfit)
	assertEqualDec("abi", computed.ABI, derived.ABI)
	assertEqualDec("cpc", computed.CPC, derived.CPC)
	assertEqualDec("avg_prize_when_paid", computed.AvgPrizeWhenPaid, derived.AvgPrizeWhenPaid)
	assertEqualPtr("win_rate", computed.WinRate, derived.WinRate)
	assertEqualPtr("itm_rate", computed.ITMRate, derived.ITMRate)
	assertEqualPtr("roi", computed.ROI, derived.ROI)
	assertEqualPtr("avg_profit_per_tournament", computed.AvgProfitPerTournament, derived.AvgProfitPerTournament)
	assertEqualPtr("avg_rebuy_per_tournament", computed.AvgRebuyPerTournament, derived.AvgRebuyPerTournament)
	assertEqualPtr("win_to_itm_ratio", computed.WinToITMRatio, derived.WinToITMRatio)
	assertEqualPtr("rebuy_frequency", computed.RebuyFrequency, derived.RebuyFrequency)

	if computed.NumTournaments != derived.NumTournaments || computed.NumITM != derived.NumITM {
		t.Errorf("counters diverge: %d/%d vs %d/%d",
			computed.NumTournaments, computed.NumITM, derived.NumTournaments, derived.NumITM)
	}
}

func TestComputePlayerStatsROIUndefinedWithZeroSpend(t *testing.T) {
	// Freeroll with a prize: spend is zero, so ROI is undefined rather
	// than infinite.
	tournament := &Tournament{ID: 1, BuyIn: decimal.Zero}
	participations := []TournamentPlayer{
		{TournamentID: 1, Position: intPtr(1), Prize: decPtr("50"), Tournament: tournament},
	}

	stats := ComputePlayerStats(participations)
	if stats.ROI != nil {
		t.Errorf("roi = %s, want nil for zero total spend", stats.ROI)
	}
	if !stats.NetProfit.Equal(dec("50.00")) {
		t.Errorf("net profit = %s, want 50.00", stats.NetProfit)
	}
}
