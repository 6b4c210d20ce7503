package models

import "github.com/shopspring/decimal"

// TopITMPosition is the highest finishing position that still counts as
// "in the money".
const TopITMPosition = 4

// PlayerStats is the full set of derived metrics for one player.
//
// Pointer-typed metrics are genuinely undefined when their denominator is
// zero: a player with no tournaments has a nil win rate, not a zero one,
// and the JSON encoding keeps the distinction (null vs "0.00").
type PlayerStats struct {
	TotalWinnings   decimal.Decimal `json:"total_winnings"`
	TotalBuyInSpent decimal.Decimal `json:"total_buyin_spent"`
	TotalRebuySpent decimal.Decimal `json:"total_rebuy_spent"`
	TotalSpent      decimal.Decimal `json:"total_spent"`
	NetProfit       decimal.Decimal `json:"net_profit"`

	NumTournaments          int `json:"num_tournaments"`
	NumWins                 int `json:"num_wins"`
	NumITM                  int `json:"in_the_money"`
	NumRebuys               int `json:"num_rebuys"`
	NumZeroRebuyTournaments int `json:"num_zero_rebuy_tournaments"`

	WinRate                *decimal.Decimal `json:"win_rate"`
	ITMRate                *decimal.Decimal `json:"itm_rate"`
	ROI                    *decimal.Decimal `json:"roi"`
	AvgProfitPerTournament *decimal.Decimal `json:"avg_profit_per_tournament"`
	AvgRebuyPerTournament  *decimal.Decimal `json:"avg_rebuy_per_tournament"`
	WinToITMRatio          *decimal.Decimal `json:"win_to_itm_ratio"`
	RebuyFrequency         *decimal.Decimal `json:"rebuy_frequency"`

	AvgPrizeWhenPaid decimal.Decimal `json:"avg_prize_when_paid"`
	ABI              decimal.Decimal `json:"abi"`
	CPC              decimal.Decimal `json:"cpc"`
}

// StatTotals holds the raw sums and counts the metrics derive from. The
// in-memory path fills it by iterating participations; the leaderboard
// query fills it from SQL aggregates. Both then call Derive, so the two
// execution strategies cannot drift apart on the formulas.
type StatTotals struct {
	Winnings   decimal.Decimal
	BuyInSpent decimal.Decimal
	RebuySpent decimal.Decimal

	Tournaments int
	Wins        int
	ITM         int
	Rebuys      int
	ZeroRebuy   int

	PaidSum   decimal.Decimal
	PaidCount int
}

var hundred = decimal.NewFromInt(100)

// Derive applies the metric formulas to the accumulated totals.
func (t StatTotals) Derive() *PlayerStats {
	s := &PlayerStats{
		TotalWinnings:           roundMoney(t.Winnings),
		TotalBuyInSpent:         roundMoney(t.BuyInSpent),
		TotalRebuySpent:         roundMoney(t.RebuySpent),
		NumTournaments:          t.Tournaments,
		NumWins:                 t.Wins,
		NumITM:                  t.ITM,
		NumRebuys:               t.Rebuys,
		NumZeroRebuyTournaments: t.ZeroRebuy,
		AvgPrizeWhenPaid:        decimal.Zero.Round(2),
		ABI:                     decimal.Zero.Round(2),
		CPC:                     decimal.Zero.Round(2),
	}
	s.TotalSpent = roundMoney(t.BuyInSpent.Add(t.RebuySpent))
	s.NetProfit = roundMoney(t.Winnings.Sub(s.TotalSpent))

	if t.Tournaments > 0 {
		n := decimal.NewFromInt(int64(t.Tournaments))
		s.WinRate = moneyPtr(decimal.NewFromInt(int64(t.Wins)).Mul(hundred).Div(n))
		s.ITMRate = moneyPtr(decimal.NewFromInt(int64(t.ITM)).Mul(hundred).Div(n))
		s.AvgProfitPerTournament = moneyPtr(s.NetProfit.Div(n))
		s.AvgRebuyPerTournament = moneyPtr(decimal.NewFromInt(int64(t.Rebuys)).Div(n))
		s.RebuyFrequency = moneyPtr(decimal.NewFromInt(int64(t.Tournaments - t.ZeroRebuy)).Mul(hundred).Div(n))
		s.ABI = roundMoney(t.BuyInSpent.Div(n))
	}
	if s.TotalSpent.IsPositive() {
		s.ROI = moneyPtr(s.NetProfit.Mul(hundred).Div(s.TotalSpent))
	}
	if t.ITM > 0 {
		itm := decimal.NewFromInt(int64(t.ITM))
		s.WinToITMRatio = moneyPtr(decimal.NewFromInt(int64(t.Wins)).Div(itm))
		s.CPC = roundMoney(s.TotalSpent.Div(itm))
	}
	if t.PaidCount > 0 {
		s.AvgPrizeWhenPaid = roundMoney(t.PaidSum.Div(decimal.NewFromInt(int64(t.PaidCount))))
	}
	return s
}

// ComputePlayerStats accumulates totals over the loaded participations and
// derives the full metric set. Participations must carry their tournament
// association for buy-in sums to be correct.
func ComputePlayerStats(participations []TournamentPlayer) *PlayerStats {
	t := StatTotals{
		Winnings:   decimal.Zero,
		BuyInSpent: decimal.Zero,
		RebuySpent: decimal.Zero,
		PaidSum:    decimal.Zero,
	}
	for i := range participations {
		tp := &participations[i]
		t.Tournaments++
		t.RebuySpent = t.RebuySpent.Add(tp.RebuyTotalSpent)
		t.Rebuys += tp.Rebuy
		if tp.Rebuy == 0 {
			t.ZeroRebuy++
		}
		if tp.Tournament != nil {
			t.BuyInSpent = t.BuyInSpent.Add(tp.Tournament.BuyIn)
		}
		if tp.Prize != nil {
			t.Winnings = t.Winnings.Add(*tp.Prize)
			if tp.Prize.IsPositive() {
				t.PaidSum = t.PaidSum.Add(*tp.Prize)
				t.PaidCount++
			}
		}
		if tp.Position != nil {
			if *tp.Position == 1 {
				t.Wins++
			}
			if *tp.Position <= TopITMPosition {
				t.ITM++
			}
		}
	}
	return t.Derive()
}
