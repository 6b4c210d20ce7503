package models

// LeaderboardRow pairs a player's identity with their derived statistics,
// as produced by the aggregated leaderboard query. Players with zero
// tournaments never appear.
type LeaderboardRow struct {
	PlayerID  int          `json:"player_id"`
	Nickname  string       `json:"nickname"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Stats     *PlayerStats `json:"stats"`
}
