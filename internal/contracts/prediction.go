package contracts

import (
	"strings"
	"time"
)

// Prediction is a cached pre-game win-probability estimate for one game.
// Loaded once from the snapshot file at startup; read-only afterwards.
type Prediction struct {
	GameID       int64     `json:"game_id"`
	Date         time.Time `json:"game_date"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
	HomeWinProb  float64   `json:"predicted_home_win_prob"` // 0..1
	AwayWinProb  float64   `json:"predicted_away_win_prob"` // 0..1
	ActualWinner string    `json:"actual_winner"`           // "HOME", "AWAY", or abbreviation
}

// ProbabilityFor returns the predicted win probability, in percent, for
// the given team abbreviation. The second return is false when the team
// did not play in the predicted game.
func (p Prediction) ProbabilityFor(team string) (float64, bool) {
	team = strings.ToUpper(team)
	switch team {
	case strings.ToUpper(p.HomeTeam):
		return toPercent(p.HomeWinProb), true
	case strings.ToUpper(p.AwayTeam):
		return toPercent(p.AwayWinProb), true
	}
	return 0, false
}

// toPercent normalizes probabilities stored either as 0..1 or 0..100.
func toPercent(v float64) float64 {
	if v <= 1.0 {
		return v * 100
	}
	return v
}
