package contracts

import "time"

// GameRecord is one completed game from the team's point of view.
// Immutable once fetched; counters come straight from the boxscore.
type GameRecord struct {
	GameID   int64     `json:"game_id"`
	Date     time.Time `json:"date"`
	Opponent string    `json:"opponent"`
	Home     bool      `json:"home"`

	GoalsFor     int `json:"goals_for"`
	GoalsAgainst int `json:"goals_against"`
	ShotsFor     int `json:"shots_for"`
	ShotsAgainst int `json:"shots_against"`

	// Shot attempts (Corsi), all situations.
	AttemptsFor     int `json:"attempts_for"`
	AttemptsAgainst int `json:"attempts_against"`

	PowerPlayGoals   int `json:"power_play_goals"`
	PowerPlayChances int `json:"power_play_chances"`

	FaceoffWins  int `json:"faceoff_wins"`
	FaceoffTotal int `json:"faceoff_total"`
}

// Won reports whether the team won the game. Final scores include
// overtime and shootout results, so a plain comparison is enough.
func (g GameRecord) Won() bool {
	return g.GoalsFor > g.GoalsAgainst
}

// OneGoalGame reports whether the game was decided by a single goal.
func (g GameRecord) OneGoalGame() bool {
	diff := g.GoalsFor - g.GoalsAgainst
	if diff < 0 {
		diff = -diff
	}
	return diff == 1
}

// SortedByDate reports whether games are in ascending chronological order.
// Order matters for momentum-style metrics.
func SortedByDate(games []GameRecord) bool {
	for i := 1; i < len(games); i++ {
		if games[i].Date.Before(games[i-1].Date) {
			return false
		}
	}
	return true
}
