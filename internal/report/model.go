package report

import (
	"github.com/coldrink/rinkreport/internal/contracts"
)

// PredictionValue is a prediction lookup result for one game. Unknown is
// a first-class state: it must render distinctly from any 0-100 value.
type PredictionValue struct {
	Known bool
	Pct   float64 // win probability in percent, meaningful only when Known
}

// Model is the fully assembled data set for one team's report. It is
// built all-or-nothing, never mutated after assembly, and discarded
// after export.
type Model struct {
	Team     string
	TeamName string

	Record *contracts.TeamRecord
	Streak contracts.Streak

	// Games in ascending chronological order.
	Games []contracts.GameRecord

	// Metric name -> value, every value inside its declared range.
	Metrics map[string]float64

	// Game id -> prediction state for that game.
	Predictions map[int64]PredictionValue

	// Wins in games where the model gave the team under 50%.
	WinsAboveExpected int
}

// Prediction returns the prediction state for a game id. Games with no
// snapshot entry report an unknown state.
func (m *Model) Prediction(gameID int64) PredictionValue {
	if p, ok := m.Predictions[gameID]; ok {
		return p
	}
	return PredictionValue{}
}

// Metric returns the named metric value and whether it was computed.
func (m *Model) Metric(name string) (float64, bool) {
	v, ok := m.Metrics[name]
	return v, ok
}
