// Package metrics turns a team's ordered game log into derived season
// indicators. Everything here is pure: no I/O, no clock, no state.
package metrics

import (
	"math"

	"github.com/coldrink/rinkreport/internal/contracts"
)

// Compute runs every defined metric over the game log and returns a
// name -> value map. Games must be sorted ascending by date.
//
// Required metrics fail the whole computation with ErrDataInsufficient
// when the input cannot support them. Optional metrics are simply left
// out of the result when their conditional subset is empty; the layout
// renders a placeholder for them.
func Compute(games []contracts.GameRecord) (map[string]float64, error) {
	if !contracts.SortedByDate(games) {
		return nil, ErrPreconditionViolated
	}

	out := make(map[string]float64, len(Definitions()))

	for _, def := range Definitions() {
		value, err := compute(def.Name, games)
		if err != nil {
			var ie *InsufficientError
			if def.Optional && asInsufficient(err, &ie) {
				continue
			}
			return nil, err
		}

		if math.IsNaN(value) || math.IsInf(value, 0) || value < def.Min || value > def.Max {
			return nil, &RangeError{Metric: def.Name, Value: value, Min: def.Min, Max: def.Max}
		}
		out[def.Name] = value
	}

	return out, nil
}

func asInsufficient(err error, target **InsufficientError) bool {
	ie, ok := err.(*InsufficientError)
	if ok {
		*target = ie
	}
	return ok
}

func compute(name string, games []contracts.GameRecord) (float64, error) {
	switch name {
	case ShootingPercentage:
		return shootingPercentage(games)
	case SavePercentage:
		return savePercentage(games)
	case PossessionPct:
		return possessionPct(games)
	case ShotShare:
		return shotShare(games)
	case WinPct:
		return winPct(games)
	case GoalsPerGame:
		return perGame(name, games, func(g contracts.GameRecord) int { return g.GoalsFor })
	case GoalsAgainstPerGame:
		return perGame(name, games, func(g contracts.GameRecord) int { return g.GoalsAgainst })
	case PythagoreanWinPct:
		return pythagoreanWinPct(games)
	case Momentum:
		return momentum(games)
	case ClutchRate:
		return clutchRate(games)
	case PowerPlayPct:
		return powerPlayPct(games)
	case FaceoffPct:
		return faceoffPct(games)
	}
	return 0, &InsufficientError{Metric: name, Reason: "unknown metric"}
}

// counter sums an integer field across games, rejecting negative raw
// values: a negative counter can only come from corrupt upstream data.
func counter(metric string, games []contracts.GameRecord, pick func(contracts.GameRecord) int) (float64, error) {
	total := 0
	for _, g := range games {
		v := pick(g)
		if v < 0 {
			return 0, &RangeError{Metric: metric, Value: float64(v), Min: 0, Max: math.Inf(1)}
		}
		total += v
	}
	return float64(total), nil
}

func ratioPct(metric string, games []contracts.GameRecord,
	num, den func(contracts.GameRecord) int, emptyReason string) (float64, error) {

	if len(games) == 0 {
		return 0, &InsufficientError{Metric: metric, Reason: "no games"}
	}

	n, err := counter(metric, games, num)
	if err != nil {
		return 0, err
	}
	d, err := counter(metric, games, den)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, &InsufficientError{Metric: metric, Reason: emptyReason}
	}
	return n / d * 100, nil
}

func shootingPercentage(games []contracts.GameRecord) (float64, error) {
	return ratioPct(ShootingPercentage, games,
		func(g contracts.GameRecord) int { return g.GoalsFor },
		func(g contracts.GameRecord) int { return g.ShotsFor },
		"no shots on goal")
}

func savePercentage(games []contracts.GameRecord) (float64, error) {
	saved, err := ratioPct(SavePercentage, games,
		func(g contracts.GameRecord) int { return g.GoalsAgainst },
		func(g contracts.GameRecord) int { return g.ShotsAgainst },
		"no shots against")
	if err != nil {
		return 0, err
	}
	return 100 - saved, nil
}

func possessionPct(games []contracts.GameRecord) (float64, error) {
	return ratioPct(PossessionPct, games,
		func(g contracts.GameRecord) int { return g.AttemptsFor },
		func(g contracts.GameRecord) int { return g.AttemptsFor + g.AttemptsAgainst },
		"no shot attempts")
}

func shotShare(games []contracts.GameRecord) (float64, error) {
	return ratioPct(ShotShare, games,
		func(g contracts.GameRecord) int { return g.ShotsFor },
		func(g contracts.GameRecord) int { return g.ShotsFor + g.ShotsAgainst },
		"no shots in either direction")
}

func winPct(games []contracts.GameRecord) (float64, error) {
	if len(games) == 0 {
		return 0, &InsufficientError{Metric: WinPct, Reason: "no games"}
	}
	wins := 0
	for _, g := range games {
		if g.Won() {
			wins++
		}
	}
	return float64(wins) / float64(len(games)) * 100, nil
}

func perGame(metric string, games []contracts.GameRecord, pick func(contracts.GameRecord) int) (float64, error) {
	if len(games) == 0 {
		return 0, &InsufficientError{Metric: metric, Reason: "no games"}
	}
	total, err := counter(metric, games, pick)
	if err != nil {
		return 0, err
	}
	return total / float64(len(games)), nil
}

// pythagoreanWinPct estimates expected win percentage from goal totals:
// GF^e / (GF^e + GA^e).
func pythagoreanWinPct(games []contracts.GameRecord) (float64, error) {
	if len(games) == 0 {
		return 0, &InsufficientError{Metric: PythagoreanWinPct, Reason: "no games"}
	}
	gf, err := counter(PythagoreanWinPct, games, func(g contracts.GameRecord) int { return g.GoalsFor })
	if err != nil {
		return 0, err
	}
	ga, err := counter(PythagoreanWinPct, games, func(g contracts.GameRecord) int { return g.GoalsAgainst })
	if err != nil {
		return 0, err
	}
	if gf == 0 && ga == 0 {
		return 0, &InsufficientError{Metric: PythagoreanWinPct, Reason: "no goals in either direction"}
	}

	gfExp := math.Pow(gf, pythagExponent)
	gaExp := math.Pow(ga, pythagExponent)
	return gfExp / (gfExp + gaExp) * 100, nil
}

// momentum weights the last momentumWindow results linearly, newest
// heaviest. A full recent win streak scores 100, a losing one -100.
// Order-sensitive: this is why the engine checks the date sort upfront.
func momentum(games []contracts.GameRecord) (float64, error) {
	if len(games) == 0 {
		return 0, &InsufficientError{Metric: Momentum, Reason: "no games"}
	}

	window := games
	if len(window) > momentumWindow {
		window = window[len(window)-momentumWindow:]
	}

	var weighted, weightSum float64
	for i, g := range window {
		w := float64(i + 1)
		weightSum += w
		if g.Won() {
			weighted += w
		} else {
			weighted -= w
		}
	}
	return weighted / weightSum * 100, nil
}

// clutchRate is the win percentage in one-goal games. Optional: a team
// may not have played any yet.
func clutchRate(games []contracts.GameRecord) (float64, error) {
	oneGoal := 0
	oneGoalWins := 0
	for _, g := range games {
		if !g.OneGoalGame() {
			continue
		}
		oneGoal++
		if g.Won() {
			oneGoalWins++
		}
	}
	if oneGoal == 0 {
		return 0, &InsufficientError{Metric: ClutchRate, Reason: "no one-goal games"}
	}
	return float64(oneGoalWins) / float64(oneGoal) * 100, nil
}

func powerPlayPct(games []contracts.GameRecord) (float64, error) {
	return ratioPct(PowerPlayPct, games,
		func(g contracts.GameRecord) int { return g.PowerPlayGoals },
		func(g contracts.GameRecord) int { return g.PowerPlayChances },
		"no power play chances")
}

func faceoffPct(games []contracts.GameRecord) (float64, error) {
	return ratioPct(FaceoffPct, games,
		func(g contracts.GameRecord) int { return g.FaceoffWins },
		func(g contracts.GameRecord) int { return g.FaceoffTotal },
		"no faceoffs")
}
