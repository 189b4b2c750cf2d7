package metrics

// Metric names. Region templates and chart projections refer to these.
const (
	ShootingPercentage  = "shooting_percentage"
	SavePercentage      = "save_percentage"
	PossessionPct       = "possession_pct"
	ShotShare           = "shot_share"
	WinPct              = "win_pct"
	GoalsPerGame        = "goals_per_game"
	GoalsAgainstPerGame = "goals_against_per_game"
	PythagoreanWinPct   = "pythagorean_win_pct"
	Momentum            = "momentum"
	ClutchRate          = "clutch_rate"
	PowerPlayPct        = "power_play_pct"
	FaceoffPct          = "faceoff_pct"
)

// pythagExponent is the goals exponent commonly used for NHL pythagorean
// expectation (basketball uses ~13.91, hockey ~2.37).
const pythagExponent = 2.37

// momentumWindow is how many recent games feed the momentum metric.
const momentumWindow = 5

// Definition declares a metric's valid range, whether a report can be
// produced without it, and whether it displays as a percentage. Optional
// metrics have conditional denominators (one-goal games, power plays,
// faceoffs) that can legitimately be empty.
type Definition struct {
	Name     string
	Min      float64
	Max      float64
	Optional bool
	Percent  bool
}

// Definitions lists every metric the engine produces, in a fixed order.
func Definitions() []Definition {
	return []Definition{
		{Name: ShootingPercentage, Min: 0, Max: 100, Percent: true},
		{Name: SavePercentage, Min: 0, Max: 100, Percent: true},
		{Name: PossessionPct, Min: 0, Max: 100, Percent: true},
		{Name: ShotShare, Min: 0, Max: 100, Percent: true},
		{Name: WinPct, Min: 0, Max: 100, Percent: true},
		{Name: GoalsPerGame, Min: 0, Max: 20},
		{Name: GoalsAgainstPerGame, Min: 0, Max: 20},
		{Name: PythagoreanWinPct, Min: 0, Max: 100, Percent: true},
		{Name: Momentum, Min: -100, Max: 100},
		{Name: ClutchRate, Min: 0, Max: 100, Optional: true, Percent: true},
		{Name: PowerPlayPct, Min: 0, Max: 100, Optional: true, Percent: true},
		{Name: FaceoffPct, Min: 0, Max: 100, Optional: true, Percent: true},
	}
}

// Lookup returns the definition for a metric name.
func Lookup(name string) (Definition, bool) {
	for _, d := range Definitions() {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}
