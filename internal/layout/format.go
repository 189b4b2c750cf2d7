package layout

import (
	"fmt"
	"math"
)

// Placeholder strings. MetricPlaceholder fills a metric region whose
// value was not computed; PredictionPlaceholder marks an unknown
// prediction and is deliberately distinguishable from any "N.N%" value.
const (
	MetricPlaceholder     = "N/A"
	PredictionPlaceholder = "unknown"
)

// FormatValue is the single formatting rule for every numeric value on
// the page: round-half-even to one decimal place. Text regions and
// chart labels all funnel through here so a displayed metric can never
// disagree with its chart.
func FormatValue(v float64) string {
	rounded := math.RoundToEven(v*10) / 10
	// Avoid the "-0.0" artifact for tiny negatives.
	if rounded == 0 {
		rounded = 0
	}
	return fmt.Sprintf("%.1f", rounded)
}

// FormatPercent renders a percentage value under the shared rule.
func FormatPercent(v float64) string {
	return FormatValue(v) + "%"
}
