package layout

import (
	"github.com/coldrink/rinkreport/internal/report"
)

// buildChart projects the model onto a chart specification. Pure: the
// same model and kind always produce an identical spec.
func buildChart(kind ChartKind, region Region, model *report.Model) (*ChartSpec, error) {
	switch kind {
	case ChartGoalsTrend:
		return goalsTrend(region, model), nil
	case ChartWinLoss:
		return winLoss(region, model), nil
	case ChartPredictions:
		return predictionSeries(region, model), nil
	case ChartGauge:
		return metricGauge(region, model)
	default:
		return nil, invariant("region %q: unknown chart kind %q", region.Name, kind)
	}
}

func gameLabel(model *report.Model, i int) string {
	return model.Games[i].Date.Format("01/02")
}

func goalsTrend(region Region, model *report.Model) *ChartSpec {
	goalsFor := make([]Point, 0, len(model.Games))
	goalsAgainst := make([]Point, 0, len(model.Games))
	yMax := 0.0
	for i, g := range model.Games {
		label := gameLabel(model, i)
		gf, ga := float64(g.GoalsFor), float64(g.GoalsAgainst)
		goalsFor = append(goalsFor, Point{Label: label, Value: gf})
		goalsAgainst = append(goalsAgainst, Point{Label: label, Value: ga})
		if gf > yMax {
			yMax = gf
		}
		if ga > yMax {
			yMax = ga
		}
	}

	return &ChartSpec{
		Kind:  ChartGoalsTrend,
		Title: region.Label,
		YMin:  0,
		YMax:  yMax,
		Series: []Series{
			{Name: "Goals For", Points: goalsFor},
			{Name: "Goals Against", Points: goalsAgainst},
		},
	}
}

func winLoss(region Region, model *report.Model) *ChartSpec {
	points := make([]Point, 0, len(model.Games))
	span := 1.0
	for i, g := range model.Games {
		diff := float64(g.GoalsFor - g.GoalsAgainst)
		points = append(points, Point{Label: gameLabel(model, i), Value: diff})
		if d := diff; d > span {
			span = d
		} else if -d > span {
			span = -d
		}
	}

	return &ChartSpec{
		Kind:   ChartWinLoss,
		Title:  region.Label,
		YMin:   -span,
		YMax:   span,
		Series: []Series{{Name: "Goal Differential", Points: points}},
	}
}

// predictionSeries plots the pre-game win probability per game. Games
// without a cached prediction become Unknown points; the exporter draws
// those as the placeholder mark, never as a 0% value.
func predictionSeries(region Region, model *report.Model) *ChartSpec {
	points := make([]Point, 0, len(model.Games))
	for i, g := range model.Games {
		p := model.Prediction(g.GameID)
		if p.Known {
			points = append(points, Point{Label: gameLabel(model, i), Value: p.Pct})
		} else {
			points = append(points, Point{Label: gameLabel(model, i), Unknown: true})
		}
	}

	return &ChartSpec{
		Kind:   ChartPredictions,
		Title:  region.Label,
		YMin:   0,
		YMax:   100,
		Series: []Series{{Name: "Win Probability", Points: points}},
	}
}

// metricGauge renders a single metric as a one-point gauge chart.
func metricGauge(region Region, model *report.Model) (*ChartSpec, error) {
	if region.Metric == "" {
		return nil, invariant("region %q: gauge chart without metric name", region.Name)
	}
	value, ok := model.Metric(region.Metric)
	point := Point{Label: region.Label, Value: value, Unknown: !ok}

	return &ChartSpec{
		Kind:   ChartGauge,
		Title:  region.Label,
		YMin:   0,
		YMax:   100,
		Series: []Series{{Name: region.Metric, Points: []Point{point}}},
	}, nil
}

// ChartLabel formats a chart point's display label through the shared
// formatting rule, keeping chart labels consistent with text regions.
func ChartLabel(p Point) string {
	if p.Unknown {
		return PredictionPlaceholder
	}
	return FormatValue(p.Value)
}
