// Package report assembles the per-team report model: season games from
// the data source, prediction lookups, and the derived metric map.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/coldrink/rinkreport/internal/contracts"
	"github.com/coldrink/rinkreport/internal/metrics"
	"github.com/coldrink/rinkreport/internal/nhl"
	"github.com/coldrink/rinkreport/internal/predictions"
	"github.com/coldrink/rinkreport/pkg/logger"
)

// DataSource is what the builder needs from the league API.
type DataSource interface {
	SeasonGames(ctx context.Context, team string) ([]contracts.GameRecord, error)
	TeamRecord(ctx context.Context, team string) (*contracts.TeamRecord, error)
}

// Builder assembles report models. The prediction cache is shared and
// read-only; one builder serves any number of sequential builds.
type Builder struct {
	source DataSource
	preds  *predictions.Cache
	logger *logger.Logger
}

// NewBuilder creates a report model builder.
func NewBuilder(source DataSource, preds *predictions.Cache, log *logger.Logger) *Builder {
	return &Builder{source: source, preds: preds, logger: log}
}

// Build produces the model for one team. Assembly is all-or-nothing:
// any source failure or required-metric failure aborts and no partial
// model is returned. Missing predictions are recorded as unknown, never
// treated as failure.
func (b *Builder) Build(ctx context.Context, team string) (*Model, error) {
	team = strings.ToUpper(team)

	games, err := b.source.SeasonGames(ctx, team)
	if err != nil {
		return nil, fmt.Errorf("fetch season games for %s: %w", team, err)
	}

	metricValues, err := metrics.Compute(games)
	if err != nil {
		return nil, fmt.Errorf("compute metrics for %s: %w", team, err)
	}

	record, err := b.source.TeamRecord(ctx, team)
	if err != nil {
		return nil, fmt.Errorf("fetch standings record for %s: %w", team, err)
	}

	preds := make(map[int64]PredictionValue, len(games))
	winsAboveExpected := 0
	missing := 0
	for _, g := range games {
		p, ok := b.preds.Lookup(team, g.Opponent, g.Date)
		if !ok {
			missing++
			continue
		}
		pct, ok := p.ProbabilityFor(team)
		if !ok {
			missing++
			continue
		}
		preds[g.GameID] = PredictionValue{Known: true, Pct: pct}
		if g.Won() && pct < 50 {
			winsAboveExpected++
		}
	}

	b.logger.WithFields(map[string]interface{}{
		"team":                team,
		"games":               len(games),
		"metrics":             len(metricValues),
		"missing_predictions": missing,
		"wins_above_expected": winsAboveExpected,
	}).Info("Report model assembled")

	return &Model{
		Team:              team,
		TeamName:          nhl.TeamName(team),
		Record:            record,
		Streak:            contracts.CurrentStreak(games),
		Games:             games,
		Metrics:           metricValues,
		Predictions:       preds,
		WinsAboveExpected: winsAboveExpected,
	}, nil
}
