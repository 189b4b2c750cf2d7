// Package jobs holds the scheduled job implementations.
package jobs

import (
	"context"
	"fmt"
	"strings"

	"github.com/coldrink/rinkreport/internal/generator"
	"github.com/coldrink/rinkreport/pkg/logger"
)

// RefreshJob regenerates the report files for a fixed set of teams.
type RefreshJob struct {
	generator *generator.Generator
	logger    *logger.Logger
	teams     []string
	schedule  string
}

func NewRefreshJob(gen *generator.Generator, log *logger.Logger, teams []string, schedule string) *RefreshJob {
	return &RefreshJob{
		generator: gen,
		logger:    log,
		teams:     teams,
		schedule:  schedule,
	}
}

func (j *RefreshJob) Name() string     { return "report-refresh" }
func (j *RefreshJob) Schedule() string { return j.schedule }

// Run regenerates every configured team. A failing team does not stop
// the rest; the job fails if any team failed.
func (j *RefreshJob) Run(ctx context.Context) error {
	var failed []string
	for _, team := range j.teams {
		result, err := j.generator.Generate(ctx, team, nil)
		if err != nil {
			j.logger.WithError(err).WithField("team", team).Error("scheduled refresh failed")
			failed = append(failed, strings.ToUpper(team))
			continue
		}
		j.logger.WithFields(map[string]interface{}{
			"team":     result.Team,
			"run_id":   result.RunID,
			"duration": result.Duration,
		}).Info("scheduled refresh complete")
	}

	if len(failed) > 0 {
		return fmt.Errorf("refresh failed for %s", strings.Join(failed, ", "))
	}
	return nil
}
