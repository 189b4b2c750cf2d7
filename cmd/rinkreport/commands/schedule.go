package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/coldrink/rinkreport/internal/generator"
	"github.com/coldrink/rinkreport/internal/scheduler"
	"github.com/coldrink/rinkreport/internal/scheduler/jobs"
	"github.com/coldrink/rinkreport/pkg/config"
	"github.com/coldrink/rinkreport/pkg/logger"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the report refresh scheduler",
	Long: `Starts a daemon that regenerates reports on a cron schedule.

The team list comes from the TEAMS environment variable, the schedule
from CRON_SPEC (six fields, seconds first).

Example:
  TEAMS=PIT,EDM go run ./cmd/rinkreport schedule
  go run ./cmd/rinkreport schedule --teams PIT,EDM --now`,
	RunE: runSchedule,
}

var (
	scheduleTeams []string
	scheduleNow   bool
)

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringSliceVar(&scheduleTeams, "teams", nil, "teams to refresh (overrides TEAMS)")
	scheduleCmd.Flags().BoolVar(&scheduleNow, "now", false, "run one refresh immediately on startup")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if len(scheduleTeams) > 0 {
		cfg.Teams = scheduleTeams
	}
	if len(cfg.Teams) == 0 {
		return fmt.Errorf("no teams configured: set TEAMS or pass --teams")
	}

	log := logger.New(cfg)

	gen, err := generator.New(cfg, log)
	if err != nil {
		return fmt.Errorf("initialize generator: %w", err)
	}
	defer gen.Close()

	sched := scheduler.New(log)
	job := jobs.NewRefreshJob(gen, log, cfg.Teams, cfg.CronSpec)
	if err := sched.AddJob(job); err != nil {
		return err
	}

	sched.Start()
	defer sched.Stop()

	if scheduleNow {
		if err := sched.RunJob(job.Name()); err != nil {
			return err
		}
	}

	log.WithFields(map[string]interface{}{
		"teams":    cfg.Teams,
		"schedule": cfg.CronSpec,
	}).Info("refresh scheduler running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.WithField("signal", sig.String()).Info("shutdown signal received")

	return nil
}
