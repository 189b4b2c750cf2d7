package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/coldrink/rinkreport/internal/generator"
	"github.com/coldrink/rinkreport/pkg/config"
	"github.com/coldrink/rinkreport/pkg/logger"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [team...]",
	Short: "Generate season reports",
	Long: `Generates season report files for one or more teams.

This command:
- Fetches the team's completed games from the NHL API
- Computes the derived season metrics
- Lays the report out and exports it as PDF and PNG

Example:
  go run ./cmd/rinkreport generate PIT
  go run ./cmd/rinkreport generate PIT EDM --formats pdf
  go run ./cmd/rinkreport generate PIT --out ./reports`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

var (
	generateFormats []string
	generateOut     string
	generateTimeout time.Duration
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringSliceVar(&generateFormats, "formats", nil, "export formats (pdf,png)")
	generateCmd.Flags().StringVar(&generateOut, "out", "", "output directory (overrides OUTPUT_DIR)")
	generateCmd.Flags().DurationVar(&generateTimeout, "timeout", 5*time.Minute, "per-team generation timeout")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if generateOut != "" {
		cfg.OutputDir = generateOut
	}

	log := logger.New(cfg)

	gen, err := generator.New(cfg, log)
	if err != nil {
		return fmt.Errorf("initialize generator: %w", err)
	}
	defer gen.Close()

	for _, team := range args {
		ctx, cancel := context.WithTimeout(cmd.Context(), generateTimeout)
		result, err := gen.Generate(ctx, team, generateFormats)
		cancel()
		if err != nil {
			return fmt.Errorf("generate %s: %w", strings.ToUpper(team), err)
		}

		fmt.Printf("%s report generated in %s\n", result.Team, result.Duration.Round(time.Millisecond))
		for format, path := range result.Paths {
			fmt.Printf("  %s: %s\n", format, path)
		}
	}

	return nil
}
