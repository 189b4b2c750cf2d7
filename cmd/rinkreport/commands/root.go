package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rinkreport",
	Short: "rinkreport - NHL team season report generator",
	Long: `rinkreport generates one-page season reports for NHL teams.

Live season data comes from the NHL API, win probabilities from a
local prediction snapshot. Reports are exported as PDF and
print-resolution PNG.

Usage:
  go run ./cmd/rinkreport [command]

Examples:
  go run ./cmd/rinkreport generate PIT
  go run ./cmd/rinkreport serve
  go run ./cmd/rinkreport teams`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
