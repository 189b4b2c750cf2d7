package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coldrink/rinkreport/internal/nhl"
)

// teamsCmd represents the teams command
var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List supported teams",
	Long: `Lists the team abbreviations reports can be generated for.

Example:
  go run ./cmd/rinkreport teams`,
	RunE: runTeams,
}

func init() {
	rootCmd.AddCommand(teamsCmd)
}

func runTeams(cmd *cobra.Command, args []string) error {
	for _, abbrev := range nhl.KnownTeams() {
		fmt.Printf("%-4s %s\n", abbrev, nhl.TeamName(abbrev))
	}
	return nil
}
