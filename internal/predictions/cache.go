// Package predictions loads the win-probability snapshot produced by the
// modeling pipeline and serves read-only lookups for report assembly.
package predictions

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/coldrink/rinkreport/internal/contracts"
)

// Cache is an immutable keyed store of precomputed predictions. It is
// loaded once per process and safe for concurrent readers; lookups never
// fail, absence is an expected state.
type Cache struct {
	byKey   map[key]contracts.Prediction
	entries int
}

type key struct {
	team     string
	opponent string
	date     string // YYYY-MM-DD
}

// snapshotFile mirrors the on-disk format: a top-level "predictions"
// array with per-game entries.
type snapshotFile struct {
	Predictions []snapshotEntry `json:"predictions"`
}

type snapshotEntry struct {
	GameID       int64   `json:"game_id"`
	GameDate     string  `json:"game_date"`
	HomeTeam     string  `json:"home_team"`
	AwayTeam     string  `json:"away_team"`
	HomeWinProb  float64 `json:"predicted_home_win_prob"`
	AwayWinProb  float64 `json:"predicted_away_win_prob"`
	ActualWinner string  `json:"actual_winner"`
}

// LoadFile reads a snapshot file from disk and builds the cache.
func LoadFile(path string) (*Cache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read predictions snapshot: %w", err)
	}
	return Load(data)
}

// Load builds the cache from raw snapshot JSON.
func Load(data []byte) (*Cache, error) {
	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse predictions snapshot: %w", err)
	}

	c := &Cache{byKey: make(map[key]contracts.Prediction, 2*len(file.Predictions))}
	for _, e := range file.Predictions {
		date, err := time.Parse("2006-01-02", e.GameDate)
		if err != nil {
			// Entries without a parseable date cannot be keyed; skip them
			// rather than failing the whole snapshot.
			continue
		}

		p := contracts.Prediction{
			GameID:       e.GameID,
			Date:         date,
			HomeTeam:     strings.ToUpper(e.HomeTeam),
			AwayTeam:     strings.ToUpper(e.AwayTeam),
			HomeWinProb:  e.HomeWinProb,
			AwayWinProb:  e.AwayWinProb,
			ActualWinner: strings.ToUpper(e.ActualWinner),
		}

		// Index from both sides so either participant resolves the game.
		c.byKey[key{p.HomeTeam, p.AwayTeam, e.GameDate}] = p
		c.byKey[key{p.AwayTeam, p.HomeTeam, e.GameDate}] = p
		c.entries++
	}

	return c, nil
}

// Empty returns a cache with no predictions. Lookups all miss.
func Empty() *Cache {
	return &Cache{byKey: map[key]contracts.Prediction{}}
}

// Lookup returns the prediction for (team, opponent, date). The boolean
// is false when no prediction exists; that is not an error.
func (c *Cache) Lookup(team, opponent string, date time.Time) (contracts.Prediction, bool) {
	p, ok := c.byKey[key{
		team:     strings.ToUpper(team),
		opponent: strings.ToUpper(opponent),
		date:     date.Format("2006-01-02"),
	}]
	return p, ok
}

// Len returns the number of snapshot entries loaded. Counted at load
// time; deriving it from the index undercounts when two entries share
// a key (same pairing on the same date).
func (c *Cache) Len() int {
	return c.entries
}

// Teams lists every team abbreviation present in the snapshot, sorted.
func (c *Cache) Teams() []string {
	seen := map[string]struct{}{}
	for k := range c.byKey {
		seen[k.team] = struct{}{}
	}
	teams := make([]string, 0, len(seen))
	for t := range seen {
		teams = append(teams, t)
	}
	sort.Strings(teams)
	return teams
}
