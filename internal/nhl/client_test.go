package nhl

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldrink/rinkreport/pkg/config"
	"github.com/coldrink/rinkreport/pkg/httputil"
	"github.com/coldrink/rinkreport/pkg/logger"
)

const scheduleJSON = `{
  "games": [
    {
      "id": 2025020500,
      "gameDate": "2025-11-09",
      "gameState": "OFF",
      "homeTeam": {"abbrev": "EDM"},
      "awayTeam": {"abbrev": "PIT"}
    },
    {
      "id": 2025020400,
      "gameDate": "2025-11-02",
      "gameState": "FINAL",
      "homeTeam": {"abbrev": "PIT"},
      "awayTeam": {"abbrev": "FLA"}
    },
    {
      "id": 2025020900,
      "gameDate": "2025-12-20",
      "gameState": "FUT",
      "homeTeam": {"abbrev": "PIT"},
      "awayTeam": {"abbrev": "BOS"}
    }
  ]
}`

func boxscoreJSON(awayScore, homeScore int) string {
	return fmt.Sprintf(`{
  "awayTeam": {"id": 5, "abbrev": "PIT", "score": %d, "sog": 31},
  "homeTeam": {"id": 22, "abbrev": "EDM", "score": %d, "sog": 27},
  "summary": {
    "teamGameStats": [
      {"category": "powerPlay", "awayValue": "1/4", "homeValue": "0/3"},
      {"category": "faceoffWinningPctg", "awayValue": 0.52, "homeValue": 0.48},
      {"category": "hits", "awayValue": 20, "homeValue": 25}
    ]
  }
}`, awayScore, homeScore)
}

const playByPlayJSON = `{
  "plays": [
    {"typeDescKey": "faceoff", "details": {}},
    {"typeDescKey": "shot-on-goal", "details": {"eventOwnerTeamId": 5}},
    {"typeDescKey": "missed-shot", "details": {"eventOwnerTeamId": 5}},
    {"typeDescKey": "blocked-shot", "details": {"eventOwnerTeamId": 22}},
    {"typeDescKey": "goal", "details": {"eventOwnerTeamId": 5}},
    {"typeDescKey": "faceoff", "details": {}},
    {"typeDescKey": "hit", "details": {"eventOwnerTeamId": 22}},
    {"typeDescKey": "shot-on-goal", "details": {"eventOwnerTeamId": 22}}
  ]
}`

const standingsJSON = `{
  "standings": [
    {
      "teamAbbrev": {"default": "PIT"},
      "wins": 12, "losses": 6, "otLosses": 2, "gamesPlayed": 20,
      "homeWins": 7, "homeLosses": 2, "homeOtLosses": 1,
      "roadWins": 5, "roadLosses": 4, "roadOtLosses": 1
    }
  ]
}`

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Env:    "development",
		Season: "20252026",
		NHL: config.NHLConfig{
			BaseURL:    srv.URL,
			Timeout:    5 * time.Second,
			RatePerSec: 1000,
			RateBurst:  1000,
			MaxRetries: 0,
			RetryDelay: time.Millisecond,
		},
	}
	log := logger.NewNop()
	return NewClient(cfg, httputil.New(cfg, log).DisableRetry(), log), srv
}

func apiHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/club-schedule-season/PIT/20252026", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, scheduleJSON)
	})
	mux.HandleFunc("/gamecenter/2025020400/boxscore", func(w http.ResponseWriter, r *http.Request) {
		// PIT at home: flip sides so PIT is homeTeam.
		fmt.Fprint(w, `{
  "awayTeam": {"id": 13, "abbrev": "FLA", "score": 2, "sog": 27},
  "homeTeam": {"id": 5, "abbrev": "PIT", "score": 4, "sog": 31},
  "summary": {"teamGameStats": [
    {"category": "powerPlay", "awayValue": "0/2", "homeValue": "2/5"},
    {"category": "faceoffWinningPctg", "awayValue": 0.45, "homeValue": 0.55}
  ]}
}`)
	})
	mux.HandleFunc("/gamecenter/2025020400/play-by-play", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, playByPlayJSON)
	})
	mux.HandleFunc("/gamecenter/2025020500/boxscore", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, boxscoreJSON(3, 2))
	})
	mux.HandleFunc("/gamecenter/2025020500/play-by-play", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, playByPlayJSON)
	})
	mux.HandleFunc("/standings/now", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, standingsJSON)
	})
	return mux
}

func TestSeasonGames(t *testing.T) {
	client, _ := testClient(t, apiHandler())

	games, err := client.SeasonGames(context.Background(), "pit")
	require.NoError(t, err)
	require.Len(t, games, 2, "future game must be skipped")

	// Sorted ascending by date.
	assert.True(t, games[0].Date.Before(games[1].Date))

	first := games[0]
	assert.Equal(t, int64(2025020400), first.GameID)
	assert.Equal(t, "FLA", first.Opponent)
	assert.True(t, first.Home)
	assert.Equal(t, 4, first.GoalsFor)
	assert.Equal(t, 2, first.GoalsAgainst)
	assert.Equal(t, 31, first.ShotsFor)
	assert.Equal(t, 2, first.PowerPlayGoals)
	assert.Equal(t, 5, first.PowerPlayChances)
	assert.Equal(t, 2, first.FaceoffTotal)
	assert.Equal(t, 1, first.FaceoffWins) // round(0.55 * 2)

	second := games[1]
	assert.Equal(t, "EDM", second.Opponent)
	assert.False(t, second.Home)
	assert.Equal(t, 3, second.GoalsFor)
	// PIT attempts from play-by-play: shot-on-goal + missed-shot + goal.
	assert.Equal(t, 3, second.AttemptsFor)
	assert.Equal(t, 2, second.AttemptsAgainst)
}

func TestSeasonGames_UnknownTeam(t *testing.T) {
	client, _ := testClient(t, apiHandler())

	_, err := client.SeasonGames(context.Background(), "ZZZ")
	assert.ErrorIs(t, err, ErrUnknownTeam)
}

func TestSeasonGames_ServerError(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.SeasonGames(context.Background(), "PIT")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestSeasonGames_MalformedBody(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	}))

	_, err := client.SeasonGames(context.Background(), "PIT")
	assert.ErrorIs(t, err, ErrSourceMalformed)
}

func TestSeasonGames_MissingScoreIsMalformed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/club-schedule-season/PIT/20252026", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"games":[{"id": 1, "gameDate": "2025-11-02", "gameState": "FINAL",
      "homeTeam": {"abbrev": "PIT"}, "awayTeam": {"abbrev": "FLA"}}]}`)
	})
	mux.HandleFunc("/gamecenter/1/boxscore", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"awayTeam": {"id": 13, "abbrev": "FLA"}, "homeTeam": {"id": 5, "abbrev": "PIT"}}`)
	})
	mux.HandleFunc("/gamecenter/1/play-by-play", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"plays": []}`)
	})
	client, _ := testClient(t, mux)

	_, err := client.SeasonGames(context.Background(), "PIT")
	assert.ErrorIs(t, err, ErrSourceMalformed)
}

func TestTeamRecord(t *testing.T) {
	client, _ := testClient(t, apiHandler())

	record, err := client.TeamRecord(context.Background(), "PIT")
	require.NoError(t, err)

	assert.Equal(t, 12, record.Wins)
	assert.Equal(t, 6, record.Losses)
	assert.Equal(t, 2, record.OTLosses)
	assert.Equal(t, 20, record.GamesPlayed)
	assert.Equal(t, 7, record.HomeWins)
	assert.Equal(t, 3, record.HomeLosses) // regulation + OT
	assert.Equal(t, 5, record.AwayWins)
}

func TestTeamRecord_NotInStandings(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"standings": []}`)
	}))

	_, err := client.TeamRecord(context.Background(), "PIT")
	assert.ErrorIs(t, err, ErrSourceMalformed)
}

func TestTeamTables(t *testing.T) {
	id, ok := TeamID("pit")
	require.True(t, ok)
	assert.Equal(t, 5, id)

	assert.Equal(t, "Pittsburgh Penguins", TeamName("PIT"))
	assert.Equal(t, "XXX", TeamName("xxx"))

	r, g, b := TeamColor("PIT")
	assert.Equal(t, [3]int{255, 184, 28}, [3]int{r, g, b})
	r, g, b = TeamColor("???")
	assert.Equal(t, [3]int{127, 127, 127}, [3]int{r, g, b})

	teams := KnownTeams()
	assert.Contains(t, teams, "PIT")
	assert.Contains(t, teams, "UTA")
	assert.Len(t, teams, 32)
}
