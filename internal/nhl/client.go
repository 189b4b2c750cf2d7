// Package nhl wraps the NHL web API. It is the only place the pipeline
// talks to the league's endpoints.
package nhl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/coldrink/rinkreport/internal/contracts"
	"github.com/coldrink/rinkreport/pkg/config"
	"github.com/coldrink/rinkreport/pkg/httputil"
	"github.com/coldrink/rinkreport/pkg/logger"
)

// Client fetches team season data from api-web.nhle.com.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	season     string
}

// NewClient creates a new NHL API client.
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    strings.TrimRight(cfg.NHL.BaseURL, "/"),
		season:     cfg.Season,
	}
}

// getJSON fetches a path and decodes the response body into v.
func (c *Client) getJSON(ctx context.Context, path string, v interface{}) error {
	url := c.baseURL + path

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrSourceUnavailable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: GET %s: status %d", ErrSourceUnavailable, path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: GET %s: read body: %v", ErrSourceUnavailable, path, err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrSourceMalformed, path, err)
	}
	return nil
}

// SeasonGames returns every completed game of the team's season, sorted
// ascending by date.
func (c *Client) SeasonGames(ctx context.Context, team string) ([]contracts.GameRecord, error) {
	team = strings.ToUpper(team)
	teamID, ok := TeamID(team)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTeam, team)
	}

	var schedule scheduleResponse
	path := fmt.Sprintf("/club-schedule-season/%s/%s", team, c.season)
	if err := c.getJSON(ctx, path, &schedule); err != nil {
		return nil, err
	}

	records := make([]contracts.GameRecord, 0, len(schedule.Games))
	for _, sg := range schedule.Games {
		if !finalStates[sg.GameState] {
			continue
		}

		record, err := c.fetchGame(ctx, team, teamID, sg)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", sg.ID, err)
		}
		records = append(records, *record)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Date.Equal(records[j].Date) {
			return records[i].GameID < records[j].GameID
		}
		return records[i].Date.Before(records[j].Date)
	})

	c.logger.WithFields(map[string]interface{}{
		"team":  team,
		"games": len(records),
	}).Info("Fetched season games")

	return records, nil
}

// fetchGame combines a game's boxscore and play-by-play into one record.
func (c *Client) fetchGame(ctx context.Context, team string, teamID int, sg scheduleGame) (*contracts.GameRecord, error) {
	date, err := time.Parse("2006-01-02", sg.GameDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad game date %q", ErrSourceMalformed, sg.GameDate)
	}

	var box boxscoreResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/gamecenter/%d/boxscore", sg.ID), &box); err != nil {
		return nil, err
	}

	var pbp playByPlayResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/gamecenter/%d/play-by-play", sg.ID), &pbp); err != nil {
		return nil, err
	}

	home := strings.EqualFold(sg.HomeTeam.Abbrev, team)
	ours, theirs := box.AwayTeam, box.HomeTeam
	if home {
		ours, theirs = box.HomeTeam, box.AwayTeam
	}

	if ours.Score == nil || theirs.Score == nil || ours.SOG == nil || theirs.SOG == nil {
		return nil, fmt.Errorf("%w: boxscore missing score or sog", ErrSourceMalformed)
	}

	opponent := sg.HomeTeam.Abbrev
	if home {
		opponent = sg.AwayTeam.Abbrev
	}

	record := &contracts.GameRecord{
		GameID:       sg.ID,
		Date:         date,
		Opponent:     strings.ToUpper(opponent),
		Home:         home,
		GoalsFor:     *ours.Score,
		GoalsAgainst: *theirs.Score,
		ShotsFor:     *ours.SOG,
		ShotsAgainst: *theirs.SOG,
	}

	attemptsFor, attemptsAgainst, faceoffs := countPlays(pbp.Plays, teamID)
	record.AttemptsFor = attemptsFor
	record.AttemptsAgainst = attemptsAgainst

	if err := applyTeamGameStats(record, box.Summary.TeamGameStats, home, faceoffs); err != nil {
		return nil, err
	}

	return record, nil
}

// countPlays tallies shot attempts per side and the number of faceoffs
// from the play-by-play feed.
func countPlays(plays []play, teamID int) (attemptsFor, attemptsAgainst, faceoffs int) {
	for _, p := range plays {
		switch {
		case attemptEvents[p.TypeDescKey]:
			if p.Details.EventOwnerTeamID == teamID {
				attemptsFor++
			} else {
				attemptsAgainst++
			}
		case p.TypeDescKey == "faceoff":
			faceoffs++
		}
	}
	return attemptsFor, attemptsAgainst, faceoffs
}

// applyTeamGameStats reads the boxscore summary table (power play
// conversion, faceoff percentage) into the record.
func applyTeamGameStats(record *contracts.GameRecord, stats []teamGameStat, home bool, faceoffs int) error {
	for _, stat := range stats {
		value := stat.AwayValue
		if home {
			value = stat.HomeValue
		}

		switch stat.Category {
		case "powerPlay":
			goals, chances, err := parseConversion(value)
			if err != nil {
				return fmt.Errorf("%w: powerPlay stat: %v", ErrSourceMalformed, err)
			}
			record.PowerPlayGoals = goals
			record.PowerPlayChances = chances

		case "faceoffWinningPctg":
			pct, err := parseNumber(value)
			if err != nil {
				return fmt.Errorf("%w: faceoffWinningPctg stat: %v", ErrSourceMalformed, err)
			}
			if pct > 1 {
				pct /= 100
			}
			record.FaceoffTotal = faceoffs
			record.FaceoffWins = int(math.Round(pct * float64(faceoffs)))
		}
	}
	return nil
}

// parseConversion parses a "goals/chances" string like "2/5".
func parseConversion(v interface{}) (goals, chances int, err error) {
	s, ok := v.(string)
	if !ok {
		return 0, 0, fmt.Errorf("expected string, got %T", v)
	}
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected G/C form, got %q", s)
	}
	goals, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	chances, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return goals, chances, nil
}

// parseNumber accepts JSON numbers and numeric strings.
func parseNumber(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

// TeamRecord returns the team's current record from the standings feed.
func (c *Client) TeamRecord(ctx context.Context, team string) (*contracts.TeamRecord, error) {
	team = strings.ToUpper(team)
	if !ValidTeam(team) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTeam, team)
	}

	var standings standingsResponse
	if err := c.getJSON(ctx, "/standings/now", &standings); err != nil {
		return nil, err
	}

	for _, st := range standings.Standings {
		if !strings.EqualFold(st.TeamAbbrev.Default, team) {
			continue
		}
		return &contracts.TeamRecord{
			Wins:        st.Wins,
			Losses:      st.Losses,
			OTLosses:    st.OTLosses,
			GamesPlayed: st.GamesPlayed,
			HomeWins:    st.HomeWins,
			HomeLosses:  st.HomeLosses + st.HomeOTLosses,
			AwayWins:    st.RoadWins,
			AwayLosses:  st.RoadLosses + st.RoadOTLosses,
		}, nil
	}

	return nil, fmt.Errorf("%w: team %s not in standings", ErrSourceMalformed, team)
}
