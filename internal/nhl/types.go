package nhl

// Wire types for the api-web.nhle.com/v1 endpoints we consume. Only the
// fields the pipeline reads are mapped.

type scheduleResponse struct {
	Games []scheduleGame `json:"games"`
}

type scheduleGame struct {
	ID        int64        `json:"id"`
	GameDate  string       `json:"gameDate"` // YYYY-MM-DD
	GameState string       `json:"gameState"`
	HomeTeam  scheduleTeam `json:"homeTeam"`
	AwayTeam  scheduleTeam `json:"awayTeam"`
}

type scheduleTeam struct {
	Abbrev string `json:"abbrev"`
}

// finalStates are the game states of completed games.
var finalStates = map[string]bool{"FINAL": true, "OFF": true}

type boxscoreResponse struct {
	AwayTeam boxscoreTeam    `json:"awayTeam"`
	HomeTeam boxscoreTeam    `json:"homeTeam"`
	Summary  boxscoreSummary `json:"summary"`
}

type boxscoreTeam struct {
	ID     int    `json:"id"`
	Abbrev string `json:"abbrev"`
	Score  *int   `json:"score"`
	SOG    *int   `json:"sog"`
}

type boxscoreSummary struct {
	TeamGameStats []teamGameStat `json:"teamGameStats"`
}

// teamGameStat values are heterogeneous on the wire: counts arrive as
// numbers, power play conversion as "G/C", percentages as floats.
type teamGameStat struct {
	Category  string      `json:"category"`
	AwayValue interface{} `json:"awayValue"`
	HomeValue interface{} `json:"homeValue"`
}

type playByPlayResponse struct {
	Plays []play `json:"plays"`
}

type play struct {
	TypeDescKey string      `json:"typeDescKey"`
	Details     playDetails `json:"details"`
}

type playDetails struct {
	EventOwnerTeamID int `json:"eventOwnerTeamId"`
}

// attemptEvents are the play types that count as shot attempts.
var attemptEvents = map[string]bool{
	"goal":         true,
	"shot-on-goal": true,
	"missed-shot":  true,
	"blocked-shot": true,
}

type standingsResponse struct {
	Standings []standingsTeam `json:"standings"`
}

type standingsTeam struct {
	TeamAbbrev   defaultName `json:"teamAbbrev"`
	Wins         int         `json:"wins"`
	Losses       int         `json:"losses"`
	OTLosses     int         `json:"otLosses"`
	GamesPlayed  int         `json:"gamesPlayed"`
	HomeWins     int         `json:"homeWins"`
	HomeLosses   int         `json:"homeLosses"`
	HomeOTLosses int         `json:"homeOtLosses"`
	RoadWins     int         `json:"roadWins"`
	RoadLosses   int         `json:"roadLosses"`
	RoadOTLosses int         `json:"roadOtLosses"`
}

type defaultName struct {
	Default string `json:"default"`
}
