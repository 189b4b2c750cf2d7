package nhl

import (
	"sort"
	"strings"
)

// Team identity tables for the league. Abbreviations are the stable keys
// used throughout the pipeline.

var teamIDs = map[string]int{
	"NJD": 1, "NYI": 2, "NYR": 3, "PHI": 4, "PIT": 5, "BOS": 6,
	"BUF": 7, "MTL": 8, "OTT": 9, "TOR": 10, "CAR": 12, "FLA": 13,
	"TBL": 14, "WSH": 15, "CHI": 16, "DET": 17, "NSH": 18, "STL": 19,
	"CGY": 20, "COL": 21, "EDM": 22, "VAN": 23, "ANA": 24, "DAL": 25,
	"LAK": 26, "SJS": 28, "CBJ": 29, "MIN": 30, "WPG": 52, "VGK": 54,
	"SEA": 55, "UTA": 59,
}

var teamNames = map[string]string{
	"ANA": "Anaheim Ducks", "BOS": "Boston Bruins", "BUF": "Buffalo Sabres",
	"CAR": "Carolina Hurricanes", "CBJ": "Columbus Blue Jackets", "CGY": "Calgary Flames",
	"CHI": "Chicago Blackhawks", "COL": "Colorado Avalanche", "DAL": "Dallas Stars",
	"DET": "Detroit Red Wings", "EDM": "Edmonton Oilers", "FLA": "Florida Panthers",
	"LAK": "Los Angeles Kings", "MIN": "Minnesota Wild", "MTL": "Montreal Canadiens",
	"NJD": "New Jersey Devils", "NSH": "Nashville Predators", "NYI": "New York Islanders",
	"NYR": "New York Rangers", "OTT": "Ottawa Senators", "PHI": "Philadelphia Flyers",
	"PIT": "Pittsburgh Penguins", "SEA": "Seattle Kraken", "SJS": "San Jose Sharks",
	"STL": "St. Louis Blues", "TBL": "Tampa Bay Lightning", "TOR": "Toronto Maple Leafs",
	"UTA": "Utah Hockey Club", "VAN": "Vancouver Canucks", "VGK": "Vegas Golden Knights",
	"WPG": "Winnipeg Jets", "WSH": "Washington Capitals",
}

// Primary team colors (RGB), used by the exporters for the header accent.
var teamColors = map[string][3]int{
	"TBL": {0, 32, 91}, "NSH": {255, 184, 28}, "EDM": {0, 32, 91},
	"FLA": {200, 16, 46}, "COL": {111, 38, 61}, "DAL": {0, 132, 61},
	"BOS": {255, 184, 28}, "TOR": {0, 32, 91}, "MTL": {166, 25, 46},
	"OTT": {200, 16, 46}, "BUF": {0, 48, 135}, "DET": {200, 16, 46},
	"CAR": {200, 16, 46}, "WSH": {200, 16, 46}, "PIT": {255, 184, 28},
	"NYR": {0, 50, 160}, "NYI": {0, 48, 135}, "NJD": {200, 16, 46},
	"PHI": {207, 69, 32}, "CBJ": {4, 30, 66}, "STL": {0, 114, 206},
	"MIN": {21, 71, 52}, "WPG": {4, 30, 66}, "VGK": {185, 151, 91},
	"SJS": {0, 98, 113}, "LAK": {1, 1, 1}, "ANA": {207, 69, 32},
	"CGY": {200, 16, 46}, "VAN": {0, 132, 61}, "SEA": {200, 16, 46},
	"UTA": {1, 1, 1}, "CHI": {207, 10, 44},
}

// TeamID resolves an abbreviation to the franchise id.
func TeamID(abbrev string) (int, bool) {
	id, ok := teamIDs[strings.ToUpper(abbrev)]
	return id, ok
}

// TeamName returns the full team name, or the abbreviation itself when
// the team is not in the table.
func TeamName(abbrev string) string {
	if name, ok := teamNames[strings.ToUpper(abbrev)]; ok {
		return name
	}
	return strings.ToUpper(abbrev)
}

// TeamColor returns the team's primary color as RGB, defaulting to gray.
func TeamColor(abbrev string) (r, g, b int) {
	if c, ok := teamColors[strings.ToUpper(abbrev)]; ok {
		return c[0], c[1], c[2]
	}
	return 127, 127, 127
}

// KnownTeams lists every abbreviation in the table, sorted.
func KnownTeams() []string {
	teams := make([]string, 0, len(teamIDs))
	for abbrev := range teamIDs {
		teams = append(teams, abbrev)
	}
	sort.Strings(teams)
	return teams
}

// ValidTeam reports whether the abbreviation is in the league table.
func ValidTeam(abbrev string) bool {
	_, ok := teamIDs[strings.ToUpper(abbrev)]
	return ok
}
