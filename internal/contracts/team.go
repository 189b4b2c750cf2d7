package contracts

// TeamRecord summarizes a team's season record from the standings.
type TeamRecord struct {
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	OTLosses    int `json:"ot_losses"`
	GamesPlayed int `json:"games_played"`

	HomeWins   int `json:"home_wins"`
	HomeLosses int `json:"home_losses"`
	AwayWins   int `json:"away_wins"`
	AwayLosses int `json:"away_losses"`
}

// StreakKind identifies the direction of a current run of results.
type StreakKind string

const (
	StreakNone StreakKind = "none"
	StreakWin  StreakKind = "win"
	StreakLoss StreakKind = "loss"
)

// Streak is the team's current run of consecutive results.
type Streak struct {
	Kind  StreakKind `json:"kind"`
	Count int        `json:"count"`
}

// CurrentStreak walks games from most recent backwards until the run breaks.
// Games must be in ascending chronological order.
func CurrentStreak(games []GameRecord) Streak {
	if len(games) == 0 {
		return Streak{Kind: StreakNone}
	}

	kind := StreakLoss
	if games[len(games)-1].Won() {
		kind = StreakWin
	}

	count := 0
	for i := len(games) - 1; i >= 0; i-- {
		won := games[i].Won()
		if (kind == StreakWin) != won {
			break
		}
		count++
	}

	return Streak{Kind: kind, Count: count}
}
