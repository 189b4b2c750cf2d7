package nhl

import "errors"

var (
	// ErrSourceUnavailable marks transport failures and server errors.
	// Retryable by the caller.
	ErrSourceUnavailable = errors.New("nhl api unavailable")

	// ErrSourceMalformed marks responses whose shape we do not recognize.
	// Not retryable; a data defect upstream.
	ErrSourceMalformed = errors.New("nhl api response malformed")

	// ErrUnknownTeam marks a team abbreviation outside the league table.
	ErrUnknownTeam = errors.New("unknown team abbreviation")
)
