// Package handlers implements the report HTTP endpoints.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/coldrink/rinkreport/internal/metrics"
	"github.com/coldrink/rinkreport/internal/nhl"
	"github.com/coldrink/rinkreport/pkg/logger"
)

// Renderer produces one report in one format. The generator satisfies
// this.
type Renderer interface {
	Render(ctx context.Context, team, format string, w io.Writer) error
}

// Recorder receives per-request outcome metrics.
type Recorder interface {
	ObserveReport(team, format, status string, duration time.Duration)
}

var contentTypes = map[string]string{
	"pdf": "application/pdf",
	"png": "image/png",
}

// ReportHandler serves generated reports.
type ReportHandler struct {
	renderer Renderer
	recorder Recorder
	logger   *logger.Logger
}

func NewReportHandler(renderer Renderer, recorder Recorder, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		renderer: renderer,
		recorder: recorder,
		logger:   log,
	}
}

// GetReport renders a report on demand.
// GET /v1/reports/{team}.{format}
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	team := strings.ToUpper(vars["team"])
	format := strings.ToLower(vars["format"])
	start := time.Now()

	contentType, ok := contentTypes[format]
	if !ok {
		h.record(team, format, "bad_format", start)
		writeError(w, http.StatusNotFound, "unsupported format: "+format)
		return
	}
	if !nhl.ValidTeam(team) {
		h.record(team, format, "unknown_team", start)
		writeError(w, http.StatusNotFound, "unknown team: "+team)
		return
	}

	// Render into memory first so a mid-build failure still gets a
	// proper status code.
	var buf bytes.Buffer
	if err := h.renderer.Render(r.Context(), team, format, &buf); err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"team":   team,
			"format": format,
		}).Error("report generation failed")

		status, msg := classify(err)
		h.record(team, format, msg, start)
		writeError(w, status, msg)
		return
	}

	h.record(team, format, "ok", start)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `inline; filename="`+team+"."+format+`"`)
	w.Write(buf.Bytes())
}

// ListTeams returns the teams reports can be generated for.
// GET /v1/teams
func (h *ReportHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	type teamInfo struct {
		Abbrev string `json:"abbrev"`
		Name   string `json:"name"`
	}

	teams := nhl.KnownTeams()
	out := make([]teamInfo, 0, len(teams))
	for _, abbrev := range teams {
		out = append(out, teamInfo{Abbrev: abbrev, Name: nhl.TeamName(abbrev)})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"teams": out})
}

func (h *ReportHandler) record(team, format, status string, start time.Time) {
	if h.recorder != nil {
		h.recorder.ObserveReport(team, format, status, time.Since(start))
	}
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, nhl.ErrUnknownTeam):
		return http.StatusNotFound, "unknown_team"
	case errors.Is(err, nhl.ErrSourceUnavailable):
		return http.StatusBadGateway, "source_unavailable"
	case errors.Is(err, nhl.ErrSourceMalformed):
		return http.StatusBadGateway, "source_malformed"
	case errors.Is(err, metrics.ErrDataInsufficient):
		return http.StatusConflict, "data_insufficient"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
