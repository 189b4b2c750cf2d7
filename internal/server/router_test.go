package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldrink/rinkreport/internal/server/handlers"
	"github.com/coldrink/rinkreport/pkg/logger"
)

type okRenderer struct{}

func (okRenderer) Render(ctx context.Context, team, format string, w io.Writer) error {
	_, err := io.WriteString(w, "report")
	return err
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)
	h := handlers.NewReportHandler(okRenderer{}, m, logger.NewNop())
	return NewRouter(h, registry, logger.NewNop())
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestMetricsEndpointExposesReportCounters(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/reports/PIT.pdf", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rinkreport_reports_served_total")
	assert.Contains(t, rec.Body.String(), `team="PIT"`)
}

func TestUnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest("GET", "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
