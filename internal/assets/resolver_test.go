package assets

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldrink/rinkreport/internal/nhl"
	"github.com/coldrink/rinkreport/pkg/config"
	"github.com/coldrink/rinkreport/pkg/httputil"
	"github.com/coldrink/rinkreport/pkg/logger"
)

const teamPageHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Pittsburgh Penguins</title>
  <meta property="og:image" content="%s/logos/pit.png" />
</head>
<body>
  <header><img class="team-logo" src="%s/logos/pit-small.png" /></header>
</body>
</html>`

const fallbackPageHTML = `<html><body>
  <img class="team-logo" src="https://cdn.example.com/pit.svg" />
</body></html>`

func testResolver(t *testing.T, handler http.Handler) (*Resolver, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Env: "development",
		NHL: config.NHLConfig{
			Timeout:    5 * time.Second,
			RatePerSec: 1000,
			RateBurst:  1000,
			RetryDelay: time.Millisecond,
		},
	}
	log := logger.NewNop()
	return NewResolver(httputil.New(cfg, log).DisableRetry(), log, srv.URL), srv
}

func TestLogoRef(t *testing.T) {
	assert.Equal(t, "logo:PIT", LogoRef("PIT"))
}

func TestLogoURLFromMetaTag(t *testing.T) {
	var srv *httptest.Server
	pages := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/pit", func(w http.ResponseWriter, r *http.Request) {
		pages++
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(fmt.Sprintf(teamPageHTML, srv.URL, srv.URL)))
	})
	resolver, s := testResolver(t, mux)
	srv = s

	url, err := resolver.LogoURL(context.Background(), "pit")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/logos/pit.png", url)

	// Second lookup is served from the memo, not the network.
	_, err = resolver.LogoURL(context.Background(), "PIT")
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
}

func TestLogoURLFallsBackToHeaderImage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/pit", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fallbackPageHTML))
	})
	resolver, _ := testResolver(t, mux)

	url, err := resolver.LogoURL(context.Background(), "PIT")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/pit.svg", url)
}

func TestLogoURLUnknownTeam(t *testing.T) {
	resolver, _ := testResolver(t, http.NewServeMux())
	_, err := resolver.LogoURL(context.Background(), "XXX")
	assert.ErrorIs(t, err, nhl.ErrUnknownTeam)
}

func TestLogoURLPageWithoutLogo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/pit", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>nothing here</body></html>"))
	})
	resolver, _ := testResolver(t, mux)

	_, err := resolver.LogoURL(context.Background(), "PIT")
	assert.ErrorIs(t, err, nhl.ErrSourceMalformed)
}

func TestLogoURLServerDown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/pit", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	resolver, _ := testResolver(t, mux)

	_, err := resolver.LogoURL(context.Background(), "PIT")
	assert.ErrorIs(t, err, nhl.ErrSourceUnavailable)
}

func TestLogoFetchesAndCachesBytes(t *testing.T) {
	var srv *httptest.Server
	fetches := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/pit", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fmt.Sprintf(teamPageHTML, srv.URL, srv.URL)))
	})
	mux.HandleFunc("/logos/pit.png", func(w http.ResponseWriter, r *http.Request) {
		fetches++
		w.Write([]byte("png-bytes"))
	})
	resolver, s := testResolver(t, mux)
	srv = s

	data, err := resolver.Logo(context.Background(), "PIT")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	_, err = resolver.Logo(context.Background(), "PIT")
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
}
