// Package assets resolves and caches team artwork for report pages.
package assets

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/coldrink/rinkreport/internal/nhl"
	"github.com/coldrink/rinkreport/pkg/httputil"
	"github.com/coldrink/rinkreport/pkg/logger"
)

// LogoRefPrefix marks an image reference a page region uses for a team
// logo, e.g. "logo:PIT".
const LogoRefPrefix = "logo:"

// LogoRef builds the image reference for a team's logo.
func LogoRef(team string) string {
	return LogoRefPrefix + team
}

// Resolver discovers team logo URLs from the public team pages and
// fetches the artwork, memoizing both per process.
type Resolver struct {
	client  *httputil.Client
	logger  *logger.Logger
	baseURL string

	mu    sync.Mutex
	urls  map[string]string
	logos map[string][]byte
}

// NewResolver creates a logo resolver rooted at the given team page
// base URL.
func NewResolver(client *httputil.Client, log *logger.Logger, baseURL string) *Resolver {
	return &Resolver{
		client:  client,
		logger:  log,
		baseURL: strings.TrimRight(baseURL, "/"),
		urls:    make(map[string]string),
		logos:   make(map[string][]byte),
	}
}

// LogoURL resolves the logo artwork URL for a team by scraping its
// public team page. The page advertises the logo twice, as an
// og:image meta tag and as the header logo img; the meta tag wins.
func (r *Resolver) LogoURL(ctx context.Context, team string) (string, error) {
	team = strings.ToUpper(team)
	if !nhl.ValidTeam(team) {
		return "", fmt.Errorf("%w: %s", nhl.ErrUnknownTeam, team)
	}

	r.mu.Lock()
	if url, ok := r.urls[team]; ok {
		r.mu.Unlock()
		return url, nil
	}
	r.mu.Unlock()

	pageURL := fmt.Sprintf("%s/%s", r.baseURL, strings.ToLower(team))
	resp, err := r.client.Get(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("%w: team page %s: %v", nhl.ErrSourceUnavailable, pageURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("%w: team page %s: status %d", nhl.ErrSourceUnavailable, pageURL, resp.StatusCode)
	}

	url, err := extractLogoURL(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: team page %s: %v", nhl.ErrSourceMalformed, pageURL, err)
	}

	r.logger.WithFields(map[string]interface{}{
		"team": team,
		"url":  url,
	}).Debug("resolved team logo")

	r.mu.Lock()
	r.urls[team] = url
	r.mu.Unlock()
	return url, nil
}

// Logo fetches the logo bytes for a team, resolving the URL first if
// needed.
func (r *Resolver) Logo(ctx context.Context, team string) ([]byte, error) {
	team = strings.ToUpper(team)

	r.mu.Lock()
	if data, ok := r.logos[team]; ok {
		r.mu.Unlock()
		return data, nil
	}
	r.mu.Unlock()

	url, err := r.LogoURL(ctx, team)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: logo %s: %v", nhl.ErrSourceUnavailable, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("%w: logo %s: status %d", nhl.ErrSourceUnavailable, url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: logo %s: %v", nhl.ErrSourceUnavailable, url, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: logo %s: empty body", nhl.ErrSourceMalformed, url)
	}

	r.mu.Lock()
	r.logos[team] = data
	r.mu.Unlock()
	return data, nil
}

func extractLogoURL(body io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", err
	}

	if url, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok && url != "" {
		return url, nil
	}
	if url, ok := doc.Find("img.team-logo").First().Attr("src"); ok && url != "" {
		return url, nil
	}
	return "", fmt.Errorf("no logo reference in page")
}
