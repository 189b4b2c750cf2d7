package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coldrink/rinkreport/internal/contracts"
	"github.com/coldrink/rinkreport/internal/nhl"
	"github.com/coldrink/rinkreport/pkg/logger"
)

// Source is the part of the NHL client the cache sits in front of.
type Source interface {
	SeasonGames(ctx context.Context, team string) ([]contracts.GameRecord, error)
	TeamRecord(ctx context.Context, team string) (*contracts.TeamRecord, error)
}

// CachedSource decorates a Source with the day cache: fresh hits skip
// the network, and when the upstream is unavailable a stale snapshot is
// served instead of failing the report.
type CachedSource struct {
	src    Source
	store  *Store
	logger *logger.Logger
}

// NewCachedSource wraps src with the given store.
func NewCachedSource(src Source, store *Store, log *logger.Logger) *CachedSource {
	return &CachedSource{src: src, store: store, logger: log}
}

// SeasonGames returns the team's games, caching successful fetches.
func (c *CachedSource) SeasonGames(ctx context.Context, team string) ([]contracts.GameRecord, error) {
	key := "season-games:" + team

	if payload, err := c.store.Get(key); err == nil {
		var games []contracts.GameRecord
		if err := json.Unmarshal(payload, &games); err == nil {
			c.logger.WithField("team", team).Debug("Season games served from snapshot")
			return games, nil
		}
		// A corrupt snapshot is not fatal; refetch below.
	}

	games, err := c.src.SeasonGames(ctx, team)
	if err != nil {
		if errors.Is(err, nhl.ErrSourceUnavailable) {
			if stale, staleErr := c.stale(key); staleErr == nil {
				c.logger.WithField("team", team).Warn("API unavailable, serving stale season games")
				return stale, nil
			}
		}
		return nil, err
	}

	if payload, err := json.Marshal(games); err == nil {
		if err := c.store.Put(key, payload); err != nil {
			c.logger.WithError(err).Warn("Failed to cache season games")
		}
	}

	return games, nil
}

func (c *CachedSource) stale(key string) ([]contracts.GameRecord, error) {
	payload, err := c.store.GetStale(key)
	if err != nil {
		return nil, err
	}
	var games []contracts.GameRecord
	if err := json.Unmarshal(payload, &games); err != nil {
		return nil, fmt.Errorf("decode stale snapshot: %w", err)
	}
	return games, nil
}

// TeamRecord passes through uncached: the standings call is cheap and
// the record changes nightly.
func (c *CachedSource) TeamRecord(ctx context.Context, team string) (*contracts.TeamRecord, error) {
	return c.src.TeamRecord(ctx, team)
}
