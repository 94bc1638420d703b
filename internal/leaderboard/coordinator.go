package leaderboard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/donothingclub/donothing/internal/model"
)

// Fetcher retrieves ranked entries for a scope from the remote service
type Fetcher interface {
	FetchLeaderboard(ctx context.Context, scope, countryCode string) ([]model.LeaderboardEntry, error)
}

// Snapshot holds the two cached leaderboard views
type Snapshot struct {
	Global  []model.LeaderboardEntry
	Country []model.LeaderboardEntry
}

// Coordinator fetches and caches the global and country leaderboard views.
// Each view has exactly one writer (its fetch completion); a failed fetch
// leaves the previous sequence in place rather than clearing it, so a stale
// board stays available through transient outages.
type Coordinator struct {
	fetcher Fetcher
	logger  *slog.Logger

	mu      sync.RWMutex
	global  []model.LeaderboardEntry
	country []model.LeaderboardEntry
}

// NewCoordinator creates a Coordinator with empty cached views
func NewCoordinator(fetcher Fetcher, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		fetcher: fetcher,
		logger:  logger,
		global:  []model.LeaderboardEntry{},
		country: []model.LeaderboardEntry{},
	}
}

// Refresh re-fetches both views and returns the resulting snapshot. The
// global fetch is unconditional; the country fetch happens only for a
// non-nil user, using its country code - with no user the country view is
// emptied without a network call. The two fetches run concurrently and are
// awaited jointly, but a failure in either is handled independently.
// There is no debouncing; every call goes to the network.
func (c *Coordinator) Refresh(ctx context.Context, user *model.User) Snapshot {
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		entries, err := c.fetcher.FetchLeaderboard(ctx, model.ScopeGlobal, "")
		if err != nil {
			c.logger.Warn("global leaderboard refresh failed", slog.String("error", err.Error()))
			return
		}
		c.setGlobal(entries)
	}()

	if user != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entries, err := c.fetcher.FetchLeaderboard(ctx, model.ScopeCountry, user.CountryCode)
			if err != nil {
				c.logger.Warn("country leaderboard refresh failed",
					slog.String("country_code", user.CountryCode),
					slog.String("error", err.Error()),
				)
				return
			}
			c.setCountry(entries)
		}()
	} else {
		c.setCountry([]model.LeaderboardEntry{})
	}

	wg.Wait()
	return c.Cached()
}

// Cached returns the current snapshot without touching the network
func (c *Coordinator) Cached() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		Global:  c.global,
		Country: c.country,
	}
}

func (c *Coordinator) setGlobal(entries []model.LeaderboardEntry) {
	c.mu.Lock()
	c.global = entries
	c.mu.Unlock()
}

func (c *Coordinator) setCountry(entries []model.LeaderboardEntry) {
	c.mu.Lock()
	c.country = entries
	c.mu.Unlock()
}
