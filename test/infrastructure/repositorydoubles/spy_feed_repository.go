//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// the repository interfaces. These are hand-crafted implementations, no mock
// frameworks. The spies lock their recorded state because the commands under
// test fan work out to worker pools.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/pystyle/pystyle/internal/domain/repositories"
)

// SpyFeedRepository implements repositories.FeedRepository as a configurable spy.
type SpyFeedRepository struct {
	mu sync.Mutex

	// --- FetchProjects ---
	ProjectsByFeed map[string][]string
	ErrByFeed      map[string]error
	FetchErr       error
	FetchedFeeds   []string
}

var _ repositories.FeedRepository = (*SpyFeedRepository)(nil)

func (f *SpyFeedRepository) FetchProjects(_ context.Context, feedURL string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.FetchedFeeds = append(f.FetchedFeeds, feedURL)
	if err, ok := f.ErrByFeed[feedURL]; ok {
		return nil, err
	}
	if f.FetchErr != nil {
		return nil, f.FetchErr
	}
	return f.ProjectsByFeed[feedURL], nil
}
