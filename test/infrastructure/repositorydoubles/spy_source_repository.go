//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"errors"
	"sync"

	"github.com/pystyle/pystyle/internal/domain/entities"
	"github.com/pystyle/pystyle/internal/domain/repositories"
)

// SpySourceRepository implements repositories.SourceRepository as a configurable spy.
type SpySourceRepository struct {
	mu sync.Mutex

	// --- Sync ---
	Action     entities.SyncAction // action reported on success, default "cloned"
	SyncErr    error
	ErrByURL   map[string]error
	SyncedURLs []string
	SyncedDirs []string

	// --- Head ---
	HeadResult *entities.Head
	HeadErr    error
	HeadDirs   []string
}

var _ repositories.SourceRepository = (*SpySourceRepository)(nil)

func (s *SpySourceRepository) Sync(
	_ context.Context,
	url, dir string,
	_ entities.SyncOptions,
) (entities.SyncAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.SyncedURLs = append(s.SyncedURLs, url)
	s.SyncedDirs = append(s.SyncedDirs, dir)
	if err, ok := s.ErrByURL[url]; ok {
		return "", err
	}
	if s.SyncErr != nil {
		return "", s.SyncErr
	}
	if s.Action == "" {
		return entities.SyncCloned, nil
	}
	return s.Action, nil
}

func (s *SpySourceRepository) Head(dir string) (*entities.Head, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.HeadDirs = append(s.HeadDirs, dir)
	if s.HeadErr != nil {
		return nil, s.HeadErr
	}
	if s.HeadResult == nil {
		return nil, errors.New("no head configured")
	}
	return s.HeadResult, nil
}
