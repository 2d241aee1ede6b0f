//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"sync"

	"github.com/pystyle/pystyle/internal/domain/repositories"
)

// SpyIndexRepository implements repositories.IndexRepository as a configurable spy.
type SpyIndexRepository struct {
	mu sync.Mutex

	// --- ResolveRepositoryURL ---
	RepositoryByProject map[string]string
	ErrByProject        map[string]error
	ResolvedProjects    []string
}

var _ repositories.IndexRepository = (*SpyIndexRepository)(nil)

func (i *SpyIndexRepository) ResolveRepositoryURL(
	_ context.Context,
	project string,
) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.ResolvedProjects = append(i.ResolvedProjects, project)
	if err, ok := i.ErrByProject[project]; ok {
		return "", err
	}
	repoURL, ok := i.RepositoryByProject[project]
	if !ok {
		return "", fmt.Errorf("no repository configured for %q", project)
	}
	return repoURL, nil
}
