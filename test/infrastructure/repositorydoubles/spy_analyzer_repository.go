//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/pystyle/pystyle/internal/domain/entities"
	"github.com/pystyle/pystyle/internal/domain/repositories"
)

// SpyAnalyzerRepository implements repositories.AnalyzerRepository as a
// configurable spy.
type SpyAnalyzerRepository struct {
	mu sync.Mutex

	// --- identity ---
	AnalyzerName string

	// --- Analyze ---
	Result       entities.Report
	AnalyzeErr   error
	ErrByDir     map[string]error
	AnalyzedDirs []string
}

var _ repositories.AnalyzerRepository = (*SpyAnalyzerRepository)(nil)

func (a *SpyAnalyzerRepository) Name() string { return a.AnalyzerName }

func (a *SpyAnalyzerRepository) Analyze(
	_ context.Context,
	dir string,
) (entities.Report, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.AnalyzedDirs = append(a.AnalyzedDirs, dir)
	if err, ok := a.ErrByDir[dir]; ok {
		return nil, err
	}
	if a.AnalyzeErr != nil {
		return nil, a.AnalyzeErr
	}
	result := entities.NewReport()
	result.Update(a.Result)
	return result, nil
}
