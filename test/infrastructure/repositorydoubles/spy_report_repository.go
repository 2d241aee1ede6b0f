//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"sync"

	"github.com/pystyle/pystyle/internal/domain/entities"
	"github.com/pystyle/pystyle/internal/domain/repositories"
)

// SpyReportRepository implements repositories.ReportRepository as an
// in-memory spy keyed by document path.
type SpyReportRepository struct {
	mu sync.Mutex

	// --- Load / Save / Exists ---
	Documents  map[string]entities.Report
	LoadErr    error
	SaveErr    error
	SavedPaths []string
}

var _ repositories.ReportRepository = (*SpyReportRepository)(nil)

func (r *SpyReportRepository) Load(path string) (entities.Report, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.LoadErr != nil {
		return nil, false, r.LoadErr
	}
	document, ok := r.Documents[path]
	if !ok {
		return entities.NewReport(), false, nil
	}
	copied := entities.NewReport()
	copied.Update(document)
	return copied, true, nil
}

func (r *SpyReportRepository) Save(path string, report entities.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.SavedPaths = append(r.SavedPaths, path)
	if r.SaveErr != nil {
		return r.SaveErr
	}
	if r.Documents == nil {
		r.Documents = make(map[string]entities.Report)
	}
	copied := entities.NewReport()
	copied.Update(report)
	r.Documents[path] = copied
	return nil
}

func (r *SpyReportRepository) Exists(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.Documents[path]
	return ok
}
