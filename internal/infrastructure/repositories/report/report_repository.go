// Package report persists per-project style documents as JSON files.
package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/pystyle/pystyle/internal/domain/entities"
	"github.com/pystyle/pystyle/internal/domain/repositories"
)

// ReportRepository implements repositories.ReportRepository on the local
// filesystem. Documents are rendered deterministically and written through a
// temp file plus rename, so readers of the data tree never see a torn write.
type ReportRepository struct{}

// NewReportRepository creates a filesystem-backed report repository.
func NewReportRepository() repositories.ReportRepository {
	return &ReportRepository{}
}

// Load reads the document at path. A missing file is not an error; a file
// that exists but does not parse is logged and handed back empty, so the
// caller rebuilds the document from this run's metrics.
func (r *ReportRepository) Load(path string) (entities.Report, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return entities.NewReport(), false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	parsed, parseErr := entities.ParseReport(data)
	if parseErr != nil {
		logger.Warnf("Malformed document %s, rebuilding it: %v", path, parseErr)
		return entities.NewReport(), true, nil
	}
	return parsed, true, nil
}

// Save writes the document at path atomically, creating parent directories
// as needed.
func (r *ReportRepository) Save(path string, report entities.Report) error {
	data, err := report.Render()
	if err != nil {
		return err
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(path), 0o755); mkdirErr != nil {
		return fmt.Errorf("failed to create document directory for %s: %w", path, mkdirErr)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp document for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, writeErr := tmp.Write(data); writeErr != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write document %s: %w", path, writeErr)
	}
	if closeErr := tmp.Close(); closeErr != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close document %s: %w", path, closeErr)
	}
	if renameErr := os.Rename(tmpName, path); renameErr != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace document %s: %w", path, renameErr)
	}
	return nil
}

// Exists reports whether a document is already present at path.
func (r *ReportRepository) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
