package repositories

import (
	"github.com/pystyle/pystyle/internal/domain/entities"
)

// ReportRepository abstracts the persistence of per-project style documents.
type ReportRepository interface {
	// Load reads the document at path. The boolean reports whether the file
	// exists; a malformed existing document yields an empty report so the
	// caller rebuilds it from scratch.
	Load(path string) (entities.Report, bool, error)

	// Save writes the document at path, creating parent directories as
	// needed. The write is atomic: a failed save never leaves a partial
	// document behind.
	Save(path string, report entities.Report) error

	// Exists reports whether a document is already present at path.
	Exists(path string) bool
}
