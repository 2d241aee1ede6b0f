package repositories

import (
	"context"

	"github.com/pystyle/pystyle/internal/domain/entities"
)

// AnalyzerRepository abstracts one group of style metrics computed from a
// project checkout. Each implementation returns a flat report fragment that
// is merged into the project document, so a single group may emit any number
// of keys.
type AnalyzerRepository interface {
	// Name returns the metric group identifier (e.g. "has_file", "shebang").
	Name() string

	// Analyze computes the group's entries for the checkout at dir.
	Analyze(ctx context.Context, dir string) (entities.Report, error)
}
