package style

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pystyle/pystyle/internal/domain/entities"
	"github.com/pystyle/pystyle/internal/domain/repositories"
)

// typicalDirs are the top-level directories of a conventional project layout.
// The trailing slash is part of the metric key.
//
//nolint:gochecknoglobals // static metric definition
var typicalDirs = []string{
	"doc/",
	"docs/",
	"examples/",
	"src/",
	"test/",
	"tests/",
}

// DirsAnalyzer reports which typical project directories are present.
type DirsAnalyzer struct{}

// NewDirsAnalyzer creates the "has_dir" metric group.
func NewDirsAnalyzer() repositories.AnalyzerRepository {
	return &DirsAnalyzer{}
}

func (a *DirsAnalyzer) Name() string { return "has_dir" }

// Analyze records presence as 0/1 under "dir:<name>/" keys.
func (a *DirsAnalyzer) Analyze(_ context.Context, dir string) (entities.Report, error) {
	report := entities.NewReport()
	for _, name := range typicalDirs {
		target := filepath.Join(dir, strings.TrimSuffix(name, "/"))
		report["dir:"+name] = presence(isDir(target))
	}
	return report, nil
}
