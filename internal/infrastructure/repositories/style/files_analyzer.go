package style

import (
	"context"
	"path/filepath"

	"github.com/pystyle/pystyle/internal/domain/entities"
	"github.com/pystyle/pystyle/internal/domain/repositories"
)

// typicalFiles are the top-level files whose presence says something about a
// project's packaging and documentation habits.
//
//nolint:gochecknoglobals // static metric definition
var typicalFiles = []string{
	".gitignore",
	"AUTHORS.md",
	"AUTHORS.rst",
	"CHANGELOG.md",
	"CHANGELOG.rst",
	"CONTRIBUTING.md",
	"CONTRIBUTING.rst",
	"LICENSE",
	"Pipfile",
	"Pipfile.lock",
	"pyproject.toml",
	"LICENSE.txt",
	".noserc",
	"nose.cfg",
	"Makefile",
	"MANIFEST.in",
	"pytest.ini",
	"README",
	"README.txt",
	"README.md",
	"README.rst",
	"requirements.txt",
	"requirements_dev.txt",
	"setup.cfg",
	"setup.py",
	"test-requirements.txt",
	"tox.ini",
}

// FilesAnalyzer reports which typical project files are present.
type FilesAnalyzer struct{}

// NewFilesAnalyzer creates the "has_file" metric group.
func NewFilesAnalyzer() repositories.AnalyzerRepository {
	return &FilesAnalyzer{}
}

func (a *FilesAnalyzer) Name() string { return "has_file" }

// Analyze records presence as 0/1 under "file:<name>" keys.
func (a *FilesAnalyzer) Analyze(_ context.Context, dir string) (entities.Report, error) {
	report := entities.NewReport()
	for _, name := range typicalFiles {
		report["file:"+name] = presence(isFile(filepath.Join(dir, name)))
	}
	return report, nil
}
