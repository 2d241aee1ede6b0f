package style

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pystyle/pystyle/internal/domain/entities"
	"github.com/pystyle/pystyle/internal/domain/repositories"
)

// interestingExtensions are the file types whose volume is worth tracking.
//
//nolint:gochecknoglobals // static metric definition
var interestingExtensions = map[string]bool{
	"c":     true,
	"csv":   true,
	"ini":   true,
	"ipynb": true,
	"json":  true,
	"po":    true,
	"py":    true,
	"toml":  true,
	"xml":   true,
	"yaml":  true,
}

// LinesAnalyzer counts lines per interesting file extension.
type LinesAnalyzer struct{}

// NewLinesAnalyzer creates the "lines_of_code" metric group.
func NewLinesAnalyzer() repositories.AnalyzerRepository {
	return &LinesAnalyzer{}
}

func (a *LinesAnalyzer) Name() string { return "lines_of_code" }

// Analyze walks the checkout and accumulates line counts under
// "lines_of:<ext>" keys. Files that are unreadable or not valid UTF-8 are
// skipped, and extensions compare case-insensitively.
func (a *LinesAnalyzer) Analyze(ctx context.Context, dir string) (entities.Report, error) {
	counts := make(map[string]int)
	err := walkFiles(ctx, dir, func(path string, entry fs.DirEntry) {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(entry.Name()), "."))
		if !interestingExtensions[ext] {
			return
		}
		data, ok := readTextFile(path)
		if !ok {
			return
		}
		counts["lines_of:"+ext] += countLines(data)
	})
	if err != nil {
		return nil, err
	}

	report := entities.NewReport()
	for key, count := range counts {
		report[key] = count
	}
	return report, nil
}
