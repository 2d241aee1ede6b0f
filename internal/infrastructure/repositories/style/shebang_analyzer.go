package style

import (
	"context"
	"io/fs"
	"regexp"
	"strings"

	"github.com/pystyle/pystyle/internal/domain/entities"
	"github.com/pystyle/pystyle/internal/domain/repositories"
)

// pythonInterpreterPattern extracts the interpreter spelling from a shebang
// line, keeping whatever case and version suffix the author used.
//
//nolint:gochecknoglobals // compiled once
var pythonInterpreterPattern = regexp.MustCompile(`(?i)python[0-9.]*`)

// ShebangAnalyzer takes a census of interpreter lines across *.py files.
type ShebangAnalyzer struct{}

// NewShebangAnalyzer creates the "shebang" metric group.
func NewShebangAnalyzer() repositories.AnalyzerRepository {
	return &ShebangAnalyzer{}
}

func (a *ShebangAnalyzer) Name() string { return "shebang" }

// Analyze counts interpreter spellings under "shebang:<interpreter>" keys and
// records under "shebangs_pct" how much of the codebase carries a shebang at
// all. Percentages use integer division.
func (a *ShebangAnalyzer) Analyze(ctx context.Context, dir string) (entities.Report, error) {
	counts := make(map[string]int)
	pyFiles := 0
	withShebang := 0

	err := walkFiles(ctx, dir, func(path string, entry fs.DirEntry) {
		if !strings.HasSuffix(entry.Name(), ".py") {
			return
		}
		pyFiles++
		firstLine, ok := readFirstLine(path)
		if !ok || !strings.HasPrefix(firstLine, "#!") {
			return
		}
		withShebang++
		if interpreter := pythonInterpreterPattern.FindString(firstLine); interpreter != "" {
			counts["shebang:"+interpreter]++
		}
	})
	if err != nil {
		return nil, err
	}

	report := entities.NewReport()
	for key, count := range counts {
		report[key] = count
	}
	pct := 0
	if pyFiles > 0 {
		pct = 100 * withShebang / pyFiles
	}
	report["shebangs_pct"] = pct
	return report, nil
}
