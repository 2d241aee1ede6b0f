package style

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"strings"

	"github.com/pystyle/pystyle/internal/domain/entities"
	"github.com/pystyle/pystyle/internal/domain/repositories"
)

const futureImportMarker = "from __future__ import"

// FutureAnalyzer measures how much of a project still reaches for __future__
// imports, a rough proxy for its Python 2 heritage.
type FutureAnalyzer struct{}

// NewFutureAnalyzer creates the "dunder_future" metric group.
func NewFutureAnalyzer() repositories.AnalyzerRepository {
	return &FutureAnalyzer{}
}

func (a *FutureAnalyzer) Name() string { return "dunder_future" }

// Analyze records under "dunder_future_pct" the percentage of readable py
// files containing a __future__ import.
func (a *FutureAnalyzer) Analyze(ctx context.Context, dir string) (entities.Report, error) {
	total := 0
	found := 0

	err := walkFiles(ctx, dir, func(path string, entry fs.DirEntry) {
		if !strings.HasSuffix(entry.Name(), ".py") {
			return
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return
		}
		total++
		if bytes.Contains(data, []byte(futureImportMarker)) {
			found++
		}
	})
	if err != nil {
		return nil, err
	}

	pct := 0
	if total > 0 {
		pct = 100 * found / total
	}
	return entities.Report{"dunder_future_pct": pct}, nil
}
