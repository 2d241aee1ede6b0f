package style

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pystyle/pystyle/internal/domain/entities"
	"github.com/pystyle/pystyle/internal/domain/repositories"
)

// testHintFiles are the files worth searching for test framework mentions.
//
//nolint:gochecknoglobals // static metric definition
var testHintFiles = []string{
	"README.txt",
	"README",
	"README.md",
	"README.rst",
	"tox.ini",
	"requirements.txt",
	"requirements-dev.txt",
	"requirements_dev.txt",
	"dev-requirements.txt",
	"requirements-test.txt",
	"test-requirements.txt",
	"test_requirements.txt",
}

// knownEngines is also the precedence order when citation counts tie.
//
//nolint:gochecknoglobals // static metric definition
var knownEngines = []string{"nose", "pytest", "unittest"}

// TestEngineAnalyzer guesses which test framework a project runs on.
type TestEngineAnalyzer struct{}

// NewTestEngineAnalyzer creates the "test_engine" metric group.
func NewTestEngineAnalyzer() repositories.AnalyzerRepository {
	return &TestEngineAnalyzer{}
}

func (a *TestEngineAnalyzer) Name() string { return "test_engine" }

// Analyze records under "test_engine" the engine cited by the most files,
// counting each file once per engine. No citations at all leave the value
// empty.
func (a *TestEngineAnalyzer) Analyze(_ context.Context, dir string) (entities.Report, error) {
	citations := make(map[string]int, len(knownEngines))
	for _, name := range testHintFiles {
		data, ok := readTextFile(filepath.Join(dir, name))
		if !ok {
			continue
		}
		text := string(data)
		for _, engine := range knownEngines {
			if strings.Contains(text, engine) {
				citations[engine]++
			}
		}
	}

	best := ""
	bestCount := 0
	for _, engine := range knownEngines {
		if citations[engine] > bestCount {
			best = engine
			bestCount = citations[engine]
		}
	}
	return entities.Report{"test_engine": best}, nil
}
