package style

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	logger "github.com/sirupsen/logrus"

	"github.com/pystyle/pystyle/internal/domain/entities"
	"github.com/pystyle/pystyle/internal/domain/repositories"
)

// requirementPattern extracts the distribution name leading a requirement
// specifier, stopping before extras, version constraints and markers.
//
//nolint:gochecknoglobals // compiled once
var requirementPattern = regexp.MustCompile(`^([a-zA-Z0-9][-a-zA-Z0-9._]*)`)

// installRequiresPattern pulls the install_requires list out of a setup.py.
//
//nolint:gochecknoglobals // compiled once
var installRequiresPattern = regexp.MustCompile(`(?s)install_requires\s*=\s*\[(.*?)]`)

// quotedStringPattern matches the string literals inside that list.
//
//nolint:gochecknoglobals // compiled once
var quotedStringPattern = regexp.MustCompile(`["']([^"']+)["']`)

// pyprojectFile mirrors the dependency-bearing slice of pyproject.toml:
// PEP 621 project.dependencies plus the poetry table.
type pyprojectFile struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// RequirementsAnalyzer collects the dependencies a project declares across
// requirements files, pyproject.toml and setup.py.
type RequirementsAnalyzer struct{}

// NewRequirementsAnalyzer creates the "requirements" metric group.
func NewRequirementsAnalyzer() repositories.AnalyzerRepository {
	return &RequirementsAnalyzer{}
}

func (a *RequirementsAnalyzer) Name() string { return "requirements" }

// Analyze records under "requirements" the sorted, deduplicated dependency
// names, normalized the way the package index normalizes them.
func (a *RequirementsAnalyzer) Analyze(_ context.Context, dir string) (entities.Report, error) {
	found := make(map[string]struct{})

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			if name == "requirements" {
				collectRequirementsDir(filepath.Join(dir, name), found)
			}
			continue
		}
		if strings.Contains(name, "requirements") && strings.HasSuffix(name, ".txt") {
			collectRequirementsFile(filepath.Join(dir, name), found)
		}
	}
	collectPyproject(filepath.Join(dir, "pyproject.toml"), found)
	collectSetupPy(filepath.Join(dir, "setup.py"), found)

	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	sort.Strings(names)
	return entities.Report{"requirements": names}, nil
}

// collectRequirementsDir handles the requirements/ directory convention,
// where each file holds one environment's pins.
func collectRequirementsDir(dir string, found map[string]struct{}) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".txt") {
			collectRequirementsFile(filepath.Join(dir, entry.Name()), found)
		}
	}
}

// collectRequirementsFile parses pip requirement lines. Comments, pip flags,
// URLs and editable installs carry no usable distribution name and are
// skipped.
func collectRequirementsFile(path string, found map[string]struct{}) {
	data, ok := readTextFile(path)
	if !ok {
		return
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		if strings.Contains(line, "://") || strings.HasPrefix(line, "git+") {
			continue
		}
		addRequirement(line, found)
	}
}

// collectPyproject reads PEP 621 and poetry dependencies. The "python"
// pseudo-dependency of poetry projects is an interpreter constraint, not a
// distribution.
func collectPyproject(path string, found map[string]struct{}) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var parsed pyprojectFile
	if unmarshalErr := toml.Unmarshal(data, &parsed); unmarshalErr != nil {
		logger.Debugf("Unparsable pyproject at %s: %v", path, unmarshalErr)
		return
	}
	for _, spec := range parsed.Project.Dependencies {
		addRequirement(spec, found)
	}
	for name := range parsed.Tool.Poetry.Dependencies {
		if strings.EqualFold(name, "python") {
			continue
		}
		found[entities.NormalizeProjectName(name)] = struct{}{}
	}
}

// collectSetupPy regexes install_requires out of setup.py, which covers the
// overwhelming majority of declarative setup files.
func collectSetupPy(path string, found map[string]struct{}) {
	data, ok := readTextFile(path)
	if !ok {
		return
	}
	listMatch := installRequiresPattern.FindSubmatch(data)
	if listMatch == nil {
		return
	}
	for _, quoted := range quotedStringPattern.FindAllSubmatch(listMatch[1], -1) {
		addRequirement(string(quoted[1]), found)
	}
}

// addRequirement extracts and normalizes the distribution name of a
// requirement specifier.
func addRequirement(spec string, found map[string]struct{}) {
	if match := requirementPattern.FindStringSubmatch(strings.TrimSpace(spec)); match != nil {
		found[entities.NormalizeProjectName(match[1])] = struct{}{}
	}
}
