package repositories

import (
	"sort"

	domainRepos "github.com/pystyle/pystyle/internal/domain/repositories"
)

// AnalyzerRegistry manages all registered metric group implementations.
type AnalyzerRegistry struct {
	analyzers map[string]domainRepos.AnalyzerRepository
}

// NewAnalyzerRegistry creates an empty analyzer registry.
func NewAnalyzerRegistry() *AnalyzerRegistry {
	return &AnalyzerRegistry{
		analyzers: make(map[string]domainRepos.AnalyzerRepository),
	}
}

// Register adds an analyzer under its name.
func (r *AnalyzerRegistry) Register(a domainRepos.AnalyzerRepository) {
	r.analyzers[a.Name()] = a
}

// Get returns the analyzer with the given name, or nil if not registered.
func (r *AnalyzerRegistry) Get(name string) domainRepos.AnalyzerRepository {
	return r.analyzers[name]
}

// All returns every registered analyzer, sorted by name so runs process the
// groups in a stable order.
func (r *AnalyzerRegistry) All() []domainRepos.AnalyzerRepository {
	result := make([]domainRepos.AnalyzerRepository, 0, len(r.analyzers))
	for _, name := range r.Names() {
		result = append(result, r.analyzers[name])
	}
	return result
}

// Names returns the registered metric group names, sorted so runs process
// and log groups in a stable order.
func (r *AnalyzerRegistry) Names() []string {
	names := make([]string, 0, len(r.analyzers))
	for name := range r.analyzers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
