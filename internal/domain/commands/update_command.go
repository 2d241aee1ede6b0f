package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/pystyle/pystyle/internal/domain/entities"
	"github.com/pystyle/pystyle/internal/domain/repositories"
	infraRepos "github.com/pystyle/pystyle/internal/infrastructure/repositories"
)

// Update is the interface for the update command.
type Update interface {
	Execute(ctx context.Context, settings *entities.Settings, opts UpdateOptions) error
}

// UpdateOptions holds runtime options for a single update run.
type UpdateOptions struct {
	CloneDir string
	DataDir  string
	Only     string // If set, run only metric groups whose name contains this
	Verbose  bool
}

// updateOutcome classifies what happened to one project.
type updateOutcome int

const (
	outcomeAnalyzed updateOutcome = iota
	outcomeSkipped
	outcomeFailed
)

// UpdateCommand walks the clone tree and refreshes each project's style
// document: run the enabled analyzers -> merge into the existing document ->
// write it back atomically.
type UpdateCommand struct {
	registry *infraRepos.AnalyzerRegistry
	reports  repositories.ReportRepository
	source   repositories.SourceRepository
}

// NewUpdateCommand creates a new UpdateCommand with the given registry and
// repositories.
func NewUpdateCommand(
	registry *infraRepos.AnalyzerRegistry,
	reports repositories.ReportRepository,
	source repositories.SourceRepository,
) *UpdateCommand {
	return &UpdateCommand{
		registry: registry,
		reports:  reports,
		source:   source,
	}
}

// Execute computes the configured metric groups for every clone and merges
// the results into the data tree. Failures stay confined to their project;
// only an unusable data root (or misconfigured metrics) aborts the run.
func (it *UpdateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts UpdateOptions,
) error {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	analyzers, err := it.enabledAnalyzers(settings, opts.Only)
	if err != nil {
		return err
	}

	projects, err := projectsFromTree(opts.CloneDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Infof("No clones found under %s", opts.CloneDir)
			return nil
		}
		return fmt.Errorf("failed to list clones under %s: %w", opts.CloneDir, err)
	}

	if dirErr := ensureDirectory(opts.DataDir); dirErr != nil {
		return fmt.Errorf("data directory is not usable: %w", dirErr)
	}

	logger.Infof("Analyzing %d projects with %d metric groups", len(projects), len(analyzers))

	var analyzed, skipped, failed atomic.Int64

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(settings.Workers)
	for _, project := range projects {
		group.Go(func() error {
			switch it.updateProject(groupCtx, project, analyzers, opts) {
			case outcomeAnalyzed:
				analyzed.Add(1)
			case outcomeSkipped:
				skipped.Add(1)
			case outcomeFailed:
				failed.Add(1)
			}
			return nil
		})
	}
	if waitErr := group.Wait(); waitErr != nil {
		return waitErr
	}

	logger.Infof(
		"Update complete: %d analyzed, %d skipped, %d failed",
		analyzed.Load(), skipped.Load(), failed.Load(),
	)
	return nil
}

// enabledAnalyzers resolves the configured metric groups against the
// registry, with the --only pattern applied on top. Order is stable so runs
// process groups identically.
func (it *UpdateCommand) enabledAnalyzers(
	settings *entities.Settings,
	only string,
) ([]repositories.AnalyzerRepository, error) {
	var enabled []repositories.AnalyzerRepository
	if len(settings.Metrics) == 0 {
		enabled = it.registry.All()
	} else {
		for _, name := range settings.Metrics {
			analyzer := it.registry.Get(name)
			if analyzer == nil {
				return nil, fmt.Errorf(
					"unknown metric group %q (known: %s)",
					name, strings.Join(it.registry.Names(), ", "),
				)
			}
			enabled = append(enabled, analyzer)
		}
	}

	analyzers := make([]repositories.AnalyzerRepository, 0, len(enabled))
	for _, analyzer := range enabled {
		if only != "" && !strings.Contains(analyzer.Name(), only) {
			continue
		}
		analyzers = append(analyzers, analyzer)
	}
	if len(analyzers) == 0 && only != "" {
		logger.Warnf("No enabled metric group matches %q", only)
	}
	return analyzers, nil
}

// updateProject refreshes one project document and reports what happened.
func (it *UpdateCommand) updateProject(
	ctx context.Context,
	project *entities.Project,
	analyzers []repositories.AnalyzerRepository,
	opts UpdateOptions,
) updateOutcome {
	reportPath := project.ReportPath(opts.DataDir)

	// A filtered run refreshes existing documents only: a document holding
	// just the filtered groups would look like a complete report to readers.
	if opts.Only != "" && !it.reports.Exists(reportPath) {
		logger.Debugf("No document for %s yet, not creating a partial one", project.Slug())
		return outcomeSkipped
	}

	cloneDir := project.ClonePath(opts.CloneDir)
	if _, err := os.ReadDir(cloneDir); err != nil {
		logger.Errorf("Failed to read project %s: %v", project.Slug(), err)
		return outcomeFailed
	}

	fresh := entities.NewReport()
	for _, analyzer := range analyzers {
		entries, err := analyzer.Analyze(ctx, cloneDir)
		if err != nil {
			logger.Errorf("Failed to analyze %s (%s): %v", project.Slug(), analyzer.Name(), err)
			return outcomeFailed
		}
		fresh.Update(entries)
	}

	if head, err := it.source.Head(cloneDir); err == nil {
		fresh["commit"] = head.Commit
		fresh["date"] = head.Date.Format(time.RFC3339)
	} else {
		logger.Debugf("No readable HEAD for %s: %v", project.Slug(), err)
	}

	document, _, err := it.reports.Load(reportPath)
	if err != nil {
		logger.Errorf("Failed to load document for %s: %v", project.Slug(), err)
		return outcomeFailed
	}
	document.Update(fresh)

	if err := it.reports.Save(reportPath, document); err != nil {
		logger.Errorf("Failed to save document for %s: %v", project.Slug(), err)
		return outcomeFailed
	}
	logger.Debugf("Updated %s", project.Slug())
	return outcomeAnalyzed
}

// projectsFromTree lists the <host>/<owner>/<name> triples present under
// root. Both the clone tree and the data tree use this exact shape, so the
// crawler's reclone mode and the updater share the listing. Entries that do
// not fit the shape are ignored.
func projectsFromTree(root string) ([]*entities.Project, error) {
	hosts, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var projects []*entities.Project
	for _, host := range hosts {
		if !host.IsDir() {
			continue
		}
		owners, ownersErr := os.ReadDir(filepath.Join(root, host.Name()))
		if ownersErr != nil {
			continue
		}
		for _, owner := range owners {
			if !owner.IsDir() {
				continue
			}
			names, namesErr := os.ReadDir(filepath.Join(root, host.Name(), owner.Name()))
			if namesErr != nil {
				continue
			}
			for _, name := range names {
				if !name.IsDir() {
					continue
				}
				project, projectErr := entities.NewProject(
					"",
					"https://"+host.Name()+"/"+owner.Name()+"/"+name.Name(),
				)
				if projectErr != nil {
					continue
				}
				projects = append(projects, project)
			}
		}
	}
	return projects, nil
}
