package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync/atomic"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/pystyle/pystyle/internal/domain/entities"
	"github.com/pystyle/pystyle/internal/domain/repositories"
)

// Crawl is the interface for the crawl command.
type Crawl interface {
	Execute(ctx context.Context, settings *entities.Settings, opts CrawlOptions) error
}

// CrawlOptions holds runtime options for a single crawl.
type CrawlOptions struct {
	CloneDir   string
	Repository string // If set, clone only this repository URL (CLI override)
	Project    string // If set, crawl only this index project (CLI override)
	RecloneDir string // If set, re-clone everything recorded in this data tree
	Verbose    bool
}

// CrawlCommand orchestrates the full mirror flow: discover projects on the
// index feeds -> resolve their source repositories -> clone or fast-forward
// the local checkouts.
type CrawlCommand struct {
	feeds  repositories.FeedRepository
	index  repositories.IndexRepository
	source repositories.SourceRepository
}

// NewCrawlCommand creates a new CrawlCommand with the given repositories.
func NewCrawlCommand(
	feeds repositories.FeedRepository,
	index repositories.IndexRepository,
	source repositories.SourceRepository,
) *CrawlCommand {
	return &CrawlCommand{
		feeds:  feeds,
		index:  index,
		source: source,
	}
}

// Execute runs one crawl cycle. The single-target modes fail hard so a broken
// argument is visible immediately; the feed-driven batch isolates per-project
// failures and only gives up when discovery itself comes back empty.
func (it *CrawlCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts CrawlOptions,
) error {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	if err := ensureDirectory(opts.CloneDir); err != nil {
		return fmt.Errorf("clones directory is not usable: %w", err)
	}

	if opts.Repository != "" {
		project, err := entities.NewProject("", opts.Repository)
		if err != nil {
			return err
		}
		return it.syncOne(ctx, settings, project, opts.CloneDir)
	}

	if opts.Project != "" {
		project, err := it.resolveProject(ctx, settings, opts.Project)
		if err != nil {
			return fmt.Errorf("failed to resolve %q: %w", opts.Project, err)
		}
		return it.syncOne(ctx, settings, project, opts.CloneDir)
	}

	if opts.RecloneDir != "" {
		return it.recloneAll(ctx, settings, opts)
	}

	return it.crawlFeeds(ctx, settings, opts)
}

// crawlFeeds is the default mode: everything the feeds announce.
func (it *CrawlCommand) crawlFeeds(
	ctx context.Context,
	settings *entities.Settings,
	opts CrawlOptions,
) error {
	names, err := it.discoverProjects(ctx, settings)
	if err != nil {
		return err
	}

	logger.Infof("Discovered %d projects from %d feeds", len(names), len(settings.Feeds))

	var resolved, cloned, updated, upToDate, skipped atomic.Int64

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(settings.Workers)
	for _, name := range names {
		group.Go(func() error {
			project, resolveErr := it.resolveProject(groupCtx, settings, name)
			if resolveErr != nil {
				logger.Warnf("Skipping %q: %v", name, resolveErr)
				skipped.Add(1)
				return nil
			}
			resolved.Add(1)

			action, syncErr := it.sync(groupCtx, settings, project, opts.CloneDir)
			if syncErr != nil {
				logger.Errorf("Failed to fetch %s: %v", project.Slug(), syncErr)
				skipped.Add(1)
				return nil
			}
			switch action {
			case entities.SyncCloned:
				cloned.Add(1)
			case entities.SyncUpdated:
				updated.Add(1)
			case entities.SyncUpToDate:
				upToDate.Add(1)
			}
			return nil
		})
	}
	if waitErr := group.Wait(); waitErr != nil {
		return waitErr
	}

	logger.Infof(
		"Crawl complete: %d projects, %d resolved, %d cloned, %d updated, %d up-to-date, %d skipped",
		len(names), resolved.Load(), cloned.Load(), updated.Load(), upToDate.Load(), skipped.Load(),
	)
	return nil
}

// discoverProjects unions the project names announced by every configured
// feed. A single broken feed is tolerated as long as another one answers;
// all of them failing, or an empty union, means there is nothing to crawl
// and the run is aborted.
func (it *CrawlCommand) discoverProjects(
	ctx context.Context,
	settings *entities.Settings,
) ([]string, error) {
	if len(settings.Feeds) == 0 {
		return nil, errors.New("no feeds configured")
	}

	seen := make(map[string]struct{})
	var names []string
	var failures []error
	for _, feedURL := range settings.Feeds {
		feedCtx, cancel := context.WithTimeout(ctx, settings.HTTPTimeoutDuration())
		projects, err := it.feeds.FetchProjects(feedCtx, feedURL)
		cancel()
		if err != nil {
			logger.Warnf("Feed %s failed: %v", feedURL, err)
			failures = append(failures, err)
			continue
		}
		for _, name := range projects {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	if len(failures) == len(settings.Feeds) {
		return nil, fmt.Errorf("all feeds failed: %w", errors.Join(failures...))
	}
	if len(names) == 0 {
		return nil, errors.New("feeds yielded no projects")
	}
	sort.Strings(names)
	return names, nil
}

// recloneAll restores the clones tree from an existing data tree, the
// recovery path after the clones directory is lost to disk churn.
func (it *CrawlCommand) recloneAll(
	ctx context.Context,
	settings *entities.Settings,
	opts CrawlOptions,
) error {
	projects, err := projectsFromTree(opts.RecloneDir)
	if err != nil {
		return fmt.Errorf("failed to list data tree %s: %w", opts.RecloneDir, err)
	}

	logger.Infof("Recloning %d projects recorded under %s", len(projects), opts.RecloneDir)

	var fetched, skipped atomic.Int64
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(settings.Workers)
	for _, project := range projects {
		group.Go(func() error {
			if _, syncErr := it.sync(groupCtx, settings, project, opts.CloneDir); syncErr != nil {
				logger.Errorf("Failed to reclone %s: %v", project.Slug(), syncErr)
				skipped.Add(1)
				return nil
			}
			fetched.Add(1)
			return nil
		})
	}
	if waitErr := group.Wait(); waitErr != nil {
		return waitErr
	}

	logger.Infof("Reclone complete: %d fetched, %d skipped", fetched.Load(), skipped.Load())
	return nil
}

// resolveProject finds the source repository behind an index project name.
func (it *CrawlCommand) resolveProject(
	ctx context.Context,
	settings *entities.Settings,
	name string,
) (*entities.Project, error) {
	resolveCtx, cancel := context.WithTimeout(ctx, settings.HTTPTimeoutDuration())
	defer cancel()

	repoURL, err := it.index.ResolveRepositoryURL(resolveCtx, name)
	if err != nil {
		return nil, err
	}
	return entities.NewProject(name, repoURL)
}

// sync clones or updates the project's local checkout.
func (it *CrawlCommand) sync(
	ctx context.Context,
	settings *entities.Settings,
	project *entities.Project,
	cloneDir string,
) (entities.SyncAction, error) {
	syncCtx, cancel := context.WithTimeout(ctx, settings.CloneTimeoutDuration())
	defer cancel()

	action, err := it.source.Sync(
		syncCtx,
		project.CloneURL(),
		project.ClonePath(cloneDir),
		entities.SyncOptions{Depth: settings.CloneDepth},
	)
	if err != nil {
		return "", err
	}
	logger.Debugf("%s: %s", project.Slug(), action)
	return action, nil
}

// syncOne is the single-target variant, where a failure fails the run.
func (it *CrawlCommand) syncOne(
	ctx context.Context,
	settings *entities.Settings,
	project *entities.Project,
	cloneDir string,
) error {
	action, err := it.sync(ctx, settings, project, cloneDir)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", project.Slug(), err)
	}
	logger.Infof("%s: %s", project.Slug(), action)
	return nil
}

// ensureDirectory makes sure the given root exists and is a directory.
func ensureDirectory(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
