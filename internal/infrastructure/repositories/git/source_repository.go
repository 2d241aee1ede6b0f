// Package git keeps the local clone tree in sync using go-git.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	logger "github.com/sirupsen/logrus"

	"github.com/pystyle/pystyle/internal/domain/entities"
	"github.com/pystyle/pystyle/internal/domain/repositories"
)

// SourceRepository implements repositories.SourceRepository on top of go-git.
// Nothing here ever prompts for credentials: a repository that requires
// authentication fails its sync and gets skipped by the caller.
type SourceRepository struct{}

// NewSourceRepository creates a go-git backed source repository.
func NewSourceRepository() repositories.SourceRepository {
	return &SourceRepository{}
}

// Sync brings dir up to date with the repository at url. An existing clone is
// fast-forwarded; when that fails (force-pushed history, corrupted checkout)
// the directory is recreated from a fresh clone.
func (s *SourceRepository) Sync(
	ctx context.Context,
	url, dir string,
	opts entities.SyncOptions,
) (entities.SyncAction, error) {
	repo, err := gogit.PlainOpen(dir)
	switch {
	case err == nil:
		action, pullErr := pull(ctx, repo)
		if pullErr == nil {
			return action, nil
		}
		logger.Debugf("Fast-forward of %s failed (%v), recloning", dir, pullErr)
		if removeErr := os.RemoveAll(dir); removeErr != nil {
			return "", fmt.Errorf("failed to remove stale clone %s: %w", dir, removeErr)
		}
	case errors.Is(err, gogit.ErrRepositoryNotExists):
		// Either nothing is there yet, or something that is not a git
		// repository squats on the path. Both end in a fresh clone.
		if _, statErr := os.Stat(dir); statErr == nil {
			if removeErr := os.RemoveAll(dir); removeErr != nil {
				return "", fmt.Errorf("failed to remove non-repository %s: %w", dir, removeErr)
			}
		}
	default:
		return "", fmt.Errorf("failed to open clone %s: %w", dir, err)
	}

	if cloneErr := clone(ctx, url, dir, opts.Depth); cloneErr != nil {
		return "", cloneErr
	}
	return entities.SyncCloned, nil
}

// Head returns the commit checked out at dir, with the committer time in UTC.
func (s *SourceRepository) Head(dir string) (*entities.Head, error) {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open clone %s: %w", dir, err)
	}
	ref, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD of %s: %w", dir, err)
	}
	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", ref.Hash(), err)
	}
	return &entities.Head{
		Commit: ref.Hash().String(),
		Date:   commit.Committer.When.UTC(),
	}, nil
}

// pull fast-forwards the default branch. go-git refuses non-fast-forward
// pulls, which is exactly the contract a read-only mirror wants. Up-to-date
// is decided by comparing HEAD around the pull: shallow clones re-negotiate
// their fetch and come back without the already-up-to-date sentinel even
// when nothing changed upstream.
func pull(ctx context.Context, repo *gogit.Repository) (entities.SyncAction, error) {
	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	before, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD before pull: %w", err)
	}

	//nolint:exhaustruct // minimal PullOptions initialization with required fields only
	err = worktree.PullContext(ctx, &gogit.PullOptions{
		RemoteName:   "origin",
		SingleBranch: true,
	})
	if errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return entities.SyncUpToDate, nil
	}
	if err != nil {
		return "", err
	}

	after, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD after pull: %w", err)
	}
	if before.Hash() == after.Hash() {
		return entities.SyncUpToDate, nil
	}
	return entities.SyncUpdated, nil
}

// clone fetches a fresh copy. A failed clone removes whatever half-written
// state it left, so the next run starts clean.
func clone(ctx context.Context, url, dir string, depth int) error {
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return fmt.Errorf("failed to create clone parent for %s: %w", dir, err)
	}

	logger.Debugf("Cloning %s into %s", url, dir)
	//nolint:exhaustruct // minimal CloneOptions initialization with required fields only
	_, err := gogit.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{
		URL:          url,
		Depth:        depth,
		SingleBranch: true,
		Tags:         gogit.NoTags,
	})
	if err != nil {
		_ = os.RemoveAll(dir)
		return fmt.Errorf("failed to clone %s: %w", url, err)
	}
	return nil
}
