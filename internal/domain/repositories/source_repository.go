package repositories

import (
	"context"

	"github.com/pystyle/pystyle/internal/domain/entities"
)

// SourceRepository abstracts git operations on the local clone tree.
type SourceRepository interface {
	// Sync brings the clone at dir up to date with the repository at url,
	// cloning it first when dir does not exist yet. A clone that cannot be
	// fast-forwarded is recreated from scratch; a failed fresh clone leaves
	// no partial directory behind.
	Sync(ctx context.Context, url, dir string, opts entities.SyncOptions) (entities.SyncAction, error)

	// Head returns the commit currently checked out at dir.
	Head(dir string) (*entities.Head, error)
}
