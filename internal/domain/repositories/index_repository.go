package repositories

import "context"

// IndexRepository abstracts the metadata API of a package index. Package
// metadata is the only place that knows where a project's source lives, and
// it is free-form, so implementations have to dig through several fields.
type IndexRepository interface {
	// ResolveRepositoryURL returns the canonical source repository URL of the
	// given project, or an error when no repository can be discovered.
	ResolveRepositoryURL(ctx context.Context, project string) (string, error)
}
