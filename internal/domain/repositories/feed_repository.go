package repositories

import "context"

// FeedRepository abstracts the announcement feed of a package index.
type FeedRepository interface {
	// FetchProjects returns the names of the projects announced by the feed
	// at feedURL, deduplicated and sorted.
	FetchProjects(ctx context.Context, feedURL string) ([]string, error)
}
