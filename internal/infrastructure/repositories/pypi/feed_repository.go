// Package pypi talks to the Python Package Index: the RSS feeds that
// announce projects and the JSON API that describes them.
package pypi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/pystyle/pystyle/internal/domain/repositories"
)

// FeedRepository reads announcement feeds and extracts project names.
type FeedRepository struct {
	parser *gofeed.Parser
}

// NewFeedRepository creates a feed repository on top of the given HTTP
// client.
func NewFeedRepository(client *http.Client, userAgent string) repositories.FeedRepository {
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = userAgent
	return &FeedRepository{parser: parser}
}

// FetchProjects returns the deduplicated, sorted project names announced by
// the feed at feedURL.
func (f *FeedRepository) FetchProjects(ctx context.Context, feedURL string) ([]string, error) {
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %q: %w", feedURL, err)
	}

	seen := make(map[string]struct{}, len(feed.Items))
	projects := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		name := projectNameFromLink(item.Link)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		projects = append(projects, name)
	}
	sort.Strings(projects)
	return projects, nil
}

// projectNameFromLink extracts the project name from a feed entry link.
// Update entries link to /project/<name>/<version>/ while newest-package
// entries link to /project/<name>/, and the legacy index used /pypi/<name>.
func projectNameFromLink(link string) string {
	parsed, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for i, segment := range segments {
		if (segment == "project" || segment == "pypi") && i+1 < len(segments) && segments[i+1] != "" {
			return segments[i+1]
		}
	}
	if len(segments) > 0 && segments[len(segments)-1] != "" {
		return segments[len(segments)-1]
	}
	return ""
}
