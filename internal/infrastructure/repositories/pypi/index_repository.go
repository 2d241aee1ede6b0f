package pypi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/pystyle/pystyle/internal/domain/repositories"
)

const apiBaseURL = "https://pypi.org/pypi"

// ErrNoRepository is returned when a project's metadata names no source
// repository anywhere.
var ErrNoRepository = errors.New("no source repository found")

// repositoryURLKeys are the project_urls keys that point at the source
// repository, in preference order. Comparison is case-insensitive.
//
//nolint:gochecknoglobals // static lookup order
var repositoryURLKeys = []string{"repository", "source", "source code", "code", "github"}

// githubURLPattern finds github project URLs inside arbitrary metadata text.
// The character class excludes dots so a ".git" suffix or a sentence period
// never lands inside the match.
//
//nolint:gochecknoglobals // compiled once
var githubURLPattern = regexp.MustCompile(`https://github\.com/[a-zA-Z0-9_-]+/[a-zA-Z0-9_-]+`)

// projectInfo mirrors the slice of the index JSON response the resolver
// needs.
type projectInfo struct {
	Info struct {
		HomePage    string            `json:"home_page"`
		ProjectURLs map[string]string `json:"project_urls"`
	} `json:"info"`
}

// IndexRepository resolves projects to their source repository through the
// index JSON API.
type IndexRepository struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// NewIndexRepository creates an index repository on top of the given HTTP
// client.
func NewIndexRepository(client *http.Client, userAgent string) repositories.IndexRepository {
	return &IndexRepository{
		client:    client,
		baseURL:   apiBaseURL,
		userAgent: userAgent,
	}
}

// ResolveRepositoryURL resolves the source repository of a project.
// Preference order: a repository-ish project_urls entry, then the home page,
// then the shortest github URL found anywhere in the raw metadata (project
// descriptions love linking their own badges and issues).
func (i *IndexRepository) ResolveRepositoryURL(ctx context.Context, project string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/json", i.baseURL, url.PathEscape(project))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build index request for %q: %w", project, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", i.userAgent)

	resp, err := i.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to query index for %q: %w", project, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("index returned %s for %q", resp.Status, project)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read index response for %q: %w", project, err)
	}

	var info projectInfo
	if unmarshalErr := json.Unmarshal(body, &info); unmarshalErr != nil {
		return "", fmt.Errorf("failed to decode index response for %q: %w", project, unmarshalErr)
	}

	if repoURL := repositoryFromProjectURLs(info.Info.ProjectURLs); repoURL != "" {
		return repoURL, nil
	}
	if repoURL, ok := repositoryURLFrom(info.Info.HomePage); ok {
		return repoURL, nil
	}
	if repoURL := shortestGithubURL(string(body)); repoURL != "" {
		return repoURL, nil
	}
	return "", fmt.Errorf("%w for project %q", ErrNoRepository, project)
}

// repositoryFromProjectURLs picks the first project_urls entry whose key
// names a source repository.
func repositoryFromProjectURLs(projectURLs map[string]string) string {
	lowered := make(map[string]string, len(projectURLs))
	for key, value := range projectURLs {
		lowered[strings.ToLower(strings.TrimSpace(key))] = value
	}
	for _, key := range repositoryURLKeys {
		if repoURL, ok := repositoryURLFrom(lowered[key]); ok {
			return repoURL
		}
	}
	return ""
}

// repositoryURLFrom canonicalizes a URL down to https://<host>/<owner>/<name>
// when it points at a project on a known source host.
func repositoryURLFrom(raw string) (string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" {
		return "", false
	}
	host := strings.ToLower(parsed.Host)
	if host != "github.com" && host != "gitlab.com" {
		return "", false
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return "", false
	}
	name := strings.TrimSuffix(segments[1], ".git")
	return "https://" + host + "/" + segments[0] + "/" + name, true
}

// shortestGithubURL scans the raw metadata for github URLs and returns the
// shortest canonical candidate. Longer matches are usually deep links into
// docs, issues or build badges of the same repository.
func shortestGithubURL(body string) string {
	matches := githubURLPattern.FindAllString(body, -1)
	if len(matches) == 0 {
		return ""
	}
	sort.Slice(matches, func(a, b int) bool {
		if len(matches[a]) != len(matches[b]) {
			return len(matches[a]) < len(matches[b])
		}
		return matches[a] < matches[b]
	})
	for _, match := range matches {
		if repoURL, ok := repositoryURLFrom(match); ok {
			return repoURL
		}
	}
	return ""
}
