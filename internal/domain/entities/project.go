package entities

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

// ReportFileName is the file name of the per-project style document.
const ReportFileName = "style.json"

// Project is one PyPI project together with the source repository backing it.
// Host, Owner and Repo are derived from the repository URL and double as the
// directory namespace for clones and style documents.
type Project struct {
	Name          string
	RepositoryURL string
	Host          string
	Owner         string
	Repo          string
}

//nolint:gochecknoglobals // compiled once
var nameSeparators = regexp.MustCompile(`[-_.]+`)

// NormalizeProjectName applies PEP 503 normalization: lowercase, with runs of
// hyphens, underscores and dots collapsed to a single hyphen.
func NormalizeProjectName(name string) string {
	return strings.ToLower(nameSeparators.ReplaceAllString(strings.TrimSpace(name), "-"))
}

// NewProject builds a Project from a PyPI name and a repository URL. An empty
// name falls back to the repository name, which keeps log lines readable for
// repositories reached without going through the index.
func NewProject(name, repositoryURL string) (*Project, error) {
	host, owner, repo, err := splitRepositoryURL(repositoryURL)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = repo
	}
	return &Project{
		Name:          name,
		RepositoryURL: "https://" + host + "/" + owner + "/" + repo,
		Host:          host,
		Owner:         owner,
		Repo:          repo,
	}, nil
}

// splitRepositoryURL breaks a repository URL into host, owner and repository
// name. A trailing ".git" on the name is dropped.
func splitRepositoryURL(raw string) (host, owner, repo string, err error) {
	parsed, err := url.Parse(strings.TrimSuffix(strings.TrimSpace(raw), "/"))
	if err != nil {
		return "", "", "", fmt.Errorf("invalid repository URL %q: %w", raw, err)
	}
	if parsed.Host == "" {
		return "", "", "", fmt.Errorf("repository URL %q has no host", raw)
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return "", "", "", fmt.Errorf("repository URL %q has no owner/name path", raw)
	}
	repo = strings.TrimSuffix(segments[1], ".git")
	return strings.ToLower(parsed.Host), segments[0], repo, nil
}

// CloneURL returns the URL handed to git when fetching the repository.
func (it *Project) CloneURL() string {
	return it.RepositoryURL + ".git"
}

// Slug identifies the project in logs and paths: "<host>/<owner>/<repo>".
func (it *Project) Slug() string {
	return it.Host + "/" + it.Owner + "/" + it.Repo
}

// ClonePath returns where the working copy lives under the clones root.
func (it *Project) ClonePath(clonesRoot string) string {
	return filepath.Join(clonesRoot, it.Host, it.Owner, it.Repo)
}

// ReportPath returns where the style document lives under the data root.
func (it *Project) ReportPath(dataRoot string) string {
	return filepath.Join(dataRoot, it.Host, it.Owner, it.Repo, ReportFileName)
}
