package pypi

import "net/http"

// NewIndexRepositoryAt creates an index repository pointed at a test server.
func NewIndexRepositoryAt(client *http.Client, userAgent, baseURL string) *IndexRepository {
	return &IndexRepository{
		client:    client,
		baseURL:   baseURL,
		userAgent: userAgent,
	}
}

// ProjectNameFromLink exports projectNameFromLink for testing.
var ProjectNameFromLink = projectNameFromLink //nolint:gochecknoglobals // test export

// ShortestGithubURL exports shortestGithubURL for testing.
var ShortestGithubURL = shortestGithubURL //nolint:gochecknoglobals // test export
