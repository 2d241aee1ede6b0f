package repositories

import (
	"net/http"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"go.uber.org/dig"

	"github.com/pystyle/pystyle/internal/domain/entities"
	domainRepos "github.com/pystyle/pystyle/internal/domain/repositories"
	gitRepo "github.com/pystyle/pystyle/internal/infrastructure/repositories/git"
	pypiRepo "github.com/pystyle/pystyle/internal/infrastructure/repositories/pypi"
	reportRepo "github.com/pystyle/pystyle/internal/infrastructure/repositories/report"
	styleRepo "github.com/pystyle/pystyle/internal/infrastructure/repositories/style"
)

const httpRetryMax = 3

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(newHTTPClient); err != nil {
		return err
	}

	if err := container.Provide(func(client *http.Client) domainRepos.FeedRepository {
		return pypiRepo.NewFeedRepository(client, entities.UserAgent)
	}); err != nil {
		return err
	}

	if err := container.Provide(func(client *http.Client) domainRepos.IndexRepository {
		return pypiRepo.NewIndexRepository(client, entities.UserAgent)
	}); err != nil {
		return err
	}

	if err := container.Provide(gitRepo.NewSourceRepository); err != nil {
		return err
	}

	if err := container.Provide(reportRepo.NewReportRepository); err != nil {
		return err
	}

	// Register analyzer registry with all metric group implementations
	if err := container.Provide(func() *AnalyzerRegistry {
		reg := NewAnalyzerRegistry()
		reg.Register(styleRepo.NewFilesAnalyzer())
		reg.Register(styleRepo.NewDirsAnalyzer())
		reg.Register(styleRepo.NewLicenseAnalyzer())
		reg.Register(styleRepo.NewLinesAnalyzer())
		reg.Register(styleRepo.NewShebangAnalyzer())
		reg.Register(styleRepo.NewFutureAnalyzer())
		reg.Register(styleRepo.NewTestEngineAnalyzer())
		reg.Register(styleRepo.NewRequirementsAnalyzer())
		return reg
	}); err != nil {
		return err
	}

	return nil
}

// newHTTPClient builds the retrying HTTP client shared by the index
// repositories. Retries with backoff smooth over the rate limiting a polite
// crawler still runs into; per-request deadlines come from the caller's
// context.
func newHTTPClient() *http.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = httpRetryMax
	client.Logger = nil
	return client.StandardClient()
}
