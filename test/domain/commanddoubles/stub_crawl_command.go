//go:build integration || unit || test

// Package commanddoubles provides test doubles for the domain command
// interfaces.
package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/pystyle/pystyle/internal/domain/commands"
	"github.com/pystyle/pystyle/internal/domain/entities"
)

// StubCrawlCommand is a stub implementation of commands.Crawl.
type StubCrawlCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.CrawlOptions
}

var _ commands.Crawl = (*StubCrawlCommand)(nil)

func (s *StubCrawlCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.CrawlOptions,
) error {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.ExecuteErr
}
