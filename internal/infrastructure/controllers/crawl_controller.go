package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pystyle/pystyle/internal/domain/commands"
	"github.com/pystyle/pystyle/internal/domain/entities"
)

// CrawlController handles the "crawl" subcommand.
type CrawlController struct {
	command commands.Crawl
}

// NewCrawlController creates a new CrawlController.
func NewCrawlController(command commands.Crawl) *CrawlController {
	return &CrawlController{command: command}
}

// GetBind returns the Cobra command metadata for the crawl controller.
func (it *CrawlController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "crawl <clones-dir>",
		Short: "Mirror the repositories of projects announced on PyPI",
		Long: `Poll the PyPI RSS feeds, resolve each announced project to its
source repository, and clone or fast-forward the checkout under the
given clones directory.

This is the first half of the cronjob. Single-target modes exist for
debugging and backfills:

  pystyle crawl --repository https://github.com/psf/requests ./clones
  pystyle crawl --project requests ./clones
  pystyle crawl --reclone ../pystyle-data ./clones`,
		Args: cobra.ExactArgs(1),
	}
}

// Execute runs the crawl.
func (it *CrawlController) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	repository, _ := cmd.Flags().GetString("repository")
	project, _ := cmd.Flags().GetString("project")
	reclone, _ := cmd.Flags().GetString("reclone")
	workers, _ := cmd.Flags().GetInt("workers")
	verbose, _ := cmd.Flags().GetBool("verbose")

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if workers > 0 {
		settings.Workers = workers
	}

	logger.Info("Starting crawl...")

	return it.command.Execute(ctx, settings, commands.CrawlOptions{
		CloneDir:   args[0],
		Repository: repository,
		Project:    project,
		RecloneDir: reclone,
		Verbose:    verbose,
	})
}

// AddFlags adds the crawl-specific flags to the given Cobra command.
func (it *CrawlController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("repository", "", "Clone a single repository URL instead of crawling the feeds")
	cmd.Flags().String("project", "", "Crawl a single PyPI project instead of the feeds")
	cmd.Flags().String("reclone", "", "Re-clone every project recorded under the given data directory")
	cmd.Flags().Int("workers", 0, "Concurrent fetches (overrides the settings file)")
}

// loadSettings resolves the --config flag, falling back to discovery and to
// the built-in defaults when no settings file exists anywhere.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debug("No settings file found, using defaults")
			return entities.DefaultSettings(), nil
		}
		configPath = found
	}

	logger.Infof("Using settings file: %s", configPath)

	settings, err := entities.NewSettings(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}
