package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is the runtime configuration for pystyle. Every field has a
// working default, so the file is optional and a bare binary still crawls
// the public index.
type Settings struct {
	Feeds        []string `yaml:"feeds"`         // RSS feeds announcing projects
	HTTPTimeout  int      `yaml:"http_timeout"`  // seconds, per index request
	CloneDepth   int      `yaml:"clone_depth"`   // history depth for fresh clones, 0 = full
	CloneTimeout int      `yaml:"clone_timeout"` // seconds, per repository sync
	Workers      int      `yaml:"workers"`       // concurrent projects
	Metrics      []string `yaml:"metrics"`       // metric groups to compute, empty = all
}

const (
	defaultHTTPTimeout  = 30
	defaultCloneDepth   = 1
	defaultCloneTimeout = 600
	defaultWorkers      = 4
)

// defaultFeeds are the PyPI feeds polled when the settings file names none:
// recently updated releases plus newly created projects.
//
//nolint:gochecknoglobals // package-level default
var defaultFeeds = []string{
	"https://pypi.org/rss/updates.xml",
	"https://pypi.org/rss/packages.xml",
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() *Settings {
	return &Settings{
		Feeds:        append([]string(nil), defaultFeeds...),
		HTTPTimeout:  defaultHTTPTimeout,
		CloneDepth:   defaultCloneDepth,
		CloneTimeout: defaultCloneTimeout,
		Workers:      defaultWorkers,
		Metrics:      nil,
	}
}

// NewSettings reads and parses a settings file on top of the defaults.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %q: %w", path, err)
	}

	settings := DefaultSettings()
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse settings file %q: %w", path, unmarshalErr)
	}

	if validateErr := validate(settings); validateErr != nil {
		return nil, validateErr
	}

	return settings, nil
}

// FindConfigFile searches for a settings file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".pystyle.yaml",
		".pystyle.yml",
		"pystyle.yaml",
		"pystyle.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("settings file not found in default locations")
}

// HTTPTimeoutDuration is the per-request deadline for index traffic.
func (it *Settings) HTTPTimeoutDuration() time.Duration {
	return time.Duration(it.HTTPTimeout) * time.Second
}

// CloneTimeoutDuration is the per-repository deadline for git traffic.
func (it *Settings) CloneTimeoutDuration() time.Duration {
	return time.Duration(it.CloneTimeout) * time.Second
}

// validate checks for values no run could work with. Feed lists are checked
// at crawl time instead, so an update-only deployment may empty them out.
func validate(settings *Settings) error {
	if settings.HTTPTimeout < 1 {
		return fmt.Errorf("http_timeout must be positive, got %d", settings.HTTPTimeout)
	}
	if settings.CloneTimeout < 1 {
		return fmt.Errorf("clone_timeout must be positive, got %d", settings.CloneTimeout)
	}
	if settings.CloneDepth < 0 {
		return fmt.Errorf("clone_depth must not be negative, got %d", settings.CloneDepth)
	}
	if settings.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", settings.Workers)
	}
	return nil
}
