package controllers

import (
	"github.com/pystyle/pystyle/internal/domain/entities"
	"go.uber.org/dig"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewCrawlController); err != nil {
		return err
	}
	if err := container.Provide(NewUpdateController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppContext.
func NewControllers(
	crawlController *CrawlController,
	updateController *UpdateController,
) *[]entities.Controller {
	return &[]entities.Controller{
		crawlController,
		updateController,
	}
}
