package internal

import (
	"github.com/pystyle/pystyle/internal/domain/entities"
)

// AppContext aggregates everything the CLI layer pulls out of the container.
type AppContext struct {
	controllers *[]entities.Controller
}

// NewAppContext creates the application context from the aggregated
// controllers.
func NewAppContext(controllers *[]entities.Controller) *AppContext {
	return &AppContext{controllers: controllers}
}

// GetControllers returns every registered controller.
func (it *AppContext) GetControllers() []entities.Controller {
	return *it.controllers
}
