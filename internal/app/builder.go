package app

import (
	"go.trai.ch/catalog/internal/core/ports"
	"go.trai.ch/catalog/internal/engine/loader"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
	Loader *loader.Loader
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(app *App, logger ports.Logger, l *loader.Loader) *Components {
	return &Components{
		App:    app,
		Logger: logger,
		Loader: l,
	}
}

