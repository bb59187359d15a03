// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/catalog/internal/adapters/config"
	_ "go.trai.ch/catalog/internal/adapters/fetcher"
	_ "go.trai.ch/catalog/internal/adapters/logger"
	_ "go.trai.ch/catalog/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/catalog/internal/app"
	_ "go.trai.ch/catalog/internal/engine/loader"
)
