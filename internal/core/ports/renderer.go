package ports

import (
	"time"

	"go.trai.ch/catalog/internal/core/domain"
)

// Renderer presents loader results to the user.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// OnItems renders a resolved item list.
	OnItems(items []domain.ManifestItem) error

	// OnLoading reports that a load for the given paths is outstanding.
	OnLoading(paths []string)

	// OnFailure reports a failed load.
	OnFailure(err error)

	// OnSpanComplete reports a finished traced operation.
	OnSpanComplete(name string, duration time.Duration, err error)
}
