// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/catalog/internal/core/domain"
)

// ManifestFetcher retrieves a single manifest document and normalizes it into items.
//
//go:generate go run go.uber.org/mock/mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type ManifestFetcher interface {
	// Fetch requests the manifest at path and returns its items in document order.
	//
	// Failures are reported per path as *domain.FetchError, *domain.UnexpectedContentError
	// or *domain.MalformedJSONError, possibly wrapped with metadata.
	Fetch(ctx context.Context, path string) ([]domain.ManifestItem, error)
}

type freshFetchKey struct{}

// WithFreshFetch marks ctx so fetchers issue a new request instead of joining one in flight.
func WithFreshFetch(ctx context.Context) context.Context {
	return context.WithValue(ctx, freshFetchKey{}, true)
}

// IsFreshFetch reports whether ctx was marked by WithFreshFetch.
func IsFreshFetch(ctx context.Context) bool {
	fresh, _ := ctx.Value(freshFetchKey{}).(bool)
	return fresh
}
