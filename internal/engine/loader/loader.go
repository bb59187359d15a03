// Package loader resolves manifest path lists into item lists with caching and request coalescing.
package loader

import (
	"context"
	"slices"
	"strings"

	"go.trai.ch/catalog/internal/core/domain"
	"go.trai.ch/catalog/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// LoadOptions tunes a single Load call.
type LoadOptions struct {
	// Force skips the resolved cache entry and starts a new load.
	Force bool
}

// Loader fetches manifest path lists through a ports.ManifestFetcher and caches the results.
type Loader struct {
	fetcher ports.ManifestFetcher
	cache   *Cache
	logger  ports.Logger
	tracer  ports.Tracer
}

// New creates a Loader. A nil cache gets a fresh one.
func New(fetcher ports.ManifestFetcher, cache *Cache, logger ports.Logger, tracer ports.Tracer) *Loader {
	if cache == nil {
		cache = NewCache()
	}
	return &Loader{
		fetcher: fetcher,
		cache:   cache,
		logger:  logger,
		tracer:  tracer,
	}
}

// Load returns the concatenated items of the manifests at paths, in path order.
//
// Resolved path lists are served from the cache. Concurrent loads of the same list share
// one fetch per path. Cancelling ctx stops this caller from waiting; the shared load
// still completes and populates the cache.
func (l *Loader) Load(ctx context.Context, paths []string, opts LoadOptions) ([]domain.ManifestItem, error) {
	if len(paths) == 0 {
		return []domain.ManifestItem{}, nil
	}

	key := domain.NewCacheKey(paths)
	items, fl, leader := l.cache.acquire(key, opts.Force)
	switch {
	case fl == nil:
		l.logger.Debug("manifest cache hit for " + key.String())
		return items, nil
	case leader:
		l.logger.Debug("loading manifests " + key.String())
		runCtx := context.WithoutCancel(ctx)
		if opts.Force {
			runCtx = ports.WithFreshFetch(runCtx)
		}
		go l.run(runCtx, key, slices.Clone(paths), fl)
	default:
		l.logger.Debug("joining in-flight load for " + key.String())
	}

	select {
	case <-fl.done:
		if fl.err != nil {
			return nil, fl.err
		}
		return slices.Clone(fl.items), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Refetch drops any cached result for paths and loads them again. Every path is requested
// anew, even when a request for it is already outstanding.
func (l *Loader) Refetch(ctx context.Context, paths []string) ([]domain.ManifestItem, error) {
	l.Invalidate(paths)
	return l.Load(ctx, paths, LoadOptions{Force: true})
}

// Invalidate drops the cached result for paths.
func (l *Loader) Invalidate(paths []string) {
	l.cache.Invalidate(domain.NewCacheKey(paths))
}

// Peek returns the cached items for paths without loading.
func (l *Loader) Peek(paths []string) ([]domain.ManifestItem, bool) {
	return l.cache.Peek(domain.NewCacheKey(paths))
}

func (l *Loader) run(ctx context.Context, key domain.CacheKey, paths []string, fl *flight) {
	ctx, span := l.tracer.Start(ctx, "load",
		ports.WithAttribute("manifest.key", key.Digest()),
		ports.WithAttribute("manifest.paths", strings.Join(paths, ",")),
	)

	items, err := l.fetchAll(ctx, paths)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrManifestLoadFailed.Error()), "key", key.String())
		span.RecordError(err)
		l.logger.Debug("manifest load failed for " + key.String())
	} else {
		span.SetAttribute("manifest.items", len(items))
	}
	// End before releasing waiters.
	span.End()

	l.cache.complete(key, fl, items, err)
}

// fetchAll fetches every path concurrently and concatenates the results in path order.
// The first failure cancels the remaining fetches and is the one reported.
func (l *Loader) fetchAll(ctx context.Context, paths []string) ([]domain.ManifestItem, error) {
	results := make([][]domain.ManifestItem, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			items, err := l.fetcher.Fetch(ctx, p)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := []domain.ManifestItem{}
	for _, r := range results {
		items = append(items, r...)
	}
	return items, nil
}
