package loader

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/catalog/internal/adapters/fetcher"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/catalog/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/catalog/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/catalog/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the loader Graft node.
	NodeID graft.ID = "engine.loader"
	// CacheNodeID is the unique identifier for the process-wide manifest cache.
	CacheNodeID graft.ID = "engine.manifest_cache"
)

func init() {
	graft.Register(graft.Node[*Cache]{
		ID:        CacheNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Cache, error) {
			return NewCache(), nil
		},
	})

	graft.Register(graft.Node[*Loader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fetcher.NodeID,
			CacheNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Loader, error) {
			f, err := graft.Dep[ports.ManifestFetcher](ctx)
			if err != nil {
				return nil, err
			}
			cache, err := graft.Dep[*Cache](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return New(f, cache, log, tracer), nil
		},
	})
}
