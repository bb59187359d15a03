package fetcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/catalog/internal/adapters/config"
	"go.trai.ch/catalog/internal/adapters/telemetry"
	"go.trai.ch/catalog/internal/core/domain"
	"go.trai.ch/catalog/internal/core/ports"
)

// NodeID is the unique identifier for the manifest fetcher Graft node.
const NodeID graft.ID = "adapter.fetcher"

func init() {
	graft.Register(graft.Node[ports.ManifestFetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ResolvedNodeID, telemetry.TracerNodeID},
		Run: func(ctx context.Context) (ports.ManifestFetcher, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg, WithTracer(tracer))
		},
	})
}
