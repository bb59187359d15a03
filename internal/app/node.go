package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/catalog/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/catalog/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/catalog/internal/core/domain"
	"go.trai.ch/catalog/internal/core/ports"
	"go.trai.ch/catalog/internal/engine/loader"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			loader.NodeID,
			config.ResolvedNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			l, err := graft.Dep[*loader.Loader](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(l, cfg, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			loader.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	l, err := graft.Dep[*loader.Loader](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log, l), nil
}
