// Package app implements the application layer for catalog.
package app

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/catalog/internal/adapters/detector"
	"go.trai.ch/catalog/internal/adapters/linear"
	"go.trai.ch/catalog/internal/adapters/telemetry"
	"go.trai.ch/catalog/internal/core/domain"
	"go.trai.ch/catalog/internal/core/ports"
	"go.trai.ch/catalog/internal/engine/loader"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader   *loader.Loader
	config   *domain.Config
	logger   ports.Logger
	stdout   io.Writer
	stderr   io.Writer
	renderer ports.Renderer
}

// New creates a new App instance.
func New(l *loader.Loader, cfg *domain.Config, log ports.Logger) *App {
	if cfg == nil {
		cfg = domain.DefaultConfig()
	}
	return &App{
		loader: l,
		config: cfg,
		logger: log,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// WithOutput redirects item output and diagnostics.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithRenderer replaces the line renderer.
// This is primarily used for testing.
func (a *App) WithRenderer(r ports.Renderer) *App {
	a.renderer = r
	return a
}

// ViewOptions selects and presents items.
type ViewOptions struct {
	Format   string
	Folder   string
	Provider string
	Sort     bool
	Verbose  bool
}

// LoadOptions configuration for the Load method.
type LoadOptions struct {
	ViewOptions
	Refetch bool
}

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	ViewOptions
	// Interval triggers a refetch on every tick. Zero disables periodic refetching.
	Interval time.Duration
}

// Load resolves paths once and renders the items.
// With no paths the configured manifest set is used.
func (a *App) Load(ctx context.Context, paths []string, opts LoadOptions) error {
	paths = a.resolvePaths(paths)

	renderer, err := a.newRenderer(opts.ViewOptions)
	if err != nil {
		return err
	}
	a.setVerbose(opts.Verbose)

	shutdown := setupOTel(telemetry.NewBridge(renderer))
	defer func() {
		_ = shutdown(context.WithoutCancel(ctx))
	}()

	if _, cached := a.loader.Peek(paths); !cached || opts.Refetch {
		renderer.OnLoading(paths)
	}

	var items []domain.ManifestItem
	if opts.Refetch {
		items, err = a.loader.Refetch(ctx, paths)
	} else {
		items, err = a.loader.Load(ctx, paths, loader.LoadOptions{})
	}
	if err != nil {
		return err
	}

	return renderer.OnItems(view(items, opts.ViewOptions))
}

// Watch follows paths and renders every state change until ctx is done.
func (a *App) Watch(ctx context.Context, paths []string, opts WatchOptions) error {
	if opts.Interval < 0 {
		return zerr.With(domain.ErrInvalidWatchInterval, "interval", opts.Interval.String())
	}
	paths = a.resolvePaths(paths)

	renderer, err := a.newRenderer(opts.ViewOptions)
	if err != nil {
		return err
	}
	a.setVerbose(opts.Verbose)

	shutdown := setupOTel(telemetry.NewBridge(renderer))
	defer func() {
		_ = shutdown(context.WithoutCancel(ctx))
	}()

	sub := a.loader.Subscribe(ctx, paths)
	defer sub.Close()

	var tick <-chan time.Time
	if opts.Interval > 0 {
		ticker := time.NewTicker(opts.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			a.logger.Debug("refetching " + domain.NewCacheKey(paths).String())
			sub.Refetch()
		case st, ok := <-sub.Updates():
			if !ok {
				return nil
			}
			switch {
			case st.Loading:
				renderer.OnLoading(paths)
			case st.Err != nil:
				renderer.OnFailure(st.Err)
			default:
				if err := renderer.OnItems(view(st.Items, opts.ViewOptions)); err != nil {
					return err
				}
			}
		}
	}
}

// Key returns the cache key of paths, resolved like Load resolves them.
func (a *App) Key(paths []string) domain.CacheKey {
	return domain.NewCacheKey(a.resolvePaths(paths))
}

func (a *App) resolvePaths(paths []string) []string {
	if len(paths) > 0 {
		return paths
	}
	if len(a.config.Paths) > 0 {
		return a.config.Paths
	}
	return []string{domain.DefaultManifestPath}
}

func (a *App) newRenderer(opts ViewOptions) (ports.Renderer, error) {
	if a.renderer != nil {
		return a.renderer, nil
	}
	format, err := resolveFormat(opts.Format, a.stdout)
	if err != nil {
		return nil, err
	}
	return linear.NewRenderer(a.stdout, a.stderr,
		linear.WithFormat(format),
		linear.WithVerbose(opts.Verbose),
	), nil
}

// resolveFormat maps "auto" (or nothing) to the format suited to stdout.
func resolveFormat(flag string, stdout io.Writer) (linear.Format, error) {
	flag = strings.ToLower(flag)
	if flag != "" && flag != "auto" {
		return linear.ParseFormat(flag)
	}
	if detector.ResolveMode(detector.DetectEnvironment(stdout), flag) == detector.ModeJSON {
		return linear.FormatJSON, nil
	}
	return linear.FormatText, nil
}

// setVerbose enables debug logs on loggers that support it.
func (a *App) setVerbose(verbose bool) {
	if v, ok := a.logger.(interface{ SetVerbose(bool) }); ok {
		v.SetVerbose(verbose)
	}
}

func view(items []domain.ManifestItem, opts ViewOptions) []domain.ManifestItem {
	if opts.Folder != "" {
		items = domain.FilterByFolder(items, opts.Folder)
	}
	if opts.Provider != "" {
		items = domain.FilterByProvider(items, opts.Provider)
	}
	if opts.Sort {
		items = domain.SortItems(items)
	}
	return items
}

// setupOTel configures the OpenTelemetry SDK with the renderer bridge.
// The returned function flushes and stops the provider.
func setupOTel(bridge *telemetry.Bridge) func(context.Context) error {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}
