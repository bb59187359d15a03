// Package fetcher implements the ManifestFetcher port over HTTP.
package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strings"

	"go.trai.ch/catalog/internal/adapters/telemetry"
	"go.trai.ch/catalog/internal/core/domain"
	"go.trai.ch/catalog/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// HTTPFetcher implements ports.ManifestFetcher by GETting manifests relative to a base URL.
type HTTPFetcher struct {
	baseURL     *url.URL
	client      *http.Client
	userAgent   string
	headers     http.Header
	inferFolder bool
	tracer      ports.Tracer

	requests singleflight.Group
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithClient sets the HTTP client used for manifest requests.
func WithClient(client *http.Client) Option {
	return func(f *HTTPFetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithHeader adds a header sent with every manifest request.
func WithHeader(key, value string) Option {
	return func(f *HTTPFetcher) {
		f.headers.Add(key, value)
	}
}

// WithTracer sets the tracer used for per-request spans.
func WithTracer(tracer ports.Tracer) Option {
	return func(f *HTTPFetcher) {
		if tracer != nil {
			f.tracer = tracer
		}
	}
}

// New creates an HTTPFetcher from the resolved configuration.
func New(cfg *domain.Config, opts ...Option) (*HTTPFetcher, error) {
	if cfg == nil {
		cfg = domain.DefaultConfig()
	}

	base, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	timeout := cfg.HTTP.Timeout
	if timeout == 0 {
		timeout = domain.DefaultHTTPTimeout
	}

	f := &HTTPFetcher{
		baseURL:     base,
		client:      &http.Client{Timeout: timeout},
		userAgent:   cfg.HTTP.UserAgent,
		headers:     make(http.Header),
		inferFolder: cfg.InferFolder,
		tracer:      telemetry.NewNoOpTracer(),
	}
	for k, v := range cfg.HTTP.Headers {
		f.headers.Set(k, v)
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch requests the manifest at manifestPath and normalizes it.
//
// Concurrent fetches of the same URL share one request. A ctx marked with
// ports.WithFreshFetch starts a new request that later callers join instead. The shared
// request is not cancelled when ctx is; ctx only bounds how long this caller waits for it.
func (f *HTTPFetcher) Fetch(ctx context.Context, manifestPath string) ([]domain.ManifestItem, error) {
	target, err := f.resolve(manifestPath)
	if err != nil {
		return nil, err
	}
	folder := f.defaultFolder(manifestPath)

	key := target + "\x00" + folder
	if ports.IsFreshFetch(ctx) {
		f.requests.Forget(key)
	}
	ch := f.requests.DoChan(key, func() (any, error) {
		return f.fetch(context.WithoutCancel(ctx), manifestPath, target, folder)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		items, _ := res.Val.([]domain.ManifestItem)
		return slices.Clone(items), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *HTTPFetcher) fetch(ctx context.Context, manifestPath, target, folder string) ([]domain.ManifestItem, error) {
	ctx, span := f.tracer.Start(ctx, "fetch "+manifestPath,
		ports.WithAttribute("manifest.path", manifestPath),
		ports.WithAttribute("http.url", target),
	)
	defer span.End()

	status, contentType, body, err := f.get(ctx, manifestPath, target)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("http.status_code", status)

	raw, err := ValidateResponse(manifestPath, status, contentType, body)
	if err != nil {
		err = zerr.With(zerr.With(err, "path", manifestPath), "status_code", status)
		span.RecordError(err)
		return nil, err
	}

	items := domain.Normalize(raw, folder)
	span.SetAttribute("manifest.items", len(items))
	return items, nil
}

func (f *HTTPFetcher) get(ctx context.Context, manifestPath, target string) (int, string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return 0, "", nil, zerr.With(zerr.Wrap(err, domain.ErrManifestRequestFailed.Error()), "path", manifestPath)
	}
	req.Header.Set("Accept", "application/json")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	for k, values := range f.headers {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, "", nil, zerr.With(zerr.Wrap(err, domain.ErrManifestRequestFailed.Error()), "path", manifestPath)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		readErr := zerr.With(zerr.Wrap(err, domain.ErrManifestRequestFailed.Error()), "path", manifestPath)
		return 0, "", nil, zerr.With(readErr, "status_code", resp.StatusCode)
	}

	return resp.StatusCode, resp.Header.Get("Content-Type"), body, nil
}

// resolve turns a manifest path into the URL to request.
// Absolute http(s) URLs are used as-is; anything else is appended to the base URL's path.
func (f *HTTPFetcher) resolve(manifestPath string) (string, error) {
	if isAbsoluteURL(manifestPath) {
		return manifestPath, nil
	}
	if f.baseURL == nil {
		return "", zerr.With(domain.ErrBaseURLRequired, "path", manifestPath)
	}

	ref, err := url.Parse(manifestPath)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrManifestRequestFailed.Error()), "path", manifestPath)
	}

	u := *f.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(ref.Path, "/")
	u.RawPath = ""
	u.RawQuery = ref.RawQuery
	u.Fragment = ""
	return u.String(), nil
}

// defaultFolder is the folder given to entries that do not name one.
func (f *HTTPFetcher) defaultFolder(manifestPath string) string {
	if !f.inferFolder {
		return ""
	}
	p := manifestPath
	if u, err := url.Parse(manifestPath); err == nil {
		p = u.Path
	}
	dir := strings.Trim(path.Dir(p), "/")
	if dir == "." {
		return ""
	}
	return dir
}

func parseBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidBaseURL.Error()), "base_url", raw)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, zerr.With(domain.ErrInvalidBaseURL, "base_url", raw)
	}
	return u, nil
}

func isAbsoluteURL(p string) bool {
	lower := strings.ToLower(p)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
