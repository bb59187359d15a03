package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go.trai.ch/zerr"
)

var (
	// ErrManifestFetch is returned when a manifest request completes with a non-2xx status.
	ErrManifestFetch = zerr.New("manifest request failed")

	// ErrUnexpectedContent is returned when a markup document is served where a JSON manifest was expected.
	ErrUnexpectedContent = zerr.New("manifest response is markup, not JSON")

	// ErrMalformedJSON is returned when a manifest body cannot be parsed as JSON.
	ErrMalformedJSON = zerr.New("manifest response is not valid JSON")

	// ErrManifestRequestFailed is returned when the manifest request cannot be sent or its body cannot be read.
	ErrManifestRequestFailed = zerr.New("failed to make manifest request")

	// ErrManifestLoadFailed is returned when loading a set of manifests fails.
	ErrManifestLoadFailed = zerr.New("failed to load manifests")

	// ErrInvalidBaseURL is returned when the configured base URL cannot be parsed.
	ErrInvalidBaseURL = zerr.New("invalid base URL")

	// ErrBaseURLRequired is returned when a relative manifest path is fetched without a base URL.
	ErrBaseURLRequired = zerr.New("base URL is required to fetch relative manifest paths")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigEnvFailed is returned when environment overrides cannot be parsed.
	ErrConfigEnvFailed = zerr.New("failed to parse environment overrides")

	// ErrUnsupportedConfigVersion is returned when the config file declares an unknown version.
	ErrUnsupportedConfigVersion = zerr.New("unsupported config version")

	// ErrInvalidHTTPTimeout is returned when the configured HTTP timeout is negative.
	ErrInvalidHTTPTimeout = zerr.New("http timeout must not be negative")

	// ErrUnknownOutputFormat is returned when an output format other than text or json is requested.
	ErrUnknownOutputFormat = zerr.New("unknown output format, expected 'text' or 'json'")

	// ErrInvalidWatchInterval is returned when a negative refetch interval is requested.
	ErrInvalidWatchInterval = zerr.New("watch interval must not be negative")
)

// SnippetLimit is the maximum number of characters of a response body kept for diagnostics.
const SnippetLimit = 200

// Snippet returns at most SnippetLimit characters of body.
func Snippet(body []byte) string {
	if utf8.RuneCount(body) <= SnippetLimit {
		return string(body)
	}
	var b strings.Builder
	n := 0
	for _, r := range string(body) {
		if n == SnippetLimit {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

// FetchError reports a manifest request that completed with a non-2xx status.
type FetchError struct {
	Path       string
	StatusCode int
	Snippet    string
}

func (e *FetchError) Error() string {
	return withSnippet(fmt.Sprintf("request for %s failed with status %d", e.Path, e.StatusCode), e.Snippet)
}

// Is reports whether target is ErrManifestFetch.
func (e *FetchError) Is(target error) bool {
	return target == ErrManifestFetch
}

// UnexpectedContentError reports a markup document served where a JSON manifest was expected.
// Single-page-application servers answer unknown paths with their index page, which would
// otherwise parse to an empty manifest.
type UnexpectedContentError struct {
	Path        string
	StatusCode  int
	ContentType string
	Snippet     string
}

func (e *UnexpectedContentError) Error() string {
	msg := fmt.Sprintf("expected JSON from %s but received markup (status %d", e.Path, e.StatusCode)
	if e.ContentType != "" {
		msg += ", content type " + e.ContentType
	}
	return withSnippet(msg+")", e.Snippet)
}

// Is reports whether target is ErrUnexpectedContent.
func (e *UnexpectedContentError) Is(target error) bool {
	return target == ErrUnexpectedContent
}

// MalformedJSONError reports a manifest body that is not valid JSON.
type MalformedJSONError struct {
	Path    string
	Snippet string
	Cause   error
}

func (e *MalformedJSONError) Error() string {
	msg := "invalid JSON from " + e.Path
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return withSnippet(msg, e.Snippet)
}

// Is reports whether target is ErrMalformedJSON.
func (e *MalformedJSONError) Is(target error) bool {
	return target == ErrMalformedJSON
}

// Unwrap returns the underlying parse error.
func (e *MalformedJSONError) Unwrap() error {
	return e.Cause
}

func withSnippet(msg, snippet string) string {
	if snippet == "" {
		return msg
	}
	return msg + ". Response snippet: " + snippet
}
