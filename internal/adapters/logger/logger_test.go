package logger_test

import (
	"bytes"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/catalog/internal/adapters/logger"
	"go.trai.ch/catalog/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger writing to a buffer with colors disabled.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name       string
		log        func(*logger.Logger)
		verbose    bool
		goldenName string
	}{
		{name: "info", log: func(l *logger.Logger) { l.Info("loaded 3 items") }, goldenName: "info_basic"},
		{name: "warn", log: func(l *logger.Logger) { l.Warn("no version set") }, goldenName: "warn_basic"},
		{name: "debug hidden", log: func(l *logger.Logger) { l.Debug("cache hit") }, goldenName: "debug_filtered"},
		{
			name:       "debug verbose",
			log:        func(l *logger.Logger) { l.Debug("cache hit") },
			verbose:    true,
			goldenName: "debug_verbose",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.SetVerbose(tt.verbose)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "simple error",
			err:        os.ErrPermission,
			goldenName: "error_simple",
		},
		{
			name:       "two level chain",
			err:        zerr.Wrap(errors.New("underlying cause"), "wrapped message"),
			goldenName: "error_chain_zerr_two",
		},
		{
			name: "manifest load failure",
			err: func() error {
				fetchErr := zerr.With(
					zerr.With(&domain.FetchError{Path: "/a.json", StatusCode: 500, Snippet: "boom"}, "path", "/a.json"),
					"status_code", 500,
				)
				return zerr.With(zerr.Wrap(fetchErr, domain.ErrManifestLoadFailed.Error()), "key", "/a.json")
			}(),
			goldenName: "error_manifest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)

	assert.Empty(t, buf.String(), "Expected no output for nil error")
}

func TestLogger_SetJSON_WithErrorChain(t *testing.T) {
	middleErr := zerr.Wrap(errors.New("connection refused"), "failed to make manifest request")
	outerErr := zerr.With(middleErr, "path", "/graphs/manifest.json")

	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.Error(outerErr)

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, "failed to make manifest request")
	assert.Contains(t, out, "/graphs/manifest.json")
	assert.NotContains(t, out, "✗", "JSON format should not have pretty markers")
}

func TestLogger_FormatSwitching(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(errors.New("error in pretty mode"))
	prettyOutput := buf.String()
	buf.Reset()

	lg.SetJSON(true)
	lg.Error(errors.New("error in json mode"))
	jsonOutput := buf.String()
	buf.Reset()

	lg.SetJSON(false)
	lg.Error(errors.New("error back in pretty mode"))
	backToPrettyOutput := buf.String()

	assert.Contains(t, prettyOutput, "✗")
	assert.Contains(t, jsonOutput, `"error"`)
	assert.NotContains(t, jsonOutput, "✗")
	assert.Contains(t, backToPrettyOutput, "✗")
}

func TestLogger_SetOutput_NilDefaultsToStderr(t *testing.T) {
	require.NotPanics(t, func() {
		lg := logger.New().(*logger.Logger)
		lg.SetOutput(nil)
	})
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	lg, _ := newTestLogger(t)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(4)
		go func() { defer wg.Done(); lg.Info("concurrent info") }()
		go func() { defer wg.Done(); lg.Warn("concurrent warn") }()
		go func() { defer wg.Done(); lg.Error(errors.New("concurrent error")) }()
		go func() { defer wg.Done(); lg.SetVerbose(true) }()
	}
	wg.Wait()
}
