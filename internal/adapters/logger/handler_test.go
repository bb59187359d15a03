package logger_test

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/catalog/internal/adapters/logger"
)

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	handler := logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	lg := slog.New(handler).With("key", "/graphs/manifest.json").WithGroup("http")

	lg.Info("fetched", "status", 200)

	g := goldie.New(t)
	g.Assert(t, "handler_attrs_group", buf.Bytes())
}

func TestPrettyHandler_LevelVarIsShared(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	level := &slog.LevelVar{}
	level.Set(slog.LevelInfo)

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: level}))

	lg.Debug("hidden")
	assert.Empty(t, buf.String())

	level.Set(slog.LevelDebug)
	lg.Debug("shown")
	assert.Equal(t, "○ shown\n", buf.String())
}

func TestPrettyHandler_NilOptions(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, nil))

	lg.Debug("hidden")
	lg.Info("visible")
	assert.Equal(t, "visible\n", buf.String())
}

func TestPrettyHandler_ConcurrentWritesKeepLinesWhole(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	base := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	loggers := []*slog.Logger{base, base.With("key", "a"), base.WithGroup("http")}

	var wg sync.WaitGroup
	for _, lg := range loggers {
		for range 20 {
			wg.Go(func() { lg.Info("loaded") })
		}
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 60)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "loaded"), line)
	}
}
