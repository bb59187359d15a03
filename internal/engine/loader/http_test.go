package loader_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/catalog/internal/adapters/fetcher"
	"go.trai.ch/catalog/internal/adapters/telemetry"
	"go.trai.ch/catalog/internal/core/domain"
	"go.trai.ch/catalog/internal/core/ports/mocks"
	"go.trai.ch/catalog/internal/engine/loader"
	"go.uber.org/mock/gomock"
)

func TestLoader_Refetch_RequestsAgainWhileLoadInFlight(t *testing.T) {
	var hits atomic.Int32
	firstHit := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if hits.Add(1) == 1 {
			close(firstHit)
			<-release
			_, _ = io.WriteString(w, `["old.png"]`)
			return
		}
		_, _ = io.WriteString(w, `["new.png"]`)
	}))
	t.Cleanup(server.Close)
	releaseFirst := sync.OnceFunc(func() { close(release) })
	t.Cleanup(releaseFirst)

	f, err := fetcher.New(&domain.Config{BaseURL: server.URL})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	l := loader.New(f, nil, log, telemetry.NewNoOpTracer())

	paths := []string{"/manifest.json"}
	first := make(chan []domain.ManifestItem, 1)
	go func() {
		got, err := l.Load(context.Background(), paths, loader.LoadOptions{})
		assert.NoError(t, err)
		first <- got
	}()
	<-firstHit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	got, err := l.Refetch(ctx, paths)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new.png", got[0].File)
	assert.Equal(t, int32(2), hits.Load())

	releaseFirst()
	old := <-first
	require.Len(t, old, 1)
	assert.Equal(t, "old.png", old[0].File)

	cached, ok := l.Peek(paths)
	require.True(t, ok)
	assert.Equal(t, "new.png", cached[0].File)
}
