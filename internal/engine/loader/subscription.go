package loader

import (
	"context"
	"slices"
	"sync"

	"go.trai.ch/catalog/internal/core/domain"
)

// State is what a subscriber currently knows about its path list.
type State struct {
	Items   []domain.ManifestItem
	Loading bool
	Err     error
}

// Error returns the failure message, or "" when the last load succeeded.
func (s State) Error() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// Subscription follows the load state of one path list.
//
// Items from the last successful load are kept while a reload is outstanding and after
// it fails. Only the most recent request of a subscription is applied, and nothing is
// applied once it is closed.
type Subscription struct {
	loader *Loader
	paths  []string
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	state   State
	gen     uint64
	closed  bool
	updates chan State
}

// Subscribe starts following paths. A resolved cache entry is delivered immediately;
// otherwise a load is started.
func (l *Loader) Subscribe(ctx context.Context, paths []string) *Subscription {
	subCtx, cancel := context.WithCancel(ctx)
	s := &Subscription{
		loader:  l,
		paths:   slices.Clone(paths),
		ctx:     subCtx,
		cancel:  cancel,
		updates: make(chan State, 1),
	}

	if items, ok := l.Peek(paths); ok {
		s.state = State{Items: items}
		s.publishLocked()
		return s
	}

	s.mu.Lock()
	s.start(LoadOptions{})
	s.mu.Unlock()
	return s
}

// State returns the current state.
func (s *Subscription) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Updates delivers state transitions. Only the latest undelivered state is kept, so a
// slow reader skips intermediate states. The channel is closed by Close.
func (s *Subscription) Updates() <-chan State {
	return s.updates
}

// Refetch reloads the path list, bypassing the cache. A load started earlier by this
// subscription is no longer applied.
func (s *Subscription) Refetch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.loader.Invalidate(s.paths)
	s.start(LoadOptions{Force: true})
}

// Close stops the subscription. Loads it started keep running for other callers.
func (s *Subscription) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.updates)
	}
	s.mu.Unlock()
	s.cancel()
}

// start must be called with s.mu held.
// An empty path list resolves immediately to no items without a loading state.
func (s *Subscription) start(opts LoadOptions) {
	s.gen++
	gen := s.gen
	if len(s.paths) == 0 {
		s.state = State{Items: []domain.ManifestItem{}}
		s.publishLocked()
		return
	}

	s.state = State{Items: s.state.Items, Loading: true}
	s.publishLocked()

	go func() {
		items, err := s.loader.Load(s.ctx, s.paths, opts)
		s.apply(gen, items, err)
	}()
}

func (s *Subscription) apply(gen uint64, items []domain.ManifestItem, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.gen || s.ctx.Err() != nil {
		return
	}

	if err != nil {
		s.state = State{Items: s.state.Items, Err: err}
	} else {
		s.state = State{Items: items}
	}
	s.publishLocked()
}

// publishLocked replaces any undelivered state with the current one.
// It must be called with s.mu held, or before s is shared.
func (s *Subscription) publishLocked() {
	if s.closed {
		return
	}
	select {
	case <-s.updates:
	default:
	}
	s.updates <- s.state
}
