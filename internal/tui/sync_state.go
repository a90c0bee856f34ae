package tui

import (
	"context"
	"sync"
)

// LoadState sequences the loads of one view. Each Begin cancels the load
// before it and hands out a new generation; only the latest generation may
// apply its result.
type LoadState struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// Begin starts a load derived from parent and supersedes any running one
func (l *LoadState) Begin(parent context.Context) (context.Context, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	l.gen++
	l.cancel = cancel
	return ctx, l.gen
}

// Finish releases the context of gen. It returns false for stale generations,
// whose results must be discarded.
func (l *LoadState) Finish(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen {
		return false
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	return true
}

// Cancel stops the running load, if any. Its result will be stale.
func (l *LoadState) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
}
