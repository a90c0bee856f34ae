package mock

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// DefaultGUIDPoolSize is the number of GUIDs kept ready
const DefaultGUIDPoolSize = 100

// ErrPoolClosed is returned once the pool is stopped
var ErrPoolClosed = errors.New("guid pool closed")

// GUIDPool pre-generates GUIDs on a background goroutine.
// The producer blocks while the pool is full; Next blocks while it is empty.
type GUIDPool struct {
	queue  chan string
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

// NewGUIDPool starts a producer filling a queue of the given capacity
func NewGUIDPool(size int, logger *slog.Logger) *GUIDPool {
	if size <= 0 {
		size = DefaultGUIDPoolSize
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &GUIDPool{
		queue:  make(chan string, size),
		cancel: cancel,
		done:   make(chan struct{}),
		logger: logger,
	}
	go p.produce(ctx)
	return p
}

func (p *GUIDPool) produce(ctx context.Context) {
	defer close(p.done)
	p.logger.Debug("guid producer started", "capacity", cap(p.queue))
	for {
		guid := uuid.NewString()
		select {
		case p.queue <- guid:
		case <-ctx.Done():
			p.logger.Debug("guid producer stopped")
			return
		}
	}
}

// Next takes one GUID from the pool
func (p *GUIDPool) Next(ctx context.Context) (string, error) {
	select {
	case guid := <-p.queue:
		return guid, nil
	case <-p.done:
		return "", ErrPoolClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Len returns the number of GUIDs ready
func (p *GUIDPool) Len() int {
	return len(p.queue)
}

// Stop halts the producer and waits for it to exit
func (p *GUIDPool) Stop() {
	p.once.Do(func() {
		p.cancel()
		<-p.done
	})
}
