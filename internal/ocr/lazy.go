package ocr

import (
	"context"
	"sync"
)

// Lazy defers engine construction until the first Recognize call and then
// reuses the same engine for all documents. Construction is expensive, so
// it happens at most once per process.
type Lazy struct {
	construct func() (Engine, error)

	once   sync.Once
	engine Engine
	err    error

	mu     sync.Mutex
	closed bool
}

// NewLazy wraps an engine constructor.
func NewLazy(construct func() (Engine, error)) *Lazy {
	return &Lazy{construct: construct}
}

// Recognize initializes the engine on first use and delegates to it.
func (l *Lazy) Recognize(ctx context.Context, data []byte) (string, error) {
	l.once.Do(func() {
		l.engine, l.err = l.construct()
	})
	if l.err != nil {
		return "", l.err
	}
	return l.engine.Recognize(ctx, data)
}

// Close shuts down the engine if it was ever constructed.
func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	if l.engine != nil {
		return l.engine.Close()
	}
	return nil
}
