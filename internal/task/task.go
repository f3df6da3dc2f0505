// Package task runs a split or merge operation on a worker goroutine so the
// caller stays responsive, exposing its progress as a channel.
package task

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sansecio/splitmerge/internal/progress"
)

// Op is an operation that reports progress through report.
type Op[T any] func(ctx context.Context, report progress.Func) (T, error)

// Handle tracks a running operation.
type Handle[T any] struct {
	g        *errgroup.Group
	progress chan float64
	value    T
}

// Start launches op. Progress updates are coalesced: a slow reader only ever
// sees the most recent fraction, and never blocks the worker.
func Start[T any](ctx context.Context, op Op[T]) *Handle[T] {
	g, gctx := errgroup.WithContext(ctx)
	h := &Handle[T]{g: g, progress: make(chan float64, 1)}
	g.Go(func() error {
		defer close(h.progress)
		v, err := op(gctx, h.send)
		h.value = v
		return err
	})
	return h
}

// send is called only from the worker goroutine.
func (h *Handle[T]) send(f float64) {
	select {
	case h.progress <- f:
		return
	default:
	}
	// drop the stale value and retry once; the worker is the only sender
	select {
	case <-h.progress:
	default:
	}
	select {
	case h.progress <- f:
	default:
	}
}

// Progress returns the progress channel. It is closed when the operation ends.
func (h *Handle[T]) Progress() <-chan float64 { return h.progress }

// Wait blocks until the operation finishes and returns its result.
func (h *Handle[T]) Wait() (T, error) {
	err := h.g.Wait()
	return h.value, err
}
