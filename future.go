package hive

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Future is a single-resolution signal carrying a value or an error.
// Only the first Resolve or Fail takes effect. Futures are safe for use from
// multiple goroutines; everything else in the package belongs to the loop thread.
type Future[T any] struct {
	mu   sync.Mutex
	done chan struct{}
	val  T
	err  error
}

// NewFuture returns an unresolved future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolve fulfils the future with v. Returns false if it was already settled.
func (f *Future[T]) Resolve(v T) bool {
	return f.settle(v, nil)
}

// Fail settles the future with err. Returns false if it was already settled.
func (f *Future[T]) Fail(err error) bool {
	var zero T
	return f.settle(zero, err)
}

func (f *Future[T]) settle(v T, err error) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	select {
	case <-f.done:
		return false
	default:
	}
	f.val = v
	f.err = err
	close(f.done)
	return true
}

// Done returns a channel closed once the future settles.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Result reports the settled value without blocking. ok is false while the
// future is still pending.
func (f *Future[T]) Result() (v T, err error, ok bool) {
	select {
	case <-f.done:
	default:
		return v, nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.val, f.err, true
}

// Await blocks until the future settles or ctx ends.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Waiter is the part of a Future that Pending needs.
type Waiter interface {
	Done() <-chan struct{}
	Err() error
}

// Err returns the settlement error, or nil while pending or on success.
func (f *Future[T]) Err() error {
	_, err, _ := f.Result()
	return err
}

// Pending is an append-only list of outstanding signals joined with a
// wait-for-all combinator.
type Pending struct {
	mu      sync.Mutex
	waiters []Waiter
}

// Add appends w to the list.
func (p *Pending) Add(w Waiter) {
	p.mu.Lock()
	p.waiters = append(p.waiters, w)
	p.mu.Unlock()
}

// Len returns the number of signals added so far.
func (p *Pending) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.waiters)
}

func (p *Pending) snapshot() []Waiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Waiter(nil), p.waiters...)
}

// Ready reports, without blocking, whether every signal added so far has
// settled, along with the first error among them in insertion order.
func (p *Pending) Ready() (bool, error) {
	var firstErr error
	for _, w := range p.snapshot() {
		select {
		case <-w.Done():
			if err := w.Err(); err != nil && firstErr == nil {
				firstErr = err
			}
		default:
			return false, nil
		}
	}
	return true, firstErr
}

// Wait blocks until every signal added before the call settles, or until one
// of them fails. Unlike Ready it fails fast, so the error it returns is the
// first failure to arrive, which need not be the first in insertion order.
// It returns ctx.Err() if ctx ends first.
func (p *Pending) Wait(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, w := range p.snapshot() {
		g.Go(func() error {
			select {
			case <-w.Done():
				return w.Err()
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}
	return g.Wait()
}
