// Package future provides a minimal generic future used as the return value
// of every non-blocking proxy operation.
package future

import (
	"context"
	"sync"
)

// Future is completed exactly once with either a value or an error.
// Waiters can block with Wait, select on Done, or register OnDone callbacks.
type Future[T any] struct {
	ch   chan struct{} // closed on completion
	once sync.Once

	mu    sync.Mutex
	value T
	err   error
}

// New returns a pending future together with the functions that complete it.
// Only the first completion takes effect; later calls are ignored.
func New[T any]() (f *Future[T], resolve func(T), reject func(error)) {
	f = &Future[T]{ch: make(chan struct{})}
	return f, f.resolve, f.reject
}

// Resolved returns a future already completed with v.
func Resolved[T any](v T) *Future[T] {
	f, resolve, _ := New[T]()
	resolve(v)
	return f
}

// Rejected returns a future already completed with err.
func Rejected[T any](err error) *Future[T] {
	f, _, reject := New[T]()
	reject(err)
	return f
}

func (f *Future[T]) resolve(v T) {
	f.complete(v, nil)
}

func (f *Future[T]) reject(err error) {
	var zero T
	f.complete(zero, err)
}

func (f *Future[T]) complete(v T, err error) {
	f.once.Do(func() {
		f.mu.Lock()
		f.value, f.err = v, err
		f.mu.Unlock()
		close(f.ch)
	})
}

// Done returns a channel that is closed once the future is completed.
func (f *Future[T]) Done() <-chan struct{} {
	return f.ch
}

// Wait blocks until the future completes or ctx is done. Abandoning a wait
// does not cancel the underlying work.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.ch:
		return f.load()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result returns the outcome without blocking. ok is false while pending.
func (f *Future[T]) Result() (v T, ok bool, err error) {
	select {
	case <-f.ch:
		v, err = f.load()
		return v, true, err
	default:
		return v, false, nil
	}
}

// OnDone runs cb in its own goroutine once the future completes.
func (f *Future[T]) OnDone(cb func(T, error)) {
	go func() {
		<-f.ch
		cb(f.load())
	}()
}

func (f *Future[T]) load() (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.err
}

// Then returns a future completed with fn applied to the value of f.
// An error from f is passed through unchanged and fn is not called.
func Then[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	next, resolve, reject := New[U]()
	f.OnDone(func(v T, err error) {
		if err != nil {
			reject(err)
			return
		}
		u, err := fn(v)
		if err != nil {
			reject(err)
			return
		}
		resolve(u)
	})
	return next
}
