package loops

import "context"

// Future is the deferred result of an asynchronous API call. It is
// created by the ...Async methods, which run the corresponding
// synchronous call in a goroutine; the outcome is identical to the
// synchronous call's.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// newFuture runs fn in a goroutine and resolves the future with its result.
func newFuture[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = fn()
	}()
	return f
}

// resolvedFuture returns an already-completed future. Used for
// client-side validation failures, which must never reach the network.
func resolvedFuture[T any](val T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), val: val, err: err}
	close(f.done)
	return f
}

// Done returns a channel that is closed when the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the result is available or ctx is cancelled.
// Cancelling ctx abandons the wait; it does not cancel the underlying
// request, which is governed by the context passed to the Async call.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
