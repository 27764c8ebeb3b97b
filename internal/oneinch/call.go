package oneinch

import "context"

// Call adapters. Every remote operation has one core implementation: a
// context-based function returning (value, error). The future and stream
// variants below are thin derivations of that core, so the three calling
// conventions cannot drift apart in result or error type. The blocking
// convention is the core function called directly.

// Result pairs a value with the error produced alongside it.
type Result[T any] struct {
	Value T
	Err   error
}

// Future is a single-result promise. It resolves or rejects exactly like the
// blocking call it was derived from.
type Future[T any] struct {
	done   chan struct{}
	value  T
	err    error
	cancel context.CancelFunc
}

// Go runs fn on its own goroutine and returns a Future for its result.
// Cancelling the supplied context, or calling Cancel, propagates to the
// in-flight request through fn's context.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	ctx, cancel := context.WithCancel(ctx)
	f := &Future[T]{done: make(chan struct{}), cancel: cancel}

	go func() {
		defer close(f.done)
		f.value, f.err = fn(ctx)
	}()

	return f
}

// Await blocks until the future resolves or ctx is done, whichever is first.
// An early ctx expiry cancels the underlying call. A future that has already
// resolved returns its result even when ctx has expired.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	// A resolved future wins over an expired ctx. The two-way select below
	// picks arbitrarily when both channels are ready.
	select {
	case <-f.done:
		return f.value, f.err
	default:
	}

	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		f.cancel()
		<-f.done
		// The call may have completed before the cancellation landed.
		if f.err == nil {
			return f.value, nil
		}
		var zero T
		return zero, f.err
	}
}

// Done returns a channel closed when the future has resolved.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Cancel aborts the underlying call. Await still returns, with the
// cancellation error.
func (f *Future[T]) Cancel() {
	f.cancel()
}

// Stream runs fn and emits exactly one Result on the returned channel before
// closing it. Consumers range over the channel in the usual way.
func Stream[T any](ctx context.Context, fn func(context.Context) (T, error)) <-chan Result[T] {
	out := make(chan Result[T], 1)

	go func() {
		defer close(out)
		value, err := fn(ctx)
		out <- Result[T]{Value: value, Err: err}
	}()

	return out
}
