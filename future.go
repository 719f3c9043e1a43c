package inverter

import "context"

// Future is the pending result of GetAsync.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// GetAsync resolves tok in a new goroutine. Concurrent resolutions that reach
// the same singleton or scoped token share one factory run.
func GetAsync[T any](ctx context.Context, r Resolver, tok Token[T]) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.value, f.err = Get(ctx, r, tok)
	}()
	return f
}

// GetAllAsync is GetAll in a new goroutine.
func GetAllAsync[T any](ctx context.Context, r Resolver, tok Token[T]) *Future[[]T] {
	f := &Future[[]T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.value, f.err = GetAll(ctx, r, tok)
	}()
	return f
}

// Await blocks until the resolution finishes or ctx is done. Cancelling ctx
// abandons the wait only; the resolution keeps running.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}
