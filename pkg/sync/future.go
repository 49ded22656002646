package sync

import "sync"

// Future - single-assignment slot for a value produced by another goroutine.
type Future[T any] struct {
	result chan T
	once   *sync.Once
}

// NewFuture - creates an empty Future.
func NewFuture[T any]() Future[T] {
	return Future[T]{result: make(chan T, 1), once: &sync.Once{}}
}

// Get - blocks until the value is set and returns it. Must be called at most once.
func (f Future[T]) Get() T {
	return <-f.result
}

// Set - stores the value without blocking. Only the first call has an effect.
func (f Future[T]) Set(value T) {
	f.once.Do(func() {
		f.result <- value
	})
}
