package sync

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gammazero/deque"
)

var (
	// ErrNegativePermits - panic value of NewSemaphore called with a negative permit count.
	ErrNegativePermits = errors.New("semaphore: negative initial permits")

	// ErrPermitsOverflow - panic value of Release when the permit counter is already at math.MaxInt.
	ErrPermitsOverflow = errors.New("semaphore: permits overflow")
)

// Semaphore - counting semaphore with a FIFO queue of blocked waiters.
//
// Release hands the permit directly to the longest waiting caller, so the
// available counter stays zero while anybody is queued and TryWait can not
// overtake a blocked Wait.
//
// The zero value is a semaphore without permits. A nil *Semaphore has no
// limit: acquiring never blocks and Release is a no-op.
//
// No goroutine may be blocked in Wait when the semaphore is abandoned,
// it would stay blocked forever.
type Semaphore struct {
	mu      sync.Mutex
	permits int                        // Available permits, 0 while waiters is not empty.
	waiters deque.Deque[chan struct{}] // Ready channels of blocked callers, oldest first.
}

// NewSemaphore creates a new Semaphore with the given number of available permits.
// It panics with ErrNegativePermits if permits is negative.
func NewSemaphore(permits int) *Semaphore {
	if permits < 0 {
		panic(fmt.Errorf("%w: %d", ErrNegativePermits, permits))
	}

	return &Semaphore{permits: permits}
}

// Wait acquires a permit, blocking until one is available.
func (s *Semaphore) Wait() {
	if s == nil {
		return
	}

	ready, ok := s.enqueue()
	if ok {
		return
	}

	<-ready
}

// WaitContext acquires a permit, blocking until one is available or ctx is done.
// If ctx ends first the caller leaves the queue and ctx.Err() is returned.
// A permit handed over before the cancellation was observed is kept and
// the call succeeds.
func (s *Semaphore) WaitContext(ctx context.Context) error {
	if s == nil {
		return nil
	}

	ready, ok := s.enqueue()
	if ok {
		return nil
	}

	select {
	case <-ready:
		return nil
	case <-ctx.Done():
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-ready:
		return nil
	default:
	}

	if i := s.waiters.Index(func(w chan struct{}) bool { return w == ready }); i >= 0 {
		s.waiters.Remove(i)
	}

	return ctx.Err()
}

// WaitTimeout acquires a permit, waiting at most timeout. Reports whether
// the permit was acquired; the permit count is untouched otherwise.
func (s *Semaphore) WaitTimeout(timeout time.Duration) bool {
	if timeout <= 0 {
		return s.TryWait()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return s.WaitContext(ctx) == nil
}

// TryWait acquires a permit only if one is available right now.
func (s *Semaphore) TryWait() bool {
	if s == nil {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.permits == 0 {
		return false
	}

	s.permits--
	return true
}

// Release returns a permit. The oldest waiter, if any, receives it and wakes up.
// It panics with ErrPermitsOverflow instead of wrapping the counter.
func (s *Semaphore) Release() {
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.waiters.Len() > 0 {
		close(s.waiters.PopFront())
		return
	}

	if s.permits == math.MaxInt {
		panic(ErrPermitsOverflow)
	}

	s.permits++
}

// AvailablePermits returns a snapshot of the available permits.
// The value may be stale as soon as it is returned.
func (s *Semaphore) AvailablePermits() int {
	if s == nil {
		return math.MaxInt
	}

	var permits int
	WithLock(&s.mu, func() {
		permits = s.permits
	})

	return permits
}

// Waiters returns a snapshot of the number of blocked callers.
func (s *Semaphore) Waiters() int {
	if s == nil {
		return 0
	}

	var waiters int
	WithLock(&s.mu, func() {
		waiters = s.waiters.Len()
	})

	return waiters
}

// String implements fmt.Stringer.
func (s *Semaphore) String() string {
	if s == nil {
		return "Semaphore(unlimited)"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fmt.Sprintf("Semaphore(permits=%d, waiters=%d)", s.permits, s.waiters.Len())
}

// enqueue takes a free permit, or appends a ready channel for the caller to block on.
func (s *Semaphore) enqueue() (chan struct{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.permits > 0 {
		s.permits--
		return nil, true
	}

	ready := make(chan struct{})
	s.waiters.PushBack(ready)

	return ready, false
}
