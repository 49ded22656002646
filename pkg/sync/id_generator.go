package sync

import (
	"math"
	"sync/atomic"
)

// IDGenerator - hands out increasing ids from an atomic counter, used to label waiters.
type IDGenerator struct {
	counter atomic.Int64
}

// NewIDGenerator - creates a generator whose first id is prevID+1.
func NewIDGenerator(prevID int64) *IDGenerator {
	gen := &IDGenerator{}
	gen.counter.Store(prevID)
	return gen
}

// Generate - returns the next id, starting over from 1 after math.MaxInt64.
func (g *IDGenerator) Generate() int64 {
	g.counter.CompareAndSwap(math.MaxInt64, 0)
	return g.counter.Add(1)
}
