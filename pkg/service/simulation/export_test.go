package simulation

import "math/rand/v2"

// Poisson is exported for testing
var Poisson = poisson

// BatchRand is exported for testing
var BatchRand = batchRand

// NewTestRand returns a deterministic stream for tests
func NewTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// WithBatchDone registers f to be called after each batch is drawn
func WithBatchDone(f func(b int)) Option {
	return func(e *Engine) {
		e.batchDone = f
	}
}
