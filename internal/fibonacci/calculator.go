// Package fibonacci provides the Fibonacci implementations that fibbench
// compares: naive double recursion, memoized recursion and iterative
// accumulation. Every implementation satisfies the Calculator interface so
// the probe can instrument any of them the same way.
package fibonacci

import "math/big"

// MaxFibUint64 is the largest index whose Fibonacci number fits in a uint64:
// F(93) < 2^64 <= F(94).
const MaxFibUint64 = 93

// DefaultMaxDepth bounds the call depth of the naive recursive variant.
const DefaultMaxDepth = 1000

// MaxAllowedDepth is the largest accepted recursion limit. Deeper nesting
// could exhaust the goroutine stack before the limit is reached.
const MaxAllowedDepth = 1_000_000

// Calculator computes F(n) with one particular strategy.
type Calculator interface {
	// Name returns a short identifier of the strategy (e.g. "iterative").
	Name() string

	// Compute returns F(n).
	//
	// Returns:
	//   - *big.Int: The calculated Fibonacci number.
	//   - error: A non-nil error if the strategy cannot complete for n
	//     (for instance ErrRecursionDepthExceeded).
	Compute(n uint64) (*big.Int, error)
}

// CacheReporter is implemented by calculators that keep an auxiliary cache
// during a computation. CacheFootprint returns the shallow size in bytes of
// the cache used by the most recent top-level Compute call.
type CacheReporter interface {
	CacheFootprint() int
}

// Options configures the calculators built by a Registry.
type Options struct {
	// MaxDepth is the recursion limit of the naive variant.
	// Zero or negative values select DefaultMaxDepth; values above
	// MaxAllowedDepth are clamped.
	MaxDepth int
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}
