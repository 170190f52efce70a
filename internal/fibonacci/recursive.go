package fibonacci

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrRecursionDepthExceeded is returned when the naive recursion would nest
// deeper than its configured limit. A goroutine stack overflow is a fatal
// runtime error that cannot be recovered, so the limit is enforced explicitly.
var ErrRecursionDepthExceeded = errors.New("maximum recursion depth exceeded")

// DepthError describes a recursion limit violation. It matches
// ErrRecursionDepthExceeded with errors.Is.
type DepthError struct {
	// N is the index whose computation was abandoned.
	N uint64
	// Limit is the maximum call depth that was configured.
	Limit int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("%v while computing F(%d) (limit %d)", ErrRecursionDepthExceeded, e.N, e.Limit)
}

func (e *DepthError) Unwrap() error { return ErrRecursionDepthExceeded }

// Recursive computes F(n) = F(n-1) + F(n-2) by direct double recursion.
// It takes Θ(φⁿ) time and exists to show the worst case.
//
// Indices up to MaxFibUint64 are summed as uint64, which cannot overflow
// there; larger indices fall back to big.Int additions.
type Recursive struct {
	maxDepth int
}

// NewRecursive returns a naive recursive calculator bounded by maxDepth
// nested calls. Zero or negative values select DefaultMaxDepth and values
// above MaxAllowedDepth are clamped to it.
func NewRecursive(maxDepth int) *Recursive {
	switch {
	case maxDepth <= 0:
		maxDepth = DefaultMaxDepth
	case maxDepth > MaxAllowedDepth:
		maxDepth = MaxAllowedDepth
	}
	return &Recursive{maxDepth: maxDepth}
}

// Name returns "recursive".
func (*Recursive) Name() string { return "recursive" }

// MaxDepth returns the configured recursion limit.
func (r *Recursive) MaxDepth() int { return r.maxDepth }

// Compute returns F(n), or a *DepthError when the recursion limit is hit.
func (r *Recursive) Compute(n uint64) (*big.Int, error) {
	res, ok := r.fibBig(n, 1)
	if !ok {
		return nil, &DepthError{N: n, Limit: r.maxDepth}
	}
	return res, nil
}

func (r *Recursive) fibBig(n uint64, depth int) (*big.Int, bool) {
	if depth > r.maxDepth {
		return nil, false
	}
	if n <= MaxFibUint64 {
		v, ok := r.fibSmall(n, depth)
		if !ok {
			return nil, false
		}
		return new(big.Int).SetUint64(v), true
	}
	a, ok := r.fibBig(n-1, depth+1)
	if !ok {
		return nil, false
	}
	b, ok := r.fibBig(n-2, depth+1)
	if !ok {
		return nil, false
	}
	return a.Add(a, b), true
}

func (r *Recursive) fibSmall(n uint64, depth int) (uint64, bool) {
	if depth > r.maxDepth {
		return 0, false
	}
	if n <= 1 {
		return n, true
	}
	a, ok := r.fibSmall(n-1, depth+1)
	if !ok {
		return 0, false
	}
	b, ok := r.fibSmall(n-2, depth+1)
	if !ok {
		return 0, false
	}
	return a + b, true
}
