package fibonacci

import "math/big"

// Iterative computes F(n) by accumulation over the pair (a, b), starting at
// (0, 1) and advancing n times with (a, b) <- (b, a+b). It runs in O(n)
// additions with O(1) auxiliary big.Int storage and is the baseline the
// other variants are compared against.
type Iterative struct{}

// NewIterative returns the iterative calculator.
func NewIterative() *Iterative { return &Iterative{} }

// Name returns "iterative".
func (*Iterative) Name() string { return "iterative" }

// Compute returns F(n). It never fails.
func (*Iterative) Compute(n uint64) (*big.Int, error) {
	a := big.NewInt(0)
	b := big.NewInt(1)
	for i := uint64(0); i < n; i++ {
		a.Add(a, b) // a = a + b
		a, b = b, a // (a, b) = (old b, old a + old b)
	}
	return a, nil
}
