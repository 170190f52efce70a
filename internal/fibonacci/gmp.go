//go:build gmp

// This file adds a GMP-backed iterative variant, compiled only with
// `go build -tags=gmp` on systems where libgmp is installed
// (Debian/Ubuntu: libgmp-dev, macOS: brew install gmp). Default builds stay
// pure Go with math/big.

package fibonacci

import (
	"fmt"
	"math/big"

	"github.com/ncw/gmp"
)

func init() {
	RegisterVariant("gmp", "GMP Speed Fibonacci", RoleBaseline, func(Options) Calculator { return &GMPIterative{} })
}

// GMPIterative runs the same (a, b) <- (b, a+b) accumulation as Iterative
// on GMP integers. It shows how much of the baseline cost is math/big
// addition.
type GMPIterative struct{}

// Name returns "gmp".
func (*GMPIterative) Name() string { return "gmp" }

// Compute returns F(n) converted back to a big.Int.
func (*GMPIterative) Compute(n uint64) (*big.Int, error) {
	a := gmp.NewInt(0)
	b := gmp.NewInt(1)
	for i := uint64(0); i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	res, ok := new(big.Int).SetString(a.String(), 10)
	if !ok {
		return nil, fmt.Errorf("gmp: cannot convert F(%d) to big.Int", n)
	}
	return res, nil
}
