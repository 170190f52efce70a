package fibonacci

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestGrowth_PropertyBased checks two growth properties of the sequence on
// random indices: F(n+1) >= F(n), and F(n) >= n-1 for n >= 1.
func TestGrowth_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	calculators := []Calculator{NewMemoized(), NewIterative()}

	for _, calc := range calculators {
		calc := calc
		properties.Property(calc.Name()+" is non-decreasing", prop.ForAll(
			func(n uint64) bool {
				fn, err := calc.Compute(n)
				if err != nil {
					return false
				}
				next, err := calc.Compute(n + 1)
				if err != nil {
					return false
				}
				return next.Cmp(fn) >= 0
			},
			gen.UInt64Range(0, 3000),
		))

		properties.Property(calc.Name()+" satisfies F(n) >= n-1", prop.ForAll(
			func(n uint64) bool {
				fn, err := calc.Compute(n)
				if err != nil {
					return false
				}
				return fn.Cmp(new(big.Int).SetUint64(n-1)) >= 0
			},
			gen.UInt64Range(1, 3000),
		))
	}

	properties.TestingRun(t)
}

// TestRecursiveAgreement_PropertyBased compares the naive recursion with the
// iterative baseline on the range where the recursion stays cheap.
func TestRecursiveAgreement_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	rec := NewRecursive(DefaultMaxDepth)
	iter := NewIterative()

	properties.Property("recursive equals iterative", prop.ForAll(
		func(n uint64) bool {
			a, err := rec.Compute(n)
			if err != nil {
				return false
			}
			b, _ := iter.Compute(n)
			return a.Cmp(b) == 0
		},
		gen.UInt64Range(0, 24),
	))

	properties.TestingRun(t)
}
