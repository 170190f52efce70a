package fibonacci

import (
	"errors"
	"testing"
)

// FuzzMemoizedMatchesIterative checks the memoized recursion against the
// iterative loop on arbitrary indices.
func FuzzMemoizedMatchesIterative(f *testing.F) {
	for _, n := range []uint64{0, 1, 2, 10, 45, 92, 93, 94, 500, 3000} {
		f.Add(n)
	}

	f.Fuzz(func(t *testing.T, n uint64) {
		if n > 5000 {
			return
		}
		want, err := NewIterative().Compute(n)
		if err != nil {
			t.Fatalf("iterative failed for n=%d: %v", n, err)
		}
		got, err := NewMemoized().Compute(n)
		if err != nil {
			t.Fatalf("memoized failed for n=%d: %v", n, err)
		}
		if got.Cmp(want) != 0 {
			t.Errorf("n=%d: memoized %s, iterative %s", n, got, want)
		}
		if got.Sign() < 0 {
			t.Errorf("negative result for n=%d", n)
		}
	})
}

// FuzzRecursiveLimit checks that the naive recursion either matches the
// iterative result or reports the depth limit, never anything else.
func FuzzRecursiveLimit(f *testing.F) {
	f.Add(uint64(5), 3)
	f.Add(uint64(20), 25)
	f.Add(uint64(200), 1000)
	f.Add(uint64(60_000_000), 50_000)

	f.Fuzz(func(t *testing.T, n uint64, limit int) {
		if n > 25 {
			// Anything deeper than the limit fails fast, anything shallower
			// is exponential; keep the latter tractable.
			if limit <= 0 || uint64(limit) >= n {
				return
			}
		}
		if limit > 100_000 {
			return
		}
		res, err := NewRecursive(limit).Compute(n)
		if err != nil {
			var de *DepthError
			if !errors.As(err, &de) {
				t.Fatalf("unexpected error type %T: %v", err, err)
			}
			return
		}
		want, _ := NewIterative().Compute(n)
		if res.Cmp(want) != 0 {
			t.Errorf("n=%d limit=%d: got %s, want %s", n, limit, res, want)
		}
	})
}
