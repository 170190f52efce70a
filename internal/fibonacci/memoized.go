package fibonacci

import "math/big"

// Memoized computes F(n) with the doubly recursive recurrence, storing every
// computed value in a cache before returning it and reusing cached values.
// It runs in Θ(n) time with Θ(n) auxiliary space.
//
// Each top-level Compute call allocates its own cache, so consecutive calls
// never share state and later measurements are not artificially fast.
// Memoized is not safe for concurrent use: it remembers the footprint of the
// last cache it used.
type Memoized struct {
	lastFootprint int
}

// NewMemoized returns a memoized calculator.
func NewMemoized() *Memoized { return &Memoized{} }

// Name returns "memoized".
func (*Memoized) Name() string { return "memoized" }

// Compute returns F(n) using a fresh cache.
func (m *Memoized) Compute(n uint64) (*big.Int, error) {
	return m.ComputeWithCache(n, nil)
}

// ComputeWithCache returns F(n) using cache, which is filled in place.
// A nil cache is replaced by a new empty map.
func (m *Memoized) ComputeWithCache(n uint64, cache map[uint64]*big.Int) (*big.Int, error) {
	if cache == nil {
		cache = make(map[uint64]*big.Int)
	}
	res := fibMemo(n, cache)
	m.lastFootprint = shallowMapBytes(len(cache))
	return res, nil
}

// CacheFootprint returns the shallow size of the cache used by the last
// top-level call, in bytes.
func (m *Memoized) CacheFootprint() int { return m.lastFootprint }

func fibMemo(n uint64, cache map[uint64]*big.Int) *big.Int {
	if v, ok := cache[n]; ok {
		return v
	}
	if n <= 1 {
		return new(big.Int).SetUint64(n)
	}
	v := new(big.Int).Add(fibMemo(n-1, cache), fibMemo(n-2, cache))
	cache[n] = v
	return v
}

// Layout constants of a map[uint64]*big.Int in the Go runtime's swiss-table
// implementation: groups of 8 slots, one control byte per slot, a 16-byte
// slot (key + pointer) and a fixed header.
const (
	mapHeaderBytes    = 48
	mapGroupSlots     = 8
	mapGroupCtrlBytes = 8
	mapSlotBytes      = 16
)

// shallowMapBytes estimates the storage owned by a map[uint64]*big.Int with
// the given number of entries. The big.Int values the slots point to are
// not counted.
func shallowMapBytes(entries int) int {
	if entries <= 0 {
		return mapHeaderBytes
	}
	// The runtime grows a table before it is more than 7/8 full.
	slots := (entries*8 + 6) / 7
	groups := (slots + mapGroupSlots - 1) / mapGroupSlots
	pow := 1
	for pow < groups {
		pow <<= 1
	}
	return mapHeaderBytes + pow*(mapGroupCtrlBytes+mapGroupSlots*mapSlotBytes)
}
