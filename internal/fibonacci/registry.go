package fibonacci

import (
	"fmt"
	"sync"
)

// Role tells the sweep how to treat a variant's measurements.
type Role int

const (
	// RoleUnoptimized marks the naive variant: recursion-depth failures are
	// tolerated and its timings are plotted.
	RoleUnoptimized Role = iota
	// RoleMemoized marks the memoized variant: its timings are plotted.
	RoleMemoized
	// RoleBaseline marks variants that are probed and reported but not plotted.
	RoleBaseline
)

// String returns a lowercase name for the role.
func (r Role) String() string {
	switch r {
	case RoleUnoptimized:
		return "unoptimized"
	case RoleMemoized:
		return "memoized"
	case RoleBaseline:
		return "baseline"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Display labels of the built-in variants, as printed in the reports.
const (
	LabelRecursive = "Unoptimized Recursive Fibonacci"
	LabelMemoized  = "Memoized Fibonacci"
	LabelIterative = "Speed Fibonacci"
)

// Variant is one entry of the benchmark: a calculator with its label and role.
type Variant struct {
	// Key is the short identifier (e.g. "recursive").
	Key string
	// Label is the display label used in reports and charts.
	Label string
	// Role selects how the sweep aggregates the variant's timings.
	Role Role
	// Calculator is the instance probed by the sweep.
	Calculator Calculator
}

// variantCreator is a registered constructor for an optional variant.
type variantCreator struct {
	key    string
	label  string
	role   Role
	create func(Options) Calculator
}

var (
	extrasMu sync.Mutex
	extras   []variantCreator
)

// RegisterVariant adds an optional variant that every subsequently created
// Registry will include after the built-in ones. It is meant to be called
// from init functions of build-tagged files.
//
// Parameters:
//   - key: The unique short identifier of the variant.
//   - label: The display label used in reports.
//   - role: How the sweep treats the variant's timings.
//   - create: Constructor invoked once per Registry.
func RegisterVariant(key, label string, role Role, create func(Options) Calculator) {
	extrasMu.Lock()
	defer extrasMu.Unlock()
	extras = append(extras, variantCreator{key: key, label: label, role: role, create: create})
}

// Registry holds the ordered list of variants a sweep runs.
// The order is the probing order within each input size.
type Registry struct {
	variants []Variant
}

// NewRegistry builds the default benchmark set: recursive, memoized and
// iterative, followed by any variants added with RegisterVariant.
//
// Parameters:
//   - opts: Options applied to the calculators (recursion limit).
//
// Returns:
//   - *Registry: A registry with fresh calculator instances.
func NewRegistry(opts Options) *Registry {
	r := &Registry{
		variants: []Variant{
			{Key: "recursive", Label: LabelRecursive, Role: RoleUnoptimized, Calculator: NewRecursive(opts.maxDepth())},
			{Key: "memoized", Label: LabelMemoized, Role: RoleMemoized, Calculator: NewMemoized()},
			{Key: "iterative", Label: LabelIterative, Role: RoleBaseline, Calculator: NewIterative()},
		},
	}

	extrasMu.Lock()
	defer extrasMu.Unlock()
	for _, c := range extras {
		r.variants = append(r.variants, Variant{Key: c.key, Label: c.label, Role: c.role, Calculator: c.create(opts)})
	}
	return r
}

// NewRegistryFromVariants builds a registry from an explicit list, mostly
// for tests that substitute fake calculators.
func NewRegistryFromVariants(variants ...Variant) *Registry {
	return &Registry{variants: append([]Variant(nil), variants...)}
}

// Variants returns a copy of the registered variants in probing order.
func (r *Registry) Variants() []Variant {
	return append([]Variant(nil), r.variants...)
}

// Keys returns the variant keys in probing order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.variants))
	for i, v := range r.variants {
		keys[i] = v.Key
	}
	return keys
}

// Get returns the variant registered under key.
//
// Returns:
//   - Variant: The matching variant.
//   - error: An error if no variant uses this key.
func (r *Registry) Get(key string) (Variant, error) {
	for _, v := range r.variants {
		if v.Key == key {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("unknown variant: %s", key)
}

// ByRole returns the first variant with the given role.
func (r *Registry) ByRole(role Role) (Variant, bool) {
	for _, v := range r.variants {
		if v.Role == role {
			return v, true
		}
	}
	return Variant{}, false
}
