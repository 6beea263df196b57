// SPDX-License-Identifier: MIT

package fe

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"
)

// Factory builds an element of a fixed family and dimension for a degree.
type Factory func(degree int) (Element, error)

type registryKey struct {
	kind Kind
	dim  int
}

// Registry maps (Kind, dim) to element factories. Safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[registryKey]Factory
	kinds     map[string]Kind
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[registryKey]Factory),
		kinds:     make(map[string]Kind),
	}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry holding FE_Q and FE_DGQ
// for dimensions 1 through 3. It is built on first use.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		r := NewRegistry()
		for dim := 1; dim <= 3; dim++ {
			d := dim
			// Keys are distinct, so registration cannot fail.
			_ = r.Register(KindQ, d, func(p int) (Element, error) { return NewQ(d, p) })
			_ = r.Register(KindDGQ, d, func(p int) (Element, error) { return NewDGQ(d, p) })
		}
		defaultRegistry = r
	})

	return defaultRegistry
}

// Register adds a factory for (kind, dim).
// Errors: ErrBadDim, ErrDuplicate.
func (r *Registry) Register(kind Kind, dim int, f Factory) error {
	if dim < 1 || dim > 3 {
		return fmt.Errorf("Registry.Register(%s, %d): %w", kind, dim, ErrBadDim)
	}
	if f == nil {
		return fmt.Errorf("Registry.Register(%s, %d): nil factory: %w", kind, dim, ErrUnknownElement)
	}
	key := registryKey{kind: kind, dim: dim}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[key]; ok {
		return fmt.Errorf("Registry.Register(%s, %d): %w", kind, dim, ErrDuplicate)
	}
	r.factories[key] = f
	r.kinds[kind.String()] = kind

	return nil
}

// Get builds the element of the given family, dimension and degree.
// Errors: ErrUnknownElement, plus whatever the factory returns (ErrBadDegree).
func (r *Registry) Get(kind Kind, dim, degree int) (Element, error) {
	r.mu.RLock()
	f, ok := r.factories[registryKey{kind: kind, dim: dim}]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("Registry.Get(%s, %d): %w", kind, dim, ErrUnknownElement)
	}

	return f(degree)
}

// GetByName resolves names such as "FE_Q<2>(3)" or "FE_DGQ(1)"; a name
// without <dim> means dim 1.
func (r *Registry) GetByName(name string) (Element, error) {
	family, dim, degree, err := ParseName(name)
	if err != nil {
		return nil, err
	}
	if dim == 0 {
		dim = 1
	}
	r.mu.RLock()
	kind, ok := r.kinds[family]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("Registry.GetByName(%q): %w", name, ErrUnknownElement)
	}

	return r.Get(kind, dim, degree)
}

var namePattern = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*(?:<\s*(\d+)\s*>)?\s*\(\s*(\d+)\s*\)\s*$`)

// ParseName splits "FAMILY<dim>(degree)" into its parts. dim is 0 when the
// <dim> part is absent.
// Errors: ErrBadName.
func ParseName(name string) (family string, dim, degree int, err error) {
	m := namePattern.FindStringSubmatch(name)
	if m == nil {
		return "", 0, 0, fmt.Errorf("ParseName(%q): %w", name, ErrBadName)
	}
	if m[2] != "" {
		if dim, err = strconv.Atoi(m[2]); err != nil {
			return "", 0, 0, fmt.Errorf("ParseName(%q): %v: %w", name, err, ErrBadName)
		}
	}
	if degree, err = strconv.Atoi(m[3]); err != nil {
		return "", 0, 0, fmt.Errorf("ParseName(%q): %v: %w", name, err, ErrBadName)
	}

	return m[1], dim, degree, nil
}
