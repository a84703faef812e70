// Package strategy defines the SignalGenerator interface for trading rules
// and provides a Registry for managing multiple rule implementations.
package strategy

import (
	"sort"

	"github.com/gw12s/Stonks/internal/domain"
)

// SignalGenerator is the contract every trading rule implements. Generate
// consumes an ordered price series and returns a signal series aligned 1:1
// with it. Implementations must be pure transforms with no shared mutable
// state, so a single generator can serve concurrent backtests.
type SignalGenerator interface {
	// Name returns the unique identifier for this rule.
	Name() string

	// Generate derives the signal/position series for the given bars. A
	// series shorter than the rule's warm-up requirement yields an all-flat
	// signal series, not an error.
	Generate(bars []domain.Bar) ([]domain.SignalPoint, error)
}

// Registry holds a named collection of signal generators for lookup and
// enumeration.
type Registry struct {
	generators map[string]SignalGenerator
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]SignalGenerator),
	}
}

// Register adds a generator to the registry, keyed by its Name().
func (r *Registry) Register(g SignalGenerator) {
	r.generators[g.Name()] = g
}

// Get retrieves a generator by name. The second return value indicates
// whether the generator was found.
func (r *Registry) Get(name string) (SignalGenerator, bool) {
	g, ok := r.generators[name]
	return g, ok
}

// List returns a sorted slice of all registered generator names.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
