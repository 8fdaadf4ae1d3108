// Package templates provides the built-in template strategies of wikiparse
// and a registry to select them by name.
package templates

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/yaklabco/wikiparse/pkg/config"
	"github.com/yaklabco/wikiparse/pkg/wikiparser"
)

// ErrUnknownStrategy is returned for a strategy name that is not registered.
var ErrUnknownStrategy = errors.New("unknown template strategy")

// Options configures the built-in strategies.
type Options struct {
	// Delete lists template names removed by the german strategy.
	// Empty keeps DefaultGermanDeletions.
	Delete []string
}

// Factory builds a strategy from options.
type Factory func(opts Options) wikiparser.TemplateParser

// Strategy is a registered template strategy.
type Strategy struct {
	Name        string
	Description string
	Factory     Factory
}

// Registry holds template strategies by name.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Strategy
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Strategy)}
}

// Register adds a strategy. A strategy with the same name is replaced.
func (r *Registry) Register(s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[s.Name] = s
}

// Get retrieves a strategy by name.
func (r *Registry) Get(name string) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byName[name]
	return s, ok
}

// All returns every strategy sorted by name.
func (r *Registry) All() []Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]Strategy, 0, len(r.byName))
	for _, s := range r.byName {
		all = append(all, s)
	}
	slices.SortFunc(all, func(a, b Strategy) int { return cmp.Compare(a.Name, b.Name) })
	return all
}

// New builds the strategy called name.
func (r *Registry) New(name string, opts Options) (wikiparser.TemplateParser, error) {
	s, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return s.Factory(opts), nil
}

// DefaultRegistry returns a registry with the built-in strategies.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Strategy{
		Name:        config.StrategyPlaceholder,
		Description: "Replaces every template with TEMPLATE[name, params...] and records it.",
		Factory:     func(Options) wikiparser.TemplateParser { return Placeholder{} },
	})
	r.Register(Strategy{
		Name:        config.StrategyFlush,
		Description: "Removes every template from the text and records it.",
		Factory:     func(Options) wikiparser.TemplateParser { return Flush{} },
	})
	r.Register(Strategy{
		Name:        config.StrategyGerman,
		Description: "Removes block-listed templates, turns Audio and Video into links.",
		Factory:     func(opts Options) wikiparser.TemplateParser { return NewGerman(opts.Delete) },
	})
	return r
}

// New builds a built-in strategy by name.
func New(name string, opts Options) (wikiparser.TemplateParser, error) {
	return DefaultRegistry().New(name, opts)
}

// Names returns the built-in strategy names, sorted.
func Names() []string {
	all := DefaultRegistry().All()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name
	}
	return names
}

// Infos describes the built-in strategies for generated config files.
func Infos() []config.StrategyInfo {
	all := DefaultRegistry().All()
	infos := make([]config.StrategyInfo, len(all))
	for i, s := range all {
		infos[i] = config.StrategyInfo{Name: s.Name, Description: s.Description}
	}
	return infos
}

// FromConfig builds the strategy selected by cfg.
func FromConfig(cfg *config.Config) (wikiparser.TemplateParser, error) {
	return New(cfg.ResolvedStrategy(), Options{Delete: cfg.Templates.Delete})
}
