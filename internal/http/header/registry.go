package header

import (
	"fmt"
	"strings"
	"sync"
)

type Registry interface {
	Register(name string, factory Factory) error
	MustRegister(name string, factory Factory)
	Make(name string) (Header, error)
	IsRegistered(name string) bool
	Canonical(name string) (string, bool)
	List() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	names     []string
	// folded maps lowercased names to the first registered spelling.
	folded map[string]string
}

// NewRegistry returns a registry holding the built-in headers. Callers create
// one per process before accepting connections and hand it to every parser.
func NewRegistry() Registry {
	r := newEmptyRegistry()
	r.MustRegister(NameContentLength, func() Header { return &ContentLength{} })
	r.MustRegister(NameHost, func() Header { return &Host{} })
	return r
}

func newEmptyRegistry() *registry {
	return &registry{
		factories: make(map[string]Factory),
		folded:    make(map[string]string),
	}
}

func (r *registry) Register(name string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("register %q: nil factory", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateHeader)
	}

	r.factories[name] = factory
	r.names = append(r.names, name)
	if _, exists := r.folded[strings.ToLower(name)]; !exists {
		r.folded[strings.ToLower(name)] = name
	}
	return nil
}

func (r *registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

func (r *registry) Make(name string) (Header, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("make %q: %w", name, ErrUnknownHeader)
	}
	return factory(), nil
}

func (r *registry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[name]
	return ok
}

// Canonical returns the registered spelling of name, matched without regard
// to case as header names are on the wire.
func (r *registry) Canonical(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.factories[name]; ok {
		return name, true
	}
	canonical, ok := r.folded[strings.ToLower(name)]
	return canonical, ok
}

func (r *registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}
