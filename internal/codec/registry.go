package codec

import (
	"fmt"
	"sync"
)

// Registry is one codec namespace: a named table binding value type names
// to their codecs. Registration happens at program setup; lookups during
// derivation and execution are read-only and safe for concurrent use.
type Registry struct {
	name   string
	mu     sync.RWMutex
	codecs map[string]Codec
}

// NewRegistry creates an empty registry for the given namespace name.
func NewRegistry(name string) *Registry {
	return &Registry{name: name, codecs: make(map[string]Codec)}
}

// Name returns the namespace name the registry is published under.
func (r *Registry) Name() string { return r.name }

// Register binds a value type name to its codec. Rebinding an existing
// name is an error; wire compatibility depends on bindings being stable.
func (r *Registry) Register(typeName string, c Codec) error {
	if typeName == "" {
		return fmt.Errorf("codec: empty type name in namespace %q", r.name)
	}
	if c == nil {
		return fmt.Errorf("codec: nil codec for type %q in namespace %q", typeName, r.name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.codecs[typeName]; exists {
		return fmt.Errorf("codec: type %q already registered in namespace %q", typeName, r.name)
	}
	r.codecs[typeName] = c
	return nil
}

// MustRegister is Register but panics on failure; for setup-time wiring.
func (r *Registry) MustRegister(typeName string, c Codec) {
	if err := r.Register(typeName, c); err != nil {
		panic(err)
	}
}

// Lookup returns the codec bound to the type name.
func (r *Registry) Lookup(typeName string) (Codec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.codecs[typeName]
	return c, ok
}

var (
	namespaceMu sync.RWMutex
	namespaces  = make(map[string]*Registry)
)

// RegisterNamespace publishes a registry under its namespace name so
// crate attributes can select it. Publishing a name twice is an error.
func RegisterNamespace(r *Registry) error {
	if r == nil || r.name == "" {
		return fmt.Errorf("codec: cannot register unnamed namespace")
	}
	namespaceMu.Lock()
	defer namespaceMu.Unlock()
	if _, exists := namespaces[r.name]; exists {
		return fmt.Errorf("codec: namespace %q already registered", r.name)
	}
	namespaces[r.name] = r
	return nil
}

// Namespace returns the registry published under the given name.
func Namespace(name string) (*Registry, bool) {
	namespaceMu.RLock()
	defer namespaceMu.RUnlock()
	r, ok := namespaces[name]
	return r, ok
}
