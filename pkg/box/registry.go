package box

import (
	"fmt"
	"sync"

	"github.com/mesh-intelligence/hutch/pkg/object"
)

// Factory constructs an object from its definition. The factory must
// consume the definition payload (or Spool the remainder) and may keep
// the store and root references from the definition.
type Factory func(def *object.Definition) (object.Object, error)

// Registry maps application type tags to factories. The box consults it
// for creation commands and boot rehydration.
type Registry struct {
	mu        sync.RWMutex
	factories map[object.TypeID]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[object.TypeID]Factory)}
}

// Register binds a type tag to a factory. Rebinding a tag is refused.
func (r *Registry) Register(t object.TypeID, f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[t]; ok {
		return fmt.Errorf("register type %d: %w", t, ErrDuplicateType)
	}
	r.factories[t] = f
	return nil
}

// Known reports whether a factory is registered for t.
func (r *Registry) Known(t object.TypeID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[t]
	return ok
}

// Create builds an object from def using the factory registered for its
// type tag.
func (r *Registry) Create(def *object.Definition) (object.Object, error) {
	r.mu.RLock()
	f, ok := r.factories[def.Type]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("create type %d: %w", def.Type, ErrUnknownType)
	}
	return f(def)
}
