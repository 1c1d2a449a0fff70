package registry

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/maxsalles/mx/internal/aspect"
)

// ErrDuplicateAspect is returned when two different descriptors share a name.
var ErrDuplicateAspect = errors.New("aspect already registered")

// Module is the interface that aspect bundles implement to be registered.
type Module interface {
	Register(r *Registry) error
}

// Registry is an ordered set of aspect descriptors.
type Registry struct {
	aspects []*aspect.Descriptor
	byName  map[string]*aspect.Descriptor
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{byName: make(map[string]*aspect.Descriptor)}
}

// Register adds descriptors in order. Nil descriptors and descriptors that
// are already registered are skipped.
func (r *Registry) Register(descriptors ...*aspect.Descriptor) error {
	for _, d := range descriptors {
		if d == nil {
			continue
		}
		if existing, ok := r.byName[d.Name]; ok {
			if existing == d {
				continue
			}
			return fmt.Errorf("aspect '%s': %w", d.Name, ErrDuplicateAspect)
		}
		slog.Debug("Registering aspect.", "name", d.Name)
		r.byName[d.Name] = d
		r.aspects = append(r.aspects, d)
	}
	return nil
}

// RegisterModules lets every module register its descriptors.
func (r *Registry) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if m == nil {
			continue
		}
		if err := m.Register(r); err != nil {
			return err
		}
	}
	return nil
}

// Aspects returns the registered descriptors in registration order.
func (r *Registry) Aspects() []*aspect.Descriptor {
	return append([]*aspect.Descriptor(nil), r.aspects...)
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (*aspect.Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	return len(r.aspects)
}
