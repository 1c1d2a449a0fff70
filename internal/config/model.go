package config

import (
	"github.com/maxsalles/mx/internal/value"
)

// Model is the unified, format-agnostic representation of the application
// configuration.
type Model struct {
	// Prefix is the attribute prefix; empty means the host default.
	Prefix string
	// DefaultOption applies to aspects that do not set their own.
	DefaultOption string
	// Resources are declared inline in the configuration.
	Resources value.Value
	// ResourceFiles are resource files or directories to load, resolved
	// relative to the configuration file that lists them.
	ResourceFiles []string
	Aspects       []*Aspect
}

// Aspect is the format-agnostic representation of an `aspect` block.
type Aspect struct {
	Name          string
	DefaultOption string
	BasePath      string
	Resources     value.Value
}

// New returns an empty model.
func New() *Model {
	return &Model{Resources: value.EmptyMap()}
}

// Merge folds other into m: scalars set in other win, resources are deep
// merged, resource files are appended and an aspect with a known name
// replaces the earlier declaration in place.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	if other.Prefix != "" {
		m.Prefix = other.Prefix
	}
	if other.DefaultOption != "" {
		m.DefaultOption = other.DefaultOption
	}
	m.Resources = value.Merge(m.Resources, other.Resources)
	m.ResourceFiles = append(m.ResourceFiles, other.ResourceFiles...)

	for _, a := range other.Aspects {
		m.setAspect(a)
	}
}

func (m *Model) setAspect(a *Aspect) {
	for i, existing := range m.Aspects {
		if existing.Name == a.Name {
			m.Aspects[i] = a
			return
		}
	}
	m.Aspects = append(m.Aspects, a)
}

// Aspect returns the aspect declared under name.
func (m *Model) Aspect(name string) (*Aspect, bool) {
	for _, a := range m.Aspects {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// AspectDefaultOption returns the default option of a, falling back to the
// model-wide one.
func (m *Model) AspectDefaultOption(a *Aspect) string {
	if a.DefaultOption != "" {
		return a.DefaultOption
	}
	return m.DefaultOption
}
