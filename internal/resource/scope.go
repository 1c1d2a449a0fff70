// Package resource holds the host-supplied resource tree that attribute
// values can reference, resolves `/a/b` and `~a/b` references against it,
// and loads resource trees from HCL, JSON and YAML files.
package resource

import (
	"slices"
	"strings"

	"github.com/maxsalles/mx/internal/value"
)

// Scope is the read-only context of one attribute parse: the resource tree
// and the base path that relative references start from.
type Scope struct {
	Root     value.Value
	BasePath []string
}

// NewScope returns a scope over root. basePath is copied.
func NewScope(root value.Value, basePath []string) Scope {
	return Scope{Root: root, BasePath: slices.Clone(basePath)}
}

// Resolve dereferences ref. An absolute reference (`/a/b`) starts at the
// root, a relative one (`~a/b`) at the base path. A reference that leads
// nowhere resolves to value.Unresolved; it is not an error.
func (s Scope) Resolve(ref string) value.Value {
	return s.Root.Lookup(s.Path(ref)...)
}

// Path returns the segments ref points to, base path included.
func (s Scope) Path(ref string) []string {
	if ref == "" {
		return nil
	}

	segments := strings.Split(ref[1:], "/")
	if ref[0] == '~' {
		return append(slices.Clone(s.BasePath), segments...)
	}
	return segments
}
