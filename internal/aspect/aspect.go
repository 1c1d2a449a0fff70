package aspect

import (
	"context"
	"errors"

	"github.com/maxsalles/mx/internal/markup"
	"github.com/maxsalles/mx/internal/value"
)

// ErrNotImplemented is returned when an aspect without a behavior is applied.
var ErrNotImplemented = errors.New("effect is not implemented")

// UndoFunc reverts what an effect did to its element.
type UndoFunc func(ctx context.Context) error

// Behavior is what an aspect does to an element it is applied to. The
// returned UndoFunc, when not nil, is called when the aspect is undone.
type Behavior interface {
	Effect(ctx context.Context, el markup.Element, opts value.Value) (UndoFunc, error)
}

// EffectFunc adapts a plain function to Behavior.
type EffectFunc func(ctx context.Context, el markup.Element, opts value.Value) (UndoFunc, error)

func (f EffectFunc) Effect(ctx context.Context, el markup.Element, opts value.Value) (UndoFunc, error) {
	return f(ctx, el, opts)
}

// Setupper is implemented by behaviors that prepare once per mount, before
// any element is visited.
type Setupper interface {
	Setup(ctx context.Context, root markup.Element) error
}

// Terminator is implemented by behaviors that clean up once per unmount,
// after every element has been undone.
type Terminator interface {
	Terminate(ctx context.Context, root markup.Element) error
}

// Descriptor declares an aspect: the attribute namespace it owns and how its
// options are assembled. Descriptors are compared by pointer, so the same
// *Descriptor must be used for every operation on an aspect.
type Descriptor struct {
	Name string
	// DefaultOption is the key a bare scalar base attribute is stored
	// under. Empty means options.DefaultOption.
	DefaultOption string
	// BasePath is the dotted path relative references (`~a/b`) start
	// from, e.g. `messages.save` or `items[0]`.
	BasePath string
	// Resources are merged over the host resources for this aspect only.
	Resources value.Value
	Behavior  Behavior
}

// AspectName returns d.Name.
func (d *Descriptor) AspectName() string {
	return d.Name
}

// Host is the part of the host an instance reads from.
type Host interface {
	Prefix() string
	Resources() value.Value
}
