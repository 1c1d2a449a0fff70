package aspect

import (
	"context"
	"fmt"

	"github.com/maxsalles/mx/internal/attrpath"
	"github.com/maxsalles/mx/internal/ctxlog"
	"github.com/maxsalles/mx/internal/markup"
	"github.com/maxsalles/mx/internal/options"
	"github.com/maxsalles/mx/internal/storage"
	"github.com/maxsalles/mx/internal/value"
)

// resourcesKey is the key a descriptor's merged resources are cached under.
type resourcesKey struct{}

// Instance is one aspect bound to one element. Applied instances are kept
// in the store, in the element's bucket, keyed by their descriptor.
type Instance struct {
	host  Host
	store *storage.Store
	el    markup.Element
	desc  *Descriptor

	options    value.Value
	hasOptions bool
	undo       UndoFunc
}

// New binds desc to el. Nothing happens until Apply.
func New(host Host, store *storage.Store, el markup.Element, desc *Descriptor) *Instance {
	return &Instance{host: host, store: store, el: el, desc: desc}
}

func (i *Instance) Element() markup.Element { return i.el }

func (i *Instance) Descriptor() *Descriptor { return i.desc }

// Resources returns the host resources with the descriptor's own resources
// merged over them. The result is shared by every instance of the
// descriptor.
func (i *Instance) Resources() value.Value {
	bucket := i.store.From(i.desc)
	if cached, ok := bucket.Get(resourcesKey{}); ok {
		return cached.(value.Value)
	}

	resources := i.host.Resources()
	if i.desc.Resources.Len() > 0 {
		resources = value.Merge(resources, i.desc.Resources)
	}
	bucket.Set(resourcesKey{}, resources)
	return resources
}

// Options returns the options assembled from the element's attributes. They
// are computed once per instance.
func (i *Instance) Options(ctx context.Context) value.Value {
	if i.hasOptions {
		return i.options
	}

	h := options.Handler{
		Prefix:        i.host.Prefix(),
		AspectName:    i.desc.Name,
		DefaultOption: i.desc.DefaultOption,
		Resources:     i.Resources(),
		BasePath:      attrpath.ParsePath(i.desc.BasePath),
	}
	i.options = h.OptionsFrom(ctx, i.el)
	i.hasOptions = true
	return i.options
}

// Applied reports whether an instance of the descriptor is applied to the
// element.
func (i *Instance) Applied() bool {
	_, ok := i.store.From(i.el).Get(i.desc)
	return ok
}

// Apply runs the effect and records the instance. It does nothing when the
// aspect is already applied to the element. Non-empty opts are used instead
// of the options parsed from the element.
func (i *Instance) Apply(ctx context.Context, opts value.Value) error {
	if i.Applied() {
		return nil
	}
	if i.desc.Behavior == nil {
		return fmt.Errorf("aspect '%s': %w", i.desc.Name, ErrNotImplemented)
	}

	if isEmpty(opts) {
		opts = i.Options(ctx)
	}

	undo, err := i.desc.Behavior.Effect(ctx, i.el, opts)
	if err != nil {
		return fmt.Errorf("aspect '%s' failed on %s: %w", i.desc.Name, i.el.Path(), err)
	}
	i.undo = undo
	i.store.From(i.el).Set(i.desc, i)

	ctxlog.FromContext(ctx).Debug("Aspect applied.", "aspect", i.desc.Name, "element", i.el.Path())
	return nil
}

// Undo reverts the applied instance of the descriptor on the element, if
// any, and forgets it.
func (i *Instance) Undo(ctx context.Context) error {
	bucket := i.store.From(i.el)
	stored, ok := bucket.Get(i.desc)
	if !ok {
		return nil
	}
	applied := stored.(*Instance)
	bucket.Remove(i.desc)

	if applied.undo != nil {
		if err := applied.undo(ctx); err != nil {
			return fmt.Errorf("undo of aspect '%s' failed on %s: %w", i.desc.Name, i.el.Path(), err)
		}
	}

	ctxlog.FromContext(ctx).Debug("Aspect undone.", "aspect", i.desc.Name, "element", i.el.Path())
	return nil
}

// Reload undoes and applies again with opts.
func (i *Instance) Reload(ctx context.Context, opts value.Value) error {
	if err := i.Undo(ctx); err != nil {
		return err
	}
	return i.Apply(ctx, opts)
}

func isEmpty(v value.Value) bool {
	switch v.Kind() {
	case value.KindUnresolved:
		return true
	case value.KindList, value.KindMap:
		return v.Len() == 0
	}
	return false
}
