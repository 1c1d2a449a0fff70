// Package host mounts aspects on element trees.
//
// A Host owns the registered aspects, the attribute prefix, the shared
// resource tree and the store of applied instances. Mount walks a tree in
// document order and applies every registered aspect whose namespace
// appears on an element; Unmount walks it in the exact reverse order and
// undoes them.
package host

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/maxsalles/mx/internal/aspect"
	"github.com/maxsalles/mx/internal/ctxlog"
	"github.com/maxsalles/mx/internal/markup"
	"github.com/maxsalles/mx/internal/options"
	"github.com/maxsalles/mx/internal/registry"
	"github.com/maxsalles/mx/internal/storage"
	"github.com/maxsalles/mx/internal/value"
)

// DefaultPrefix is the attribute prefix used when none is configured.
const DefaultPrefix = "mx"

// ErrNoRoot is returned by Mount and Unmount when neither the call nor the
// host provides a root element.
var ErrNoRoot = errors.New("no root element")

// Config holds the construction parameters of a Host.
type Config struct {
	Prefix    string
	Root      markup.Element
	Resources value.Value
	Aspects   []*aspect.Descriptor
	Modules   []registry.Module
}

// Host applies aspects to elements.
type Host struct {
	prefix    string
	root      markup.Element
	resources value.Value
	registry  *registry.Registry
	store     *storage.Store
}

var _ aspect.Host = (*Host)(nil)

// New creates a Host. Aspects are registered in order, nil and repeated
// descriptors skipped; modules register after the plain aspects.
func New(cfg Config) (*Host, error) {
	reg := registry.New()
	if err := reg.Register(cfg.Aspects...); err != nil {
		return nil, err
	}
	if err := reg.RegisterModules(cfg.Modules...); err != nil {
		return nil, err
	}

	h := &Host{
		prefix:    cfg.Prefix,
		root:      cfg.Root,
		resources: cfg.Resources,
		registry:  reg,
		store:     storage.New(),
	}
	if h.prefix == "" {
		h.prefix = DefaultPrefix
	}
	if h.resources.IsUnresolved() {
		h.resources = value.EmptyMap()
	}
	return h, nil
}

func (h *Host) Prefix() string { return h.prefix }

func (h *Host) Root() markup.Element { return h.root }

func (h *Host) Resources() value.Value { return h.resources }

// Aspects returns the registered descriptors in registration order.
func (h *Host) Aspects() []*aspect.Descriptor { return h.registry.Aspects() }

// AspectsFrom returns the registered aspects present on el, in the order
// their attributes first appear.
func (h *Host) AspectsFrom(el markup.Element) []*aspect.Descriptor {
	return options.AspectsFrom(el, h.prefix, h.registry.Aspects())
}

// Apply applies desc to el. Non-empty opts replace the options parsed from
// the element.
func (h *Host) Apply(ctx context.Context, el markup.Element, desc *aspect.Descriptor, opts value.Value) error {
	return aspect.New(h, h.store, el, desc).Apply(ctx, opts)
}

// Undo reverts desc on el when it is applied.
func (h *Host) Undo(ctx context.Context, el markup.Element, desc *aspect.Descriptor) error {
	inst, ok := h.Instance(el, desc)
	if !ok {
		return nil
	}
	return inst.Undo(ctx)
}

// Reload undoes and re-applies desc on el when it is applied.
func (h *Host) Reload(ctx context.Context, el markup.Element, desc *aspect.Descriptor, opts value.Value) error {
	inst, ok := h.Instance(el, desc)
	if !ok {
		return nil
	}
	return inst.Reload(ctx, opts)
}

// Instance returns the instance of desc applied to el.
func (h *Host) Instance(el markup.Element, desc *aspect.Descriptor) (*aspect.Instance, bool) {
	stored, ok := h.store.From(el).Get(desc)
	if !ok {
		return nil, false
	}
	return stored.(*aspect.Instance), true
}

// Applied returns the instances applied to el, in application order.
func (h *Host) Applied(el markup.Element) []*aspect.Instance {
	var out []*aspect.Instance
	for _, v := range h.store.From(el).Values() {
		if inst, ok := v.(*aspect.Instance); ok {
			out = append(out, inst)
		}
	}
	return out
}

func (h *Host) rootOr(root markup.Element) (markup.Element, error) {
	if root != nil {
		return root, nil
	}
	if h.root == nil {
		return nil, ErrNoRoot
	}
	return h.root, nil
}

// Mount runs every Setup hook, then applies the aspects found on root and
// its descendants. A nil root mounts the host's root. An aspect failing on
// one element does not stop the others; all failures are returned joined.
func (h *Host) Mount(ctx context.Context, root markup.Element) error {
	root, err := h.rootOr(root)
	if err != nil {
		return err
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Mounting aspects.", "root", root.Path(), "aspects", h.registry.Len())

	for _, desc := range h.registry.Aspects() {
		if s, ok := desc.Behavior.(aspect.Setupper); ok {
			if err := s.Setup(ctx, root); err != nil {
				return fmt.Errorf("setup of aspect '%s' failed: %w", desc.Name, err)
			}
		}
	}

	var errs []error
	applied := 0
	err = markup.Walk(root, func(el markup.Element) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, desc := range h.AspectsFrom(el) {
			if err := h.Apply(ctx, el, desc, value.Unresolved()); err != nil {
				logger.Warn("Failed to apply aspect.", "aspect", desc.Name, "element", el.Path(), "error", err)
				errs = append(errs, err)
				continue
			}
			applied++
		}
		return nil
	})
	if err != nil {
		errs = append(errs, err)
	}

	logger.Info("Aspects mounted.", "root", root.Path(), "applied", applied, "failed", len(errs))
	return errors.Join(errs...)
}

// Unmount undoes every aspect applied on root and its descendants, last
// applied first, then runs the Terminate hooks in reverse registration
// order. A nil root unmounts the host's root.
func (h *Host) Unmount(ctx context.Context, root markup.Element) error {
	root, err := h.rootOr(root)
	if err != nil {
		return err
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Unmounting aspects.", "root", root.Path())

	var errs []error
	undone := 0
	err = markup.WalkReverse(root, func(el markup.Element) error {
		instances := h.Applied(el)
		for _, inst := range slices.Backward(instances) {
			if err := inst.Undo(ctx); err != nil {
				logger.Warn("Failed to undo aspect.", "aspect", inst.Descriptor().Name, "element", el.Path(), "error", err)
				errs = append(errs, err)
				continue
			}
			undone++
		}
		return nil
	})
	if err != nil {
		errs = append(errs, err)
	}

	aspects := h.registry.Aspects()
	for _, desc := range slices.Backward(aspects) {
		if t, ok := desc.Behavior.(aspect.Terminator); ok {
			if err := t.Terminate(ctx, root); err != nil {
				errs = append(errs, fmt.Errorf("terminate of aspect '%s' failed: %w", desc.Name, err))
			}
		}
	}

	logger.Info("Aspects unmounted.", "root", root.Path(), "undone", undone, "failed", len(errs))
	return errors.Join(errs...)
}
