package aspect

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/maxsalles/mx/internal/markup"
	"github.com/maxsalles/mx/internal/storage"
	"github.com/maxsalles/mx/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testHost struct {
	prefix    string
	resources value.Value
}

func (h testHost) Prefix() string         { return h.prefix }
func (h testHost) Resources() value.Value { return h.resources }

func newTestHost() testHost {
	return testHost{
		prefix: "mx",
		resources: value.Map(map[string]value.Value{
			"key":      value.String("value"),
			"otherKey": value.String("other value"),
		}),
	}
}

// recorder is a Behavior that remembers every effect and undo.
type recorder struct {
	effects []value.Value
	undos   int
	err     error
}

func (r *recorder) Effect(_ context.Context, _ markup.Element, opts value.Value) (UndoFunc, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.effects = append(r.effects, opts)
	return func(context.Context) error {
		r.undos++
		return nil
	}, nil
}

func TestApply_WithoutBehavior(t *testing.T) {
	el := markup.NewElement("div", nil)
	desc := &Descriptor{Name: "my-aspect"}

	err := New(newTestHost(), storage.New(), el, desc).Apply(context.Background(), value.Unresolved())
	require.ErrorIs(t, err, ErrNotImplemented)
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("without options uses the element's options", func(t *testing.T) {
		rec := &recorder{}
		store := storage.New()
		el := markup.NewElement("div", []markup.Attribute{markup.Attr("mx:my-aspect", "10")})
		desc := &Descriptor{Name: "my-aspect", Behavior: rec}

		inst := New(newTestHost(), store, el, desc)
		require.NoError(t, inst.Apply(ctx, value.Unresolved()))

		require.Len(t, rec.effects, 1)
		expected := value.Map(map[string]value.Value{"value": value.Number(10)})
		assert.Empty(t, cmp.Diff(expected, rec.effects[0]))

		stored, ok := store.From(el).Get(desc)
		require.True(t, ok)
		assert.Same(t, inst, stored)
	})

	t.Run("with options", func(t *testing.T) {
		rec := &recorder{}
		el := markup.NewElement("div", []markup.Attribute{markup.Attr("mx:my-aspect", "10")})
		desc := &Descriptor{Name: "my-aspect", Behavior: rec}
		opts := value.Map(map[string]value.Value{"explicit": value.Bool(true)})

		require.NoError(t, New(newTestHost(), storage.New(), el, desc).Apply(ctx, opts))

		require.Len(t, rec.effects, 1)
		assert.Empty(t, cmp.Diff(opts, rec.effects[0]))
	})

	t.Run("empty options fall back to the element's options", func(t *testing.T) {
		rec := &recorder{}
		el := markup.NewElement("div", []markup.Attribute{markup.Attr("mx:my-aspect:a", "1")})
		desc := &Descriptor{Name: "my-aspect", Behavior: rec}

		require.NoError(t, New(newTestHost(), storage.New(), el, desc).Apply(ctx, value.EmptyMap()))

		require.Len(t, rec.effects, 1)
		assert.True(t, value.Number(1).Equal(rec.effects[0].Lookup("a")))
	})

	t.Run("called more than once runs the effect once", func(t *testing.T) {
		rec := &recorder{}
		store := storage.New()
		el := markup.NewElement("div", nil)
		desc := &Descriptor{Name: "my-aspect", Behavior: rec}

		require.NoError(t, New(newTestHost(), store, el, desc).Apply(ctx, value.Unresolved()))
		require.NoError(t, New(newTestHost(), store, el, desc).Apply(ctx, value.Unresolved()))

		assert.Len(t, rec.effects, 1)
	})

	t.Run("failing effect is not recorded", func(t *testing.T) {
		boom := errors.New("boom")
		store := storage.New()
		el := markup.NewElement("div", nil)
		desc := &Descriptor{Name: "my-aspect", Behavior: &recorder{err: boom}}

		inst := New(newTestHost(), store, el, desc)
		err := inst.Apply(ctx, value.Unresolved())
		require.ErrorIs(t, err, boom)
		assert.False(t, inst.Applied())
	})
}

func TestUndo(t *testing.T) {
	ctx := context.Background()

	t.Run("without a previous apply", func(t *testing.T) {
		rec := &recorder{}
		inst := New(newTestHost(), storage.New(), markup.NewElement("div", nil), &Descriptor{Name: "a", Behavior: rec})

		require.NoError(t, inst.Undo(ctx))
		assert.Zero(t, rec.undos)
	})

	t.Run("after apply", func(t *testing.T) {
		rec := &recorder{}
		store := storage.New()
		el := markup.NewElement("div", nil)
		desc := &Descriptor{Name: "a", Behavior: rec}

		inst := New(newTestHost(), store, el, desc)
		require.NoError(t, inst.Apply(ctx, value.Unresolved()))
		require.NoError(t, inst.Undo(ctx))

		assert.Equal(t, 1, rec.undos)
		_, ok := store.From(el).Get(desc)
		assert.False(t, ok)

		// A second undo is a no-op
		require.NoError(t, inst.Undo(ctx))
		assert.Equal(t, 1, rec.undos)
	})

	t.Run("through another instance of the same aspect", func(t *testing.T) {
		rec := &recorder{}
		store := storage.New()
		el := markup.NewElement("div", nil)
		desc := &Descriptor{Name: "a", Behavior: rec}

		require.NoError(t, New(newTestHost(), store, el, desc).Apply(ctx, value.Unresolved()))
		require.NoError(t, New(newTestHost(), store, el, desc).Undo(ctx))

		assert.Equal(t, 1, rec.undos)
	})

	t.Run("nil undo func", func(t *testing.T) {
		store := storage.New()
		el := markup.NewElement("div", nil)
		noop := EffectFunc(func(context.Context, markup.Element, value.Value) (UndoFunc, error) { return nil, nil })
		desc := &Descriptor{Name: "a", Behavior: noop}

		inst := New(newTestHost(), store, el, desc)
		require.NoError(t, inst.Apply(ctx, value.Unresolved()))
		require.NoError(t, inst.Undo(ctx))
		assert.False(t, inst.Applied())
	})
}

func TestReload(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	el := markup.NewElement("div", []markup.Attribute{markup.Attr("mx:a", "1")})
	desc := &Descriptor{Name: "a", Behavior: rec}
	inst := New(newTestHost(), storage.New(), el, desc)

	require.NoError(t, inst.Apply(ctx, value.Unresolved()))

	opts := value.Map(map[string]value.Value{"value": value.Number(2)})
	require.NoError(t, inst.Reload(ctx, opts))

	assert.Equal(t, 1, rec.undos)
	require.Len(t, rec.effects, 2)
	assert.Empty(t, cmp.Diff(opts, rec.effects[1]))
	assert.True(t, inst.Applied())
}

func TestResources(t *testing.T) {
	host := newTestHost()

	t.Run("without descriptor resources", func(t *testing.T) {
		inst := New(host, storage.New(), markup.NewElement("div", nil), &Descriptor{Name: "a"})
		assert.Empty(t, cmp.Diff(host.resources, inst.Resources()))
	})

	t.Run("with descriptor resources", func(t *testing.T) {
		store := storage.New()
		desc := &Descriptor{
			Name: "a",
			Resources: value.Map(map[string]value.Value{
				"otherKey": value.String("new value"),
				"newKey": value.Map(map[string]value.Value{
					"anotherKey": value.String("another value"),
				}),
			}),
		}

		inst := New(host, store, markup.NewElement("div", nil), desc)
		expected := value.Map(map[string]value.Value{
			"key":      value.String("value"),
			"otherKey": value.String("new value"),
			"newKey": value.Map(map[string]value.Value{
				"anotherKey": value.String("another value"),
			}),
		})
		assert.Empty(t, cmp.Diff(expected, inst.Resources()))

		// Cached per descriptor in the shared store
		cached, ok := store.From(desc).Get(resourcesKey{})
		require.True(t, ok)
		other := New(host, store, markup.NewElement("span", nil), desc)
		assert.Empty(t, cmp.Diff(cached.(value.Value), other.Resources()))
	})
}

func TestOptions(t *testing.T) {
	ctx := context.Background()
	host := testHost{
		prefix: "mx",
		resources: value.Map(map[string]value.Value{
			"some": value.List(value.Map(map[string]value.Value{
				"path": value.Map(map[string]value.Value{"label": value.String("hello")}),
			})),
		}),
	}
	el := markup.NewElement("div", []markup.Attribute{
		markup.Attr("mx:my-aspect", "~label"),
		markup.Attr("mx:my-aspect:count", "3"),
	})

	t.Run("descriptor default option and base path", func(t *testing.T) {
		desc := &Descriptor{Name: "my-aspect", DefaultOption: "main", BasePath: "some[0].path"}
		inst := New(host, storage.New(), el, desc)

		expected := value.Map(map[string]value.Value{
			"main":  value.String("hello"),
			"count": value.Number(3),
		})
		assert.Empty(t, cmp.Diff(expected, inst.Options(ctx)))
	})

	t.Run("defaults", func(t *testing.T) {
		inst := New(host, storage.New(), el, &Descriptor{Name: "my-aspect"})

		opts := inst.Options(ctx)
		assert.True(t, opts.Lookup("value").IsUnresolved())
		assert.True(t, value.Number(3).Equal(opts.Lookup("count")))
	})

	t.Run("computed once", func(t *testing.T) {
		mutable := markup.NewElement("div", []markup.Attribute{markup.Attr("mx:a", "1")})
		inst := New(host, storage.New(), mutable, &Descriptor{Name: "a"})

		first := inst.Options(ctx)
		mutable.Append(markup.NewElement("span", nil))
		assert.Empty(t, cmp.Diff(first, inst.Options(ctx)))
		assert.True(t, inst.hasOptions)
	})
}
