package options

import (
	"context"

	"github.com/maxsalles/mx/internal/attrpath"
	"github.com/maxsalles/mx/internal/ctxlog"
	"github.com/maxsalles/mx/internal/grammar"
	"github.com/maxsalles/mx/internal/markup"
	"github.com/maxsalles/mx/internal/resource"
	"github.com/maxsalles/mx/internal/value"
)

// DefaultOption is the key a bare scalar base attribute is stored under
// when the aspect does not name another one.
const DefaultOption = "value"

// Handler assembles the options of one aspect from an element's attributes.
type Handler struct {
	Prefix        string
	AspectName    string
	DefaultOption string
	Resources     value.Value
	BasePath      []string
}

func (h Handler) mapper() attrpath.Mapper {
	return attrpath.NewMapper(h.Prefix, h.AspectName, attrpath.DefaultSeparator)
}

// Base returns the attribute name that marks the aspect, `prefix:aspect`.
func (h Handler) Base() string {
	return h.mapper().Base
}

// AttributesFrom returns the attributes of el in the aspect's namespace, in
// document order. When a name repeats, the later value replaces the earlier
// one in the earlier position.
func (h Handler) AttributesFrom(el markup.Element) []markup.Attribute {
	m := h.mapper()

	var out []markup.Attribute
	seen := make(map[string]int)
	for _, attr := range el.Attributes() {
		if !m.Matches(attr.Name) {
			continue
		}
		if i, ok := seen[attr.Name]; ok {
			out[i].Value = attr.Value
			continue
		}
		seen[attr.Name] = len(out)
		out = append(out, attr)
	}
	return out
}

// PathTo returns the option path an attribute of the namespace addresses.
func (h Handler) PathTo(attr string) []string {
	return h.mapper().PathTo(attr)
}

func (h Handler) defaultOption() string {
	if h.DefaultOption == "" {
		return DefaultOption
	}
	return h.DefaultOption
}

// OptionsFrom parses every attribute of the namespace and folds the results
// into one map, later attributes overriding earlier ones. A base attribute
// holding anything but a map is stored under the default option. It never
// fails: values that do not parse are kept as strings.
func (h Handler) OptionsFrom(ctx context.Context, el markup.Element) value.Value {
	logger := ctxlog.FromContext(ctx)
	scope := resource.NewScope(h.Resources, h.BasePath)

	options := value.EmptyMap()
	for _, attr := range h.AttributesFrom(el) {
		path := h.PathTo(attr.Name)
		parsed := grammar.ParseValue(attr.Value, scope)

		if s, ok := parsed.AsString(); ok && s == attr.Value && attr.Value != "" {
			logger.Debug("Attribute value kept as raw string.", "attribute", attr.Name, "value", attr.Value)
		}

		if len(path) == 0 && !parsed.IsMap() {
			path = []string{h.defaultOption()}
		}
		options = value.Merge(options, value.ObjectFrom(path, parsed))
	}
	return options
}
