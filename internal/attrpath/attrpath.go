package attrpath

import (
	"regexp"
	"strings"
)

// DefaultSeparator separates the prefix, the aspect name and the option path
// in an attribute name, e.g. `mx:tooltip:show-delay`.
const DefaultSeparator = ":"

// dashRegex matches a dash followed by the character it capitalizes.
var dashRegex = regexp.MustCompile(`-([a-zA-Z0-9])`)

// ToCamelCase converts a dash-case segment to camelCase: every `-x` becomes `X`.
func ToCamelCase(s string) string {
	return dashRegex.ReplaceAllStringFunc(s, func(group string) string {
		return strings.ToUpper(group[1:])
	})
}

// Mapper computes option paths from attribute names that share a base, the
// attribute naming an aspect (`prefix:aspect`).
type Mapper struct {
	Base      string
	Separator string
}

// NewMapper returns a mapper for prefix + sep + name. An empty sep selects
// DefaultSeparator.
func NewMapper(prefix, name, sep string) Mapper {
	if sep == "" {
		sep = DefaultSeparator
	}
	return Mapper{Base: prefix + sep + name, Separator: sep}
}

// Matches reports whether attr is the base itself or one of its options.
func (m Mapper) Matches(attr string) bool {
	return attr == m.Base || strings.HasPrefix(attr, m.Base+m.Separator)
}

// PathTo returns the option path attr addresses: empty for the base itself,
// otherwise the camelCased segments after the base. It returns nil when attr
// does not match.
func (m Mapper) PathTo(attr string) []string {
	if attr == m.Base {
		return []string{}
	}
	if !m.Matches(attr) {
		return nil
	}

	radical := attr[len(m.Base)+len(m.Separator):]
	segments := strings.Split(radical, m.Separator)
	for i, segment := range segments {
		segments[i] = ToCamelCase(segment)
	}
	return segments
}
