package options

import (
	"github.com/maxsalles/mx/internal/attrpath"
	"github.com/maxsalles/mx/internal/markup"
)

// Named is anything identified by an aspect name.
type Named interface {
	AspectName() string
}

// AspectsFrom returns the candidates whose namespace appears on el, each at
// most once, ordered by the first attribute that names them. When two
// candidates claim the same attribute the earlier candidate wins.
func AspectsFrom[N Named](el markup.Element, prefix string, candidates []N) []N {
	mappers := make([]attrpath.Mapper, len(candidates))
	for i, c := range candidates {
		mappers[i] = attrpath.NewMapper(prefix, c.AspectName(), attrpath.DefaultSeparator)
	}

	var found []N
	taken := make([]bool, len(candidates))
	for _, attr := range el.Attributes() {
		for i, m := range mappers {
			if !m.Matches(attr.Name) {
				continue
			}
			if !taken[i] {
				taken[i] = true
				found = append(found, candidates[i])
			}
			break
		}
	}
	return found
}
