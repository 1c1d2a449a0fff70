package value

import "maps"

// Merge returns src deep-merged over dst. Entries present in both maps are
// merged recursively; anything else in src replaces what dst holds, lists
// included. An unresolved src leaves dst untouched, so a dangling reference
// never erases a value set by an earlier attribute.
func Merge(dst, src Value) Value {
	if src.kind == KindUnresolved {
		return dst
	}
	if dst.kind != KindMap || src.kind != KindMap {
		return src
	}

	merged := maps.Clone(dst.m)
	for key, srcEntry := range src.m {
		if dstEntry, ok := merged[key]; ok {
			merged[key] = Merge(dstEntry, srcEntry)
			continue
		}
		merged[key] = srcEntry
	}

	return Value{kind: KindMap, m: merged}
}

// ObjectFrom nests v under path: ObjectFrom([a b], v) is {a: {b: v}}. An
// empty path returns v itself.
func ObjectFrom(path []string, v Value) Value {
	for i := len(path) - 1; i >= 0; i-- {
		v = Value{kind: KindMap, m: map[string]Value{path[i]: v}}
	}
	return v
}
