package attrpath

import "strings"

// isPathDelimiter reports the runes that separate segments of a dotted path.
func isPathDelimiter(r rune) bool {
	return r == '.' || r == '[' || r == ']'
}

// ParsePath splits a dotted or bracketed path, as used to configure an
// aspect's base path, into its segments. Empty segments are dropped, so
// `a.b[0]`, `.a.b[0]` and `[a]b[0]` all give [a b 0].
func ParsePath(raw string) []string {
	segments := strings.FieldsFunc(raw, isPathDelimiter)
	if segments == nil {
		return []string{}
	}
	return segments
}
