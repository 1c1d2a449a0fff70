// Package grammar parses attribute values into value.Value trees.
//
//	expression    = primitive $ | arrayContent $ | objectContent $
//	primitive     = string | boolean | date | number | resource | array | object
//	array         = "[" arrayContent "]"
//	arrayContent  = primitive { "," primitive }
//	object        = "{" objectContent "}"
//	objectContent = tuple { "," tuple }
//	tuple         = identifier primitive
//
// The order of the alternatives of primitive is significant: dates must be
// tried before numbers, since both start with digits, and quoted strings
// before everything else.
package grammar

import (
	"strconv"
	"strings"
	"time"

	"github.com/maxsalles/mx/internal/combinator"
	"github.com/maxsalles/mx/internal/resource"
	"github.com/maxsalles/mx/internal/value"
)

type (
	cursor = combinator.Cursor[value.Value, resource.Scope]
	rule   = combinator.Rule[value.Value, resource.Scope]
)

var (
	identifierTerm   = combinator.Pattern(`[A-Za-z_$][A-Za-z0-9_$]*` + combinator.Space + `*:`)
	doubleQuotedTerm = combinator.Pattern(`"[^"]*"`)
	singleQuotedTerm = combinator.Pattern(`'[^']*'`)
	trueTerm         = combinator.Pattern(`true\b`)
	falseTerm        = combinator.Pattern(`false\b`)
	dateTerm         = combinator.Pattern(`\d{4}-\d{2}-\d{2}(?:T\d{2}:\d{2}(?::\d{2}(?:\.\d+)?)?(?:Z|[+-]\d{2}:?\d{2})?)?`)
	numberTerm       = combinator.Pattern(`-?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?`)
	resourceTerm     = combinator.Pattern(`[/~][A-Za-z0-9][A-Za-z0-9-]*(?:/[A-Za-z0-9][A-Za-z0-9-]*)*`)

	openBracket  = combinator.Literal("[")
	closeBracket = combinator.Literal("]")
	openBrace    = combinator.Literal("{")
	closeBrace   = combinator.Literal("}")
	comma        = combinator.Literal(",")
)

var valueLifts = combinator.Values[value.Value]{
	Text: value.String,
	List: func(values []value.Value) value.Value { return value.List(values...) },
}

// ParseValue parses raw against scope. When raw is not a valid expression
// the raw string itself is returned, so the result is always usable.
func ParseValue(raw string, scope resource.Scope) value.Value {
	c := combinator.New(combinator.TrimSpace(raw), scope, valueLifts)

	if v, ok := expression(c); ok {
		return v
	}
	return value.String(raw)
}

func term(t *combinator.Terminal) rule {
	return combinator.Term[value.Value, resource.Scope](t, nil)
}

func second(values []value.Value, _ resource.Scope) value.Value {
	return values[1]
}

func expression(c *cursor) (value.Value, bool) {
	first := func(values []value.Value, _ resource.Scope) value.Value { return values[0] }
	end := combinator.EndRule[value.Value, resource.Scope]

	return c.Option(nil,
		func(c *cursor) (value.Value, bool) { return c.Sequence(first, primitive, end) },
		func(c *cursor) (value.Value, bool) { return c.Sequence(first, arrayContent, end) },
		func(c *cursor) (value.Value, bool) { return c.Sequence(first, objectContent, end) },
	)
}

func primitive(c *cursor) (value.Value, bool) {
	return c.Option(nil, stringLiteral, boolean, date, number, reference, array, object)
}

func array(c *cursor) (value.Value, bool) {
	return c.Sequence(second, term(openBracket), arrayContent, term(closeBracket))
}

func arrayContent(c *cursor) (value.Value, bool) {
	return c.Sequence(
		func(values []value.Value, _ resource.Scope) value.Value {
			return value.List(append([]value.Value{values[0]}, values[1].Elements()...)...)
		},
		primitive,
		func(c *cursor) (value.Value, bool) {
			return c.Repetition(func(c *cursor) (value.Value, bool) {
				return c.Sequence(second, term(comma), primitive)
			}, nil)
		},
	)
}

func object(c *cursor) (value.Value, bool) {
	return c.Sequence(second, term(openBrace), objectContent, term(closeBrace))
}

// objectContent folds its tuples left to right, so a key given twice keeps
// its last value.
func objectContent(c *cursor) (value.Value, bool) {
	tail := func(c *cursor) (value.Value, bool) {
		return c.Repetition(func(c *cursor) (value.Value, bool) {
			return c.Sequence(second, term(comma), tuple)
		}, nil)
	}

	return c.Sequence(
		func(values []value.Value, _ resource.Scope) value.Value {
			entries := values[0].Entries()
			for _, t := range values[1].Elements() {
				for key, entry := range t.Entries() {
					entries[key] = entry
				}
			}
			return value.Map(entries)
		},
		tuple,
		tail,
	)
}

func tuple(c *cursor) (value.Value, bool) {
	return c.Sequence(
		func(values []value.Value, _ resource.Scope) value.Value {
			key, _ := values[0].AsString()
			return value.Map(map[string]value.Value{key: values[1]})
		},
		identifier,
		primitive,
	)
}

func identifier(c *cursor) (value.Value, bool) {
	return c.Match(identifierTerm, func(text string, _ resource.Scope) value.Value {
		return value.String(combinator.TrimSpace(strings.TrimSuffix(text, ":")))
	})
}

func stringLiteral(c *cursor) (value.Value, bool) {
	return c.Option(
		func(v value.Value, _ resource.Scope) value.Value {
			quoted, _ := v.AsString()
			return value.String(quoted[1 : len(quoted)-1])
		},
		term(doubleQuotedTerm),
		term(singleQuotedTerm),
	)
}

func boolean(c *cursor) (value.Value, bool) {
	return c.Option(
		func(v value.Value, _ resource.Scope) value.Value {
			text, _ := v.AsString()
			return value.Bool(text == "true")
		},
		term(trueTerm),
		term(falseTerm),
	)
}

func number(c *cursor) (value.Value, bool) {
	return c.Convert(numberTerm, func(text string, _ resource.Scope) (value.Value, bool) {
		f, err := strconv.ParseFloat(text, 64)
		return value.Number(f), err == nil
	})
}

func date(c *cursor) (value.Value, bool) {
	return c.Convert(dateTerm, func(text string, _ resource.Scope) (value.Value, bool) {
		t, err := parseDate(text)
		return value.Date(t), err == nil
	})
}

func reference(c *cursor) (value.Value, bool) {
	return c.Match(resourceTerm, func(text string, scope resource.Scope) value.Value {
		return scope.Resolve(text)
	})
}

var (
	zonedLayouts = []string{
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02T15:04:05Z0700",
		"2006-01-02T15:04Z07:00",
		"2006-01-02T15:04Z0700",
	}
	localLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
	}
)

// parseDate reads an ISO-8601 date or date-time. A date-time without zone
// is local time; a bare date is midnight UTC.
func parseDate(text string) (time.Time, error) {
	if len(text) == len(time.DateOnly) {
		return time.Parse(time.DateOnly, text)
	}

	var err error
	for _, layout := range zonedLayouts {
		var t time.Time
		if t, err = time.Parse(layout, text); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		var t time.Time
		if t, err = time.ParseInLocation(layout, text, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
