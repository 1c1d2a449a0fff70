package combinator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Space is the character class of the whitespace skipped before every
// terminal: ASCII whitespace plus vertical tab, the Unicode space separators
// (no-break space among them), the line and paragraph separators and the
// byte order mark.
const Space = `[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

// IsSpace reports whether r belongs to Space.
func IsSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u2028', '\u2029', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// TrimSpace returns s without leading and trailing Space characters.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, IsSpace)
}

// Rule is a grammar rule: it inspects the cursor and reports the value it
// produced and whether it succeeded. A failing rule must leave the offset
// where it found it; the combinators below guarantee this for the rules they
// build.
type Rule[V, C any] func(c *Cursor[V, C]) (V, bool)

// TextHandler turns the text of a terminal, leading whitespace excluded,
// into a value.
type TextHandler[V, C any] func(text string, ctx C) V

// ConvertHandler turns the text of a terminal into a value and reports
// whether the text was acceptable.
type ConvertHandler[V, C any] func(text string, ctx C) (V, bool)

// Handler transforms the value of the successful alternative of an Option.
type Handler[V, C any] func(value V, ctx C) V

// ListHandler folds the ordered values of a Sequence or Repetition.
type ListHandler[V, C any] func(values []V, ctx C) V

// Values lifts raw results into the value domain when a combinator is used
// without a handler. A nil function yields the zero V.
type Values[V any] struct {
	Text func(text string) V
	List func(values []V) V
}

// Terminal is a compiled terminal pattern. Every terminal is anchored at the
// cursor offset and skips leading whitespace.
type Terminal struct {
	source string
	re     *regexp.Regexp
}

// Literal returns a terminal matching s verbatim.
func Literal(s string) *Terminal {
	return compile(s, regexp.QuoteMeta(s))
}

// Pattern returns a terminal matching the regular expression expr. It panics
// if expr does not compile, like regexp.MustCompile; terminals are meant to be
// package-level values.
func Pattern(expr string) *Terminal {
	return compile(expr, expr)
}

func compile(source, expr string) *Terminal {
	re, err := regexp.Compile(`^` + Space + `*(` + expr + `)`)
	if err != nil {
		panic(fmt.Sprintf("combinator: invalid terminal %q: %v", source, err))
	}
	return &Terminal{source: source, re: re}
}

// String returns the source the terminal was built from.
func (t *Terminal) String() string {
	return t.source
}

var endOfInput = Pattern(`$`)

// Cursor is the parse state shared by the rules of one parse. It must not be
// shared between goroutines or reused for another input.
type Cursor[V, C any] struct {
	input  string
	pos    int
	ctx    C
	values Values[V]
}

// New creates a cursor at offset 0 of input. ctx is passed, unchanged, to
// every handler.
func New[V, C any](input string, ctx C, values Values[V]) *Cursor[V, C] {
	return &Cursor[V, C]{input: input, ctx: ctx, values: values}
}

// Pos returns the current offset.
func (c *Cursor[V, C]) Pos() int {
	return c.pos
}

// Rest returns the unconsumed input.
func (c *Cursor[V, C]) Rest() string {
	return c.input[c.pos:]
}

// Context returns the read-only context of the parse.
func (c *Cursor[V, C]) Context() C {
	return c.ctx
}

// Match tries the terminal t at the current offset. On success the offset
// moves past the matched span, leading whitespace included, and h receives
// the text after that whitespace. Empty matches count as failures.
func (c *Cursor[V, C]) Match(t *Terminal, h TextHandler[V, C]) (V, bool) {
	return c.Convert(t, func(text string, ctx C) (V, bool) {
		if h != nil {
			return h(text, ctx), true
		}
		if c.values.Text != nil {
			return c.values.Text(text), true
		}
		var zero V
		return zero, true
	})
}

// Convert is Match with a handler that may reject the matched text, for
// terminals whose pattern is looser than their conversion (a calendar date
// that does not exist, say). A rejected match leaves the offset untouched.
func (c *Cursor[V, C]) Convert(t *Terminal, h ConvertHandler[V, C]) (V, bool) {
	var zero V

	rest := c.input[c.pos:]
	loc := t.re.FindStringSubmatchIndex(rest)
	if loc == nil || loc[1] == 0 {
		return zero, false
	}

	value, ok := h(rest[loc[2]:loc[3]], c.ctx)
	if !ok {
		return zero, false
	}

	c.pos += loc[1]
	return value, true
}

// End reports whether only whitespace is left.
func (c *Cursor[V, C]) End() bool {
	return c.pos == len(c.input) || endOfInput.re.MatchString(c.input[c.pos:])
}

// Sequence applies terms in order. If one fails, the offset is restored to
// where the sequence started and the sequence fails; otherwise h receives
// the values of all terms.
func (c *Cursor[V, C]) Sequence(h ListHandler[V, C], terms ...Rule[V, C]) (V, bool) {
	var zero V
	saved := c.pos
	values := make([]V, 0, len(terms))

	for _, term := range terms {
		value, ok := term(c)
		if !ok {
			c.pos = saved
			return zero, false
		}
		values = append(values, value)
	}

	return c.list(values, h), true
}

// Option tries terms in order and returns the first success, passed through
// h. Order encodes precedence: a later term is never tried once an earlier
// one matched, even if it would consume more input.
func (c *Cursor[V, C]) Option(h Handler[V, C], terms ...Rule[V, C]) (V, bool) {
	var zero V
	saved := c.pos

	for _, term := range terms {
		if value, ok := term(c); ok {
			if h != nil {
				value = h(value, c.ctx)
			}
			return value, true
		}
	}

	c.pos = saved
	return zero, false
}

// Repetition applies term until it fails and hands the collected values to
// h. It always succeeds, possibly with no values.
func (c *Cursor[V, C]) Repetition(term Rule[V, C], h ListHandler[V, C]) (V, bool) {
	var values []V

	for {
		saved := c.pos
		value, ok := term(c)
		if !ok {
			c.pos = saved
			break
		}
		values = append(values, value)
		// A term that succeeds without consuming input would loop forever.
		if c.pos == saved {
			break
		}
	}

	return c.list(values, h), true
}

func (c *Cursor[V, C]) list(values []V, h ListHandler[V, C]) V {
	if h != nil {
		return h(values, c.ctx)
	}
	if c.values.List != nil {
		return c.values.List(values)
	}
	var zero V
	return zero
}

// Term adapts a terminal into a rule so it can be used as a term of Sequence,
// Option or Repetition. A nil h falls back to the cursor's Values.Text.
func Term[V, C any](t *Terminal, h TextHandler[V, C]) Rule[V, C] {
	return func(c *Cursor[V, C]) (V, bool) {
		return c.Match(t, h)
	}
}

// EndRule is End as a rule, producing the zero V.
func EndRule[V, C any](c *Cursor[V, C]) (V, bool) {
	var zero V
	return zero, c.End()
}
