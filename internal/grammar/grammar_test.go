package grammar

import (
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/maxsalles/mx/internal/resource"
	"github.com/maxsalles/mx/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	num  = value.Number
	str  = value.String
	list = value.List
)

func obj(entries map[string]value.Value) value.Value { return value.Map(entries) }

func testScope() resource.Scope {
	tree := obj(map[string]value.Value{
		"attr": obj(map[string]value.Value{
			"subAttr1": obj(map[string]value.Value{"attr": str("some value")}),
			"subAttr2": list(num(1), num(2), obj(map[string]value.Value{
				"attr":    str("some value"),
				"subAttr": list(num(10)),
			})),
		}),
	})
	return resource.NewScope(tree, []string{"attr", "subAttr2", "2"})
}

var (
	localDate = value.Date(time.Date(1995, 12, 17, 3, 24, 0, 0, time.Local))
	utcDate   = value.Date(time.Date(1996, 10, 13, 8, 35, 32, 0, time.UTC))
)

func TestParseValue(t *testing.T) {
	testCases := []struct {
		raw      string
		expected value.Value
	}{
		{raw: `'some string'`, expected: str("some string")},
		{raw: `"some string"`, expected: str("some string")},
		{raw: "\"some\nstring\"", expected: str("some\nstring")},
		{raw: `"  padded  "`, expected: str("  padded  ")},
		{raw: `"it's"`, expected: str("it's")},
		{raw: `true`, expected: value.Bool(true)},
		{raw: `false`, expected: value.Bool(false)},
		{raw: `  true  `, expected: value.Bool(true)},
		{raw: `0`, expected: num(0)},
		{raw: `12`, expected: num(12)},
		{raw: `-100`, expected: num(-100)},
		{raw: `0.01`, expected: num(0.01)},
		{raw: `-0.2`, expected: num(-0.2)},
		{raw: `1E3`, expected: num(1e3)},
		{raw: `2e6`, expected: num(2e6)},
		{raw: `0.1e2`, expected: num(10)},
		{raw: `-1E3`, expected: num(-1e3)},
		{raw: `-0.1e2`, expected: num(-10)},
		{raw: `1e-2`, expected: num(0.01)},
		{raw: `1995-12-17T03:24:00`, expected: localDate},
		{raw: `1996-10-13T08:35:32.000Z`, expected: utcDate},
		{raw: `1996-10-13T10:35:32+02:00`, expected: utcDate},
		{raw: `1996-10-13`, expected: value.Date(time.Date(1996, 10, 13, 0, 0, 0, 0, time.UTC))},
		{raw: `/attr/subAttr2/1`, expected: num(2)},
		{raw: `~subAttr/0`, expected: num(10)},
		{raw: `/somePath1/0/path`, expected: value.Unresolved()},
		{raw: `~somePath1/0/path`, expected: value.Unresolved()},
		{
			raw:      "[0, 10, -0.1e2, \"some\nstring\", 1995-12-17T03:24:00, ~subAttr/0]",
			expected: list(num(0), num(10), num(-10), str("some\nstring"), localDate, num(10)),
		},
		{
			raw:      "[0, 10, [-0.1e2, 'some\nstring', [1996-10-13T08:35:32.000Z]], ~subAttr/0]",
			expected: list(num(0), num(10), list(num(-10), str("some\nstring"), list(utcDate)), num(10)),
		},
		{
			raw: "{ key: 0, otherKey: 10, another_key: \"some\nstring\", date1: 1995-12-17T03:24:00, __path__: ~subAttr/0 }",
			expected: obj(map[string]value.Value{
				"key":         num(0),
				"otherKey":    num(10),
				"another_key": str("some\nstring"),
				"date1":       localDate,
				"__path__":    num(10),
			}),
		},
		{
			raw: "{ key: -0.1e2, otherKey: { str: \"some\nstring\", date: { value: 1995-12-17T03:24:00 } }, _path: ~subAttr/0 }",
			expected: obj(map[string]value.Value{
				"key": num(-10),
				"otherKey": obj(map[string]value.Value{
					"str":  str("some\nstring"),
					"date": obj(map[string]value.Value{"value": localDate}),
				}),
				"_path": num(10),
			}),
		},
		{
			raw: "[\"some\nstring\", { key: { otherKey: [/attr/subAttr2/1, 1996-10-13T08:35:32.000Z, -0.1e2] } }, true, false]",
			expected: list(
				str("some\nstring"),
				obj(map[string]value.Value{
					"key": obj(map[string]value.Value{
						"otherKey": list(num(2), utcDate, num(-10)),
					}),
				}),
				value.Bool(true),
				value.Bool(false),
			),
		},
		{
			raw: `{ key: -0.1E2, otherKey: [" some string ", true, false, [1995-12-17T03:24:00]], _path: /attr/subAttr2/1 }`,
			expected: obj(map[string]value.Value{
				"key":      num(-10),
				"otherKey": list(str(" some string "), value.Bool(true), value.Bool(false), list(localDate)),
				"_path":    num(2),
			}),
		},
		{
			raw:      "0, 10, [-0.1e2, 'some\nstring', [1996-10-13T08:35:32.000Z]], /attr/subAttr2/1",
			expected: list(num(0), num(10), list(num(-10), str("some\nstring"), list(utcDate)), num(2)),
		},
		{
			raw: "key: 0, otherKey: 10, another_key: { value: \"some\nstring\", date1: 1995-12-17T03:24:00 }, __path__: /attr/subAttr2/1",
			expected: obj(map[string]value.Value{
				"key":      num(0),
				"otherKey": num(10),
				"another_key": obj(map[string]value.Value{
					"value": str("some\nstring"),
					"date1": localDate,
				}),
				"__path__": num(2),
			}),
		},
		{raw: `[/missing, 1]`, expected: list(value.Unresolved(), num(1))},
		{raw: `{ a: [], b: {} }`, expected: str(`{ a: [], b: {} }`)},
	}

	scope := testScope()
	for _, tc := range testCases {
		t.Run(strconv.Quote(tc.raw), func(t *testing.T) {
			got := ParseValue(tc.raw, scope)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("ParseValue(%q) mismatch (-want +got):\n%s", tc.raw, diff)
			}
		})
	}
}

func TestParseValue_FallsBackToRawString(t *testing.T) {
	testCases := []string{
		`"some stirng" "another string"`,
		"'some\nstring' 10",
		`{ key: 10, 100 }`,
		`[10, true, ~/some/path]`,
		`~some/_path/1`,
		`20, key: 200`,
		`1995-12-17T03:24:00 true`,
		`10 true`,
		`[1, 2`,
		`{ key 1 }`,
		`trueish`,
		`plain words`,
		`1e999`,
		`[1, 1e400]`,
		`2023-02-30`,
		``,
		`   `,
	}

	scope := testScope()
	for _, raw := range testCases {
		t.Run(strconv.Quote(raw), func(t *testing.T) {
			got := ParseValue(raw, scope)
			s, ok := got.AsString()
			require.True(t, ok, "expected a string fallback, got %s", got)
			assert.Equal(t, raw, s)
		})
	}
}

func TestParseValue_UnicodeWhitespace(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected value.Value
	}{
		{name: "no-break space in a list", raw: "1,\u00a02", expected: list(num(1), num(2))},
		{name: "vertical tab in a list", raw: "1,\v2", expected: list(num(1), num(2))},
		{name: "line separator in an array", raw: "[1,\u20282]", expected: list(num(1), num(2))},
		{name: "no-break space in an object", raw: "{ a:\u00a01 }", expected: obj(map[string]value.Value{"a": num(1)})},
		{name: "space before the colon", raw: "{ a\u3000: 1 }", expected: obj(map[string]value.Value{"a": num(1)})},
		{name: "byte order mark around a scalar", raw: "\ufeff true\u00a0", expected: value.Bool(true)},
	}

	scope := testScope()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseValue(tc.raw, scope)
			assert.Empty(t, cmp.Diff(tc.expected, got))
		})
	}
}

func TestParseValue_DateBeforeNumber(t *testing.T) {
	got := ParseValue("1995-12-17T03:24:00", testScope())
	assert.Equal(t, value.KindDate, got.Kind())
}

func TestParseValue_DuplicateKeysLastWins(t *testing.T) {
	testCases := []struct {
		raw      string
		expected value.Value
	}{
		{raw: `{key2: 2, key2: 3}`, expected: obj(map[string]value.Value{"key2": num(3)})},
		{raw: `key2: 2, key2: 3`, expected: obj(map[string]value.Value{"key2": num(3)})},
		{raw: `{a: 1, b: 2, a: 3, b: 4, a: 5}`, expected: obj(map[string]value.Value{"a": num(5), "b": num(4)})},
		{raw: `{a: {x: 1}, a: {y: 2}}`, expected: obj(map[string]value.Value{"a": obj(map[string]value.Value{"y": num(2)})})},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Empty(t, cmp.Diff(tc.expected, ParseValue(tc.raw, testScope())))
		})
	}
}

func TestParseValue_BareFormsMatchBracketed(t *testing.T) {
	scope := testScope()

	assert.Empty(t, cmp.Diff(ParseValue("[1, 2, 3]", scope), ParseValue("1, 2, 3", scope)))
	assert.Empty(t, cmp.Diff(list(num(1), num(2), num(3)), ParseValue("1, 2, 3", scope)))

	assert.Empty(t, cmp.Diff(ParseValue("{k: 1, j: 2}", scope), ParseValue("k: 1, j: 2", scope)))
	assert.Empty(t, cmp.Diff(obj(map[string]value.Value{"k": num(1), "j": num(2)}), ParseValue("k: 1, j: 2", scope)))
}

func TestParseValue_PrimitivesReparse(t *testing.T) {
	for _, v := range []value.Value{num(0), num(-12.5), num(1e21), num(3e-7), value.Bool(true), value.Bool(false)} {
		t.Run(v.String(), func(t *testing.T) {
			assert.True(t, v.Equal(ParseValue(v.String(), testScope())))
		})
	}
}

func TestParseValue_ScopeIsNotMutated(t *testing.T) {
	scope := testScope()
	before := append([]string(nil), scope.BasePath...)

	ParseValue("[~subAttr/0, ~attr, /attr]", scope)
	assert.Equal(t, before, scope.BasePath)
}
