// Package value defines the tagged union produced by the attribute grammar
// and consumed by aspects: strings, numbers, booleans, dates, lists, maps and
// the unresolved marker left by a dangling resource reference.
//
// A Value is immutable. Constructors copy what they are given and accessors
// hand out copies, so a Value can be shared between goroutines and cached
// without further care. Merge builds new values instead of updating in place.
package value

import (
	"maps"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind identifies which member of the union a Value holds.
type Kind uint8

const (
	// KindUnresolved is the kind of the zero Value.
	KindUnresolved Kind = iota
	KindString
	KindNumber
	KindBool
	KindDate
	KindList
	KindMap
)

var kindNames = [...]string{
	KindUnresolved: "unresolved",
	KindString:     "string",
	KindNumber:     "number",
	KindBool:       "bool",
	KindDate:       "date",
	KindList:       "list",
	KindMap:        "map",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a parsed attribute value or a node of a resource tree.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	date time.Time
	list []Value
	m    map[string]Value
}

// Unresolved returns the value of a reference that points nowhere. It is
// the zero Value.
func Unresolved() Value {
	return Value{}
}

func String(s string) Value {
	return Value{kind: KindString, str: s}
}

func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func Date(t time.Time) Value {
	return Value{kind: KindDate, date: t}
}

// List returns a list holding a copy of elems.
func List(elems ...Value) Value {
	return Value{kind: KindList, list: slices.Clone(elems)}
}

// Map returns a map holding a copy of entries. A nil map gives an empty Map.
func Map(entries map[string]Value) Value {
	m := maps.Clone(entries)
	if m == nil {
		m = map[string]Value{}
	}
	return Value{kind: KindMap, m: m}
}

// EmptyMap is shorthand for Map(nil).
func EmptyMap() Value {
	return Map(nil)
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsUnresolved() bool { return v.kind == KindUnresolved }

func (v Value) IsMap() bool { return v.kind == KindMap }

func (v Value) IsList() bool { return v.kind == KindList }

func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

func (v Value) AsDate() (time.Time, bool) {
	return v.date, v.kind == KindDate
}

// Len returns the number of elements of a list or entries of a map, 0
// otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.m)
	}
	return 0
}

// Index returns the i-th element of a list. Out of range indexes and
// non-list values give Unresolved.
func (v Value) Index(i int) Value {
	if v.kind != KindList || i < 0 || i >= len(v.list) {
		return Value{}
	}
	return v.list[i]
}

// Elements returns a copy of the elements of a list.
func (v Value) Elements() []Value {
	if v.kind != KindList {
		return nil
	}
	return slices.Clone(v.list)
}

// Get returns the entry stored under key in a map.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	entry, ok := v.m[key]
	return entry, ok
}

// Keys returns the sorted keys of a map.
func (v Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}
	keys := make([]string, 0, len(v.m))
	for key := range v.m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Entries returns a copy of the entries of a map.
func (v Value) Entries() map[string]Value {
	if v.kind != KindMap {
		return nil
	}
	return maps.Clone(v.m)
}

// Lookup walks segments from v: map entries by key, list elements by
// decimal index. Any missing step gives Unresolved.
func (v Value) Lookup(segments ...string) Value {
	current := v
	for _, segment := range segments {
		switch current.kind {
		case KindMap:
			next, ok := current.m[segment]
			if !ok {
				return Value{}
			}
			current = next
		case KindList:
			i, err := strconv.Atoi(segment)
			if err != nil || strconv.Itoa(i) != segment {
				return Value{}
			}
			current = current.Index(i)
		default:
			return Value{}
		}
	}
	return current
}

// Equal reports deep equality. Dates compare as instants.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindUnresolved:
		return true
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.b == other.b
	case KindDate:
		return v.date.Equal(other.date)
	case KindList:
		return slices.EqualFunc(v.list, other.list, Value.Equal)
	case KindMap:
		return maps.EqualFunc(v.m, other.m, Value.Equal)
	}
	return false
}

// String renders v in the attribute grammar's notation, with map keys
// sorted. Unresolved values render as "undefined".
func (v Value) String() string {
	var sb strings.Builder
	v.write(&sb)
	return sb.String()
}

func (v Value) write(sb *strings.Builder) {
	switch v.kind {
	case KindUnresolved:
		sb.WriteString("undefined")
	case KindString:
		sb.WriteString(strconv.Quote(v.str))
	case KindNumber:
		sb.WriteString(strconv.FormatFloat(v.num, 'g', -1, 64))
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindDate:
		sb.WriteString(v.date.Format(time.RFC3339Nano))
	case KindList:
		sb.WriteByte('[')
		for i, elem := range v.list {
			if i > 0 {
				sb.WriteString(", ")
			}
			elem.write(sb)
		}
		sb.WriteByte(']')
	case KindMap:
		sb.WriteByte('{')
		for i, key := range v.Keys() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(key)
			sb.WriteString(": ")
			v.m[key].write(sb)
		}
		sb.WriteByte('}')
	}
}
