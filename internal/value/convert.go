package value

import (
	"fmt"
	"reflect"
	"time"

	"github.com/goccy/go-json"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// FromCty converts a cty.Value, as produced by evaluating HCL or JSON
// configuration, into a Value. Null and unknown values become Unresolved.
func FromCty(v cty.Value) (Value, error) {
	if v.IsNull() || !v.IsKnown() {
		return Value{}, nil
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return String(v.AsString()), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return Value{}, fmt.Errorf("could not convert cty.Number to float64: %w", err)
		}
		return Number(f), nil

	case ty == cty.Bool:
		return Bool(v.True()), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		elems := make([]Value, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			converted, err := FromCty(elem)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, converted)
		}
		return Value{kind: KindList, list: elems}, nil

	case ty.IsObjectType() || ty.IsMapType():
		entries := make(map[string]Value, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			key, elem := it.Element()
			converted, err := FromCty(elem)
			if err != nil {
				return Value{}, fmt.Errorf("in attribute '%s': %w", key.AsString(), err)
			}
			entries[key.AsString()] = converted
		}
		return Value{kind: KindMap, m: entries}, nil

	default:
		return Value{}, fmt.Errorf("unsupported cty type: %s", ty.FriendlyName())
	}
}

// FromNative converts decoded JSON or YAML data (strings, numbers, booleans,
// time.Time, slices and string-keyed maps) into a Value. nil becomes
// Unresolved.
func FromNative(v any) (Value, error) {
	switch v := v.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return v, nil
	case string:
		return String(v), nil
	case bool:
		return Bool(v), nil
	case time.Time:
		return Date(v), nil
	case float64:
		return Number(v), nil
	case float32:
		return Number(float64(v)), nil
	case int:
		return Number(float64(v)), nil
	case int64:
		return Number(float64(v)), nil
	case uint64:
		return Number(float64(v)), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", v, err)
		}
		return Number(f), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		return Number(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return Number(float64(rv.Uint())), nil

	case reflect.Slice, reflect.Array:
		elems := make([]Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem, err := FromNative(rv.Index(i).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("at index %d: %w", i, err)
			}
			elems = append(elems, elem)
		}
		return Value{kind: KindList, list: elems}, nil

	case reflect.Map:
		entries := make(map[string]Value, rv.Len())
		it := rv.MapRange()
		for it.Next() {
			key := fmt.Sprint(it.Key().Interface())
			entry, err := FromNative(it.Value().Interface())
			if err != nil {
				return Value{}, fmt.Errorf("in key '%s': %w", key, err)
			}
			entries[key] = entry
		}
		return Value{kind: KindMap, m: entries}, nil
	}

	return Value{}, fmt.Errorf("unsupported native type %T", v)
}

// ToNative converts v into plain Go data: string, float64, bool, time.Time,
// []any, map[string]any, or nil for Unresolved.
func (v Value) ToNative() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindDate:
		return v.date
	case KindList:
		out := make([]any, len(v.list))
		for i, elem := range v.list {
			out[i] = elem.ToNative()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.m))
		for key, entry := range v.m {
			out[key] = entry.ToNative()
		}
		return out
	}
	return nil
}

// MarshalJSON encodes v through its native form. Dates are written in
// RFC 3339 and unresolved values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToNative())
}
