package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// FromNative converts a Go value into a Value. Slices become lists and
// string-keyed maps become maps with keys in sorted order.
func FromNative(x any) (Value, error) {
	switch n := x.(type) {
	case nil:
		return NullValue, nil
	case Value:
		return n, nil
	case bool:
		return Bool(n), nil
	case string:
		return String(n), nil
	case json.Number:
		return ParseNumber(n.String())
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return NumberOf(n), nil
	case []Value:
		return NewList(n...), nil
	case []any:
		items := make([]Value, len(n))
		for i, it := range n {
			v, err := FromNative(it)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return ListOf(items), nil
	case map[string]any:
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMap()
		for _, k := range keys {
			v, err := FromNative(n[k])
			if err != nil {
				return nil, err
			}
			m.Put(String(k), v)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("cannot convert %T to a value", x)
	}
}

// ToNative converts v into plain Go values: nil, bool, string, int32, int64,
// float64, []any and map[string]any. Map keys use their string form.
func ToNative(v Value) any {
	switch x := Unwrap(v).(type) {
	case Null:
		return nil
	case Bool:
		return bool(x)
	case String:
		return string(x)
	case Number:
		return x.Native()
	case *Map:
		out := make(map[string]any, x.Len())
		for i, k := range x.keys {
			out[k.String()] = ToNative(x.vals[i])
		}
		return out
	default:
		if items, ok := Elements(x); ok {
			out := make([]any, len(items))
			for i, it := range items {
				out[i] = ToNative(it)
			}
			return out
		}
		return x.String()
	}
}

func jsonForm(v Value) any {
	switch x := Unwrap(v).(type) {
	case Number:
		if math.IsInf(x.f, 0) || math.IsNaN(x.f) {
			return x.String()
		}
		return x.JSON()
	case *Map:
		out := make(map[string]any, x.Len())
		for i, k := range x.keys {
			out[k.String()] = jsonForm(x.vals[i])
		}
		return out
	case *List:
		out := make([]any, x.Len())
		for i, it := range x.items {
			out[i] = jsonForm(it)
		}
		return out
	default:
		return ToNative(x)
	}
}

// ToJSON encodes v. Numbers that are not finite encode as their display
// string.
func ToJSON(v Value) ([]byte, error) {
	data, err := json.Marshal(jsonForm(v))
	if err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}
	return data, nil
}

// FromJSON decodes data, keeping integral literals exact.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}
	return FromNative(raw)
}
