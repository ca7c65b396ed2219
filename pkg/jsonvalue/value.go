// Package jsonvalue implements a tagged-union representation of JSON documents
// used by the verifier to compare expected and actual response bodies.
// Values are built either by parsing JSON text or by converting the generic
// values produced by the YAML decoder, so both sides of a comparison share one
// representation regardless of where they came from.
package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"time"
)

// Kind identifies which member of the union a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// String returns the JSON type name of the kind.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is an immutable JSON value. The zero Value is JSON null.
type Value struct {
	kind Kind
	b    bool
	num  string // literal text of a number, e.g. "1", "1.5", "1e+06"
	// native marks numbers built from Go values (YAML decoding, constructors)
	// rather than JSON text; they compare by value against any encoding.
	native bool
	s    string
	arr  []Value
	obj  map[string]Value
}

// NullValue returns JSON null.
func NullValue() Value { return Value{} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// NumberValue wraps a float64. NaN and infinities have no JSON form and
// are rejected by FromAny; callers of NumberValue must not pass them.
func NumberValue(f float64) Value {
	return Value{kind: Number, num: strconv.FormatFloat(f, 'g', -1, 64), native: true}
}

// IntValue wraps an integer.
func IntValue(i int64) Value {
	return Value{kind: Number, num: strconv.FormatInt(i, 10), native: true}
}

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: String, s: s} }

// ArrayValue wraps an ordered list of values.
func ArrayValue(items ...Value) Value {
	return Value{kind: Array, arr: append([]Value(nil), items...)}
}

// ObjectValue wraps a set of members. The map is copied.
func ObjectValue(members map[string]Value) Value {
	obj := make(map[string]Value, len(members))
	for k, v := range members {
		obj[k] = v
	}
	return Value{kind: Object, obj: obj}
}

// Kind reports the union member held by v.
func (v Value) Kind() Kind { return v.kind }

// IsObject reports whether v is a JSON object.
func (v Value) IsObject() bool { return v.kind == Object }

// AsString returns the string payload and whether v is a string.
func (v Value) AsString() (string, bool) { return v.s, v.kind == String }

// Len returns the number of elements of an array or members of an object.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.arr)
	case Object:
		return len(v.obj)
	}
	return 0
}

// Index returns the i-th element of an array.
func (v Value) Index(i int) Value { return v.arr[i] }

// Get returns the member named key of an object.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	m, ok := v.obj[key]
	return m, ok
}

// Keys returns the member names of an object in sorted order.
func (v Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Parse decodes exactly one JSON document. Trailing non-whitespace data is an error.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, fmt.Errorf("invalid character after top-level value at offset %d", dec.InputOffset())
	}
	return FromAny(raw)
}

// FromAny converts the generic values produced by encoding/json (with UseNumber)
// or gopkg.in/yaml.v3 into a Value.
func FromAny(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return t, nil
	case bool:
		return BoolValue(t), nil
	case string:
		return StringValue(t), nil
	case json.Number:
		if _, err := strconv.ParseFloat(string(t), 64); err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", t, err)
		}
		return Value{kind: Number, num: string(t)}, nil
	case int:
		return IntValue(int64(t)), nil
	case int64:
		return IntValue(t), nil
	case int32:
		return IntValue(int64(t)), nil
	case uint:
		return Value{kind: Number, num: strconv.FormatUint(uint64(t), 10), native: true}, nil
	case uint64:
		return Value{kind: Number, num: strconv.FormatUint(t, 10), native: true}, nil
	case float32:
		return fromFloat(float64(t))
	case float64:
		return fromFloat(t)
	case time.Time:
		// yaml.v3 resolves unquoted timestamps; JSON has no such type.
		return StringValue(t.Format(time.RFC3339Nano)), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			v, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items[i] = v
		}
		return Value{kind: Array, arr: items}, nil
	case map[string]any:
		obj := make(map[string]Value, len(t))
		for k, item := range t {
			v, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", k, err)
			}
			obj[k] = v
		}
		return Value{kind: Object, obj: obj}, nil
	case map[any]any:
		obj := make(map[string]Value, len(t))
		for k, item := range t {
			key := fmt.Sprint(k)
			v, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", key, err)
			}
			obj[key] = v
		}
		return Value{kind: Object, obj: obj}, nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}

func fromFloat(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("number %v has no JSON representation", f)
	}
	return NumberValue(f), nil
}

// Interface converts v back into plain Go values (json.Number for numbers,
// map[string]any for objects) suitable for encoding/json.
func (v Value) Interface() any {
	switch v.kind {
	case Bool:
		return v.b
	case Number:
		return json.Number(v.num)
	case String:
		return v.s
	case Array:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Interface()
		}
		return out
	case Object:
		out := make(map[string]any, len(v.obj))
		for k, item := range v.obj {
			out[k] = item.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON renders v as compact JSON with object keys sorted.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.encode("")
}

// String renders v as compact JSON. It is used for single-line diff output.
func (v Value) String() string {
	b, err := v.encode("")
	if err != nil {
		return fmt.Sprintf("<%s: %v>", v.kind, err)
	}
	return string(b)
}

// Pretty renders v as JSON indented with two spaces.
func (v Value) Pretty() string {
	b, err := v.encode("  ")
	if err != nil {
		return fmt.Sprintf("<%s: %v>", v.kind, err)
	}
	return string(b)
}

func (v Value) encode(indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v.Interface()); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
