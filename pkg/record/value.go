// Package record models semi-structured records as a closed set of JSON value
// kinds and provides the textual views the profiler and browser work with.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strconv"
)

// Kind identifies the variant held by a [Value].
type Kind uint8

// Value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "boolean",
	KindNumber: "number",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
}

// String returns the lowercase kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "unknown"
}

// ErrNotArray is returned when a document's top-level value is not an array.
var ErrNotArray = errors.New("top-level value is not an array")

// ErrTrailingData is returned when input continues after the top-level array.
var ErrTrailingData = errors.New("unexpected data after top-level array")

// Value is one JSON value. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	s    string // string payload or number literal
	arr  []Value
	obj  map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Number wraps a JSON number literal. The literal is not validated.
func Number(literal string) Value { return Value{kind: KindNumber, s: literal} }

// Int wraps an integer.
func Int(n int64) Value { return Number(strconv.FormatInt(n, 10)) }

// Float wraps a float. NaN and infinities have no JSON form and become null.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}

	return Number(formatFloat(f))
}

// Array wraps a list of values.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}

	return Value{kind: KindArray, arr: items}
}

// Object wraps a key/value mapping.
func Object(members map[string]Value) Value {
	if members == nil {
		members = map[string]Value{}
	}

	return Value{kind: KindObject, obj: members}
}

// Kind reports the variant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsObject reports whether v is an object.
func (v Value) IsObject() bool { return v.kind == KindObject }

// Bool returns the boolean payload.
func (v Value) Bool() bool { return v.b }

// Str returns the string payload, or the literal for numbers.
func (v Value) Str() string { return v.s }

// Items returns the elements of an array. Nil for other kinds.
func (v Value) Items() []Value { return v.arr }

// Len returns the number of array elements or object members.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Get looks up an object member. It reports false for non-objects.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}

	member, ok := v.obj[key]

	return member, ok
}

// Keys returns the object's member names in sorted order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}

	return slices.Sorted(maps.Keys(v.obj))
}

// Float64 converts a number to float64.
func (v Value) Float64() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}

	f, err := strconv.ParseFloat(v.s, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

// Equal reports deep equality. Numbers compare by numeric value.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return Text(v) == Text(other)
	case KindString:
		return v.s == other.s
	case KindArray:
		return slices.EqualFunc(v.arr, other.arr, Value.Equal)
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}

		for key, member := range v.obj {
			om, ok := other.obj[key]
			if !ok || !member.Equal(om) {
				return false
			}
		}

		return true
	}

	return false
}

// UnmarshalJSON decodes any JSON value, keeping number literals intact.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any

	err := dec.Decode(&raw)
	if err != nil {
		return fmt.Errorf("decode value: %w", err)
	}

	converted, err := FromAny(raw)
	if err != nil {
		return err
	}

	*v = converted

	return nil
}

// MarshalJSON encodes the value. Object members are written in key order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		return []byte(v.s), nil
	case KindString:
		return json.Marshal(v.s)
	case KindArray:
		return json.Marshal(v.arr)
	case KindObject:
		return json.Marshal(v.obj)
	}

	return nil, fmt.Errorf("marshal value: unknown kind %d", v.kind)
}

// MarshalYAML maps the value onto plain Go values for YAML encoders.
func (v Value) MarshalYAML() (any, error) {
	switch v.kind {
	case KindNull:
		return nil, nil
	case KindBool:
		return v.b, nil
	case KindNumber:
		if n, err := strconv.ParseInt(v.s, 10, 64); err == nil {
			return n, nil
		}

		f, _ := v.Float64()

		return f, nil
	case KindString:
		return v.s, nil
	case KindArray:
		return v.arr, nil
	case KindObject:
		return v.obj, nil
	}

	return nil, fmt.Errorf("marshal value: unknown kind %d", v.kind)
}

// FromAny converts the output of encoding/json (decoded with UseNumber, or
// with float64 numbers) into a Value.
func FromAny(raw any) (Value, error) {
	switch typed := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(typed), nil
	case json.Number:
		return Number(typed.String()), nil
	case float64:
		return Float(typed), nil
	case int:
		return Int(int64(typed)), nil
	case int64:
		return Int(typed), nil
	case string:
		return String(typed), nil
	case []any:
		items := make([]Value, 0, len(typed))

		for _, elem := range typed {
			item, err := FromAny(elem)
			if err != nil {
				return Value{}, err
			}

			items = append(items, item)
		}

		return Array(items...), nil
	case map[string]any:
		members := make(map[string]Value, len(typed))

		for key, elem := range typed {
			member, err := FromAny(elem)
			if err != nil {
				return Value{}, err
			}

			members[key] = member
		}

		return Object(members), nil
	}

	return Value{}, fmt.Errorf("unsupported value of type %T", raw)
}

// DecodeArray reads a JSON document whose top-level value must be an array
// and returns its elements in order.
func DecodeArray(r io.Reader) ([]Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any

	err := dec.Decode(&raw)
	if err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w at offset %d", ErrTrailingData, dec.InputOffset())
	}

	top, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotArray, describe(raw))
	}

	records := make([]Value, 0, len(top))

	for _, elem := range top {
		rec, err := FromAny(elem)
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return records, nil
}

func describe(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", raw)
	}
}
