package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind int

// Value kinds. The zero Value is null.
const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	default:
		return "null"
	}
}

// Value is a single attribute value on an item: a string, number, boolean,
// or null. Every comparison in the search engine goes through String, so
// the kind only matters for display and persistence.
type Value struct {
	kind Kind
	s    string
	n    float64
	b    bool
}

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// NumberValue returns a number Value.
func NumberValue(n float64) Value { return Value{kind: KindNumber, n: n} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// NullValue returns the null Value.
func NullValue() Value { return Value{} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// String returns the comparison form of v. Numbers use the shortest
// decimal representation ("1001", "2.5"); null is the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Folded returns String lower-cased for case-insensitive comparison.
func (v Value) Folded() string {
	return strings.ToLower(v.String())
}

// Interface returns v as a plain Go value (string, float64, bool or nil).
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return v.n
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// ValueOf converts a decoded JSON value or a plain Go scalar into a Value.
// Composite values (objects, arrays) are kept as their JSON text.
func ValueOf(x any) Value {
	switch t := x.(type) {
	case nil:
		return NullValue()
	case Value:
		return t
	case string:
		return StringValue(t)
	case bool:
		return BoolValue(t)
	case float64:
		return NumberValue(t)
	case float32:
		return NumberValue(float64(t))
	case int:
		return NumberValue(float64(t))
	case int64:
		return NumberValue(float64(t))
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return NumberValue(f)
		}
		return StringValue(t.String())
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return StringValue(fmt.Sprint(t))
		}
		return StringValue(string(b))
	}
}

// ParseValue converts raw text entered by a user into a Value, guided by
// the advisory field type. Text that does not parse as the requested type
// is kept as a string, and so are NaN and infinities, which JSON cannot
// hold.
func ParseValue(raw string, typ FieldType) Value {
	switch typ {
	case FieldNumber:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return NumberValue(f)
		}
	case FieldBoolean:
		if b, err := strconv.ParseBool(strings.TrimSpace(raw)); err == nil {
			return BoolValue(b)
		}
	}
	return StringValue(raw)
}

// MarshalJSON encodes v as its native JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON decodes any JSON scalar into v.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return err
	}
	*v = ValueOf(x)
	return nil
}
