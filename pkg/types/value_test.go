package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"string", StringValue("Laptop"), "Laptop"},
		{"integer number", NumberValue(1001), "1001"},
		{"fractional number", NumberValue(2.5), "2.5"},
		{"true", BoolValue(true), "true"},
		{"false", BoolValue(false), "false"},
		{"null", NullValue(), ""},
		{"zero value is null", Value{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestValueFolded(t *testing.T) {
	assert.Equal(t, "dell latitude", StringValue("Dell Latitude").Folded())
	assert.Equal(t, "true", BoolValue(true).Folded())
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		typ      FieldType
		wantKind Kind
		want     string
	}{
		{"string type keeps text", "1001", FieldString, KindString, "1001"},
		{"number parses", "16", FieldNumber, KindNumber, "16"},
		{"number falls back to string", "sixteen", FieldNumber, KindString, "sixteen"},
		{"NaN stays a string", "NaN", FieldNumber, KindString, "NaN"},
		{"infinity stays a string", "+Inf", FieldNumber, KindString, "+Inf"},
		{"overflow stays a string", "1e999", FieldNumber, KindString, "1e999"},
		{"boolean parses", "true", FieldBoolean, KindBool, "true"},
		{"boolean falls back to string", "maybe", FieldBoolean, KindString, "maybe"},
		{"unknown type keeps text", "x", "", KindString, "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ParseValue(tt.raw, tt.typ)
			assert.Equal(t, tt.wantKind, v.Kind())
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestValueJSON(t *testing.T) {
	tests := []struct {
		raw      string
		wantKind Kind
	}{
		{`"abc"`, KindString},
		{`42`, KindNumber},
		{`false`, KindBool},
		{`null`, KindNull},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var v Value
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &v))
			assert.Equal(t, tt.wantKind, v.Kind())

			out, err := json.Marshal(v)
			require.NoError(t, err)
			assert.JSONEq(t, tt.raw, string(out))
		})
	}
}

func TestValueOf(t *testing.T) {
	assert.Equal(t, KindNumber, ValueOf(3).Kind())
	assert.Equal(t, KindNumber, ValueOf(int64(3)).Kind())
	assert.Equal(t, KindNumber, ValueOf(json.Number("7")).Kind())
	assert.Equal(t, KindString, ValueOf("x").Kind())
	assert.Equal(t, KindNull, ValueOf(nil).Kind())
	assert.Equal(t, `{"k":"v"}`, ValueOf(map[string]any{"k": "v"}).String())
}
