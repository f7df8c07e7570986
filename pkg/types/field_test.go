package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Serial Number", "serial_number"},
		{"  Patrimonio ", "patrimonio"},
		{"Asset\tTag  ID", "asset_tag_id"},
		{"owner", "owner"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeKey(tt.label))
		})
	}
}

func TestIsValidFieldType(t *testing.T) {
	for _, ft := range []FieldType{FieldString, FieldNumber, FieldBoolean} {
		assert.True(t, IsValidFieldType(ft), "expected %q to be valid", ft)
	}
	for _, ft := range []FieldType{"", "text", "integer", "STRING"} {
		assert.False(t, IsValidFieldType(ft), "expected %q to be invalid", ft)
	}
}

func TestIsReservedKey(t *testing.T) {
	assert.True(t, IsReservedKey("id"))
	assert.True(t, IsReservedKey("categoryId"))
	assert.False(t, IsReservedKey("patrimonio"))
	assert.False(t, IsReservedKey("ID"))
}
