package types

import (
	"strings"
	"unicode"
)

// FieldType is the advisory type of a field. The search engine always
// compares values as case-folded strings regardless of type.
type FieldType string

// Field types.
const (
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
)

// validFieldTypes is the set of recognized field types.
var validFieldTypes = map[FieldType]bool{
	FieldString:  true,
	FieldNumber:  true,
	FieldBoolean: true,
}

// IsValidFieldType reports whether the given type is recognized.
func IsValidFieldType(ft FieldType) bool {
	return validFieldTypes[ft]
}

// Category is a named grouping of items sharing a field schema.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Field is a named attribute definition scoped to one category. Key is the
// attribute name on items and is unique within the category.
type Field struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"categoryId"`
	Name       string    `json:"name"`
	Key        string    `json:"key"`
	Type       FieldType `json:"type"`
}

// NormalizeKey turns a display label into an attribute key: surrounding
// space trimmed, lower-cased, and every run of whitespace replaced by a
// single underscore. "Serial Number" becomes "serial_number".
func NormalizeKey(label string) string {
	fields := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(label)), unicode.IsSpace)
	return strings.Join(fields, "_")
}

// IsReservedKey reports whether key names one of the item identity fields.
func IsReservedKey(key string) bool {
	return key == KeyID || key == KeyCategoryID
}
