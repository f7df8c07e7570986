package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Identity keys carried by every item. They are never ordinary attributes.
const (
	KeyID         = "id"
	KeyCategoryID = "categoryId"
)

// Attr is one attribute on an item.
type Attr struct {
	Key   string
	Value Value
}

// Item is a record belonging to one category. Attrs holds the remaining
// key/value pairs in insertion order; the order is preserved through JSON.
// An item's keys need not match its category's fields.
type Item struct {
	ID         string
	CategoryID string
	Attrs      []Attr
}

// Get returns the value stored under key. The identity keys "id" and
// "categoryId" resolve to string values. The boolean is false when the
// item has no such key.
func (it Item) Get(key string) (Value, bool) {
	switch key {
	case KeyID:
		return StringValue(it.ID), true
	case KeyCategoryID:
		return StringValue(it.CategoryID), true
	}
	for _, a := range it.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return Value{}, false
}

// Set stores v under key, replacing an existing attribute in place or
// appending a new one. Returns ErrReservedKey for identity keys and
// ErrInvalidKey for an empty key.
func (it *Item) Set(key string, v Value) error {
	if key == "" {
		return ErrInvalidKey
	}
	if IsReservedKey(key) {
		return ErrReservedKey
	}
	for i := range it.Attrs {
		if it.Attrs[i].Key == key {
			it.Attrs[i].Value = v
			return nil
		}
	}
	it.Attrs = append(it.Attrs, Attr{Key: key, Value: v})
	return nil
}

// Unset removes the attribute stored under key. Missing keys are ignored.
func (it *Item) Unset(key string) {
	for i := range it.Attrs {
		if it.Attrs[i].Key == key {
			it.Attrs = append(it.Attrs[:i], it.Attrs[i+1:]...)
			return
		}
	}
}

// Keys returns the attribute keys in insertion order, excluding the
// identity keys.
func (it Item) Keys() []string {
	keys := make([]string, len(it.Attrs))
	for i, a := range it.Attrs {
		keys[i] = a.Key
	}
	return keys
}

// Clone returns a copy of it that shares no attribute storage.
func (it Item) Clone() Item {
	out := it
	out.Attrs = append([]Attr(nil), it.Attrs...)
	return out
}

// MarshalJSON writes the item as a flat object: id, categoryId, then every
// attribute in order.
func (it Item) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writePair := func(key string, v any) error {
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		val, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(val)
		return nil
	}
	if err := writePair(KeyID, it.ID); err != nil {
		return nil, err
	}
	if err := writePair(KeyCategoryID, it.CategoryID); err != nil {
		return nil, err
	}
	for _, a := range it.Attrs {
		if err := writePair(a.Key, a.Value); err != nil {
			return nil, fmt.Errorf("attribute %q: %w", a.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a flat object, keeping attribute order as written.
// A repeated key keeps its first position and its last value.
func (it *Item) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("item: expected object, got %v", tok)
	}

	var out Item
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("item: expected key, got %v", tok)
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("item: value for %q: %w", key, err)
		}
		v := ValueOf(raw)
		switch key {
		case KeyID:
			out.ID = v.String()
		case KeyCategoryID:
			out.CategoryID = v.String()
		default:
			if key == "" {
				continue
			}
			_ = out.Set(key, v)
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*it = out
	return nil
}
