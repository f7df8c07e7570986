package types

import (
	"strings"

	"github.com/google/uuid"
)

// Snapshot is the full in-memory copy of categories, fields, and items. It
// is loaded wholesale from a Store and written back wholesale after every
// mutation. The search engine treats it as read-only.
type Snapshot struct {
	Categories []Category `json:"categories"`
	Fields     []Field    `json:"fields"`
	Items      []Item     `json:"items"`
}

// NewSnapshot returns an empty snapshot with non-nil collections.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Categories: []Category{},
		Fields:     []Field{},
		Items:      []Item{},
	}
}

// normalize replaces nil collections with empty ones so the JSON document
// always carries all three arrays.
func (s *Snapshot) normalize() {
	if s.Categories == nil {
		s.Categories = []Category{}
	}
	if s.Fields == nil {
		s.Fields = []Field{}
	}
	if s.Items == nil {
		s.Items = []Item{}
	}
}

// Normalize is exported for stores that decode a snapshot themselves.
func (s *Snapshot) Normalize() { s.normalize() }

// Clone returns a deep copy of s.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Categories: append([]Category{}, s.Categories...),
		Fields:     append([]Field{}, s.Fields...),
		Items:      make([]Item, len(s.Items)),
	}
	for i, it := range s.Items {
		out.Items[i] = it.Clone()
	}
	return out
}

// CategoryIDs returns the ids of every category in stored order.
func (s *Snapshot) CategoryIDs() []string {
	ids := make([]string, len(s.Categories))
	for i, c := range s.Categories {
		ids[i] = c.ID
	}
	return ids
}

// Category returns the category with the given id.
func (s *Snapshot) Category(id string) (Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Item returns the item with the given id.
func (s *Snapshot) Item(id string) (Item, bool) {
	if i := s.itemIndex(id); i >= 0 {
		return s.Items[i], true
	}
	return Item{}, false
}

func (s *Snapshot) itemIndex(id string) int {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// FieldsOf returns the explicit field definitions of a category in stored
// order. Returns an empty slice when none exist.
func (s *Snapshot) FieldsOf(categoryID string) []Field {
	out := []Field{}
	for _, f := range s.Fields {
		if f.CategoryID == categoryID {
			out = append(out, f)
		}
	}
	return out
}

// AddCategory appends a new category. Returns ErrInvalidName if name is
// blank.
func (s *Snapshot) AddCategory(name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrInvalidName
	}
	c := Category{ID: generateUUID(), Name: name}
	s.Categories = append(s.Categories, c)
	return c, nil
}

// RenameCategory changes a category's display name.
func (s *Snapshot) RenameCategory(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			s.Categories[i].Name = name
			return nil
		}
	}
	return ErrCategoryNotFound
}

// DeleteCategory removes a category together with every field and item
// that references it. Returns the number of items removed.
func (s *Snapshot) DeleteCategory(id string) (int, error) {
	idx := -1
	for i, c := range s.Categories {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, ErrCategoryNotFound
	}
	s.Categories = append(s.Categories[:idx], s.Categories[idx+1:]...)

	fields := s.Fields[:0]
	for _, f := range s.Fields {
		if f.CategoryID != id {
			fields = append(fields, f)
		}
	}
	s.Fields = fields

	removed := 0
	items := s.Items[:0]
	for _, it := range s.Items {
		if it.CategoryID == id {
			removed++
			continue
		}
		items = append(items, it)
	}
	s.Items = items
	return removed, nil
}

// AddField defines a new field on a category. An empty key is derived from
// name with NormalizeKey; an empty type defaults to FieldString.
func (s *Snapshot) AddField(categoryID, name, key string, typ FieldType) (Field, error) {
	if _, ok := s.Category(categoryID); !ok {
		return Field{}, ErrCategoryNotFound
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Field{}, ErrInvalidName
	}
	if key == "" {
		key = NormalizeKey(name)
	}
	if typ == "" {
		typ = FieldString
	}
	f := Field{ID: generateUUID(), CategoryID: categoryID, Name: name, Key: key, Type: typ}
	if err := s.checkField(f); err != nil {
		return Field{}, err
	}
	s.Fields = append(s.Fields, f)
	return f, nil
}

// FieldChange lists the parts of a field to replace. Empty members keep
// the current value.
type FieldChange struct {
	Name string
	Key  string
	Type FieldType
}

// UpdateField edits a field definition in place. Item attributes stored
// under the old key are left as they are.
func (s *Snapshot) UpdateField(id string, change FieldChange) (Field, error) {
	i := s.fieldIndex(id)
	if i < 0 {
		return Field{}, ErrFieldNotFound
	}
	f := s.Fields[i]
	if change.Name != "" {
		f.Name = strings.TrimSpace(change.Name)
		if f.Name == "" {
			return Field{}, ErrInvalidName
		}
	}
	if change.Key != "" {
		f.Key = strings.TrimSpace(change.Key)
	}
	if change.Type != "" {
		f.Type = change.Type
	}
	if err := s.checkField(f); err != nil {
		return Field{}, err
	}
	s.Fields[i] = f
	return f, nil
}

// DeleteField removes a field definition. Values items hold under its key
// stay and surface as inferred fields.
func (s *Snapshot) DeleteField(id string) error {
	i := s.fieldIndex(id)
	if i < 0 {
		return ErrFieldNotFound
	}
	s.Fields = append(s.Fields[:i], s.Fields[i+1:]...)
	return nil
}

func (s *Snapshot) fieldIndex(id string) int {
	for i := range s.Fields {
		if s.Fields[i].ID == id {
			return i
		}
	}
	return -1
}

// checkField validates f's key and type against the other fields of its
// category.
func (s *Snapshot) checkField(f Field) error {
	if f.Key == "" || strings.ContainsFunc(f.Key, isSpace) {
		return ErrInvalidKey
	}
	if IsReservedKey(f.Key) {
		return ErrReservedKey
	}
	if !IsValidFieldType(f.Type) {
		return ErrInvalidFieldType
	}
	for _, other := range s.Fields {
		if other.ID != f.ID && other.CategoryID == f.CategoryID && other.Key == f.Key {
			return ErrDuplicateKey
		}
	}
	return nil
}

// AddItem creates an item in a category with the given attributes, in order.
func (s *Snapshot) AddItem(categoryID string, attrs []Attr) (Item, error) {
	if _, ok := s.Category(categoryID); !ok {
		return Item{}, ErrCategoryNotFound
	}
	it := Item{ID: generateUUID(), CategoryID: categoryID}
	for _, a := range attrs {
		if err := it.Set(a.Key, a.Value); err != nil {
			return Item{}, err
		}
	}
	s.Items = append(s.Items, it)
	return it, nil
}

// UpdateItem merges attrs into an existing item: known keys are replaced in
// place, new keys are appended, and null values remove the key.
func (s *Snapshot) UpdateItem(id string, attrs []Attr) (Item, error) {
	i := s.itemIndex(id)
	if i < 0 {
		return Item{}, ErrNotFound
	}
	it := s.Items[i].Clone()
	for _, a := range attrs {
		if a.Value.IsNull() {
			it.Unset(a.Key)
			continue
		}
		if err := it.Set(a.Key, a.Value); err != nil {
			return Item{}, err
		}
	}
	s.Items[i] = it
	return it, nil
}

// DeleteItem removes an item by id.
func (s *Snapshot) DeleteItem(id string) error {
	i := s.itemIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.Items = append(s.Items[:i], s.Items[i+1:]...)
	return nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// generateUUID generates a new UUID v7 for entity IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// NewID returns a fresh entity id. Importers use it for items built outside
// the Snapshot mutation methods.
func NewID() string {
	return generateUUID()
}
