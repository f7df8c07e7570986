// Package catalog resolves the display fields of a category and looks up
// categories by id or name.
package catalog

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// EmptyMarker is shown for a field that has no value on an item.
const EmptyMarker = "—"

// ResolveFields returns the ordered display fields of a category. Explicit
// field definitions win and keep their stored order. When a category has
// none, fields are inferred from the attribute keys of its items in
// first-seen order, each synthesized as a string field named after its key.
// Never returns nil.
func ResolveFields(snap *types.Snapshot, categoryID string) []types.Field {
	if snap == nil {
		return []types.Field{}
	}
	if explicit := snap.FieldsOf(categoryID); len(explicit) > 0 {
		return explicit
	}

	out := []types.Field{}
	seen := make(map[string]bool)
	for _, it := range snap.Items {
		if it.CategoryID != categoryID {
			continue
		}
		for _, key := range it.Keys() {
			if seen[key] || types.IsReservedKey(key) {
				continue
			}
			seen[key] = true
			out = append(out, types.Field{
				CategoryID: categoryID,
				Name:       key,
				Key:        key,
				Type:       types.FieldString,
			})
		}
	}
	return out
}

// Columns returns the keys to display for a set of items that may span
// several categories: the resolved fields of each category in first-seen
// order, followed by any stray attribute keys not covered by a field.
func Columns(snap *types.Snapshot, items []types.Item) []types.Field {
	out := []types.Field{}
	seen := make(map[string]bool)
	doneCategory := make(map[string]bool)
	for _, it := range items {
		if !doneCategory[it.CategoryID] {
			doneCategory[it.CategoryID] = true
			for _, f := range ResolveFields(snap, it.CategoryID) {
				if !seen[f.Key] {
					seen[f.Key] = true
					out = append(out, f)
				}
			}
		}
		for _, key := range it.Keys() {
			if !seen[key] {
				seen[key] = true
				out = append(out, types.Field{Name: key, Key: key, Type: types.FieldString})
			}
		}
	}
	return out
}

// Label returns the display name for key, falling back to the raw key when
// no field defines it.
func Label(fields []types.Field, key string) string {
	for _, f := range fields {
		if f.Key == key {
			return f.Name
		}
	}
	return key
}

// Cell returns the display text of key on it, or EmptyMarker when the item
// has no value for it.
func Cell(it types.Item, key string) string {
	v, ok := it.Get(key)
	if !ok || v.IsNull() {
		return EmptyMarker
	}
	return v.String()
}

// categorySource adapts a category list to fuzzy.Source.
type categorySource []types.Category

func (s categorySource) String(i int) string { return s[i].Name }
func (s categorySource) Len() int            { return len(s) }

// MinIDPrefix is the shortest category id prefix FindCategory accepts.
const MinIDPrefix = 8

// FindCategory resolves a user-supplied category reference. It tries an
// exact id, then a case-insensitive exact name, then a unique id prefix of
// at least MinIDPrefix characters, then the best fuzzy name match. Returns
// ErrCategoryNotFound when nothing matches.
func FindCategory(snap *types.Snapshot, ref string) (types.Category, error) {
	ref = strings.TrimSpace(ref)
	if snap == nil || ref == "" {
		return types.Category{}, types.ErrCategoryNotFound
	}
	if c, ok := snap.Category(ref); ok {
		return c, nil
	}
	for _, c := range snap.Categories {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	if c, ok := categoryByIDPrefix(snap, ref); ok {
		return c, nil
	}
	matches := fuzzy.FindFrom(ref, categorySource(snap.Categories))
	if len(matches) == 0 {
		return types.Category{}, types.ErrCategoryNotFound
	}
	return snap.Categories[matches[0].Index], nil
}

// IsIDPrefix reports whether ref is long enough to be a category id prefix
// and is one of id.
func IsIDPrefix(id, ref string) bool {
	return len(ref) >= MinIDPrefix && strings.HasPrefix(id, ref)
}

func categoryByIDPrefix(snap *types.Snapshot, ref string) (types.Category, bool) {
	var found []types.Category
	for _, c := range snap.Categories {
		if IsIDPrefix(c.ID, ref) {
			found = append(found, c)
		}
	}
	if len(found) != 1 {
		return types.Category{}, false
	}
	return found[0], true
}

// CategoryName returns the name of a category id, or the id itself when the
// category no longer exists.
func CategoryName(snap *types.Snapshot, id string) string {
	if c, ok := snap.Category(id); ok {
		return c.Name
	}
	return id
}
