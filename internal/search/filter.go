package search

import (
	"strings"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Filter holds the constraints applied by FilterItems. The zero Filter
// matches every item.
type Filter struct {
	// CategoryIDs restricts results to these categories. An empty set means
	// no restriction.
	CategoryIDs []string

	// KnownCategoryIDs is the full set of category ids. When CategoryIDs
	// covers all of them the category restriction is dropped, so items whose
	// category is missing stay visible.
	KnownCategoryIDs []string

	// FieldFilters maps attribute keys to substring needles. All entries
	// must match. Blank needles are ignored.
	FieldFilters map[string]string

	// Text, when not blank, must appear in at least one attribute value.
	Text string
}

type fieldNeedle struct {
	key    string
	needle string
}

// FilterItems returns the items that satisfy f, in input order. Matching is
// case-insensitive substring containment on each value's string form.
func FilterItems(items []types.Item, f Filter) []types.Item {
	categories := categorySet(f.CategoryIDs, f.KnownCategoryIDs)

	var needles []fieldNeedle
	for key, needle := range f.FieldFilters {
		needle = strings.TrimSpace(needle)
		if needle == "" {
			continue
		}
		needles = append(needles, fieldNeedle{key: key, needle: strings.ToLower(needle)})
	}

	text := strings.ToLower(strings.TrimSpace(f.Text))

	out := make([]types.Item, 0, len(items))
	for _, it := range items {
		if categories != nil && !categories[it.CategoryID] {
			continue
		}
		if !matchesFields(it, needles) {
			continue
		}
		if text != "" && !ContainsText(it, text) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// categorySet returns the membership set to enforce, or nil when no
// category restriction applies.
func categorySet(selected, known []string) map[string]bool {
	if len(selected) == 0 {
		return nil
	}
	set := make(map[string]bool, len(selected))
	for _, id := range selected {
		set[id] = true
	}
	if len(known) > 0 {
		covered := true
		for _, id := range known {
			if !set[id] {
				covered = false
				break
			}
		}
		if covered {
			return nil
		}
	}
	return set
}

func matchesFields(it types.Item, needles []fieldNeedle) bool {
	for _, n := range needles {
		v, ok := it.Get(n.key)
		if !ok || v.IsNull() {
			return false
		}
		if !strings.Contains(v.Folded(), n.needle) {
			return false
		}
	}
	return true
}

// ContainsText reports whether any non-identity attribute of it contains
// the already lower-cased query.
func ContainsText(it types.Item, folded string) bool {
	for _, a := range it.Attrs {
		if a.Value.IsNull() {
			continue
		}
		if strings.Contains(a.Value.Folded(), folded) {
			return true
		}
	}
	return false
}
