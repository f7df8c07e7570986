package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Direction is a sort direction. Unsorted keeps input order.
type Direction int

// Sort directions.
const (
	Unsorted Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return "none"
	}
}

// ParseDirection accepts "asc", "desc", or "" / "none".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return Unsorted, nil
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return Unsorted, fmt.Errorf("invalid sort direction %q", s)
	}
}

// sortKey is the comparison form of key on it: the lower-cased value, with
// missing and null values as the empty string.
func sortKey(it types.Item, key string) string {
	v, ok := it.Get(key)
	if !ok {
		return ""
	}
	return v.Folded()
}

// SortBy returns a copy of items ordered by the case-folded string form of
// key. The sort is stable: items with equal keys keep their relative order.
// Missing values sort first when ascending.
func SortBy(items []types.Item, key string, dir Direction) []types.Item {
	out := append([]types.Item(nil), items...)
	if dir == Unsorted || key == "" {
		return out
	}
	type keyed struct {
		key  string
		item types.Item
	}
	rows := make([]keyed, len(out))
	for i, it := range out {
		rows[i] = keyed{key: sortKey(it, key), item: it}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if dir == Descending {
			return rows[i].key > rows[j].key
		}
		return rows[i].key < rows[j].key
	})
	for i, r := range rows {
		out[i] = r.item
	}
	return out
}

// SortState is the single active column sort. Toggling a column cycles it
// unsorted → ascending → descending → unsorted; toggling a different column
// starts that column at ascending.
type SortState struct {
	Key string
	Dir Direction
}

// Toggle returns the state after a click on column key.
func (s SortState) Toggle(key string) SortState {
	if key != s.Key || s.Dir == Unsorted {
		return SortState{Key: key, Dir: Ascending}
	}
	switch s.Dir {
	case Ascending:
		return SortState{Key: key, Dir: Descending}
	default:
		return SortState{}
	}
}

// Active reports whether a sort is in effect.
func (s SortState) Active() bool {
	return s.Key != "" && s.Dir != Unsorted
}

// Apply sorts items according to s.
func (s SortState) Apply(items []types.Item) []types.Item {
	return SortBy(items, s.Key, s.Dir)
}

// Group is one bucket of a grouping, in first-seen order.
type Group struct {
	Key   string
	Items []types.Item
}

// GroupByCategory partitions items by category id. Buckets appear in the
// order their category was first seen and keep input order inside.
func GroupByCategory(items []types.Item) []Group {
	return GroupBy(items, types.KeyCategoryID)
}

// GroupBy partitions items by the string form of key. Items without the
// key fall into the "" bucket.
func GroupBy(items []types.Item, key string) []Group {
	groups := []Group{}
	pos := make(map[string]int)
	for _, it := range items {
		var k string
		if v, ok := it.Get(key); ok {
			k = v.String()
		}
		i, ok := pos[k]
		if !ok {
			i = len(groups)
			pos[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}

// Limit returns at most n elements of items. n <= 0 means no cap.
func Limit[T any](items []T, n int) []T {
	if n <= 0 || len(items) <= n {
		return items
	}
	return items[:n]
}
