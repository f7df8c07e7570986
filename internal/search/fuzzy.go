package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Approximate matching parameters. A field matches when the edit distance
// between the query and its closest substring, divided by the query
// length, is at most Threshold.
const (
	Threshold      = 0.3
	MinQueryLength = 2
)

// CompositeKey is the Match.Key reported when the best match was found in
// the concatenation of all values rather than in a single attribute.
const CompositeKey = ""

// indexedField is one searchable string of an item.
type indexedField struct {
	key  string
	text []rune
}

type entry struct {
	item   types.Item
	fields []indexedField
}

// Index is a search index over a snapshot's items. It is immutable once
// built; rebuild it with BuildIndex whenever the snapshot changes.
type Index struct {
	entries []entry
}

// Match is one search hit. Lower Score is better; 0 is an exact substring.
type Match struct {
	Item  types.Item
	Score float64
	Key   string
	Exact bool
}

// BuildIndex indexes every item in snap.
func BuildIndex(snap *types.Snapshot) *Index {
	if snap == nil {
		return &Index{}
	}
	return BuildIndexFrom(snap.Items)
}

// BuildIndexFrom indexes the given items. For each item it stores every
// non-null attribute as its own field plus a composite field holding all
// values joined by spaces, all lower-cased.
func BuildIndexFrom(items []types.Item) *Index {
	idx := &Index{entries: make([]entry, 0, len(items))}
	for _, it := range items {
		e := entry{item: it}
		parts := make([]string, 0, len(it.Attrs))
		for _, a := range it.Attrs {
			if a.Value.IsNull() {
				continue
			}
			folded := a.Value.Folded()
			parts = append(parts, folded)
			e.fields = append(e.fields, indexedField{key: a.Key, text: []rune(folded)})
		}
		e.fields = append(e.fields, indexedField{
			key:  CompositeKey,
			text: []rune(strings.Join(parts, " ")),
		})
		idx.entries = append(idx.entries, e)
	}
	return idx
}

// Len returns the number of indexed items.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// Query returns the items approximately matching text, best first. Items
// with equal scores rank exact whole-field matches first and otherwise keep
// input order. Queries shorter than MinQueryLength runes return nothing.
func (idx *Index) Query(text string) []Match {
	q := strings.ToLower(strings.TrimSpace(text))
	if idx == nil || utf8.RuneCountInString(q) < MinQueryLength {
		return []Match{}
	}
	pattern := []rune(q)
	maxErrors := int(Threshold * float64(len(pattern)))

	out := []Match{}
	for _, e := range idx.entries {
		best := -1
		var bestKey string
		var exact bool
		for _, f := range e.fields {
			d := substringDistance(pattern, f.text, maxErrors)
			if d < 0 {
				continue
			}
			fieldExact := d == 0 && len(f.text) == len(pattern)
			if best < 0 || d < best || (d == best && fieldExact && !exact) {
				best = d
				bestKey = f.key
				exact = fieldExact
			}
		}
		if best < 0 {
			continue
		}
		out = append(out, Match{
			Item:  e.item,
			Score: float64(best) / float64(len(pattern)),
			Key:   bestKey,
			Exact: exact,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score < out[j].Score
		}
		return out[i].Exact && !out[j].Exact
	})
	return out
}

// Items returns just the items of ms, in order.
func Items(ms []Match) []types.Item {
	out := make([]types.Item, len(ms))
	for i, m := range ms {
		out[i] = m.Item
	}
	return out
}

// substringDistance returns the smallest edit distance between pattern and
// any substring of text, or -1 when that distance exceeds maxErrors. The
// match may start anywhere in text at no cost.
func substringDistance(pattern, text []rune, maxErrors int) int {
	m := len(pattern)
	if m == 0 {
		return 0
	}
	// prev[i] is the distance between pattern[:i] and the best substring
	// ending at the current text position.
	prev := make([]int, m+1)
	cur := make([]int, m+1)
	for i := range prev {
		prev[i] = i
	}
	best := prev[m]
	for _, c := range text {
		cur[0] = 0
		for i := 1; i <= m; i++ {
			cost := 1
			if pattern[i-1] == c {
				cost = 0
			}
			cur[i] = min(prev[i-1]+cost, prev[i]+1, cur[i-1]+1)
		}
		if cur[m] < best {
			best = cur[m]
			if best == 0 {
				break
			}
		}
		prev, cur = cur, prev
	}
	if best > maxErrors {
		return -1
	}
	return best
}
