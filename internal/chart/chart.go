// Package chart aggregates item counts for reports and renders them as
// text charts.
package chart

import (
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// DefaultLimit is the number of buckets ByField keeps when limit <= 0.
const DefaultLimit = 15

// Labels for buckets that have no category or no value.
const (
	UncategorizedLabel = "(uncategorized)"
	EmptyLabel         = "(empty)"
)

// Bucket is one bar of a chart.
type Bucket struct {
	Label string
	Count int
}

// ByCategory counts items per category in category order. Items whose
// category no longer exists are counted under UncategorizedLabel, which
// appears last and only when non-zero.
func ByCategory(snap *types.Snapshot) []Bucket {
	if snap == nil {
		return []Bucket{}
	}
	index := make(map[string]int, len(snap.Categories))
	out := make([]Bucket, len(snap.Categories))
	for i, c := range snap.Categories {
		index[c.ID] = i
		out[i] = Bucket{Label: c.Name}
	}
	orphans := 0
	for _, it := range snap.Items {
		if i, ok := index[it.CategoryID]; ok {
			out[i].Count++
		} else {
			orphans++
		}
	}
	if orphans > 0 {
		out = append(out, Bucket{Label: UncategorizedLabel, Count: orphans})
	}
	return out
}

// ByField counts the distinct values of key across items, most frequent
// first with ties in first-seen order, keeping at most limit buckets.
// Missing and null values are counted under EmptyLabel.
func ByField(items []types.Item, key string, limit int) []Bucket {
	if limit <= 0 {
		limit = DefaultLimit
	}
	index := make(map[string]int)
	out := []Bucket{}
	for _, it := range items {
		label := EmptyLabel
		if v, ok := it.Get(key); ok && !v.IsNull() && v.String() != "" {
			label = v.String()
		}
		i, ok := index[label]
		if !ok {
			i = len(out)
			index[label] = i
			out = append(out, Bucket{Label: label})
		}
		out[i].Count++
	}
	sortByCount(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Total sums the bucket counts.
func Total(buckets []Bucket) int {
	n := 0
	for _, b := range buckets {
		n += b.Count
	}
	return n
}
