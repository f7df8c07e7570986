package search

import "github.com/mesh-intelligence/stockroom/pkg/types"

// item builds a test item with string attributes given as key, value pairs.
func item(id, categoryID string, kv ...string) types.Item {
	it := types.Item{ID: id, CategoryID: categoryID}
	for i := 0; i+1 < len(kv); i += 2 {
		_ = it.Set(kv[i], types.StringValue(kv[i+1]))
	}
	return it
}

func ids(items []types.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

// laptops is the two-item scenario snapshot.
func laptops() *types.Snapshot {
	return &types.Snapshot{
		Categories: []types.Category{{ID: "c1", Name: "Laptops"}},
		Items: []types.Item{
			item("i1", "c1", "patrimonio", "1001"),
			item("i2", "c1", "patrimonio", "1002"),
		},
	}
}
