package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func item(id, cat string, kv ...any) types.Item {
	it := types.Item{ID: id, CategoryID: cat}
	for i := 0; i+1 < len(kv); i += 2 {
		_ = it.Set(kv[i].(string), types.ValueOf(kv[i+1]))
	}
	return it
}

func TestByCategory(t *testing.T) {
	snap := &types.Snapshot{
		Categories: []types.Category{{ID: "c1", Name: "Laptops"}, {ID: "c2", Name: "Monitors"}, {ID: "c3", Name: "Chairs"}},
		Items: []types.Item{
			item("1", "c2"), item("2", "c1"), item("3", "c2"), item("4", "gone"),
		},
	}
	assert.Equal(t, []Bucket{
		{Label: "Laptops", Count: 1},
		{Label: "Monitors", Count: 2},
		{Label: "Chairs", Count: 0},
		{Label: UncategorizedLabel, Count: 1},
	}, ByCategory(snap))

	snap.Items = snap.Items[:3]
	got := ByCategory(snap)
	assert.Len(t, got, 3, "no orphan bucket when every item has a category")

	assert.Equal(t, []Bucket{}, ByCategory(nil))
}

func TestByField(t *testing.T) {
	items := []types.Item{
		item("1", "c", "setor", "TI"),
		item("2", "c", "setor", "RH"),
		item("3", "c", "setor", "TI"),
		item("4", "c"),
		item("5", "c", "setor", "RH"),
		item("6", "c", "setor", "Compras"),
		item("7", "c", "setor", nil),
		item("8", "c", "ram", 16),
	}

	got := ByField(items, "setor", 0)
	assert.Equal(t, []Bucket{
		{Label: EmptyLabel, Count: 3},
		{Label: "TI", Count: 2},
		{Label: "RH", Count: 2},
		{Label: "Compras", Count: 1},
	}, got)

	assert.Equal(t, []Bucket{{Label: EmptyLabel, Count: 3}, {Label: "TI", Count: 2}}, ByField(items, "setor", 2))

	numbers := ByField(items, "ram", 0)
	assert.Equal(t, Bucket{Label: EmptyLabel, Count: 7}, numbers[0])
	assert.Equal(t, Bucket{Label: "16", Count: 1}, numbers[1])

	assert.Equal(t, []Bucket{}, ByField(nil, "setor", 0))
}

func TestByFieldDefaultLimit(t *testing.T) {
	var items []types.Item
	for i := 0; i < 20; i++ {
		items = append(items, item("i", "c", "n", i))
	}
	got := ByField(items, "n", 0)
	require.Len(t, got, DefaultLimit)
	assert.Equal(t, "0", got[0].Label)
	assert.Equal(t, "14", got[DefaultLimit-1].Label)
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"": KindBar, "bar": KindBar, "PIE": KindPie, " line ": KindLine} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseKind("donut")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestRenderBar(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, KindBar, []Bucket{{"TI", 4}, {"Compras", 2}, {"RH", 0}}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "TI"+strings.Repeat(" ", 7)+strings.Repeat("█", Width)+" 4", lines[0])
	assert.Equal(t, "Compras  "+strings.Repeat("█", Width/2)+" 2", lines[1])
	assert.Equal(t, "RH"+strings.Repeat(" ", 8)+"0", lines[2])
}

func TestRenderPie(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, KindPie, []Bucket{{"a", 3}, {"b", 1}}))
	out := buf.String()
	assert.Contains(t, out, "a   75.0%  "+strings.Repeat("█", 30))
	assert.Contains(t, out, "b   25.0%  "+strings.Repeat("█", 10))
}

func TestRenderLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, KindLine, []Bucket{{"a", 2}, {"b", 1}}))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "a  "+strings.Repeat("·", Width-1)+"• 2", lines[0])
	assert.Equal(t, "b  "+strings.Repeat("·", Width/2-1)+"•"+strings.Repeat("·", Width/2)+" 1", lines[1])
}

func TestRenderEmptyAndUnknown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, KindPie, nil))
	assert.Equal(t, "no data\n", buf.String())

	assert.ErrorIs(t, Render(&buf, Kind("donut"), []Bucket{{"a", 1}}), ErrUnknownKind)
}
