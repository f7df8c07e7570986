package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stockroom/internal/search"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func inventory() *types.Snapshot {
	mk := func(id, cat string, kv ...string) types.Item {
		it := types.Item{ID: id, CategoryID: cat}
		for i := 0; i+1 < len(kv); i += 2 {
			_ = it.Set(kv[i], types.StringValue(kv[i+1]))
		}
		return it
	}
	return &types.Snapshot{
		Categories: []types.Category{{ID: "lap", Name: "Laptops"}, {ID: "mon", Name: "Monitors"}},
		Fields: []types.Field{
			{ID: "f1", CategoryID: "lap", Name: "Patrimonio", Key: "patrimonio", Type: types.FieldString},
			{ID: "f2", CategoryID: "lap", Name: "Modelo", Key: "modelo", Type: types.FieldString},
		},
		Items: []types.Item{
			mk("1", "lap", "patrimonio", "1002", "modelo", "Latitude"),
			mk("2", "lap", "patrimonio", "1001", "modelo", "ThinkPad"),
			mk("3", "mon", "modelo", "UltraSharp"),
		},
	}
}

func ids(items []types.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func TestNewShowsEveryItem(t *testing.T) {
	m := New(inventory(), Options{})
	assert.Equal(t, []string{"1", "2", "3"}, ids(m.Results()))

	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "1", sel.ID)
}

func TestQueryIsDebounced(t *testing.T) {
	m := New(inventory(), Options{})

	m = typeText(t, m, "think")
	assert.Len(t, m.Results(), 3, "results do not change before the debounce fires")
	first := m.seq

	m = typeText(t, m, "p")
	require.Equal(t, first+1, m.seq)

	m, _ = update(t, m, debounceMsg{seq: first})
	assert.Len(t, m.Results(), 3, "a stale debounce is ignored")

	m, _ = update(t, m, debounceMsg{seq: m.seq})
	assert.Equal(t, []string{"2"}, ids(m.Results()))
}

func TestTabTogglesFuzzyMode(t *testing.T) {
	m := New(inventory(), Options{})
	m = typeText(t, m, "lattitude")
	m, _ = update(t, m, debounceMsg{seq: m.seq})
	assert.Empty(t, m.Results(), "exact mode has no match for a typo")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ModeFuzzy, m.mode)
	assert.Equal(t, []string{"1"}, ids(m.Results()))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ModeExact, m.mode)
	assert.Empty(t, m.Results())
}

func TestCategoryScopeCycles(t *testing.T) {
	m := New(inventory(), Options{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	assert.Equal(t, "lap", m.category)
	assert.Equal(t, []string{"1", "2"}, ids(m.Results()))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	assert.Equal(t, []string{"3"}, ids(m.Results()))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	assert.Equal(t, "", m.category)
	assert.Len(t, m.Results(), 3)
}

func TestSortToggleCycle(t *testing.T) {
	m := New(inventory(), Options{})
	require.Equal(t, "patrimonio", m.columns[0].Key)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, search.SortState{Key: "patrimonio", Dir: search.Ascending}, m.sort)
	assert.Equal(t, []string{"3", "2", "1"}, ids(m.Results()), "missing values sort first")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, search.Descending, m.sort.Dir)
	assert.Equal(t, []string{"1", "2", "3"}, ids(m.Results()))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.False(t, m.sort.Active())
	assert.Equal(t, []string{"1", "2", "3"}, ids(m.Results()))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, "modelo", m.sort.Key)
	assert.Equal(t, []string{"1", "2", "3"}, ids(m.Results()))
}

func TestCursorStaysInRange(t *testing.T) {
	m := New(inventory(), Options{Limit: 2})
	assert.Len(t, m.Results(), 2)
	assert.Equal(t, 3, m.total)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)
}

func TestReloadRebuildsIndex(t *testing.T) {
	snap := inventory()
	reload := make(chan struct{}, 1)
	next := snap.Clone()
	next.Items = append(next.Items, types.Item{ID: "4", CategoryID: "mon", Attrs: []types.Attr{{Key: "modelo", Value: types.StringValue("ZenBook")}}})

	m := New(snap, Options{Reload: reload, Load: func() (*types.Snapshot, error) { return next, nil }})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "zenbook")
	m, _ = update(t, m, debounceMsg{seq: m.seq})
	assert.Empty(t, m.Results())

	m, cmd := update(t, m, reloadMsg{})
	require.NotNil(t, cmd)
	m, _ = update(t, m, snapshotMsg{snap: next})
	assert.Equal(t, []string{"4"}, ids(m.Results()))
}

func TestReloadFailureKeepsData(t *testing.T) {
	m := New(inventory(), Options{})
	m, _ = update(t, m, snapshotMsg{err: errors.New("disk gone")})
	assert.Len(t, m.Results(), 3)
	assert.Contains(t, m.View(), "disk gone")
}

func TestSetSnapshotClearsMissingScope(t *testing.T) {
	m := New(inventory(), Options{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	require.Equal(t, "lap", m.category)

	m.SetSnapshot(types.NewSnapshot())
	assert.Equal(t, "", m.category)
	assert.Empty(t, m.Results())
	assert.Contains(t, m.View(), "no matching items")
}

func TestQuitKeys(t *testing.T) {
	m := New(inventory(), Options{})
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewShowsColumnsAndSortMarker(t *testing.T) {
	m := New(inventory(), Options{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	view := m.View()
	assert.Contains(t, view, "Patrimonio ▲")
	assert.Contains(t, view, "ThinkPad")
	assert.Contains(t, view, "exact")
}
