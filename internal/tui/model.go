// Package tui implements the interactive inventory browser: a query box
// over a results table, with exact or fuzzy matching, a category scope,
// and column sorting.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/stockroom/internal/catalog"
	"github.com/mesh-intelligence/stockroom/internal/logging"
	"github.com/mesh-intelligence/stockroom/internal/search"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

var tuiLog = logging.ForComponent(logging.CompTUI)

// DebounceDelay coalesces keystrokes before a query runs.
const DebounceDelay = 200 * time.Millisecond

// DefaultLimit caps the rows shown.
const DefaultLimit = 50

// maxCellWidth truncates long values in the table.
const maxCellWidth = 24

// Mode selects how the query text is matched.
type Mode int

const (
	// ModeExact keeps items with a case-insensitive substring match.
	ModeExact Mode = iota
	// ModeFuzzy ranks items by approximate match.
	ModeFuzzy
)

func (m Mode) String() string {
	if m == ModeFuzzy {
		return "fuzzy"
	}
	return "exact"
}

// debounceMsg fires after DebounceDelay; only the latest seq is honored.
type debounceMsg struct{ seq int }

// reloadMsg signals that the stored document changed.
type reloadMsg struct{}

// snapshotMsg carries a freshly loaded snapshot.
type snapshotMsg struct {
	snap *types.Snapshot
	err  error
}

// Options configures a Model.
type Options struct {
	// Limit caps the rows shown; <= 0 means DefaultLimit.
	Limit int
	// Reload, when set, signals that the snapshot should be reloaded.
	Reload <-chan struct{}
	// Load reads the current snapshot; required when Reload is set.
	Load func() (*types.Snapshot, error)
}

// Model is the bubbletea model for the browser.
type Model struct {
	snap  *types.Snapshot
	index *search.Index
	opts  Options

	input    textinput.Model
	mode     Mode
	category string // "" means every category
	sort     search.SortState
	column   int // selected column for sorting

	seq     int
	results []types.Item
	columns []types.Field
	total   int
	cursor  int
	err     error

	width  int
	height int
}

// New returns a browser over snap.
func New(snap *types.Snapshot, opts Options) Model {
	if snap == nil {
		snap = types.NewSnapshot()
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	ti := textinput.New()
	ti.Placeholder = "Search items..."
	ti.Prompt = "› "
	ti.CharLimit = 120
	ti.Width = 50
	ti.Focus()

	m := Model{snap: snap, opts: opts, input: ti}
	m.index = search.BuildIndex(snap)
	m.refresh()
	return m
}

// Init starts the cursor blink and the reload listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForReload())
}

func (m Model) waitForReload() tea.Cmd {
	if m.opts.Reload == nil {
		return nil
	}
	ch := m.opts.Reload
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return reloadMsg{}
	}
}

func (m Model) loadSnapshot() tea.Cmd {
	load := m.opts.Load
	if load == nil {
		return nil
	}
	return func() tea.Msg {
		snap, err := load()
		return snapshotMsg{snap: snap, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case debounceMsg:
		if msg.seq == m.seq {
			m.refresh()
		}
		return m, nil

	case reloadMsg:
		return m, tea.Batch(m.loadSnapshot(), m.waitForReload())

	case snapshotMsg:
		if msg.err != nil {
			m.err = msg.err
			tuiLog.Warn("reload_failed", slog.String("error", msg.err.Error()))
			return m, nil
		}
		m.SetSnapshot(msg.snap)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab":
		m.mode = 1 - m.mode
		m.refresh()
		return m, nil

	case "ctrl+f":
		m.category = m.nextCategory()
		m.refresh()
		return m, nil

	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down":
		if m.cursor < len(m.results)-1 {
			m.cursor++
		}
		return m, nil

	case "left":
		if m.column > 0 {
			m.column--
		}
		return m, nil

	case "right":
		if m.column < len(m.columns)-1 {
			m.column++
		}
		return m, nil

	case "ctrl+s":
		if m.column < len(m.columns) {
			m.sort = m.sort.Toggle(m.columns[m.column].Key)
			m.refresh()
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	m.seq++
	seq := m.seq
	debounce := tea.Tick(DebounceDelay, func(time.Time) tea.Msg { return debounceMsg{seq: seq} })
	return m, tea.Batch(cmd, debounce)
}

// SetSnapshot replaces the data, rebuilds the index, and reruns the query.
// A category scope that no longer exists is cleared.
func (m *Model) SetSnapshot(snap *types.Snapshot) {
	if snap == nil {
		snap = types.NewSnapshot()
	}
	m.snap = snap
	m.index = search.BuildIndex(snap)
	if _, ok := snap.Category(m.category); !ok {
		m.category = ""
	}
	m.err = nil
	m.refresh()
	tuiLog.Debug("snapshot_reloaded", slog.Int("items", len(snap.Items)))
}

// nextCategory cycles the scope: all, then each category in order.
func (m Model) nextCategory() string {
	ids := m.snap.CategoryIDs()
	if len(ids) == 0 {
		return ""
	}
	if m.category == "" {
		return ids[0]
	}
	for i, id := range ids {
		if id == m.category && i+1 < len(ids) {
			return ids[i+1]
		}
	}
	return ""
}

// refresh recomputes results from the query, mode, scope, and sort.
func (m *Model) refresh() {
	var scope []string
	if m.category != "" {
		scope = []string{m.category}
	}
	query := strings.TrimSpace(m.input.Value())

	var items []types.Item
	switch {
	case query != "" && m.mode == ModeFuzzy:
		items = search.FilterItems(search.Items(m.index.Query(query)), search.Filter{CategoryIDs: scope})
	default:
		items = search.FilterItems(m.snap.Items, search.Filter{
			CategoryIDs:      scope,
			KnownCategoryIDs: m.snap.CategoryIDs(),
			Text:             query,
		})
	}

	items = m.sort.Apply(items)
	m.total = len(items)
	m.results = search.Limit(items, m.opts.Limit)
	m.columns = catalog.Columns(m.snap, m.results)
	if m.column >= len(m.columns) {
		m.column = max(len(m.columns)-1, 0)
	}
	if m.cursor >= len(m.results) {
		m.cursor = max(len(m.results)-1, 0)
	}
}

// Results returns the rows currently shown.
func (m Model) Results() []types.Item { return m.results }

// Selected returns the highlighted item.
func (m Model) Selected() (types.Item, bool) {
	if len(m.results) == 0 {
		return types.Item{}, false
	}
	return m.results[m.cursor], true
}

// View renders the browser.
func (m Model) View() string {
	var b strings.Builder

	scope := "all categories"
	if m.category != "" {
		scope = catalog.CategoryName(m.snap, m.category)
	}
	b.WriteString(titleStyle.Render("stockroom"))
	b.WriteString(statusStyle.Render(fmt.Sprintf("  %s · %s · %d of %d", m.mode, scope, len(m.results), m.total)))
	if m.sort.Active() {
		b.WriteString(statusStyle.Render(fmt.Sprintf(" · sort %s %s", catalog.Label(m.columns, m.sort.Key), m.sort.Dir)))
	}
	b.WriteString("\n")
	b.WriteString(inputBoxStyle.Render(m.input.View()))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("reload failed: " + m.err.Error()))
		b.WriteString("\n")
	}

	if len(m.results) == 0 {
		b.WriteString(statusStyle.Render("  no matching items"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTable())
	}

	b.WriteString(helpStyle.Render("tab mode · ctrl+f category · ←/→ column · ctrl+s sort · ↑/↓ select · esc quit"))
	return b.String()
}

func (m Model) renderTable() string {
	widths := make([]int, len(m.columns))
	for i, f := range m.columns {
		widths[i] = lipgloss.Width(f.Name) + 2
		for _, it := range m.results {
			widths[i] = max(widths[i], lipgloss.Width(truncate(catalog.Cell(it, f.Key))))
		}
	}

	var b strings.Builder
	header := make([]string, len(m.columns))
	for i, f := range m.columns {
		label := f.Name + sortMarker(m.sort, f.Key)
		style := headerStyle
		if i == m.column {
			style = activeHeaderStyle
		}
		header[i] = style.Render(pad(label, widths[i]))
	}
	b.WriteString(rowStyle.Render(strings.Join(header, " ")))
	b.WriteString("\n")

	for r, it := range m.results {
		cells := make([]string, len(m.columns))
		for i, f := range m.columns {
			cells[i] = pad(truncate(catalog.Cell(it, f.Key)), widths[i])
		}
		style := rowStyle
		if r == m.cursor {
			style = selectedRowStyle
		}
		b.WriteString(style.Render(strings.Join(cells, " ")))
		b.WriteString("\n")
	}
	return b.String()
}

func sortMarker(s search.SortState, key string) string {
	if s.Key != key {
		return ""
	}
	switch s.Dir {
	case search.Ascending:
		return " ▲"
	case search.Descending:
		return " ▼"
	}
	return ""
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxCellWidth {
		return s
	}
	return string(r[:maxCellWidth-1]) + "…"
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
