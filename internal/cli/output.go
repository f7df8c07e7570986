package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/stockroom/internal/catalog"
	"github.com/mesh-intelligence/stockroom/internal/search"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// minShortID is the shortest id prefix shown in tables.
const minShortID = 8

// maxCellLen truncates long values in tables.
const maxCellLen = 32

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// shortIDs maps each id to its shortest prefix of at least minShortID
// characters that no other id in ids shares. Version 7 UUIDs created in the
// same minute agree on their first eight characters, so prefixes grow past
// the timestamp until they are unique.
func shortIDs(ids []string) map[string]string {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	out := make(map[string]string, len(sorted))
	for i, id := range sorted {
		n := minShortID
		if i > 0 {
			n = max(n, commonPrefixLen(id, sorted[i-1])+1)
		}
		if i+1 < len(sorted) {
			n = max(n, commonPrefixLen(id, sorted[i+1])+1)
		}
		// Do not stop on a UUID separator.
		for n < len(id) && id[n-1] == '-' {
			n++
		}
		out[id] = id[:min(n, len(id))]
	}
	return out
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// itemShortIDs returns unique display prefixes for every item in snap, so a
// printed id always resolves through resolveItem.
func itemShortIDs(snap *types.Snapshot) map[string]string {
	ids := make([]string, len(snap.Items))
	for i, it := range snap.Items {
		ids[i] = it.ID
	}
	return shortIDs(ids)
}

// shortOr returns the display prefix for id, or id itself when unknown.
func shortOr(short map[string]string, id string) string {
	if p, ok := short[id]; ok {
		return p
	}
	return id
}

func clip(s string) string {
	r := []rune(s)
	if len(r) > maxCellLen {
		return string(r[:maxCellLen-3]) + "..."
	}
	return s
}

// printItems writes items as a table whose columns are the resolved fields
// of every category present.
func printItems(w io.Writer, snap *types.Snapshot, items []types.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No items found.")
		return
	}
	cols := catalog.Columns(snap, items)
	short := itemShortIDs(snap)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{"ID", "CATEGORY"}
	rule := []string{"--", "--------"}
	for _, f := range cols {
		header = append(header, strings.ToUpper(f.Name))
		rule = append(rule, strings.Repeat("-", len([]rune(f.Name))))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, strings.Join(rule, "\t"))
	for _, it := range items {
		row := []string{shortOr(short, it.ID), catalog.CategoryName(snap, it.CategoryID)}
		for _, f := range cols {
			row = append(row, clip(catalog.Cell(it, f.Key)))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// printItem writes one item as label: value lines in field order.
func printItem(w io.Writer, snap *types.Snapshot, it types.Item) {
	fields := catalog.ResolveFields(snap, it.CategoryID)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", it.ID)
	fmt.Fprintf(tw, "Category:\t%s\n", catalog.CategoryName(snap, it.CategoryID))
	shown := make(map[string]bool)
	for _, f := range fields {
		shown[f.Key] = true
		fmt.Fprintf(tw, "%s:\t%s\n", f.Name, catalog.Cell(it, f.Key))
	}
	for _, key := range it.Keys() {
		if !shown[key] {
			fmt.Fprintf(tw, "%s:\t%s\n", key, catalog.Cell(it, key))
		}
	}
	tw.Flush()
}

// printGroups writes one table per group under a heading.
func printGroups(w io.Writer, snap *types.Snapshot, groups []search.Group, label func(string) string) {
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s (%d)\n", label(g.Key), len(g.Items))
		printItems(w, snap, g.Items)
	}
}

// matchJSON is the JSON form of a search hit.
type matchJSON struct {
	Score float64    `json:"score"`
	Key   string     `json:"key,omitempty"`
	Exact bool       `json:"exact"`
	Item  types.Item `json:"item"`
}

func matchesJSON(ms []search.Match) []matchJSON {
	out := make([]matchJSON, len(ms))
	for i, m := range ms {
		out[i] = matchJSON{Score: m.Score, Key: m.Key, Exact: m.Exact, Item: m.Item}
	}
	return out
}
