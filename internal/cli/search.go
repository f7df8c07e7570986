package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/catalog"
	"github.com/mesh-intelligence/stockroom/internal/search"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		categories []string
		limit      int
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search across all item values",
		Long: fmt.Sprintf(`Search ranks items by approximate match of the query against each value
and against the whole record. Typos are tolerated; queries shorter than %d
characters match nothing. Use "list --text" for exact substring matching.`, search.MinQueryLength),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.load()
			if err != nil {
				return err
			}
			ids, err := resolveCategories(snap, categories)
			if err != nil {
				return err
			}

			matches := search.BuildIndex(snap).Query(strings.Join(args, " "))
			if len(ids) > 0 {
				matches = scopeMatches(matches, ids)
			}
			matches = search.Limit(matches, a.listLimit(limit))

			w := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(w, matchesJSON(matches))
			}
			printMatches(w, snap, matches)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&categories, "category", nil, "restrict to a category (repeatable)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results (default: config list_limit)")
	return cmd
}

func scopeMatches(ms []search.Match, categoryIDs []string) []search.Match {
	keep := make(map[string]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		keep[id] = true
	}
	out := ms[:0:0]
	for _, m := range ms {
		if keep[m.Item.CategoryID] {
			out = append(out, m)
		}
	}
	return out
}

// printMatches writes hits best first with the field that matched.
func printMatches(w io.Writer, snap *types.Snapshot, ms []search.Match) {
	if len(ms) == 0 {
		fmt.Fprintln(w, "No matches.")
		return
	}
	short := itemShortIDs(snap)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tID\tCATEGORY\tMATCHED\tVALUE")
	fmt.Fprintln(tw, "-----\t--\t--------\t-------\t-----")
	for _, m := range ms {
		matched, value := "(all)", ""
		if m.Key != search.CompositeKey {
			fields := catalog.ResolveFields(snap, m.Item.CategoryID)
			matched = catalog.Label(fields, m.Key)
			value = clip(catalog.Cell(m.Item, m.Key))
		}
		fmt.Fprintf(tw, "%.2f\t%s\t%s\t%s\t%s\n", m.Score, shortOr(short, m.Item.ID), catalog.CategoryName(snap, m.Item.CategoryID), matched, value)
	}
	tw.Flush()
}
