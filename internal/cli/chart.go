package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/chart"
	"github.com/mesh-intelligence/stockroom/internal/search"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func newChartCmd(a *app) *cobra.Command {
	var (
		field      string
		categories []string
		where      []string
		kind       string
		limit      int
	)
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Chart item counts by category or by field value",
		Long: `Chart counts items per category, or with --field counts the distinct
values of one field, most frequent first.

Example:
  stockroom chart
  stockroom chart --field setor --category Laptops --kind pie`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := chart.ParseKind(kind)
			if err != nil {
				return err
			}
			snap, err := a.load()
			if err != nil {
				return err
			}
			filter, err := buildFilter(snap, categories, where, "")
			if err != nil {
				return err
			}
			items := search.FilterItems(snap.Items, filter)

			var buckets []chart.Bucket
			if field == "" {
				buckets = chart.ByCategory(scopedSnapshot(snap, filter.CategoryIDs, items))
			} else {
				buckets = chart.ByField(items, field, limit)
			}

			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), buckets)
			}
			return chart.Render(cmd.OutOrStdout(), k, buckets)
		},
	}
	cmd.Flags().StringVar(&field, "field", "", "count distinct values of this attribute key")
	cmd.Flags().StringArrayVar(&categories, "category", nil, "restrict to a category (repeatable)")
	cmd.Flags().StringArrayVar(&where, "where", nil, "field filter key=needle (repeatable)")
	cmd.Flags().StringVar(&kind, "kind", string(chart.KindBar), "chart kind: bar, pie, or line")
	cmd.Flags().IntVar(&limit, "limit", chart.DefaultLimit, "maximum number of values for --field")
	return cmd
}

// scopedSnapshot keeps the selected categories (all when none) and the
// given items, for per-category counts.
func scopedSnapshot(snap *types.Snapshot, categoryIDs []string, items []types.Item) *types.Snapshot {
	out := &types.Snapshot{Items: items}
	if len(categoryIDs) == 0 {
		out.Categories = snap.Categories
		return out
	}
	keep := make(map[string]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		keep[id] = true
	}
	for _, c := range snap.Categories {
		if keep[c.ID] {
			out.Categories = append(out.Categories, c)
		}
	}
	return out
}
