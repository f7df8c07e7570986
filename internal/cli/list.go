package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/catalog"
	"github.com/mesh-intelligence/stockroom/internal/search"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// listOptions holds the flags of the list command.
type listOptions struct {
	categories []string
	where      []string
	text       string
	sortKey    string
	desc       bool
	group      bool
	groupBy    string
	limit      int
}

func newListCmd(a *app) *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items with filters, sorting, and grouping",
		Long: `List shows items matching every given constraint.

--sort takes a key with an optional direction: key, key:asc, or key:desc.

--category may repeat; items in any of the named categories are kept.
--where key=needle keeps items whose key contains needle (case-insensitive);
repeat it to require several fields. --text keeps items where any value
contains the text.

Example:
  stockroom list --category Laptops --where setor=ti --sort patrimonio
  stockroom list --sort modelo:desc
  stockroom list --text latitude --group
  stockroom list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.load()
			if err != nil {
				return err
			}
			filter, err := buildFilter(snap, opts.categories, opts.where, opts.text)
			if err != nil {
				return err
			}

			sortKey, dir, err := parseSort(opts.sortKey, opts.desc)
			if err != nil {
				return err
			}

			items := search.FilterItems(snap.Items, filter)
			items = search.SortBy(items, sortKey, dir)
			total := len(items)
			items = search.Limit(items, a.listLimit(opts.limit))

			w := cmd.OutOrStdout()
			groupKey := opts.groupBy
			if opts.group && groupKey == "" {
				groupKey = types.KeyCategoryID
			}

			if a.flags.jsonMode {
				if groupKey != "" {
					return printJSON(w, search.GroupBy(items, groupKey))
				}
				return printJSON(w, items)
			}
			if groupKey != "" {
				printGroups(w, snap, search.GroupBy(items, groupKey), groupLabel(snap, groupKey))
			} else {
				printItems(w, snap, items)
			}
			if len(items) < total {
				fmt.Fprintf(w, "\nShowing %d of %d items.\n", len(items), total)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&opts.categories, "category", nil, "restrict to a category (repeatable)")
	cmd.Flags().StringArrayVar(&opts.where, "where", nil, "field filter key=needle (repeatable)")
	cmd.Flags().StringVar(&opts.text, "text", "", "keep items with any value containing text")
	cmd.Flags().StringVar(&opts.sortKey, "sort", "", "sort by attribute key, optionally key:asc or key:desc")
	cmd.Flags().BoolVar(&opts.desc, "desc", false, "sort descending (same as key:desc)")
	cmd.Flags().BoolVar(&opts.group, "group", false, "group results by category")
	cmd.Flags().StringVar(&opts.groupBy, "group-by", "", "group results by attribute key")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "maximum number of results (default: config list_limit)")
	return cmd
}

// buildFilter resolves category references and where pairs into a Filter.
func buildFilter(snap *types.Snapshot, categories, where []string, text string) (search.Filter, error) {
	ids, err := resolveCategories(snap, categories)
	if err != nil {
		return search.Filter{}, err
	}
	fields, err := parsePairs(where)
	if err != nil {
		return search.Filter{}, err
	}
	return search.Filter{
		CategoryIDs:      ids,
		KnownCategoryIDs: snap.CategoryIDs(),
		FieldFilters:     fields,
		Text:             text,
	}, nil
}

// parseSort splits a key[:direction] sort flag. A bare key sorts
// ascending unless desc is set.
func parseSort(flag string, desc bool) (string, search.Direction, error) {
	key, raw, hasDir := strings.Cut(flag, ":")
	key = strings.TrimSpace(key)
	dir := search.Ascending
	if hasDir {
		d, err := search.ParseDirection(raw)
		if err != nil {
			return "", search.Unsorted, err
		}
		dir = d
	}
	if desc {
		dir = search.Descending
	}
	return key, dir, nil
}

// groupLabel returns the heading function for a grouping key.
func groupLabel(snap *types.Snapshot, key string) func(string) string {
	if key == types.KeyCategoryID {
		return func(id string) string { return catalog.CategoryName(snap, id) }
	}
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return catalog.EmptyMarker
		}
		return v
	}
}
