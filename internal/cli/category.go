package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/catalog"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func newCategoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}
	cmd.AddCommand(newCategoryAddCmd(a))
	cmd.AddCommand(newCategoryListCmd(a))
	cmd.AddCommand(newCategoryRenameCmd(a))
	cmd.AddCommand(newCategoryDeleteCmd(a))
	return cmd
}

func newCategoryAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Require(types.ManageCategories); err != nil {
				return err
			}
			var created types.Category
			err := a.update(func(snap *types.Snapshot) error {
				var err error
				created, err = snap.AddCategory(args[0])
				return err
			})
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created category %q (%s)\n", created.Name, created.ID)
			return nil
		},
	}
}

// categoryRow is the JSON form of a category listing.
type categoryRow struct {
	types.Category
	Fields int `json:"fields"`
	Items  int `json:"items"`
}

func newCategoryListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories with field and item counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.load()
			if err != nil {
				return err
			}
			counts := make(map[string]int)
			for _, it := range snap.Items {
				counts[it.CategoryID]++
			}
			rows := make([]categoryRow, len(snap.Categories))
			for i, c := range snap.Categories {
				rows[i] = categoryRow{Category: c, Fields: len(snap.FieldsOf(c.ID)), Items: counts[c.ID]}
			}

			w := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(w, rows)
			}
			if len(rows) == 0 {
				fmt.Fprintln(w, "No categories found.")
				return nil
			}
			short := shortIDs(snap.CategoryIDs())
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tFIELDS\tITEMS")
			fmt.Fprintln(tw, "--\t----\t------\t-----")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", shortOr(short, r.ID), r.Name, r.Fields, r.Items)
			}
			return tw.Flush()
		},
	}
}

func newCategoryRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <category> <new-name>",
		Short: "Rename a category (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Require(types.ManageCategories); err != nil {
				return err
			}
			var old string
			err := a.update(func(snap *types.Snapshot) error {
				c, err := catalog.FindCategory(snap, args[0])
				if err != nil {
					return fmt.Errorf("%w: %q", err, args[0])
				}
				old = c.Name
				return snap.RenameCategory(c.ID, args[1])
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed category %q to %q\n", old, args[1])
			return nil
		},
	}
}

func newCategoryDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <category>",
		Short: "Delete a category with its fields and items (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Require(types.ManageCategories); err != nil {
				return err
			}
			var (
				name    string
				removed int
			)
			err := a.update(func(snap *types.Snapshot) error {
				c, err := exactCategory(snap, args[0])
				if err != nil {
					return err
				}
				name = c.Name
				removed, err = snap.DeleteCategory(c.ID)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %q and %d items\n", name, removed)
			return nil
		},
	}
}

// exactCategory resolves ref by id, id prefix, or case-insensitive name. A fuzzy
// match is reported as a suggestion instead of being acted on.
func exactCategory(snap *types.Snapshot, ref string) (types.Category, error) {
	c, err := catalog.FindCategory(snap, ref)
	if err != nil {
		return types.Category{}, fmt.Errorf("%w: %q", err, ref)
	}
	ref = strings.TrimSpace(ref)
	if c.ID != ref && !catalog.IsIDPrefix(c.ID, ref) && !strings.EqualFold(c.Name, ref) {
		return types.Category{}, fmt.Errorf("%w: %q (did you mean %q?)", types.ErrCategoryNotFound, ref, c.Name)
	}
	return c, nil
}
