package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/catalog"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func newItemCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Create, show, edit, and delete items",
	}
	cmd.AddCommand(newItemAddCmd(a))
	cmd.AddCommand(newItemGetCmd(a))
	cmd.AddCommand(newItemUpdateCmd(a))
	cmd.AddCommand(newItemDeleteCmd(a))
	return cmd
}

func newItemAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <category> key=value...",
		Short: "Create an item",
		Long: `Add creates an item in a category. Values are typed by the category's
field definitions; undefined keys are stored as text.

Example:
  stockroom item add Laptops patrimonio=1001 modelo="Latitude 5420" ram=16`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Require(types.ManageItems); err != nil {
				return err
			}
			var created types.Item
			err := a.update(func(snap *types.Snapshot) error {
				c, err := catalog.FindCategory(snap, args[0])
				if err != nil {
					return fmt.Errorf("%w: %q", err, args[0])
				}
				attrs, err := parseAssignments(snap, c.ID, args[1:])
				if err != nil {
					return err
				}
				created, err = snap.AddItem(c.ID, withoutNulls(attrs))
				return err
			})
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created item %s\n", created.ID)
			return nil
		},
	}
}

func newItemGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.load()
			if err != nil {
				return err
			}
			it, err := resolveItem(snap, args[0])
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), it)
			}
			printItem(cmd.OutOrStdout(), snap, it)
			return nil
		},
	}
}

func newItemUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> key=value...",
		Short: "Change item attributes",
		Long: `Update merges attributes into an item. Existing keys keep their
position; new keys are appended. An empty value (key=) removes the key.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Require(types.ManageItems); err != nil {
				return err
			}
			var updated types.Item
			err := a.update(func(snap *types.Snapshot) error {
				it, err := resolveItem(snap, args[0])
				if err != nil {
					return err
				}
				attrs, err := parseAssignments(snap, it.CategoryID, args[1:])
				if err != nil {
					return err
				}
				updated, err = snap.UpdateItem(it.ID, attrs)
				return err
			})
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), updated)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated item %s\n", updated.ID)
			return nil
		},
	}
}

func newItemDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Require(types.ManageItems); err != nil {
				return err
			}
			var id string
			err := a.update(func(snap *types.Snapshot) error {
				it, err := resolveItem(snap, args[0])
				if err != nil {
					return err
				}
				id = it.ID
				return snap.DeleteItem(id)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted item %s\n", id)
			return nil
		},
	}
}
