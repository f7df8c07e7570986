package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/catalog"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func newFieldCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "field",
		Short: "Manage category fields",
	}
	cmd.AddCommand(newFieldAddCmd(a))
	cmd.AddCommand(newFieldListCmd(a))
	cmd.AddCommand(newFieldUpdateCmd(a))
	cmd.AddCommand(newFieldDeleteCmd(a))
	return cmd
}

func newFieldAddCmd(a *app) *cobra.Command {
	var (
		key       string
		fieldType string
	)
	cmd := &cobra.Command{
		Use:   "add <category> <name>",
		Short: "Define a field on a category (admin)",
		Long: `Add defines a named field on a category. The key defaults to the name
lower-cased with spaces replaced by underscores.

Example:
  stockroom field add Laptops "Serial Number"
  stockroom field add Laptops RAM --type number`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Require(types.ManageCategories); err != nil {
				return err
			}
			var created types.Field
			err := a.update(func(snap *types.Snapshot) error {
				c, err := catalog.FindCategory(snap, args[0])
				if err != nil {
					return fmt.Errorf("%w: %q", err, args[0])
				}
				created, err = snap.AddField(c.ID, args[1], key, types.FieldType(fieldType))
				return err
			})
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created field %q (key %s, %s)\n", created.Name, created.Key, created.Type)
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "attribute key (default: derived from name)")
	cmd.Flags().StringVar(&fieldType, "type", string(types.FieldString), "field type: string, number, or boolean")
	return cmd
}

func newFieldListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <category>",
		Short: "List the fields of a category, including inferred ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.load()
			if err != nil {
				return err
			}
			c, err := catalog.FindCategory(snap, args[0])
			if err != nil {
				return fmt.Errorf("%w: %q", err, args[0])
			}
			fields := catalog.ResolveFields(snap, c.ID)

			w := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(w, fields)
			}
			if len(fields) == 0 {
				fmt.Fprintf(w, "Category %q has no fields.\n", c.Name)
				return nil
			}
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tNAME\tTYPE\tSOURCE")
			fmt.Fprintln(tw, "---\t----\t----\t------")
			for _, f := range fields {
				source := "defined"
				if f.ID == "" {
					source = "inferred"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Key, f.Name, f.Type, source)
			}
			return tw.Flush()
		},
	}
}

func newFieldUpdateCmd(a *app) *cobra.Command {
	var change struct {
		name      string
		key       string
		fieldType string
	}
	cmd := &cobra.Command{
		Use:   "update <category> <field>",
		Short: "Rename a field or change its key or type (admin)",
		Long: `Update edits a defined field, found by key, name, or id. Values already
stored on items keep their old key; a changed key only affects new input.

Example:
  stockroom field update Laptops ram --name "Memory (GB)"
  stockroom field update Laptops patrimonio --key asset_tag`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Require(types.ManageCategories); err != nil {
				return err
			}
			if change.name == "" && change.key == "" && change.fieldType == "" {
				return errors.New("nothing to update: give --name, --key, or --type")
			}
			var updated types.Field
			err := a.update(func(snap *types.Snapshot) error {
				f, err := definedField(snap, args[0], args[1])
				if err != nil {
					return err
				}
				updated, err = snap.UpdateField(f.ID, types.FieldChange{
					Name: change.name,
					Key:  change.key,
					Type: types.FieldType(change.fieldType),
				})
				return err
			})
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), updated)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated field %q (key %s, %s)\n", updated.Name, updated.Key, updated.Type)
			return nil
		},
	}
	cmd.Flags().StringVar(&change.name, "name", "", "new display name")
	cmd.Flags().StringVar(&change.key, "key", "", "new attribute key")
	cmd.Flags().StringVar(&change.fieldType, "type", "", "new field type: string, number, or boolean")
	return cmd
}

func newFieldDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <category> <field>",
		Short: "Remove a field definition (admin)",
		Long: `Delete removes a defined field. Item values under its key are kept and
show up as an inferred field.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Require(types.ManageCategories); err != nil {
				return err
			}
			var removed types.Field
			err := a.update(func(snap *types.Snapshot) error {
				f, err := definedField(snap, args[0], args[1])
				if err != nil {
					return err
				}
				removed = f
				return snap.DeleteField(f.ID)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted field %q\n", removed.Name)
			return nil
		},
	}
}

// definedField finds an explicit field of a category by id, key, or
// case-insensitive name.
func definedField(snap *types.Snapshot, categoryRef, ref string) (types.Field, error) {
	c, err := catalog.FindCategory(snap, categoryRef)
	if err != nil {
		return types.Field{}, fmt.Errorf("%w: %q", err, categoryRef)
	}
	ref = strings.TrimSpace(ref)
	for _, f := range snap.FieldsOf(c.ID) {
		if f.ID == ref || f.Key == ref {
			return f, nil
		}
	}
	for _, f := range snap.FieldsOf(c.ID) {
		if strings.EqualFold(f.Name, ref) {
			return f, nil
		}
	}
	return types.Field{}, fmt.Errorf("%w: %q in category %q", types.ErrFieldNotFound, ref, c.Name)
}
