package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/catalog"
	"github.com/mesh-intelligence/stockroom/internal/importer"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// importOptions holds the flags of the import command.
type importOptions struct {
	category     string
	newCategory  string
	createFields bool
	sheet        string
	delimiter    string
	mapping      []string
}

func newImportCmd(a *app) *cobra.Command {
	var opts importOptions
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import items from a CSV, TSV, or XLSX file",
		Long: `Import adds one item per data row of a spreadsheet. The first row holds
column names, which become attribute keys (lower-cased, spaces replaced by
underscores) unless renamed with --map. Empty cells are skipped. The whole
file is applied or nothing is.

Example:
  stockroom import laptops.csv --category Laptops
  stockroom import stock.xlsx --sheet Monitors --new-category Monitors --create-fields
  stockroom import export.csv --category Laptops --delimiter ";" --map "Asset Tag=patrimonio"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Require(types.ManageItems); err != nil {
				return err
			}
			if opts.createFields || opts.newCategory != "" {
				if err := a.session.Require(types.ManageCategories); err != nil {
					return err
				}
			}
			if (opts.category == "") == (opts.newCategory == "") {
				return errors.New("exactly one of --category or --new-category is required")
			}

			delim, err := importer.ParseDelimiter(opts.delimiter)
			if err != nil {
				return err
			}
			mapping, err := parsePairs(opts.mapping)
			if err != nil {
				return err
			}
			table, err := importer.ParseFile(args[0], importer.FileOptions{Delimiter: delim, Sheet: opts.sheet})
			if err != nil {
				return err
			}

			var (
				res  importer.Result
				name string
			)
			err = a.update(func(snap *types.Snapshot) error {
				c, err := importTarget(snap, opts)
				if err != nil {
					return err
				}
				name = c.Name

				next, r, err := importer.Apply(snap, c.ID, table, importer.Options{
					CreateFields: opts.createFields,
					Mapping:      mapping,
				})
				if err != nil {
					return err
				}
				res = r
				*snap = *next
				return nil
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(w, res)
			}
			fmt.Fprintf(w, "Imported %d items into %q\n", len(res.Items), name)
			if len(res.Fields) > 0 {
				fmt.Fprintf(w, "Created %d fields\n", len(res.Fields))
			}
			for _, col := range res.Skipped {
				fmt.Fprintf(w, "Skipped column %q (reserved key)\n", col)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.category, "category", "", "target category")
	cmd.Flags().StringVar(&opts.newCategory, "new-category", "", "create this category and import into it (admin)")
	cmd.Flags().BoolVar(&opts.createFields, "create-fields", false, "define fields for new columns (admin)")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "worksheet name for XLSX files (default: first sheet)")
	cmd.Flags().StringVar(&opts.delimiter, "delimiter", "", `column delimiter for CSV files, e.g. ";" or "\t" (default: comma)`)
	cmd.Flags().StringArrayVar(&opts.mapping, "map", nil, "rename a column: header=key (repeatable)")
	return cmd
}

// importTarget returns the category named by --category, or creates the
// one named by --new-category.
func importTarget(snap *types.Snapshot, opts importOptions) (types.Category, error) {
	if opts.newCategory != "" {
		return snap.AddCategory(opts.newCategory)
	}
	c, err := catalog.FindCategory(snap, opts.category)
	if err != nil {
		return types.Category{}, fmt.Errorf("%w: %q", err, opts.category)
	}
	return c, nil
}
