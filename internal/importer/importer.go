// Package importer turns spreadsheet files into inventory items. A file is
// parsed into a Table of headers and rows, then applied to a category on a
// copy of the snapshot so a failed batch leaves the original untouched.
package importer

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mesh-intelligence/stockroom/internal/logging"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

var importLog = logging.ForComponent(logging.CompImport)

// Import errors.
var (
	ErrEmptyTable         = errors.New("file has no header row")
	ErrDuplicateHeader    = errors.New("duplicate column after key normalization")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrSheetNotFound      = errors.New("sheet not found")
	ErrInvalidDelimiter   = errors.New("invalid delimiter")
	ErrMappingTargetEmpty = errors.New("column mapping has an empty target")
)

// Table is a parsed file: the header row and the data rows beneath it.
// Rows may be shorter or longer than Headers.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Options controls how a Table is applied to a category.
type Options struct {
	// CreateFields defines a string Field for every column whose key is not
	// yet defined on the category.
	CreateFields bool

	// Mapping renames columns: header text (or its normalized key) to the
	// attribute key it should land in.
	Mapping map[string]string
}

// Result summarizes an applied batch.
type Result struct {
	Items   []types.Item  `json:"items"`
	Fields  []types.Field `json:"fields"`
	Skipped []string      `json:"skipped,omitempty"` // columns that map onto identity keys
}

// column is one header resolved to its target attribute key.
type column struct {
	index  int
	header string
	key    string
}

// Apply adds one item per table row to categoryID. Work happens on a clone
// of snap; on success the clone is returned, on error snap is unchanged and
// the returned snapshot is nil.
func Apply(snap *types.Snapshot, categoryID string, table Table, opts Options) (*types.Snapshot, Result, error) {
	var res Result
	if snap == nil {
		snap = types.NewSnapshot()
	}
	if _, ok := snap.Category(categoryID); !ok {
		return nil, res, types.ErrCategoryNotFound
	}

	cols, skipped, err := resolveColumns(table.Headers, opts.Mapping)
	if err != nil {
		return nil, res, err
	}
	res.Skipped = skipped

	next := snap.Clone()
	if opts.CreateFields {
		defined := make(map[string]bool)
		for _, f := range next.FieldsOf(categoryID) {
			defined[f.Key] = true
		}
		for _, c := range cols {
			if defined[c.key] {
				continue
			}
			f, err := next.AddField(categoryID, c.header, c.key, types.FieldString)
			if err != nil {
				return nil, Result{}, fmt.Errorf("creating field %q: %w", c.header, err)
			}
			defined[c.key] = true
			res.Fields = append(res.Fields, f)
		}
	}

	for n, row := range table.Rows {
		attrs := make([]types.Attr, 0, len(cols))
		for _, c := range cols {
			if c.index >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[c.index])
			if cell == "" {
				continue
			}
			attrs = append(attrs, types.Attr{Key: c.key, Value: types.StringValue(cell)})
		}
		it, err := next.AddItem(categoryID, attrs)
		if err != nil {
			return nil, Result{}, fmt.Errorf("row %d: %w", n+2, err)
		}
		res.Items = append(res.Items, it)
	}

	importLog.Info("import_applied",
		slog.String("category", categoryID),
		slog.Int("items", len(res.Items)),
		slog.Int("fields_created", len(res.Fields)),
		slog.Int("columns_skipped", len(res.Skipped)))
	return next, res, nil
}

// resolveColumns maps headers to attribute keys. Blank headers are ignored;
// identity keys are reported as skipped.
func resolveColumns(headers []string, mapping map[string]string) ([]column, []string, error) {
	if len(headers) == 0 {
		return nil, nil, ErrEmptyTable
	}
	var (
		cols    []column
		skipped []string
		seen    = make(map[string]string)
	)
	for i, h := range headers {
		header := strings.TrimSpace(h)
		if header == "" {
			continue
		}
		key, err := targetKey(header, mapping)
		if err != nil {
			return nil, nil, err
		}
		if types.IsReservedKey(key) {
			skipped = append(skipped, header)
			continue
		}
		if prev, dup := seen[key]; dup {
			return nil, nil, fmt.Errorf("%w: %q and %q both become %q", ErrDuplicateHeader, prev, header, key)
		}
		seen[key] = header
		cols = append(cols, column{index: i, header: header, key: key})
	}
	if len(cols) == 0 && len(skipped) == 0 {
		return nil, nil, ErrEmptyTable
	}
	return cols, skipped, nil
}

func targetKey(header string, mapping map[string]string) (string, error) {
	key := types.NormalizeKey(header)
	target, ok := mapping[header]
	if !ok {
		target, ok = mapping[key]
	}
	if !ok {
		return key, nil
	}
	target = types.NormalizeKey(target)
	if target == "" {
		return "", fmt.Errorf("%w: %q", ErrMappingTargetEmpty, header)
	}
	return target, nil
}
