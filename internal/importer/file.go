package importer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileOptions selects parser settings for ParseFile.
type FileOptions struct {
	Delimiter rune   // CSV only; zero means comma, or tab for .tsv
	Sheet     string // XLSX only; empty means the first sheet
}

// ParseFile dispatches on the file extension: .csv, .tsv, .txt, or .xlsx.
func ParseFile(path string, opts FileOptions) (Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv", ".tsv", ".txt", ".xlsx":
	default:
		return Table{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var t Table
	if ext == ".xlsx" {
		t, err = ParseXLSX(f, opts.Sheet)
	} else {
		delim := opts.Delimiter
		if delim == 0 && ext == ".tsv" {
			delim = '\t'
		}
		t, err = ParseCSV(f, delim)
	}
	if err != nil {
		return Table{}, err
	}
	importLog.Debug("file_parsed",
		slog.String("path", path),
		slog.Int("columns", len(t.Headers)),
		slog.Int("rows", len(t.Rows)))
	return t, nil
}
