package importer

import (
	"fmt"
	"io"
	"slices"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads one worksheet of an Excel workbook. An empty sheet name
// selects the first sheet.
func ParseXLSX(r io.Reader, sheet string) (Table, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, ErrEmptyTable
	}
	if sheet == "" {
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return Table{}, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}

	rows, err := wb.GetRows(sheet)
	if err != nil {
		return Table{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return tableFrom(rows)
}
