package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ParseCSV reads delimited text. The first record is the header row.
// A zero delimiter means comma. Quotes are parsed leniently and leading
// space in a field is trimmed; rows may have differing lengths.
func ParseCSV(r io.Reader, delimiter rune) (Table, error) {
	reader := csv.NewReader(r)
	if delimiter != 0 {
		if delimiter == '"' || delimiter == '\r' || delimiter == '\n' || !utf8.ValidRune(delimiter) {
			return Table{}, fmt.Errorf("%w: %q", ErrInvalidDelimiter, delimiter)
		}
		reader.Comma = delimiter
	}
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("parse csv: %w", err)
	}
	return tableFrom(records)
}

// ParseDelimiter converts a flag value such as ",", ";", or `\t` to a rune.
// An empty string yields zero, the comma default.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case `\t`, "tab":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDelimiter, s)
	}
	return r, nil
}

// tableFrom splits records into headers and data rows, dropping a leading
// byte order mark and rows that are entirely blank.
func tableFrom(records [][]string) (Table, error) {
	if len(records) == 0 || isBlankRow(records[0]) {
		return Table{}, ErrEmptyTable
	}
	headers := append([]string(nil), records[0]...)
	headers[0] = strings.TrimPrefix(headers[0], "\ufeff")

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isBlankRow(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	return Table{Headers: headers, Rows: rows}, nil
}

func isBlankRow(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
