// Package tabular parses loosely formatted comma separated text into a header
// row and data rows.
//
// The format is deliberately lenient: a double quote toggles quoting and is
// itself dropped, commas inside quotes are kept, and every field is trimmed.
// Escaped quotes ("") are not recognised.
package tabular

import (
	"errors"
	"strings"
)

// ErrInsufficientData is returned when the input has fewer than two non-blank lines
var ErrInsufficientData = errors.New("input must contain a header row and at least one data row")

const byteOrderMark = "\ufeff"

// Table is a parsed header row plus data rows. Rows may be shorter or longer than Headers.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Parse splits text on newlines, discards blank lines, and parses each
// remaining line with SplitLine. The first line is the header row.
func Parse(text string) (*Table, error) {
	text = strings.TrimPrefix(text, byteOrderMark)

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) < 2 {
		return nil, ErrInsufficientData
	}

	table := &Table{
		Headers: SplitLine(lines[0]),
		Rows:    make([][]string, 0, len(lines)-1),
	}
	for _, line := range lines[1:] {
		table.Rows = append(table.Rows, SplitLine(line))
	}
	return table, nil
}

// SplitLine splits one line on commas that are outside quotes and trims each field
func SplitLine(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	return append(fields, strings.TrimSpace(current.String()))
}

// ColumnIndex returns the index of the first header equal to name, or -1
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether name is one of the headers
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Cell returns the trimmed value at row/col, or "" when the row is short
func (t *Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// Sample returns at most n data rows
func (t *Table) Sample(n int) [][]string {
	if n < 0 || n >= len(t.Rows) {
		return t.Rows
	}
	return t.Rows[:n]
}
