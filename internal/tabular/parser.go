// Package tabular turns uploaded spreadsheet exports (delimited text or xlsx)
// into a header list plus ordered header-keyed rows, and produces the
// downloadable import template.
package tabular

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyFile means the upload contained no non-blank lines at all.
	ErrEmptyFile = errors.New("tabular: file is empty")
	// ErrNoDataRows means the upload contained a header row and nothing else.
	ErrNoDataRows = errors.New("tabular: file has a header but no data rows")
)

// RawRow is one parsed data line, keyed by source header. Rows shorter than
// the header simply lack the trailing keys; readers default them to "".
type RawRow map[string]string

// Table is a parsed upload: the source headers in file order and one RawRow
// per physical data line.
type Table struct {
	Headers []string
	Rows    []RawRow
}

const delimiter = ","

// ParseDelimited splits the full text of a delimited upload into a Table.
// The first non-blank line is the header row. Cells are split on the comma
// and stripped of surrounding quotes; no delimiter sniffing, multi-line
// quoting or escape handling is attempted.
func ParseDelimited(content string) (*Table, error) {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyFile
	}
	if len(lines) == 1 {
		return nil, ErrNoDataRows
	}

	headers := splitLine(lines[0])
	t := &Table{Headers: headers, Rows: make([]RawRow, 0, len(lines)-1)}
	for _, line := range lines[1:] {
		cells := splitLine(line)
		row := make(RawRow, len(headers))
		for i, h := range headers {
			if i >= len(cells) {
				break // short row: trailing columns stay absent
			}
			row[h] = cells[i]
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func splitLine(line string) []string {
	parts := strings.Split(line, delimiter)
	for i, p := range parts {
		parts[i] = strings.Trim(strings.TrimSpace(p), `"'`)
	}
	return parts
}
