package tabular

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseWorkbook reads the first sheet of an xlsx upload into a Table. Only
// the first sheet is consulted; the same empty/header-only errors apply as
// for delimited text.
func ParseWorkbook(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	var lines [][]string
	for _, row := range rows {
		if blankCells(row) {
			continue
		}
		lines = append(lines, row)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyFile
	}
	if len(lines) == 1 {
		return nil, ErrNoDataRows
	}

	headers := make([]string, len(lines[0]))
	for i, h := range lines[0] {
		headers[i] = strings.TrimSpace(h)
	}
	t := &Table{Headers: headers, Rows: make([]RawRow, 0, len(lines)-1)}
	for _, cells := range lines[1:] {
		row := make(RawRow, len(headers))
		for i, h := range headers {
			if i >= len(cells) {
				break
			}
			row[h] = strings.TrimSpace(cells[i])
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func blankCells(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
