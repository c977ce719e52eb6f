package tabular

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fleetdesk/driver-import/internal/schema"
)

const templateSheet = "Drivers"

// TemplateHeaders returns the 26 template column headers in canonical order.
func TemplateHeaders() []string {
	infos := schema.All()
	out := make([]string, len(infos))
	for i, info := range infos {
		out[i] = info.Label
	}
	return out
}

// TemplateExampleRow returns the single illustrative data row shipped with
// the template.
func TemplateExampleRow() []string {
	infos := schema.All()
	out := make([]string, len(infos))
	for i, info := range infos {
		out[i] = info.Example
	}
	return out
}

// WriteTemplateCSV writes the import template as delimited text: the full
// header row plus the example row.
func WriteTemplateCSV(w io.Writer) error {
	for _, line := range [][]string{TemplateHeaders(), TemplateExampleRow()} {
		if _, err := fmt.Fprintln(w, strings.Join(line, delimiter)); err != nil {
			return err
		}
	}
	return nil
}

// TemplateWorkbook builds the import template as a single-sheet workbook.
func TemplateWorkbook() (*excelize.File, error) {
	x := excelize.NewFile()
	idx, err := x.NewSheet(templateSheet)
	if err != nil {
		return nil, err
	}
	for r, row := range [][]string{TemplateHeaders(), TemplateExampleRow()} {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := x.SetCellStr(templateSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	x.SetActiveSheet(idx)
	if err := x.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	return x, nil
}
