// Package mapping resolves source columns onto the destination schema and
// projects raw rows through the resolved mapping.
package mapping

import (
	"fmt"
	"strings"

	"github.com/fleetdesk/driver-import/internal/schema"
	"github.com/fleetdesk/driver-import/internal/tabular"
)

// ColumnMapping is the operator-controlled association from one source
// column to a destination field, or schema.Ignore. PreviewValue caches the
// column's value at the current preview row so the mapping screen can show a
// sample without re-reading the table.
type ColumnMapping struct {
	SourceColumn string       `json:"sourceColumn"`
	Destination  schema.Field `json:"destinationField"`
	PreviewValue string       `json:"previewValue"`
}

// AutoMap proposes a mapping for every source header via the synonym table.
// Headers with no synonym map to schema.Ignore. Preview values are seeded
// from the row at previewIndex. This runs once per header set; operator
// overrides are never auto-reverted.
func AutoMap(t *tabular.Table, previewIndex int) []ColumnMapping {
	out := make([]ColumnMapping, 0, len(t.Headers))
	for _, h := range t.Headers {
		out = append(out, ColumnMapping{
			SourceColumn: h,
			Destination:  schema.Match(h),
		})
	}
	SeedPreviews(out, previewRow(t, previewIndex))
	return out
}

// SeedPreviews refreshes every mapping's PreviewValue from row. Must be
// called whenever the preview row index moves.
func SeedPreviews(mappings []ColumnMapping, row tabular.RawRow) {
	for i := range mappings {
		mappings[i].PreviewValue = row[mappings[i].SourceColumn]
	}
}

func previewRow(t *tabular.Table, index int) tabular.RawRow {
	if index < 0 || index >= len(t.Rows) {
		return tabular.RawRow{}
	}
	return t.Rows[index]
}

// Record is a raw row reshaped into destination-field keys. Fields mapped to
// Ignore are absent.
type Record map[schema.Field]string

// Project applies mappings to one raw row. When two source columns map to
// the same destination field the later column wins.
func Project(row tabular.RawRow, mappings []ColumnMapping) Record {
	rec := make(Record, len(mappings))
	for _, m := range mappings {
		if m.Destination == schema.Ignore {
			continue
		}
		rec[m.Destination] = row[m.SourceColumn]
	}
	return rec
}

// ProjectAll projects every row of the table.
func ProjectAll(t *tabular.Table, mappings []ColumnMapping) []Record {
	out := make([]Record, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = Project(row, mappings)
	}
	return out
}

// Override rebinds sourceColumn to dest. It errors on unknown columns and on
// destinations outside the schema, never on duplicates: assigning a field
// already claimed by another column is allowed and resolved by Project's
// later-column-wins rule.
func Override(mappings []ColumnMapping, sourceColumn string, dest schema.Field) error {
	if dest != schema.Ignore {
		if _, ok := schema.Lookup(dest); !ok {
			return fmt.Errorf("unknown destination field %q", dest)
		}
	}
	for i := range mappings {
		if mappings[i].SourceColumn == sourceColumn {
			mappings[i].Destination = dest
			return nil
		}
	}
	return fmt.Errorf("unknown source column %q", sourceColumn)
}

// QuickFix is a one-click proposal to map a currently-ignored source column
// onto a required destination field that has no mapping yet.
type QuickFix struct {
	SourceColumn string       `json:"sourceColumn"`
	Field        schema.Field `json:"destinationField"`
}

// QuickFixes scans for required fields left unmapped and offers ignored
// columns whose normalized label is a substring of the field's label (or
// vice versa). Ties are not broken; operator judgment resolves them.
func QuickFixes(mappings []ColumnMapping) []QuickFix {
	mapped := make(map[schema.Field]bool)
	for _, m := range mappings {
		if m.Destination != schema.Ignore {
			mapped[m.Destination] = true
		}
	}

	var out []QuickFix
	for _, f := range schema.Required() {
		if mapped[f] {
			continue
		}
		info, _ := schema.Lookup(f)
		want := schema.Normalize(info.Label)
		for _, m := range mappings {
			if m.Destination != schema.Ignore {
				continue
			}
			got := schema.Normalize(m.SourceColumn)
			if got == "" {
				continue
			}
			if strings.Contains(want, got) || strings.Contains(got, want) {
				out = append(out, QuickFix{SourceColumn: m.SourceColumn, Field: f})
			}
		}
	}
	return out
}
