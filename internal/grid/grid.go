// Package grid holds the editable, per-session state of an import run: the
// projected rows, their validation findings and duplicate matches, and the
// {ready, errors, duplicates} partition derived from them.
package grid

import (
	"fmt"

	"github.com/fleetdesk/driver-import/internal/dedupe"
	"github.com/fleetdesk/driver-import/internal/mapping"
	"github.com/fleetdesk/driver-import/internal/schema"
	"github.com/fleetdesk/driver-import/internal/tabular"
	"github.com/fleetdesk/driver-import/internal/validate"
)

// View names one of the grid's filtered row views.
type View string

const (
	ViewAll        View = "all"
	ViewReady      View = "ready"
	ViewErrors     View = "errors"
	ViewDuplicates View = "duplicates"
)

// Row is one grid row with everything the reconciliation screen needs.
type Row struct {
	Index     int                `json:"index"`
	Record    mapping.Record     `json:"record"`
	Findings  []validate.Finding `json:"findings,omitempty"`
	Duplicate *dedupe.Match      `json:"duplicate,omitempty"`
}

// Counts is the current row partition. Ready+Errors+Duplicates always equals
// Total.
type Counts struct {
	Total      int `json:"total"`
	Ready      int `json:"ready"`
	Errors     int `json:"errors"`
	Duplicates int `json:"duplicates"`
}

// Grid is the mutable session state between upload and import. All state is
// discarded with the session; nothing persists until the importer commits.
// There is exactly one mutator (the interaction handler), so Grid itself
// does no locking.
type Grid struct {
	table    *tabular.Table
	mappings []mapping.ColumnMapping
	existing []dedupe.Existing
	opts     validate.Options

	rows     []mapping.Record
	findings map[int][]validate.Finding
	dupes    map[int]dedupe.Match
	skipped  map[int]bool

	previewIndex int
}

// New parses nothing: it takes an already-parsed table plus the reference
// collection, auto-maps the headers, and runs the full projection,
// validation and duplicate passes.
func New(table *tabular.Table, existing []dedupe.Existing, opts validate.Options) *Grid {
	g := &Grid{
		table:    table,
		existing: existing,
		opts:     opts,
		skipped:  make(map[int]bool),
	}
	g.mappings = mapping.AutoMap(table, g.previewIndex)
	g.recompute()
	return g
}

// recompute rebuilds rows, findings and duplicate matches from scratch.
// Called on any mapping change; single-cell edits patch incrementally
// instead. Skip state survives a recompute.
func (g *Grid) recompute() {
	g.rows = mapping.ProjectAll(g.table, g.mappings)

	g.findings = make(map[int][]validate.Finding)
	for _, f := range validate.Records(g.rows, g.opts) {
		g.findings[f.RowIndex] = append(g.findings[f.RowIndex], f)
	}

	g.dupes = make(map[int]dedupe.Match)
	for _, m := range dedupe.Detect(g.rows, g.existing) {
		if !g.skipped[m.RowIndex] {
			g.dupes[m.RowIndex] = m
		}
	}
}

/* ───────── mapping stage ───────── */

// Mappings returns the current column mappings in source-column order.
func (g *Grid) Mappings() []mapping.ColumnMapping {
	out := make([]mapping.ColumnMapping, len(g.mappings))
	copy(out, g.mappings)
	return out
}

// SetMapping applies an operator override and recomputes all derived state.
func (g *Grid) SetMapping(sourceColumn string, dest schema.Field) error {
	if err := mapping.Override(g.mappings, sourceColumn, dest); err != nil {
		return err
	}
	g.recompute()
	return nil
}

// QuickFixes proposes mappings for required fields still unmapped.
func (g *Grid) QuickFixes() []mapping.QuickFix {
	return mapping.QuickFixes(g.mappings)
}

// PreviewIndex returns the row index backing the mapping-stage preview.
func (g *Grid) PreviewIndex() int { return g.previewIndex }

// SetPreviewIndex moves the mapping-stage preview row and reseeds every
// mapping's preview value. It does not touch the partition.
func (g *Grid) SetPreviewIndex(index int) error {
	if index < 0 || index >= len(g.table.Rows) {
		return fmt.Errorf("preview index %d out of range (0..%d)", index, len(g.table.Rows)-1)
	}
	g.previewIndex = index
	mapping.SeedPreviews(g.mappings, g.table.Rows[index])
	return nil
}

/* ───────── reconciliation stage ───────── */

// CommitEdit overwrites one cell, drops that cell's existing findings, and
// validates the new value before recomputing readiness. Returns the row's
// remaining findings.
func (g *Grid) CommitEdit(rowIndex int, field schema.Field, value string) ([]validate.Finding, error) {
	if rowIndex < 0 || rowIndex >= len(g.rows) {
		return nil, fmt.Errorf("row index %d out of range", rowIndex)
	}
	if _, ok := schema.Lookup(field); !ok {
		return nil, fmt.Errorf("unknown field %q", field)
	}
	g.rows[rowIndex][field] = value

	kept := g.findings[rowIndex][:0:0]
	for _, f := range g.findings[rowIndex] {
		if f.Field != field {
			kept = append(kept, f)
		}
	}
	if f := validate.Cell(rowIndex, field, value, g.opts); f != nil {
		kept = append(kept, *f)
	}
	if len(kept) == 0 {
		delete(g.findings, rowIndex)
	} else {
		g.findings[rowIndex] = kept
	}
	return kept, nil
}

// ApplySuggestion commits a finding's machine-computed fix as an edit.
func (g *Grid) ApplySuggestion(f validate.Finding) ([]validate.Finding, error) {
	if f.Suggestion == "" {
		return nil, fmt.Errorf("finding for row %d field %s carries no suggestion", f.RowIndex, f.Field)
	}
	return g.CommitEdit(f.RowIndex, f.Field, f.Suggestion)
}

// SkipDuplicate clears a row's duplicate match for this session. The row
// re-enters ready iff it carries no findings.
func (g *Grid) SkipDuplicate(rowIndex int) error {
	if rowIndex < 0 || rowIndex >= len(g.rows) {
		return fmt.Errorf("row index %d out of range", rowIndex)
	}
	g.skipped[rowIndex] = true
	delete(g.dupes, rowIndex)
	return nil
}

/* ───────── partition ───────── */

// rowView classifies one row. Precedence: an unskipped duplicate match wins,
// then findings, then ready.
func (g *Grid) rowView(i int) View {
	if _, dup := g.dupes[i]; dup {
		return ViewDuplicates
	}
	if len(g.findings[i]) > 0 {
		return ViewErrors
	}
	return ViewReady
}

// Counts recomputes the partition sizes.
func (g *Grid) Counts() Counts {
	c := Counts{Total: len(g.rows)}
	for i := range g.rows {
		switch g.rowView(i) {
		case ViewReady:
			c.Ready++
		case ViewErrors:
			c.Errors++
		case ViewDuplicates:
			c.Duplicates++
		}
	}
	return c
}

// Rows returns the rows visible under view, in row order.
func (g *Grid) Rows(view View) []Row {
	var out []Row
	for i := range g.rows {
		if view != ViewAll && g.rowView(i) != view {
			continue
		}
		r := Row{Index: i, Record: g.rows[i], Findings: g.findings[i]}
		if m, ok := g.dupes[i]; ok {
			r.Duplicate = &m
		}
		out = append(out, r)
	}
	return out
}

// Findings returns all outstanding findings in row order.
func (g *Grid) Findings() []validate.Finding {
	var out []validate.Finding
	for i := range g.rows {
		out = append(out, g.findings[i]...)
	}
	return out
}

// ReadyRecords returns the records eligible for commit, in row order.
func (g *Grid) ReadyRecords() []mapping.Record {
	var out []mapping.Record
	for i := range g.rows {
		if g.rowView(i) == ViewReady {
			out = append(out, g.rows[i])
		}
	}
	return out
}
