package validate

import (
	"strings"

	"github.com/fleetdesk/driver-import/internal/mapping"
	"github.com/fleetdesk/driver-import/internal/schema"
)

// Options carries the knobs the rules need. The zero value is usable
// (month-first date order).
type Options struct {
	DateOrder DateOrder
}

// Records runs the full validation pass over every projected record,
// in row order.
func Records(recs []mapping.Record, opts Options) []Finding {
	var out []Finding
	for i, rec := range recs {
		out = append(out, Row(i, rec, opts)...)
	}
	return out
}

// Row validates a single projected record. Each field surfaces at most its
// first failing rule.
func Row(rowIndex int, rec mapping.Record, opts Options) []Finding {
	var out []Finding
	for _, info := range schema.All() {
		if f := Cell(rowIndex, info.Field, rec[info.Field], opts); f != nil {
			out = append(out, *f)
		}
	}
	return out
}

// Cell validates one field value. Nil means the value is clean. Empty values
// only fail for required fields; non-empty values are checked against the
// field's kind-specific rule.
func Cell(rowIndex int, field schema.Field, value string, opts Options) *Finding {
	info, ok := schema.Lookup(field)
	if !ok {
		return nil
	}
	if strings.TrimSpace(value) == "" {
		if !info.Required {
			return nil
		}
		return &Finding{RowIndex: rowIndex, Field: field, RawValue: value, Kind: MissingRequired}
	}

	var (
		kind       Kind
		suggestion string
	)
	switch info.Kind {
	case schema.KindEmail:
		kind, suggestion = checkEmail(value)
	case schema.KindPhone:
		kind, suggestion = checkPhone(value)
	case schema.KindDate:
		kind, suggestion = checkDate(value, opts.DateOrder)
	default:
		return nil
	}
	if kind == "" {
		return nil
	}
	return &Finding{RowIndex: rowIndex, Field: field, RawValue: value, Kind: kind, Suggestion: suggestion}
}
