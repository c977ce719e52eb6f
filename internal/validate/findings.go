// Package validate runs the per-field rules over projected driver records
// and computes repair suggestions for mechanically fixable values.
package validate

import "github.com/fleetdesk/driver-import/internal/schema"

// Kind classifies a validation finding.
type Kind string

const (
	MissingRequired   Kind = "missing_required"
	InvalidEmail      Kind = "invalid_email"
	PhoneTooShort     Kind = "phone_too_short"
	PhoneTooLong      Kind = "phone_too_long"
	FormatSuggestion  Kind = "format_suggestion"
	InvalidDateFormat Kind = "invalid_date_format"
	UnparseableDate   Kind = "unparseable_date"
)

// Finding is one per-row, per-field problem report. Suggestion, when
// non-empty, is a machine-computed replacement value that would clear the
// finding.
type Finding struct {
	RowIndex   int          `json:"rowIndex"`
	Field      schema.Field `json:"field"`
	RawValue   string       `json:"rawValue"`
	Kind       Kind         `json:"errorKind"`
	Suggestion string       `json:"suggestion,omitempty"`
}
