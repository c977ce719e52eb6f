// Package dedupe flags projected rows that collide with drivers already in
// the destination store.
package dedupe

import (
	"strings"

	"github.com/fleetdesk/driver-import/internal/mapping"
	"github.com/fleetdesk/driver-import/internal/schema"
)

// Existing is the slice of an already-stored driver that duplicate detection
// keys on. Soft-deleted drivers are included by the reference read.
type Existing struct {
	ID            string
	Email         string
	LicenseNumber string
}

// MatchKey names which identity key matched.
type MatchKey string

const (
	MatchEmail   MatchKey = "email"
	MatchLicense MatchKey = "licenseNumber"
)

// Match flags one row as colliding with one existing driver. At most one per
// row: email is checked before license number, first existing record wins.
type Match struct {
	RowIndex   int      `json:"rowIndex"`
	ExistingID string   `json:"existingRecordRef"`
	MatchedOn  MatchKey `json:"matchedOn"`
}

// Detect compares every projected record against the reference collection,
// case-insensitively, and returns at most one Match per row.
func Detect(recs []mapping.Record, existing []Existing) []Match {
	byEmail := make(map[string]string, len(existing))
	byLicense := make(map[string]string, len(existing))
	for _, e := range existing {
		if k := strings.ToLower(strings.TrimSpace(e.Email)); k != "" {
			if _, seen := byEmail[k]; !seen {
				byEmail[k] = e.ID
			}
		}
		if k := strings.ToLower(strings.TrimSpace(e.LicenseNumber)); k != "" {
			if _, seen := byLicense[k]; !seen {
				byLicense[k] = e.ID
			}
		}
	}

	var out []Match
	for i, rec := range recs {
		if email := strings.ToLower(strings.TrimSpace(rec[schema.FieldEmail])); email != "" {
			if id, ok := byEmail[email]; ok {
				out = append(out, Match{RowIndex: i, ExistingID: id, MatchedOn: MatchEmail})
				continue
			}
		}
		if lic := strings.ToLower(strings.TrimSpace(rec[schema.FieldLicenseNumber])); lic != "" {
			if id, ok := byLicense[lic]; ok {
				out = append(out, Match{RowIndex: i, ExistingID: id, MatchedOn: MatchLicense})
			}
		}
	}
	return out
}
