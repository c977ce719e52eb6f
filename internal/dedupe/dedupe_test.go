package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetdesk/driver-import/internal/mapping"
	"github.com/fleetdesk/driver-import/internal/schema"
)

var reference = []Existing{
	{ID: "drv-1", Email: "maria@example.com", LicenseNumber: "D1234567"},
	{ID: "drv-2", Email: "luis@example.com", LicenseNumber: "X9999999"},
}

func TestDetectEmailMatchWinsOverLicense(t *testing.T) {
	recs := []mapping.Record{{
		// email matches drv-1 while the license matches drv-2: email is
		// checked first and only that match is reported
		schema.FieldEmail:         "MARIA@Example.COM",
		schema.FieldLicenseNumber: "x9999999",
	}}
	matches := Detect(recs, reference)
	require.Len(t, matches, 1)
	assert.Equal(t, 0, matches[0].RowIndex)
	assert.Equal(t, "drv-1", matches[0].ExistingID)
	assert.Equal(t, MatchEmail, matches[0].MatchedOn)
}

func TestDetectLicenseMatch(t *testing.T) {
	recs := []mapping.Record{{
		schema.FieldEmail:         "new.driver@example.com",
		schema.FieldLicenseNumber: "d1234567",
	}}
	matches := Detect(recs, reference)
	require.Len(t, matches, 1)
	assert.Equal(t, MatchLicense, matches[0].MatchedOn)
	assert.Equal(t, "drv-1", matches[0].ExistingID)
}

func TestDetectNoMatch(t *testing.T) {
	recs := []mapping.Record{
		{schema.FieldEmail: "nobody@example.com", schema.FieldLicenseNumber: "Z0000000"},
		{}, // empty identity keys never match
	}
	assert.Empty(t, Detect(recs, reference))
}

func TestDetectFirstExistingRecordWins(t *testing.T) {
	dupes := []Existing{
		{ID: "old", Email: "same@example.com"},
		{ID: "newer", Email: "same@example.com"},
	}
	recs := []mapping.Record{{schema.FieldEmail: "same@example.com"}}
	matches := Detect(recs, dupes)
	require.Len(t, matches, 1)
	assert.Equal(t, "old", matches[0].ExistingID)
}
