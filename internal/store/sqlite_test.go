package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetdesk/driver-import/internal/importer"
	"github.com/fleetdesk/driver-import/internal/mapping"
	"github.com/fleetdesk/driver-import/internal/schema"
)

func openTestStore(t *testing.T) *DriverStore {
	t.Helper()
	s, err := Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(email, license string) mapping.Record {
	return mapping.Record{
		schema.FieldFirstName:         "Maria",
		schema.FieldLastName:          "Santos",
		schema.FieldEmail:             email,
		schema.FieldPhone:             "909-213-6870",
		schema.FieldLicenseNumber:     license,
		schema.FieldLicenseState:      "CA",
		schema.FieldLicenseExpiration: "2027-06-30",
		schema.FieldLicenseClass:      "A",
		schema.FieldHireDate:          "2024-01-15",
		schema.FieldEmploymentStatus:  "active",
		schema.FieldEmploymentType:    "company_driver",
	}
}

func TestCreateAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	actor := importer.Actor{OrgID: "org-1", UserID: "tester"}

	id, err := s.CreateDriver(ctx, testRecord("maria@example.com", "D1234567"), actor)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	existing, err := s.ListAll(ctx, "org-1")
	require.NoError(t, err)
	require.Len(t, existing, 1)
	assert.Equal(t, id, existing[0].ID)
	assert.Equal(t, "maria@example.com", existing[0].Email)
	assert.Equal(t, "D1234567", existing[0].LicenseNumber)

	// other orgs see nothing
	other, err := s.ListAll(ctx, "org-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestCreateDuplicateEmailFailsFast(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	actor := importer.Actor{OrgID: "org-1", UserID: "tester"}

	_, err := s.CreateDriver(ctx, testRecord("maria@example.com", "D1"), actor)
	require.NoError(t, err)
	_, err = s.CreateDriver(ctx, testRecord("maria@example.com", "D2"), actor)
	assert.Error(t, err)
}
