// Package store is the sqlite-backed destination driver store: the reference
// read duplicate detection keys on, and the create call the importer commits
// through.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/fleetdesk/driver-import/internal/dedupe"
	"github.com/fleetdesk/driver-import/internal/importer"
	"github.com/fleetdesk/driver-import/internal/mapping"
	"github.com/fleetdesk/driver-import/internal/schema"
)

// columns maps destination fields to their drivers-table columns, in
// canonical field order.
var columns = []struct {
	Field  schema.Field
	Column string
}{
	{schema.FieldFirstName, "first_name"},
	{schema.FieldMiddleName, "middle_name"},
	{schema.FieldLastName, "last_name"},
	{schema.FieldEmail, "email"},
	{schema.FieldPhone, "phone"},
	{schema.FieldDateOfBirth, "date_of_birth"},
	{schema.FieldLicenseNumber, "license_number"},
	{schema.FieldLicenseState, "license_state"},
	{schema.FieldLicenseExpiration, "license_expiration"},
	{schema.FieldLicenseClass, "license_class"},
	{schema.FieldHireDate, "hire_date"},
	{schema.FieldEmploymentStatus, "employment_status"},
	{schema.FieldEmploymentType, "employment_type"},
	{schema.FieldTerminationDate, "termination_date"},
	{schema.FieldMedicalCardExpiration, "medical_card_expiration"},
	{schema.FieldPhysicalDueDate, "physical_due_date"},
	{schema.FieldDrugTestDate, "drug_test_date"},
	{schema.FieldMVRDueDate, "mvr_due_date"},
	{schema.FieldAddressLine1, "address_line1"},
	{schema.FieldAddressLine2, "address_line2"},
	{schema.FieldCity, "city"},
	{schema.FieldState, "state"},
	{schema.FieldZip, "zip"},
	{schema.FieldEmergencyContactName, "emergency_contact_name"},
	{schema.FieldEmergencyContactPhone, "emergency_contact_phone"},
	{schema.FieldEmergencyContactRelation, "emergency_contact_relation"},
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS drivers (
	id                         TEXT PRIMARY KEY,
	org_id                     TEXT NOT NULL,
	created_by                 TEXT NOT NULL,
	created_at                 TEXT NOT NULL,
	deleted_at                 TEXT,
	first_name                 TEXT NOT NULL,
	middle_name                TEXT,
	last_name                  TEXT NOT NULL,
	email                      TEXT NOT NULL,
	phone                      TEXT NOT NULL,
	date_of_birth              TEXT,
	license_number             TEXT NOT NULL,
	license_state              TEXT NOT NULL,
	license_expiration         TEXT NOT NULL,
	license_class              TEXT NOT NULL,
	hire_date                  TEXT NOT NULL,
	employment_status          TEXT NOT NULL,
	employment_type            TEXT NOT NULL,
	termination_date           TEXT,
	medical_card_expiration    TEXT,
	physical_due_date          TEXT,
	drug_test_date             TEXT,
	mvr_due_date               TEXT,
	address_line1              TEXT,
	address_line2              TEXT,
	city                       TEXT,
	state                      TEXT,
	zip                        TEXT,
	emergency_contact_name     TEXT,
	emergency_contact_phone    TEXT,
	emergency_contact_relation TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS drivers_org_email ON drivers(org_id, email);
`

// DriverStore wraps the sqlite connection.
type DriverStore struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens (creating if needed) the sqlite database at path.
func Open(path string, log *zap.Logger) (*DriverStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db %s: %w", path, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply drivers schema: %w", err)
	}
	return &DriverStore{db: db, log: log}, nil
}

func (s *DriverStore) Close() error { return s.db.Close() }

// ListAll returns the identity slices of every stored driver for an org,
// soft-deleted rows included. Fetched once per import session.
func (s *DriverStore) ListAll(ctx context.Context, orgID string) ([]dedupe.Existing, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, license_number FROM drivers WHERE org_id = ?`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()

	var out []dedupe.Existing
	for rows.Next() {
		var e dedupe.Existing
		if err := rows.Scan(&e.ID, &e.Email, &e.LicenseNumber); err != nil {
			return nil, fmt.Errorf("scan driver row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CreateDriver inserts one fully-normalized record and returns its id. The
// unique (org_id, email) index makes it fail fast on a collision the session
// missed.
func (s *DriverStore) CreateDriver(ctx context.Context, rec mapping.Record, actor importer.Actor) (string, error) {
	cols := []string{"id", "org_id", "created_by", "created_at"}
	args := []any{uuid.NewString(), actor.OrgID, actor.UserID, time.Now().UTC().Format(time.RFC3339)}
	for _, c := range columns {
		cols = append(cols, c.Column)
		args = append(args, rec[c.Field])
	}

	q := fmt.Sprintf("INSERT INTO drivers (%s) VALUES (%s)",
		strings.Join(cols, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "))
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return "", fmt.Errorf("create driver: %w", err)
	}

	id := args[0].(string)
	s.log.Debug("driver created", zap.String("id", id), zap.String("org", actor.OrgID))
	return id, nil
}
