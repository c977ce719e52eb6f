// Package schema defines the fixed destination layout a driver import is
// reconciled against: the 26-field driver record, which fields are required,
// which carry dates, and the synonym table used to match arbitrary source
// headers onto it.
package schema

// Field is one destination column of the driver record.
type Field string

// Ignore is the sentinel destination for source columns that should not be
// imported. It is not part of the driver schema.
const Ignore Field = "ignore"

const (
	FieldFirstName   Field = "firstName"
	FieldMiddleName  Field = "middleName"
	FieldLastName    Field = "lastName"
	FieldEmail       Field = "email"
	FieldPhone       Field = "phone"
	FieldDateOfBirth Field = "dateOfBirth"

	FieldLicenseNumber     Field = "licenseNumber"
	FieldLicenseState      Field = "licenseState"
	FieldLicenseExpiration Field = "licenseExpiration"
	FieldLicenseClass      Field = "licenseClass"

	FieldHireDate              Field = "hireDate"
	FieldEmploymentStatus      Field = "employmentStatus"
	FieldEmploymentType        Field = "employmentType"
	FieldTerminationDate       Field = "terminationDate"
	FieldMedicalCardExpiration Field = "medicalCardExpiration"
	FieldPhysicalDueDate       Field = "physicalDueDate"
	FieldDrugTestDate          Field = "drugTestDate"
	FieldMVRDueDate            Field = "mvrDueDate"

	FieldAddressLine1 Field = "addressLine1"
	FieldAddressLine2 Field = "addressLine2"
	FieldCity         Field = "city"
	FieldState        Field = "state"
	FieldZip          Field = "zip"

	FieldEmergencyContactName     Field = "emergencyContactName"
	FieldEmergencyContactPhone    Field = "emergencyContactPhone"
	FieldEmergencyContactRelation Field = "emergencyContactRelation"
)

// Kind selects which validation rule applies to a field's raw value.
type Kind int

const (
	KindText Kind = iota
	KindEmail
	KindPhone
	KindDate
)

// Info describes one destination field.
type Info struct {
	Field    Field
	Label    string // display label, also the template column header
	Required bool
	Kind     Kind
	Example  string // illustrative value for the template's example row
}

/* ───────── canonical 26-column layout (keep order) ───────── */

var catalog = []Info{
	{FieldFirstName, "First Name", true, KindText, "Maria"},
	{FieldMiddleName, "Middle Name", false, KindText, "Elena"},
	{FieldLastName, "Last Name", true, KindText, "Santos"},
	{FieldEmail, "Email", true, KindEmail, "maria.santos@example.com"},
	{FieldPhone, "Phone", true, KindPhone, "909-213-6870"},
	{FieldDateOfBirth, "Date of Birth", false, KindDate, "1988-04-17"},
	{FieldLicenseNumber, "License Number", true, KindText, "D1234567"},
	{FieldLicenseState, "License State", true, KindText, "CA"},
	{FieldLicenseExpiration, "License Expiration", true, KindDate, "2027-06-30"},
	{FieldLicenseClass, "License Class", true, KindText, "A"},
	{FieldHireDate, "Hire Date", true, KindDate, "2024-01-15"},
	{FieldEmploymentStatus, "Employment Status", true, KindText, "active"},
	{FieldEmploymentType, "Employment Type", true, KindText, "company_driver"},
	{FieldTerminationDate, "Termination Date", false, KindDate, ""},
	{FieldMedicalCardExpiration, "Medical Card Expiration", false, KindDate, "2026-11-02"},
	{FieldPhysicalDueDate, "Physical Due Date", false, KindDate, "2026-11-02"},
	{FieldDrugTestDate, "Drug Test Date", false, KindDate, "2025-08-20"},
	{FieldMVRDueDate, "MVR Due Date", false, KindDate, "2026-01-15"},
	{FieldAddressLine1, "Address Line 1", false, KindText, "4821 Foothill Blvd"},
	{FieldAddressLine2, "Address Line 2", false, KindText, "Apt 12"},
	{FieldCity, "City", false, KindText, "Fontana"},
	{FieldState, "State", false, KindText, "CA"},
	{FieldZip, "Zip", false, KindText, "92335"},
	{FieldEmergencyContactName, "Emergency Contact Name", false, KindText, "Luis Santos"},
	{FieldEmergencyContactPhone, "Emergency Contact Phone", false, KindPhone, "909-213-6871"},
	{FieldEmergencyContactRelation, "Emergency Contact Relation", false, KindText, "spouse"},
}

var byField = func() map[Field]Info {
	m := make(map[Field]Info, len(catalog))
	for _, info := range catalog {
		m[info.Field] = info
	}
	return m
}()

// All returns the destination fields in canonical column order.
func All() []Info {
	out := make([]Info, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for f. The second result is false for
// unknown fields and for Ignore.
func Lookup(f Field) (Info, bool) {
	info, ok := byField[f]
	return info, ok
}

// Required returns the required fields in canonical order.
func Required() []Field {
	var out []Field
	for _, info := range catalog {
		if info.Required {
			out = append(out, info.Field)
		}
	}
	return out
}

// DateFields returns the fields validated and normalized as dates.
func DateFields() []Field {
	var out []Field
	for _, info := range catalog {
		if info.Kind == KindDate {
			out = append(out, info.Field)
		}
	}
	return out
}

// IsDate reports whether f carries a date value.
func IsDate(f Field) bool {
	info, ok := byField[f]
	return ok && info.Kind == KindDate
}
