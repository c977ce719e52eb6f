package schema

import (
	"regexp"
	"strings"
)

/* ───────── column-name synonyms (normalized) ───────── */

// synonyms maps normalized source headers to destination fields. Keys must be
// in Normalize form: lowercase, alphanumerics only.
var synonyms = map[string]Field{
	// identity
	"firstname": FieldFirstName, "fname": FieldFirstName, "givenname": FieldFirstName,
	"first":      FieldFirstName,
	"middlename": FieldMiddleName, "mname": FieldMiddleName, "middle": FieldMiddleName,
	"lastname": FieldLastName, "lname": FieldLastName, "surname": FieldLastName,
	"familyname": FieldLastName, "last": FieldLastName,
	"email": FieldEmail, "emailaddress": FieldEmail, "mail": FieldEmail,
	"driveremail": FieldEmail,
	"phone":       FieldPhone, "phonenumber": FieldPhone, "mobile": FieldPhone,
	"cell": FieldPhone, "cellphone": FieldPhone, "driverphone": FieldPhone,
	"dateofbirth": FieldDateOfBirth, "dob": FieldDateOfBirth, "birthdate": FieldDateOfBirth,
	"birthday": FieldDateOfBirth,

	// license
	"licensenumber": FieldLicenseNumber, "license": FieldLicenseNumber,
	"licenseno": FieldLicenseNumber, "cdl": FieldLicenseNumber,
	"cdlnumber": FieldLicenseNumber, "dlnumber": FieldLicenseNumber,
	"licensestate": FieldLicenseState, "cdlstate": FieldLicenseState,
	"dlstate":           FieldLicenseState,
	"licenseexpiration": FieldLicenseExpiration, "licenseexpiry": FieldLicenseExpiration,
	"licenseexpirationdate": FieldLicenseExpiration, "cdlexpiration": FieldLicenseExpiration,
	"licenseclass": FieldLicenseClass, "cdlclass": FieldLicenseClass,
	"class": FieldLicenseClass,

	// employment
	"hiredate": FieldHireDate, "dateofhire": FieldHireDate, "startdate": FieldHireDate,
	"employmentstatus": FieldEmploymentStatus, "status": FieldEmploymentStatus,
	"employmenttype": FieldEmploymentType, "drivertype": FieldEmploymentType,
	"type":            FieldEmploymentType,
	"terminationdate": FieldTerminationDate, "enddate": FieldTerminationDate,
	"medicalcardexpiration": FieldMedicalCardExpiration, "medcardexpiration": FieldMedicalCardExpiration,
	"medcardexpiry": FieldMedicalCardExpiration, "dotmedicalexpiration": FieldMedicalCardExpiration,
	"physicalduedate": FieldPhysicalDueDate, "physicaldate": FieldPhysicalDueDate,
	"dotphysicaldue": FieldPhysicalDueDate,
	"drugtestdate":   FieldDrugTestDate, "lastdrugtest": FieldDrugTestDate,
	"mvrduedate": FieldMVRDueDate, "mvrdate": FieldMVRDueDate, "mvrdue": FieldMVRDueDate,

	// address
	"addressline1": FieldAddressLine1, "address1": FieldAddressLine1,
	"address": FieldAddressLine1, "street": FieldAddressLine1,
	"streetaddress": FieldAddressLine1,
	"addressline2":  FieldAddressLine2, "address2": FieldAddressLine2,
	"apt": FieldAddressLine2, "unit": FieldAddressLine2,
	"city": FieldCity, "town": FieldCity,
	"state": FieldState, "province": FieldState,
	"zip": FieldZip, "zipcode": FieldZip, "postalcode": FieldZip, "postcode": FieldZip,

	// emergency contact
	"emergencycontactname": FieldEmergencyContactName, "emergencycontact": FieldEmergencyContactName,
	"emergencyname":         FieldEmergencyContactName,
	"emergencycontactphone": FieldEmergencyContactPhone, "emergencyphone": FieldEmergencyContactPhone,
	"emergencycontactrelation": FieldEmergencyContactRelation,
	"emergencyrelation":        FieldEmergencyContactRelation, "relationship": FieldEmergencyContactRelation,
}

var nonAlnumRE = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize lowercases a header and strips every non-alphanumeric character,
// so "License  Expiration", "license_expiration" and "LICENSE-EXPIRATION" all
// collapse to the same key.
func Normalize(header string) string {
	return nonAlnumRE.ReplaceAllString(strings.ToLower(header), "")
}

// Match resolves a raw source header against the synonym table. Headers not
// in the table map to Ignore.
func Match(header string) Field {
	if f, ok := synonyms[Normalize(header)]; ok {
		return f
	}
	return Ignore
}
