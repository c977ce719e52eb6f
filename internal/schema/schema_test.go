package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogShape(t *testing.T) {
	assert.Len(t, All(), 26)
	assert.Len(t, Required(), 11)
	assert.Len(t, DateFields(), 8)
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"First Name":          "firstname",
		" license_expiration": "licenseexpiration",
		"LICENSE-EXPIRATION":  "licenseexpiration",
		"E-mail Address!":     "emailaddress",
		"  ":                  "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestMatchSynonyms(t *testing.T) {
	cases := map[string]Field{
		"fname":              FieldFirstName,
		"First Name":         FieldFirstName,
		"given_name":         FieldFirstName,
		"Surname":            FieldLastName,
		"E-Mail Address":     FieldEmail,
		"CDL Number":         FieldLicenseNumber,
		"license expiration": FieldLicenseExpiration,
		"DOB":                FieldDateOfBirth,
		"Date Of Hire":       FieldHireDate,
		"zip code":           FieldZip,
		"Emergency Phone":    FieldEmergencyContactPhone,
	}
	for in, want := range cases {
		assert.Equal(t, want, Match(in), "header %q", in)
	}
}

func TestMatchUnknownHeaderIgnored(t *testing.T) {
	for _, h := range []string{"Favorite Color", "Truck", "", "notes2"} {
		assert.Equal(t, Ignore, Match(h), "header %q", h)
	}
}

func TestLookup(t *testing.T) {
	info, ok := Lookup(FieldEmail)
	assert.True(t, ok)
	assert.True(t, info.Required)
	assert.Equal(t, KindEmail, info.Kind)

	_, ok = Lookup(Ignore)
	assert.False(t, ok)
	_, ok = Lookup(Field("madeUp"))
	assert.False(t, ok)
}
