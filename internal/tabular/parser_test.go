package tabular

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDelimited(t *testing.T) {
	content := "First Name,Last Name,Email\n" +
		"\"Maria\",Santos,maria@example.com\r\n" +
		"\n" +
		"'Luis',Ortega\n"

	table, err := ParseDelimited(content)
	require.NoError(t, err)
	assert.Equal(t, []string{"First Name", "Last Name", "Email"}, table.Headers)
	require.Len(t, table.Rows, 2)

	assert.Equal(t, "Maria", table.Rows[0]["First Name"])
	assert.Equal(t, "maria@example.com", table.Rows[0]["Email"])

	// short row: trailing column absent, reads as empty
	assert.Equal(t, "Luis", table.Rows[1]["First Name"])
	assert.Equal(t, "", table.Rows[1]["Email"])
}

func TestParseDelimitedEmptyFile(t *testing.T) {
	for _, content := range []string{"", "\n\n", "   \n\t\n"} {
		_, err := ParseDelimited(content)
		assert.ErrorIs(t, err, ErrEmptyFile, "content %q", content)
	}
}

func TestParseDelimitedHeaderOnly(t *testing.T) {
	_, err := ParseDelimited("First Name,Last Name\n")
	assert.ErrorIs(t, err, ErrNoDataRows)
}

func TestTemplateShape(t *testing.T) {
	headers := TemplateHeaders()
	assert.Len(t, headers, 26)
	assert.Equal(t, "First Name", headers[0])
	assert.Len(t, TemplateExampleRow(), 26)
}

func TestTemplateCSVRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplateCSV(&buf))

	table, err := ParseDelimited(buf.String())
	require.NoError(t, err)
	assert.Equal(t, TemplateHeaders(), table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "maria.santos@example.com", table.Rows[0]["Email"])
}

func TestParseWorkbook(t *testing.T) {
	x, err := TemplateWorkbook()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, x.Write(&buf))

	table, err := ParseWorkbook(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, TemplateHeaders(), table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Santos", table.Rows[0]["Last Name"])
}
