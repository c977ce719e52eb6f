package importer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetdesk/driver-import/internal/mapping"
	"github.com/fleetdesk/driver-import/internal/schema"
	"github.com/fleetdesk/driver-import/internal/validate"
)

type fakeStore struct {
	created []mapping.Record
	failAt  int // 0-based ordinal to fail at, -1 never
}

func (f *fakeStore) CreateDriver(_ context.Context, rec mapping.Record, _ Actor) (string, error) {
	if f.failAt >= 0 && len(f.created) == f.failAt {
		return "", errors.New("store rejected record")
	}
	f.created = append(f.created, rec)
	return fmt.Sprintf("drv-%d", len(f.created)), nil
}

func record(email string) mapping.Record {
	return mapping.Record{
		schema.FieldFirstName: "Maria",
		schema.FieldEmail:     email,
		schema.FieldHireDate:  "2024-01-15",
	}
}

func TestRunCommitsSequentially(t *testing.T) {
	st := &fakeStore{failAt: -1}
	done := false
	imp := New(st, nil, validate.Options{}, func(r Result) { done = true })

	res, err := imp.Run(context.Background(), []mapping.Record{record("a@x.io"), record("b@x.io")}, Actor{OrgID: "org"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Committed)
	assert.Equal(t, []string{"drv-1", "drv-2"}, res.CreatedIDs)
	assert.True(t, done, "completion callback must fire")
	require.Len(t, st.created, 2)
	assert.Equal(t, "a@x.io", st.created[0][schema.FieldEmail])
}

func TestRunAbortsOnCommitError(t *testing.T) {
	st := &fakeStore{failAt: 1}
	called := false
	imp := New(st, nil, validate.Options{}, func(Result) { called = true })

	ready := []mapping.Record{record("a@x.io"), record("b@x.io"), record("c@x.io")}
	res, err := imp.Run(context.Background(), ready, Actor{})

	var ce *CommitError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 1, ce.RowOrdinal)
	assert.Equal(t, 1, ce.Committed)
	assert.Equal(t, 1, res.Committed)
	// row 3 is never attempted
	assert.Len(t, st.created, 1)
	assert.False(t, called, "completion callback must not fire on failure")
}

func TestRunCanonicalizesDatesBeforeCommit(t *testing.T) {
	st := &fakeStore{failAt: -1}
	imp := New(st, nil, validate.Options{}, nil)

	rec := record("a@x.io")
	rec[schema.FieldHireDate] = "01/15/2024"
	rec[schema.FieldLicenseExpiration] = "2027-06-30" // already canonical: untouched
	rec[schema.FieldTerminationDate] = ""             // empty stays empty

	_, err := imp.Run(context.Background(), []mapping.Record{rec}, Actor{})
	require.NoError(t, err)
	require.Len(t, st.created, 1)
	got := st.created[0]
	assert.Equal(t, "2024-01-15", got[schema.FieldHireDate])
	assert.Equal(t, "2027-06-30", got[schema.FieldLicenseExpiration])
	assert.Equal(t, "", got[schema.FieldTerminationDate])
	// non-date fields pass through untouched
	assert.Equal(t, "Maria", got[schema.FieldFirstName])
}

func TestRunEmptyReadySet(t *testing.T) {
	st := &fakeStore{failAt: -1}
	imp := New(st, nil, validate.Options{}, nil)
	res, err := imp.Run(context.Background(), nil, Actor{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Committed)
}
