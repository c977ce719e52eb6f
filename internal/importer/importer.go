// Package importer commits the ready record set to the driver store,
// sequentially and non-transactionally.
package importer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fleetdesk/driver-import/internal/mapping"
	"github.com/fleetdesk/driver-import/internal/schema"
	"github.com/fleetdesk/driver-import/internal/validate"
)

// Actor is the organization/actor context attached to every created record.
type Actor struct {
	OrgID  string `json:"orgId"`
	UserID string `json:"userId"`
}

// Creator is the destination store's create operation. It is expected to run
// its own validation and fail fast with an error.
type Creator interface {
	CreateDriver(ctx context.Context, rec mapping.Record, actor Actor) (string, error)
}

// CommitError reports a failed create call. Rows before RowOrdinal are
// already committed and are not rolled back.
type CommitError struct {
	RowOrdinal int // position within the ready set, 0-based
	Committed  int // rows successfully created before the failure
	Err        error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("import aborted at ready row %d (%d committed): %v", e.RowOrdinal, e.Committed, e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }

// Result reports a completed import.
type Result struct {
	Committed  int      `json:"committed"`
	CreatedIDs []string `json:"createdIds"`
}

// Importer drives the commit loop.
type Importer struct {
	store      Creator
	log        *zap.Logger
	opts       validate.Options
	onComplete func(Result)
}

// New builds an Importer. onComplete may be nil; it fires only when every
// ready row committed.
func New(store Creator, log *zap.Logger, opts validate.Options, onComplete func(Result)) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{store: store, log: log, opts: opts, onComplete: onComplete}
}

// Run commits ready records in order, one at a time. Each record's populated
// date fields are reformatted to YYYY-MM-DD immediately before its create
// call (a no-op for already-canonical values). The first failed create
// aborts the remainder; prior rows stay committed.
func (imp *Importer) Run(ctx context.Context, ready []mapping.Record, actor Actor) (*Result, error) {
	res := &Result{}
	for i, rec := range ready {
		normalized := canonicalizeDates(rec, imp.opts.DateOrder)
		id, err := imp.store.CreateDriver(ctx, normalized, actor)
		if err != nil {
			imp.log.Error("driver create failed, aborting remaining rows",
				zap.Int("readyRow", i),
				zap.Int("committed", res.Committed),
				zap.Error(err))
			return res, &CommitError{RowOrdinal: i, Committed: res.Committed, Err: err}
		}
		res.Committed++
		res.CreatedIDs = append(res.CreatedIDs, id)
	}
	imp.log.Info("import complete", zap.Int("committed", res.Committed))
	if imp.onComplete != nil {
		imp.onComplete(*res)
	}
	return res, nil
}

// canonicalizeDates copies rec with every populated date field rewritten to
// canonical form.
func canonicalizeDates(rec mapping.Record, order validate.DateOrder) mapping.Record {
	out := make(mapping.Record, len(rec))
	for f, v := range rec {
		if v != "" && schema.IsDate(f) {
			v = validate.CanonicalDate(v, order)
		}
		out[f] = v
	}
	return out
}
