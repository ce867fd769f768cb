package review

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/savegress/vaxtriage/pkg/models"
)

// Tracker manages the durable reviewed/unreviewed disposition per record.
// The store is the sole source of truth: every read goes to it and
// SetReviewed is the single write path for both the table checkbox and
// the guidance-panel button.
type Tracker struct {
	store Store
	now   func() time.Time
}

// NewTracker creates a tracker over the given store.
func NewTracker(store Store) *Tracker {
	return &Tracker{
		store: store,
		now:   time.Now,
	}
}

// IsReviewed reports whether a record is currently marked reviewed.
// Unseen ids default to false.
func (t *Tracker) IsReviewed(ctx context.Context, docID string) (bool, error) {
	state, err := t.store.Get(ctx, docID)
	if err != nil {
		return false, err
	}
	return state != nil && state.Reviewed, nil
}

// SetReviewed writes the disposition for a record. Marking reviewed
// stamps the current time; marking unreviewed clears the timestamp. Each
// call appends an audit event.
func (t *Tracker) SetReviewed(ctx context.Context, docID string, reviewed bool) error {
	state := &models.ReviewState{
		DocID:    docID,
		Reviewed: reviewed,
	}
	if reviewed {
		ts := t.now()
		state.ReviewedAt = &ts
	}

	if err := t.store.Set(ctx, state); err != nil {
		return err
	}

	return t.store.AppendAudit(ctx, &AuditEvent{
		ID:         uuid.New().String(),
		DocID:      docID,
		Reviewed:   reviewed,
		RecordedAt: t.now(),
	})
}

// ReviewedTimestamp returns when a record was marked reviewed, or nil
// when it is unreviewed or unseen.
func (t *Tracker) ReviewedTimestamp(ctx context.Context, docID string) (*time.Time, error) {
	state, err := t.store.Get(ctx, docID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, nil
	}
	return state.ReviewedAt, nil
}

// State returns the full stored state for a record, with the unseen
// default applied.
func (t *Tracker) State(ctx context.Context, docID string) (models.ReviewState, error) {
	state, err := t.store.Get(ctx, docID)
	if err != nil {
		return models.ReviewState{}, err
	}
	if state == nil {
		return models.ReviewState{DocID: docID}, nil
	}
	return *state, nil
}

// History returns the audit trail for a record, oldest first.
func (t *Tracker) History(ctx context.Context, docID string) ([]*AuditEvent, error) {
	return t.store.ListAudit(ctx, docID)
}
