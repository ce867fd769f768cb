package review

import (
	"context"
	"time"

	"github.com/savegress/vaxtriage/pkg/models"
)

// Store is the durable keyed side-table holding reviewer dispositions.
// Implementations must make writes visible to subsequent reads in the
// same process immediately.
type Store interface {
	// Get returns the stored state for a record id, or nil when the id
	// has never been written.
	Get(ctx context.Context, docID string) (*models.ReviewState, error)

	// Set writes the full state for a record id, replacing any previous
	// entry.
	Set(ctx context.Context, state *models.ReviewState) error

	// Delete removes the entry for a record id. Deleting an unseen id is
	// not an error.
	Delete(ctx context.Context, docID string) error

	// AppendAudit records one disposition change in the audit trail.
	AppendAudit(ctx context.Context, event *AuditEvent) error

	// ListAudit returns the audit trail for a record id, oldest first.
	ListAudit(ctx context.Context, docID string) ([]*AuditEvent, error)

	// Close releases the underlying resources.
	Close() error
}

// AuditEvent is one immutable entry in the review audit trail.
type AuditEvent struct {
	ID         string    `json:"id"`
	DocID      string    `json:"doc_id"`
	Reviewed   bool      `json:"reviewed"`
	RecordedAt time.Time `json:"recorded_at"`
}
