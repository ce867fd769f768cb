package review

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/savegress/vaxtriage/pkg/models"
)

// SQLiteStore is the durable Store backend. Dispositions survive process
// restarts; the audit trail is append-only.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens (or creates) the review database under dataPath.
func NewSQLiteStore(dataPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataPath, "review.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS review_state (
		doc_id TEXT PRIMARY KEY,
		reviewed INTEGER NOT NULL,
		reviewed_at TEXT
	);

	CREATE TABLE IF NOT EXISTS review_audit (
		id TEXT PRIMARY KEY,
		doc_id TEXT NOT NULL,
		reviewed INTEGER NOT NULL,
		recorded_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_review_audit_doc ON review_audit(doc_id, recorded_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Get returns the stored state for a record id, or nil when unseen.
func (s *SQLiteStore) Get(ctx context.Context, docID string) (*models.ReviewState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var reviewed int
	var reviewedAt sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT reviewed, reviewed_at FROM review_state WHERE doc_id = ?`,
		docID).Scan(&reviewed, &reviewedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &models.ReviewState{
		DocID:    docID,
		Reviewed: reviewed != 0,
	}
	if reviewedAt.Valid && reviewedAt.String != "" {
		ts, err := time.Parse(time.RFC3339Nano, reviewedAt.String)
		if err != nil {
			return nil, fmt.Errorf("corrupt reviewed_at for %s: %w", docID, err)
		}
		state.ReviewedAt = &ts
	}
	return state, nil
}

// Set writes the full state for a record id, replacing any previous row.
func (s *SQLiteStore) Set(ctx context.Context, state *models.ReviewState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var reviewedAt interface{}
	if state.ReviewedAt != nil {
		reviewedAt = state.ReviewedAt.Format(time.RFC3339Nano)
	}

	reviewed := 0
	if state.Reviewed {
		reviewed = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO review_state (doc_id, reviewed, reviewed_at)
		VALUES (?, ?, ?)
		ON CONFLICT(doc_id) DO UPDATE SET
			reviewed = excluded.reviewed,
			reviewed_at = excluded.reviewed_at
	`, state.DocID, reviewed, reviewedAt)
	return err
}

// Delete removes the entry for a record id.
func (s *SQLiteStore) Delete(ctx context.Context, docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM review_state WHERE doc_id = ?`, docID)
	return err
}

// AppendAudit records one disposition change.
func (s *SQLiteStore) AppendAudit(ctx context.Context, event *AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reviewed := 0
	if event.Reviewed {
		reviewed = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO review_audit (id, doc_id, reviewed, recorded_at)
		VALUES (?, ?, ?, ?)
	`, event.ID, event.DocID, reviewed, event.RecordedAt.Format(time.RFC3339Nano))
	return err
}

// ListAudit returns the audit trail for a record id, oldest first.
func (s *SQLiteStore) ListAudit(ctx context.Context, docID string) ([]*AuditEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, doc_id, reviewed, recorded_at
		FROM review_audit WHERE doc_id = ?
		ORDER BY recorded_at
	`, docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*AuditEvent
	for rows.Next() {
		var ev AuditEvent
		var reviewed int
		var recordedAt string
		if err := rows.Scan(&ev.ID, &ev.DocID, &reviewed, &recordedAt); err != nil {
			return nil, err
		}
		ev.Reviewed = reviewed != 0
		ts, err := time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("corrupt recorded_at for %s: %w", docID, err)
		}
		ev.RecordedAt = ts
		events = append(events, &ev)
	}

	return events, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
