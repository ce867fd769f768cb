package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/savegress/vaxtriage/internal/pipeline"
	"github.com/savegress/vaxtriage/internal/quality"
	"github.com/savegress/vaxtriage/internal/review"
	"github.com/savegress/vaxtriage/pkg/models"
)

// ErrRecordNotFound is returned for ids absent from the loaded
// collection.
var ErrRecordNotFound = fmt.Errorf("record not found")

// Engine owns the loaded record collection and the current filter state,
// and derives the display collection from them. Derivation is pure: each
// recomputation reads a snapshot of the filter state and the review store
// and builds a fresh output, so a cancelled pending run leaves nothing
// half-written.
type Engine struct {
	records []models.Record
	tracker *review.Tracker

	mu           sync.RWMutex
	filter       models.FilterState
	generation   int
	timer        *time.Timer
	debounce     time.Duration
	dateFiltered []models.Record
	display      []models.ClassifiedRecord
	summary      models.Summary
}

// New creates an engine over an already-loaded record collection. A
// non-positive debounce applies every filter change synchronously.
func New(records []models.Record, tracker *review.Tracker, debounce time.Duration) *Engine {
	e := &Engine{
		records:  records,
		tracker:  tracker,
		debounce: debounce,
	}
	e.mu.Lock()
	e.recomputeLocked(context.Background())
	e.mu.Unlock()
	return e
}

// SetFilter replaces the filter state and schedules a recomputation.
// Rapid successive calls coalesce: only the most recent state is applied,
// after the debounce interval.
func (e *Engine) SetFilter(fs models.FilterState) error {
	if err := fs.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.filter = fs
	e.generation++

	if e.debounce <= 0 {
		e.recomputeLocked(context.Background())
		return nil
	}

	gen := e.generation
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.debounce, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if gen != e.generation {
			return
		}
		e.recomputeLocked(context.Background())
	})
	return nil
}

// Flush cancels any pending debounced run and recomputes synchronously.
func (e *Engine) Flush(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generation++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.recomputeLocked(ctx)
}

// recomputeLocked re-runs the whole filter chain and rebuilds the cached
// display collection. Callers must hold e.mu.
func (e *Engine) recomputeLocked(ctx context.Context) {
	e.dateFiltered = pipeline.DateRange(e.records, e.filter.From, e.filter.To)
	e.summary = pipeline.Summarize(e.dateFiltered)

	states := make(map[string]models.ReviewState, len(e.dateFiltered))
	for _, r := range e.dateFiltered {
		st, err := e.tracker.State(ctx, r.DocID)
		if err != nil {
			st = models.ReviewState{DocID: r.DocID}
		}
		states[r.DocID] = st
	}

	narrowed := pipeline.Display(e.records, e.filter, func(docID string) bool {
		return states[docID].Reviewed
	})

	display := make([]models.ClassifiedRecord, 0, len(narrowed))
	for _, r := range narrowed {
		st := states[r.DocID]
		display = append(display, models.ClassifiedRecord{
			Record:     r,
			Severity:   quality.SeverityOf(r),
			Risk:       quality.RiskClass(r),
			Readiness:  quality.ComputeReadiness(r),
			Reviewed:   st.Reviewed,
			ReviewedAt: st.ReviewedAt,
		})
	}
	e.display = display
}

// Filter returns the current filter state.
func (e *Engine) Filter() models.FilterState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.filter
}

// Display returns the current display collection snapshot.
func (e *Engine) Display() []models.ClassifiedRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]models.ClassifiedRecord, len(e.display))
	copy(out, e.display)
	return out
}

// Summary returns the severity breakdown of the date-filtered collection.
func (e *Engine) Summary() models.Summary {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.summary
}

// DateFiltered returns the stage-one collection, which is what exports
// serialize regardless of the narrower display filters.
func (e *Engine) DateFiltered() []models.Record {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]models.Record, len(e.dateFiltered))
	copy(out, e.dateFiltered)
	return out
}

// Record returns the loaded record for an id.
func (e *Engine) Record(docID string) (models.Record, error) {
	for _, r := range e.records {
		if r.DocID == docID {
			return r, nil
		}
	}
	return models.Record{}, ErrRecordNotFound
}

// Advisories returns the ordered documentation gaps for a record.
func (e *Engine) Advisories(docID string) ([]models.Advisory, error) {
	r, err := e.Record(docID)
	if err != nil {
		return nil, err
	}
	return quality.Advisories(r), nil
}

// ToggleReview writes the reviewed disposition for a record and
// recomputes synchronously so every consumer of the display collection
// sees the new state on its next read.
func (e *Engine) ToggleReview(ctx context.Context, docID string, reviewed bool) error {
	if _, err := e.Record(docID); err != nil {
		return err
	}
	if err := e.tracker.SetReviewed(ctx, docID, reviewed); err != nil {
		return err
	}
	e.Flush(ctx)
	return nil
}

// Tracker exposes the review tracker for read paths that need the stored
// timestamp alongside the disposition.
func (e *Engine) Tracker() *review.Tracker {
	return e.tracker
}
