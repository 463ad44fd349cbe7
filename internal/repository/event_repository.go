package repository

import (
	"context"
	"sync"

	"github.com/helixflow/helixflow-api/internal/models"
)

// EventRepository holds the authoritative in-memory event collection.
// Insertion order is preserved; events are never deleted. All methods are
// safe for concurrent use.
type EventRepository struct {
	mu     sync.RWMutex
	events []models.Event
}

// NewEventRepository builds an event store seeded with the given events.
func NewEventRepository(seed []models.Event) *EventRepository {
	events := make([]models.Event, len(seed))
	copy(events, seed)
	return &EventRepository{events: events}
}

// List returns a snapshot of all events in insertion order.
func (r *EventRepository) List(ctx context.Context) ([]models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Event, len(r.events))
	for i, e := range r.events {
		out[i] = cloneEvent(e)
	}
	return out, nil
}

// GetByID returns a snapshot of a single event.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e := r.find(id)
	if e == nil {
		return nil, ErrNotFound
	}
	out := cloneEvent(*e)
	return &out, nil
}

// Create appends the event without any conflict enforcement.
func (r *EventRepository) Create(ctx context.Context, event models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, cloneEvent(event))
	return nil
}

// CreateIfNoConflict appends the event only when its venue slot is free,
// holding the write lock across check and insert so concurrent requests
// cannot both win the same slot. Returns ErrConflict when the slot is taken.
func (r *EventRepository) CreateIfNoConflict(ctx context.Context, event models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hasConflictLocked(event.VenueID, event.Date, event.StartTime, event.EndTime) {
		return ErrConflict
	}
	r.events = append(r.events, cloneEvent(event))
	return nil
}

// HasConflict reports whether another non-rejected event occupies an
// overlapping slot on the same venue and date. Intervals are half-open:
// back-to-back bookings do not conflict.
func (r *EventRepository) HasConflict(ctx context.Context, venueID, date, start, end string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hasConflictLocked(venueID, date, start, end), nil
}

// UpdateStatus overwrites the event status. Terminal statuses never change
// again; attempting to do so returns ErrTerminal. The updated snapshot is
// returned on success.
func (r *EventRepository) UpdateStatus(ctx context.Context, id string, status models.ApprovalStatus) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.find(id)
	if e == nil {
		return nil, ErrNotFound
	}
	if e.Status.Terminal() {
		return nil, ErrTerminal
	}
	e.Status = status
	out := cloneEvent(*e)
	return &out, nil
}

// TransitionStatus performs a compare-and-swap from the expected stage to
// the next one. ErrStageMismatch signals the event moved on (or never was)
// at the expected stage; ErrTerminal signals it can no longer move at all.
func (r *EventRepository) TransitionStatus(ctx context.Context, id string, expect, next models.ApprovalStatus) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.find(id)
	if e == nil {
		return nil, ErrNotFound
	}
	if e.Status.Terminal() {
		return nil, ErrTerminal
	}
	if e.Status != expect {
		return nil, ErrStageMismatch
	}
	e.Status = next
	out := cloneEvent(*e)
	return &out, nil
}

// AttachReport sets the report exactly once and forces the event into the
// final status. The caller decides the status policy; the store only
// guarantees single submission and existence.
func (r *EventRepository) AttachReport(ctx context.Context, id string, report models.EventReport, final models.ApprovalStatus) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.find(id)
	if e == nil {
		return nil, ErrNotFound
	}
	if e.Report != nil {
		return nil, ErrReportExists
	}
	rep := report
	e.Report = &rep
	e.Status = final
	out := cloneEvent(*e)
	return &out, nil
}

// UpdateReportStatus sets the review outcome on an already-submitted report.
func (r *EventRepository) UpdateReportStatus(ctx context.Context, id string, status models.ReportStatus) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.find(id)
	if e == nil {
		return nil, ErrNotFound
	}
	if e.Report == nil {
		return nil, ErrNotFound
	}
	e.Report.Status = status
	out := cloneEvent(*e)
	return &out, nil
}

func (r *EventRepository) find(id string) *models.Event {
	for i := range r.events {
		if r.events[i].ID == id {
			return &r.events[i]
		}
	}
	return nil
}

// Linear scan; fine at this scale. A per-venue/per-day index would be the
// next step if the collection grew.
func (r *EventRepository) hasConflictLocked(venueID, date, start, end string) bool {
	for i := range r.events {
		e := &r.events[i]
		if e.VenueID != venueID || e.Date != date || e.Status == models.StatusRejected {
			continue
		}
		if e.Overlaps(start, end) {
			return true
		}
	}
	return false
}

func cloneEvent(e models.Event) models.Event {
	out := e
	if e.Report != nil {
		rep := *e.Report
		rep.Photos = append([]string(nil), e.Report.Photos...)
		out.Report = &rep
	}
	return out
}
