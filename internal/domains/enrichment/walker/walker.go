package walker

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	catalog "mediashelf-backend/internal/domains/catalog/model"
	emodel "mediashelf-backend/internal/domains/enrichment/model"
)

type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Entry is one shelf position to enrich, in caller-given order.
type Entry struct {
	Kind     catalog.Kind `json:"kind"`
	EntityID uuid.UUID    `json:"entity_id"`
}

// Fetcher is the slice of the detail cache the walker drives.
type Fetcher interface {
	Enrich(ctx context.Context, kind catalog.Kind, id uuid.UUID) error
}

// Walker enriches a bounded entry list sequentially, one provider round trip
// at a time. A rate-limit signal pauses the loop on the current entry; an
// explicit Resume retries that same entry. status is the only state machine:
// the loop re-reads it under the mutex every iteration, and resume wakes the
// loop through resumeCh rather than any polled flag.
type Walker struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	entries []Entry
	fetcher Fetcher

	mu        sync.Mutex
	status    Status
	processed int
	message   string

	resumeCh chan struct{}
	cancel   context.CancelFunc
	done     chan struct{}
}

// Snapshot is a point-in-time view for status endpoints.
type Snapshot struct {
	ID        uuid.UUID `json:"id"`
	Status    Status    `json:"status"`
	Processed int       `json:"processed"`
	Total     int       `json:"total"`
	Message   string    `json:"message,omitempty"`
}

func New(userID uuid.UUID, entries []Entry, fetcher Fetcher) *Walker {
	return &Walker{
		ID:       uuid.New(),
		UserID:   userID,
		entries:  entries,
		fetcher:  fetcher,
		status:   StatusIdle,
		resumeCh: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Run drives the loop to completion or cancellation. It is called once, on
// its own goroutine.
func (w *Walker) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer close(w.done)
	defer cancel()

	w.mu.Lock()
	w.cancel = cancel
	cancelled := w.status == StatusCancelled
	if !cancelled {
		w.status = StatusRunning
	}
	w.mu.Unlock()
	if cancelled {
		return
	}

	for i := 0; i < len(w.entries); {
		if w.Status() == StatusCancelled || ctx.Err() != nil {
			w.setStatus(StatusCancelled)
			return
		}

		entry := w.entries[i]
		err := w.fetcher.Enrich(ctx, entry.Kind, entry.EntityID)
		if err != nil {
			if rle, ok := emodel.AsRateLimit(err); ok {
				w.pauseOn(rle.Message)
				if !w.waitForResume(ctx) {
					return
				}
				// Retry the same entry, never skip past it.
				continue
			}
			// Anything else (row deleted mid-walk, etc.) counts as attempted.
			log.Warn().Err(err).Str("kind", entry.Kind.String()).
				Str("entity_id", entry.EntityID.String()).Msg("walk entry failed, moving on")
		}

		w.mu.Lock()
		w.processed++
		w.mu.Unlock()
		i++
	}

	w.setStatus(StatusCompleted)
}

// Resume wakes a paused walker. Returns false when there is nothing to
// resume.
func (w *Walker) Resume() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status != StatusPaused {
		return false
	}
	select {
	case w.resumeCh <- struct{}{}:
	default:
	}
	return true
}

// Cancel abandons the walk. Safe at any point: every enrichment write is a
// self-contained upsert, so later entries are simply left for a future walk.
func (w *Walker) Cancel() {
	w.mu.Lock()
	w.status = StatusCancelled
	cancel := w.cancel
	w.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (w *Walker) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

func (w *Walker) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{
		ID:        w.ID,
		Status:    w.status,
		Processed: w.processed,
		Total:     len(w.entries),
		Message:   w.message,
	}
}

// Done closes when the Run goroutine has exited.
func (w *Walker) Done() <-chan struct{} { return w.done }

func (w *Walker) setStatus(s Status) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status == StatusCancelled && s != StatusCancelled {
		return
	}
	w.status = s
}

func (w *Walker) pauseOn(message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status == StatusCancelled {
		return
	}
	w.status = StatusPaused
	w.message = message
}

// waitForResume blocks with no provider traffic until Resume or cancellation.
func (w *Walker) waitForResume(ctx context.Context) bool {
	select {
	case <-w.resumeCh:
		w.mu.Lock()
		if w.status == StatusCancelled {
			w.mu.Unlock()
			return false
		}
		w.status = StatusRunning
		w.message = ""
		w.mu.Unlock()
		return true
	case <-ctx.Done():
		w.setStatus(StatusCancelled)
		return false
	}
}
