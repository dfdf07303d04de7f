package walker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "mediashelf-backend/internal/domains/catalog/model"
	emodel "mediashelf-backend/internal/domains/enrichment/model"
)

// scriptedFetcher rate-limits a chosen entity a fixed number of times and
// succeeds otherwise.
type scriptedFetcher struct {
	mu           sync.Mutex
	rateLimited  uuid.UUID
	failuresLeft int
	calls        []uuid.UUID
	block        chan struct{} // when set, every call waits here first
}

func (f *scriptedFetcher) Enrich(ctx context.Context, kind catalog.Kind, id uuid.UUID) error {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, id)
	if id == f.rateLimited && f.failuresLeft > 0 {
		f.failuresLeft--
		return emodel.NewRateLimitError("tmdb", "Rate limited, try again in a minute", 0)
	}
	return nil
}

func (f *scriptedFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func entries(ids ...uuid.UUID) []Entry {
	out := make([]Entry, len(ids))
	for i, id := range ids {
		out[i] = Entry{Kind: catalog.KindMovie, EntityID: id}
	}
	return out
}

func waitForStatus(t *testing.T, w *Walker, want Status) {
	t.Helper()
	require.Eventually(t, func() bool {
		return w.Status() == want
	}, 2*time.Second, 5*time.Millisecond, "walker never reached %s", want)
}

func TestWalkerPauseResumeScenario(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	fetcher := &scriptedFetcher{rateLimited: b, failuresLeft: 1}

	w := New(uuid.New(), entries(a, b, c), fetcher)
	go w.Run(context.Background())

	// A succeeds, B rate-limits: walker pauses without advancing.
	waitForStatus(t, w, StatusPaused)
	snap := w.Snapshot()
	assert.Equal(t, 1, snap.Processed, "only A counts while B is pending")
	assert.Equal(t, 3, snap.Total)
	assert.Equal(t, "Rate limited, try again in a minute", snap.Message)

	// Paused walker spends no quota.
	callsWhenPaused := fetcher.callCount()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, callsWhenPaused, fetcher.callCount(), "no provider calls while paused")

	// Resume retries B itself, then continues through C.
	require.True(t, w.Resume())
	waitForStatus(t, w, StatusCompleted)

	snap = w.Snapshot()
	assert.Equal(t, 3, snap.Processed)
	assert.Empty(t, snap.Message)
	assert.Equal(t, []uuid.UUID{a, b, b, c}, fetcher.calls, "B retried in place, never skipped")
}

func TestWalkerResumeOnlyWhenPaused(t *testing.T) {
	w := New(uuid.New(), entries(uuid.New()), &scriptedFetcher{})
	assert.False(t, w.Resume(), "nothing to resume before the walk pauses")

	go w.Run(context.Background())
	waitForStatus(t, w, StatusCompleted)
	assert.False(t, w.Resume())
}

func TestWalkerCancelWhilePaused(t *testing.T) {
	target := uuid.New()
	fetcher := &scriptedFetcher{rateLimited: target, failuresLeft: 100}

	w := New(uuid.New(), entries(target, uuid.New()), fetcher)
	go w.Run(context.Background())
	waitForStatus(t, w, StatusPaused)

	w.Cancel()
	waitForStatus(t, w, StatusCancelled)
	<-w.Done()

	snap := w.Snapshot()
	assert.Equal(t, 0, snap.Processed)
	assert.False(t, w.Resume(), "a cancelled walk stays cancelled")
}

func TestWalkerCancelMidEntry(t *testing.T) {
	block := make(chan struct{})
	fetcher := &scriptedFetcher{block: block}

	w := New(uuid.New(), entries(uuid.New(), uuid.New()), fetcher)
	go w.Run(context.Background())
	waitForStatus(t, w, StatusRunning)

	w.Cancel()
	close(block)
	waitForStatus(t, w, StatusCancelled)
	<-w.Done()
}

func TestRegistryScopesWalksToUser(t *testing.T) {
	reg := NewRegistry(&scriptedFetcher{})
	owner, stranger := uuid.New(), uuid.New()

	w := reg.Start(owner, entries(uuid.New()))

	_, ok := reg.Get(owner, w.ID)
	assert.True(t, ok)
	_, ok = reg.Get(stranger, w.ID)
	assert.False(t, ok, "another user's walk is invisible")

	assert.False(t, reg.Remove(stranger, w.ID))
	assert.True(t, reg.Remove(owner, w.ID))
	_, ok = reg.Get(owner, w.ID)
	assert.False(t, ok)
}

func TestRegistryStartRunsToCompletion(t *testing.T) {
	reg := NewRegistry(&scriptedFetcher{})
	w := reg.Start(uuid.New(), entries(uuid.New(), uuid.New()))

	waitForStatus(t, w, StatusCompleted)
	snap := w.Snapshot()
	assert.Equal(t, 2, snap.Processed)
}
