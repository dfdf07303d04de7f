package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediashelf-backend/internal/domains/catalog/model"
	emodel "mediashelf-backend/internal/domains/enrichment/model"
	"mediashelf-backend/internal/shared"
)

type recordingEnricher struct {
	errFor map[uuid.UUID]error
	calls  []uuid.UUID
}

func (r *recordingEnricher) Enrich(ctx context.Context, kind model.Kind, id uuid.UUID) error {
	r.calls = append(r.calls, id)
	return r.errFor[id]
}

type listBookRepo struct {
	books []model.Book
}

func (l *listBookRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	return nil, model.ErrNotFound
}

func (l *listBookRepo) FindOrCreate(ctx context.Context, title, author string, isbn *string) (*model.Book, error) {
	return nil, model.ErrNotFound
}

func (l *listBookRepo) SaveEnrichment(ctx context.Context, b *model.Book) error { return nil }

func (l *listBookRepo) ListUnenriched(ctx context.Context, limit int) ([]model.Book, error) {
	if limit < len(l.books) {
		return l.books[:limit], nil
	}
	return l.books, nil
}

type listMovieRepo struct {
	movies []model.Movie
}

func (l *listMovieRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Movie, error) {
	return nil, model.ErrNotFound
}

func (l *listMovieRepo) FindOrCreate(ctx context.Context, title string, director *string, year *int) (*model.Movie, error) {
	return nil, model.ErrNotFound
}

func (l *listMovieRepo) SaveEnrichment(ctx context.Context, m *model.Movie) error { return nil }

func (l *listMovieRepo) ListUnenriched(ctx context.Context, limit int) ([]model.Movie, error) {
	return l.movies, nil
}

type emptyTVShowRepo struct{}

func (emptyTVShowRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.TVShow, error) {
	return nil, model.ErrNotFound
}

func (emptyTVShowRepo) FindOrCreate(ctx context.Context, title string, creator *string, firstAirYear *int) (*model.TVShow, error) {
	return nil, model.ErrNotFound
}

func (emptyTVShowRepo) SaveEnrichment(ctx context.Context, t *model.TVShow) error { return nil }

func (emptyTVShowRepo) ListUnenriched(ctx context.Context, limit int) ([]model.TVShow, error) {
	return nil, nil
}

type emptyPodcastRepo struct{}

func (emptyPodcastRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Podcast, error) {
	return nil, model.ErrNotFound
}

func (emptyPodcastRepo) FindOrCreate(ctx context.Context, title string, publisher *string) (*model.Podcast, error) {
	return nil, model.ErrNotFound
}

func (emptyPodcastRepo) SaveEnrichment(ctx context.Context, p *model.Podcast) error { return nil }

func (emptyPodcastRepo) ListUnenriched(ctx context.Context, limit int) ([]model.Podcast, error) {
	return nil, nil
}

type emptyArticleRepo struct{}

func (emptyArticleRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	return nil, model.ErrNotFound
}

func (emptyArticleRepo) FindOrCreate(ctx context.Context, title, url string) (*model.Article, error) {
	return nil, model.ErrNotFound
}

func (emptyArticleRepo) SaveEnrichment(ctx context.Context, a *model.Article) error { return nil }

func (emptyArticleRepo) ListUnenriched(ctx context.Context, limit int) ([]model.Article, error) {
	return nil, nil
}

func newSweep(enricher *recordingEnricher, books []model.Book, movies []model.Movie) *SweepHandler {
	return NewSweepHandler(enricher,
		&listBookRepo{books: books},
		&listMovieRepo{movies: movies},
		emptyTVShowRepo{}, emptyPodcastRepo{}, emptyArticleRepo{})
}

func sweepTask(t *testing.T, payload SweepPayload) *asynq.Task {
	t.Helper()
	return asynq.NewTask(shared.TypeEnrichmentSweep, mustJSON(t, payload))
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestSweepEnrichesAllKinds(t *testing.T) {
	b1, m1 := uuid.New(), uuid.New()
	enricher := &recordingEnricher{}
	h := newSweep(enricher, []model.Book{{ID: b1}}, []model.Movie{{ID: m1}})

	err := h.ProcessTask(context.Background(), sweepTask(t, SweepPayload{}))
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b1, m1}, enricher.calls)
}

func TestSweepStopsOnRateLimit(t *testing.T) {
	b1, b2, m1 := uuid.New(), uuid.New(), uuid.New()
	enricher := &recordingEnricher{errFor: map[uuid.UUID]error{
		b2: emodel.NewRateLimitError("openlibrary", "", 0),
	}}
	h := newSweep(enricher, []model.Book{{ID: b1}, {ID: b2}}, []model.Movie{{ID: m1}})

	err := h.ProcessTask(context.Background(), sweepTask(t, SweepPayload{}))
	require.NoError(t, err, "rate limit ends the run without an asynq retry")
	assert.Equal(t, []uuid.UUID{b1, b2}, enricher.calls, "nothing after the rate-limited entity")
}

func TestSweepSkipsBrokenEntity(t *testing.T) {
	b1, b2 := uuid.New(), uuid.New()
	enricher := &recordingEnricher{errFor: map[uuid.UUID]error{
		b1: errors.New("row vanished"),
	}}
	h := newSweep(enricher, []model.Book{{ID: b1}, {ID: b2}}, nil)

	err := h.ProcessTask(context.Background(), sweepTask(t, SweepPayload{}))
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b1, b2}, enricher.calls, "one broken row does not end the sweep")
}

func TestSweepRespectsBatchSize(t *testing.T) {
	books := []model.Book{{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()}}
	enricher := &recordingEnricher{}
	h := newSweep(enricher, books, nil)

	err := h.ProcessTask(context.Background(), sweepTask(t, SweepPayload{BatchSize: 2}))
	require.NoError(t, err)
	assert.Len(t, enricher.calls, 2)
}

func TestSweepRejectsMalformedPayload(t *testing.T) {
	h := newSweep(&recordingEnricher{}, nil, nil)
	task := asynq.NewTask(shared.TypeEnrichmentSweep, []byte("{not json"))

	err := h.ProcessTask(context.Background(), task)
	assert.Error(t, err)
}
