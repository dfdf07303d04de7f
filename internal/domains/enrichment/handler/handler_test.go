package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediashelf-backend/internal/domains/catalog/model"
	emodel "mediashelf-backend/internal/domains/enrichment/model"
	"mediashelf-backend/internal/domains/enrichment/service"
	"mediashelf-backend/internal/domains/enrichment/walker"
)

type stubBookRepo struct {
	book model.Book
}

func (s *stubBookRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	if id != s.book.ID {
		return nil, model.ErrNotFound
	}
	b := s.book
	return &b, nil
}

func (s *stubBookRepo) FindOrCreate(ctx context.Context, title, author string, isbn *string) (*model.Book, error) {
	b := s.book
	return &b, nil
}

func (s *stubBookRepo) SaveEnrichment(ctx context.Context, b *model.Book) error {
	s.book = *b
	return nil
}

func (s *stubBookRepo) ListUnenriched(ctx context.Context, limit int) ([]model.Book, error) {
	return nil, nil
}

type stubBookProvider struct {
	err error
}

func (s *stubBookProvider) FetchDetails(ctx context.Context, book *model.Book) (model.BookDetails, error) {
	return model.BookDetails{}, s.err
}

func newDetailRouter(repo *stubBookRepo, prov *stubBookProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewService(repo, nil, nil, nil, nil, prov, nil, nil, nil, nil, service.NewGenreDeducer(nil))
	r := gin.New()
	v1 := r.Group("/v1")
	NewDetailHandler(svc).RegisterRoutes(v1)
	return r
}

func TestGetBookDetailsCacheHit(t *testing.T) {
	now := time.Now().UTC()
	repo := &stubBookRepo{book: model.Book{ID: uuid.New(), Title: "Dune", DetailsFetchedAt: &now}}
	r := newDetailRouter(repo, &stubBookProvider{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/books/"+repo.book.ID.String()+"/details", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Cached bool            `json:"cached"`
			Entity json.RawMessage `json:"entity"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.True(t, body.Data.Cached)
}

func TestGetBookDetailsRateLimitedBecomes429(t *testing.T) {
	repo := &stubBookRepo{book: model.Book{ID: uuid.New(), Title: "Dune"}}
	prov := &stubBookProvider{err: emodel.NewRateLimitError("openlibrary", "Rate limited, try again in a minute", 0)}
	r := newDetailRouter(repo, prov)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/books/"+repo.book.ID.String()+"/details", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limited, try again in a minute")
}

func TestGetBookDetailsUnknownEntity404(t *testing.T) {
	repo := &stubBookRepo{book: model.Book{ID: uuid.New()}}
	r := newDetailRouter(repo, &stubBookProvider{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/books/"+uuid.NewString()+"/details", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/v1/books/not-a-uuid/details", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type stubFetcher struct{}

func (stubFetcher) Enrich(ctx context.Context, kind model.Kind, id uuid.UUID) error { return nil }

type stubShelf struct {
	entries []walker.Entry
}

func (s stubShelf) WalkEntries(ctx context.Context, userID uuid.UUID) ([]walker.Entry, error) {
	return s.entries, nil
}

func newWalkRouter(userID uuid.UUID, shelf ShelfLister) (*gin.Engine, *walker.Registry) {
	gin.SetMode(gin.TestMode)
	reg := walker.NewRegistry(stubFetcher{})
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", userID) })
	v1 := r.Group("/v1")
	NewWalkHandler(reg, shelf).RegisterRoutes(v1)
	return r, reg
}

func TestWalkLifecycleOverHTTP(t *testing.T) {
	userID := uuid.New()
	r, reg := newWalkRouter(userID, stubShelf{})

	body := `{"entries":[{"kind":"movie","entity_id":"` + uuid.NewString() + `"}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/enrichment/walks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code)

	var created struct {
		Data walker.Snapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 1, created.Data.Total)

	walk, ok := reg.Get(userID, created.Data.ID)
	require.True(t, ok)
	require.Eventually(t, func() bool {
		return walk.Status() == walker.StatusCompleted
	}, 2*time.Second, 5*time.Millisecond)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/v1/enrichment/walks/"+created.Data.ID.String(), nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"completed"`)

	// Resuming a finished walk is a conflict, not a crash.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/v1/enrichment/walks/"+created.Data.ID.String()+"/resume", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/v1/enrichment/walks/"+created.Data.ID.String(), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	_, ok = reg.Get(userID, created.Data.ID)
	assert.False(t, ok)
}

func TestStartWalkFallsBackToShelf(t *testing.T) {
	userID := uuid.New()
	shelf := stubShelf{entries: []walker.Entry{
		{Kind: model.KindBook, EntityID: uuid.New()},
		{Kind: model.KindMovie, EntityID: uuid.New()},
	}}
	r, _ := newWalkRouter(userID, shelf)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/enrichment/walks", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code)

	var created struct {
		Data walker.Snapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 2, created.Data.Total)
}

func TestStartWalkRejectsBadEntries(t *testing.T) {
	r, _ := newWalkRouter(uuid.New(), stubShelf{})

	body := `{"entries":[{"kind":"vinyl","entity_id":"` + uuid.NewString() + `"}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/enrichment/walks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWalkEndpointsRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := walker.NewRegistry(stubFetcher{})
	r := gin.New()
	v1 := r.Group("/v1")
	NewWalkHandler(reg, stubShelf{}).RegisterRoutes(v1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/enrichment/walks", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
