package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "mediashelf-backend/internal/domains/catalog/model"
	"mediashelf-backend/internal/domains/shelf/model"
)

type memShelfRepo struct {
	entries map[uuid.UUID]model.ShelfEntry
	order   []uuid.UUID
}

func newMemShelfRepo() *memShelfRepo {
	return &memShelfRepo{entries: make(map[uuid.UUID]model.ShelfEntry)}
}

func (m *memShelfRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ShelfEntry, error) {
	var out []model.ShelfEntry
	for _, id := range m.order {
		if e := m.entries[id]; e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memShelfRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*model.ShelfEntry, error) {
	e, ok := m.entries[id]
	if !ok || e.UserID != userID {
		return nil, model.ErrNotFound
	}
	return &e, nil
}

func (m *memShelfRepo) Insert(ctx context.Context, entry *model.ShelfEntry) error {
	for _, e := range m.entries {
		if e.UserID == entry.UserID && e.Kind == entry.Kind && e.EntityID == entry.EntityID {
			return model.ErrDuplicate
		}
	}
	m.entries[entry.ID] = *entry
	m.order = append(m.order, entry.ID)
	return nil
}

func (m *memShelfRepo) Update(ctx context.Context, entry *model.ShelfEntry) error {
	if _, ok := m.entries[entry.ID]; !ok {
		return model.ErrNotFound
	}
	m.entries[entry.ID] = *entry
	return nil
}

func (m *memShelfRepo) Remove(ctx context.Context, userID, id uuid.UUID) error {
	e, ok := m.entries[id]
	if !ok || e.UserID != userID {
		return model.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

// memBookRepo find-or-creates by lowercased title+author, like the real
// unique index.
type memBookRepo struct {
	byKey map[string]catalog.Book
}

func (m *memBookRepo) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Book, error) {
	for _, b := range m.byKey {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (m *memBookRepo) FindOrCreate(ctx context.Context, title, author string, isbn *string) (*catalog.Book, error) {
	key := title + "|" + author
	if b, ok := m.byKey[key]; ok {
		return &b, nil
	}
	b := catalog.Book{ID: uuid.New(), Title: title, Author: author, ISBN: isbn}
	m.byKey[key] = b
	return &b, nil
}

func (m *memBookRepo) SaveEnrichment(ctx context.Context, b *catalog.Book) error { return nil }

func (m *memBookRepo) ListUnenriched(ctx context.Context, limit int) ([]catalog.Book, error) {
	return nil, nil
}

func newShelfService(books *memBookRepo) (*Service, *memShelfRepo) {
	shelf := newMemShelfRepo()
	return NewService(shelf, books, nil, nil, nil, nil), shelf
}

func TestAddFindsOrCreatesCatalogEntity(t *testing.T) {
	books := &memBookRepo{byKey: make(map[string]catalog.Book)}
	svc, _ := newShelfService(books)
	userA, userB := uuid.New(), uuid.New()

	first, err := svc.Add(context.Background(), userA, model.AddEntryRequest{
		Kind: "book", Title: "Dune", Creator: "Frank Herbert",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusQueued, first.Status, "status defaults to queued")

	// A second user shelving the same book reuses the shared entity.
	second, err := svc.Add(context.Background(), userB, model.AddEntryRequest{
		Kind: "book", Title: "Dune", Creator: "Frank Herbert",
	})
	require.NoError(t, err)
	assert.Equal(t, first.EntityID, second.EntityID)
	assert.Len(t, books.byKey, 1)
}

func TestAddRejectsDuplicateShelfEntry(t *testing.T) {
	books := &memBookRepo{byKey: make(map[string]catalog.Book)}
	svc, _ := newShelfService(books)
	user := uuid.New()
	req := model.AddEntryRequest{Kind: "book", Title: "Dune", Creator: "Frank Herbert"}

	_, err := svc.Add(context.Background(), user, req)
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), user, req)
	assert.ErrorIs(t, err, model.ErrDuplicate)
}

func TestAddValidatesRequest(t *testing.T) {
	svc, _ := newShelfService(&memBookRepo{byKey: make(map[string]catalog.Book)})

	_, err := svc.Add(context.Background(), uuid.New(), model.AddEntryRequest{Kind: "book"})
	assert.Error(t, err, "missing title")
}

func TestUpdatePatchesOnlyGivenFields(t *testing.T) {
	books := &memBookRepo{byKey: make(map[string]catalog.Book)}
	svc, _ := newShelfService(books)
	user := uuid.New()

	notes := "picked up at the library"
	entry, err := svc.Add(context.Background(), user, model.AddEntryRequest{
		Kind: "book", Title: "Dune", Creator: "Frank Herbert", Notes: &notes,
	})
	require.NoError(t, err)

	status := "finished"
	rating := 9
	updated, err := svc.Update(context.Background(), user, entry.ID, model.UpdateEntryRequest{
		Status: &status, Rating: &rating,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusFinished, updated.Status)
	assert.Equal(t, 9, *updated.Rating)
	assert.Equal(t, notes, *updated.Notes, "untouched field survives")
}

func TestWalkEntriesPreservesShelfOrder(t *testing.T) {
	books := &memBookRepo{byKey: make(map[string]catalog.Book)}
	svc, _ := newShelfService(books)
	user := uuid.New()

	e1, err := svc.Add(context.Background(), user, model.AddEntryRequest{Kind: "book", Title: "Dune", Creator: "Frank Herbert"})
	require.NoError(t, err)
	e2, err := svc.Add(context.Background(), user, model.AddEntryRequest{Kind: "book", Title: "Hyperion", Creator: "Dan Simmons"})
	require.NoError(t, err)

	entries, err := svc.WalkEntries(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, e1.EntityID, entries[0].EntityID)
	assert.Equal(t, e2.EntityID, entries[1].EntityID)
	assert.Equal(t, catalog.KindBook, entries[0].Kind)
}

func TestRemoveIsScopedToOwner(t *testing.T) {
	books := &memBookRepo{byKey: make(map[string]catalog.Book)}
	svc, _ := newShelfService(books)
	owner, stranger := uuid.New(), uuid.New()

	entry, err := svc.Add(context.Background(), owner, model.AddEntryRequest{Kind: "book", Title: "Dune", Creator: "Frank Herbert"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Remove(context.Background(), stranger, entry.ID), model.ErrNotFound)
	assert.NoError(t, svc.Remove(context.Background(), owner, entry.ID))
}
