package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	catalog "mediashelf-backend/internal/domains/catalog/model"
	catalogrepo "mediashelf-backend/internal/domains/catalog/repository"
	"mediashelf-backend/internal/domains/enrichment/walker"
	"mediashelf-backend/internal/domains/shelf/model"
	"mediashelf-backend/internal/domains/shelf/repository"
)

// Service manages per-user shelves. Adding an entry find-or-creates the
// shared catalog entity from its identifying fields; the entity stays behind
// if the entry is later removed.
type Service struct {
	shelf    repository.RepositoryInterface
	books    catalogrepo.BookRepository
	movies   catalogrepo.MovieRepository
	tvshows  catalogrepo.TVShowRepository
	podcasts catalogrepo.PodcastRepository
	articles catalogrepo.ArticleRepository
}

func NewService(
	shelf repository.RepositoryInterface,
	books catalogrepo.BookRepository,
	movies catalogrepo.MovieRepository,
	tvshows catalogrepo.TVShowRepository,
	podcasts catalogrepo.PodcastRepository,
	articles catalogrepo.ArticleRepository,
) *Service {
	return &Service{
		shelf:    shelf,
		books:    books,
		movies:   movies,
		tvshows:  tvshows,
		podcasts: podcasts,
		articles: articles,
	}
}

func (s *Service) Add(ctx context.Context, userID uuid.UUID, req model.AddEntryRequest) (*model.ShelfEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	kind := catalog.Kind(req.Kind)
	entityID, err := s.resolveEntity(ctx, kind, req)
	if err != nil {
		return nil, err
	}

	status := model.Status(req.Status)
	if status == "" {
		status = model.StatusQueued
	}

	entry := &model.ShelfEntry{
		ID:       uuid.New(),
		UserID:   userID,
		Kind:     kind,
		EntityID: entityID,
		Status:   status,
		Rating:   req.Rating,
		Notes:    req.Notes,
		Priority: req.Priority,
	}
	if err := s.shelf.Insert(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]model.ShelfEntry, error) {
	return s.shelf.ListByUser(ctx, userID)
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, req model.UpdateEntryRequest) (*model.ShelfEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entry, err := s.shelf.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		entry.Status = model.Status(*req.Status)
	}
	if req.Rating != nil {
		entry.Rating = req.Rating
	}
	if req.Notes != nil {
		entry.Notes = req.Notes
	}
	if req.Priority != nil {
		entry.Priority = *req.Priority
	}

	if err := s.shelf.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) Remove(ctx context.Context, userID, id uuid.UUID) error {
	return s.shelf.Remove(ctx, userID, id)
}

// WalkEntries converts the user's shelf, in insertion order, into the entry
// list an enrichment walk consumes.
func (s *Service) WalkEntries(ctx context.Context, userID uuid.UUID) ([]walker.Entry, error) {
	list, err := s.shelf.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries := make([]walker.Entry, len(list))
	for i, e := range list {
		entries[i] = walker.Entry{Kind: e.Kind, EntityID: e.EntityID}
	}
	return entries, nil
}

func (s *Service) resolveEntity(ctx context.Context, kind catalog.Kind, req model.AddEntryRequest) (uuid.UUID, error) {
	switch kind {
	case catalog.KindBook:
		b, err := s.books.FindOrCreate(ctx, req.Title, req.Creator, req.ISBN)
		if err != nil {
			return uuid.Nil, err
		}
		return b.ID, nil
	case catalog.KindMovie:
		m, err := s.movies.FindOrCreate(ctx, req.Title, optional(req.Creator), req.Year)
		if err != nil {
			return uuid.Nil, err
		}
		return m.ID, nil
	case catalog.KindTVShow:
		t, err := s.tvshows.FindOrCreate(ctx, req.Title, optional(req.Creator), req.Year)
		if err != nil {
			return uuid.Nil, err
		}
		return t.ID, nil
	case catalog.KindPodcast:
		p, err := s.podcasts.FindOrCreate(ctx, req.Title, optional(req.Creator))
		if err != nil {
			return uuid.Nil, err
		}
		return p.ID, nil
	case catalog.KindArticle:
		a, err := s.articles.FindOrCreate(ctx, req.Title, req.URL)
		if err != nil {
			return uuid.Nil, err
		}
		return a.ID, nil
	default:
		return uuid.Nil, fmt.Errorf("unsupported kind %q", kind)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
