package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"mediashelf-backend/internal/domains/catalog/model"
)

// GetOrFetchBook returns the book with its enrichment fields, fetching from
// the upstream providers only when the row has never been enriched. The bool
// reports whether the answer came from the cache.
func (s *Service) GetOrFetchBook(ctx context.Context, id uuid.UUID) (*model.Book, bool, error) {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if book.DetailsFetchedAt != nil {
		return book, true, nil
	}

	details, err := s.bookProvider.FetchDetails(ctx, book)
	if err != nil {
		return nil, false, err
	}

	model.MergeBookDetails(book, details)
	s.deduceBookGenre(ctx, book)
	book.DetailsFetchedAt = stampNow()

	if err := s.books.SaveEnrichment(ctx, book); err != nil {
		log.Error().Err(err).Str("book_id", book.ID.String()).
			Msg("book enrichment not persisted, serving unsaved result")
	}
	return book, false, nil
}

// ForceRefetchBook bypasses the cache: provider fields replace stored values
// wholesale, and fields the provider no longer returns are cleared.
func (s *Service) ForceRefetchBook(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details, err := s.bookProvider.FetchDetails(ctx, book)
	if err != nil {
		return nil, err
	}

	model.ApplyBookDetails(book, details)
	s.deduceBookGenre(ctx, book)
	book.DetailsFetchedAt = stampNow()

	if err := s.books.SaveEnrichment(ctx, book); err != nil {
		log.Error().Err(err).Str("book_id", book.ID.String()).
			Msg("book enrichment not persisted, serving unsaved result")
	}
	return book, nil
}

func (s *Service) deduceBookGenre(ctx context.Context, book *model.Book) {
	if book.Genre != nil {
		return
	}
	genre, ok := s.genres.Deduce(ctx, model.KindBook, GenreHints{
		Title:       book.Title,
		Creator:     book.Author,
		Description: book.Description,
		Subjects:    book.Subjects,
	})
	if ok {
		book.Genre = &genre
	}
}
