package service

import (
	"context"

	"github.com/google/uuid"

	"mediashelf-backend/internal/domains/catalog/model"
)

// Enrich runs GetOrFetch for any entity kind, discarding the entity itself.
// The walker and the background sweep only care about the outcome.
func (s *Service) Enrich(ctx context.Context, kind model.Kind, id uuid.UUID) error {
	switch kind {
	case model.KindBook:
		_, _, err := s.GetOrFetchBook(ctx, id)
		return err
	case model.KindMovie:
		_, _, err := s.GetOrFetchMovie(ctx, id)
		return err
	case model.KindTVShow:
		_, _, err := s.GetOrFetchTVShow(ctx, id)
		return err
	case model.KindPodcast:
		_, _, err := s.GetOrFetchPodcast(ctx, id)
		return err
	case model.KindArticle:
		_, _, err := s.GetOrFetchArticle(ctx, id)
		return err
	default:
		return model.ErrInvalidKind
	}
}
