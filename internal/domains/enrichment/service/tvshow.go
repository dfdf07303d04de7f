package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"mediashelf-backend/internal/domains/catalog/model"
)

func (s *Service) GetOrFetchTVShow(ctx context.Context, id uuid.UUID) (*model.TVShow, bool, error) {
	show, err := s.tvshows.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if show.DetailsFetchedAt != nil {
		return show, true, nil
	}

	details, err := s.tvshowProvider.FetchDetails(ctx, show)
	if err != nil {
		return nil, false, err
	}

	model.MergeTVShowDetails(show, details)
	s.deduceTVShowGenre(ctx, show)
	show.DetailsFetchedAt = stampNow()

	if err := s.tvshows.SaveEnrichment(ctx, show); err != nil {
		log.Error().Err(err).Str("tvshow_id", show.ID.String()).
			Msg("tv show enrichment not persisted, serving unsaved result")
	}
	return show, false, nil
}

func (s *Service) ForceRefetchTVShow(ctx context.Context, id uuid.UUID) (*model.TVShow, error) {
	show, err := s.tvshows.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details, err := s.tvshowProvider.FetchDetails(ctx, show)
	if err != nil {
		return nil, err
	}

	model.ApplyTVShowDetails(show, details)
	s.deduceTVShowGenre(ctx, show)
	show.DetailsFetchedAt = stampNow()

	if err := s.tvshows.SaveEnrichment(ctx, show); err != nil {
		log.Error().Err(err).Str("tvshow_id", show.ID.String()).
			Msg("tv show enrichment not persisted, serving unsaved result")
	}
	return show, nil
}

func (s *Service) deduceTVShowGenre(ctx context.Context, show *model.TVShow) {
	if show.Genre != nil {
		return
	}
	var creator string
	if show.Creator != nil {
		creator = *show.Creator
	}
	genre, ok := s.genres.Deduce(ctx, model.KindTVShow, GenreHints{
		Title:       show.Title,
		Creator:     creator,
		Description: show.Description,
	})
	if ok {
		show.Genre = &genre
	}
}
