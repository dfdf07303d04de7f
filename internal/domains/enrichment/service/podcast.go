package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"mediashelf-backend/internal/domains/catalog/model"
)

func (s *Service) GetOrFetchPodcast(ctx context.Context, id uuid.UUID) (*model.Podcast, bool, error) {
	podcast, err := s.podcasts.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if podcast.DetailsFetchedAt != nil {
		return podcast, true, nil
	}

	details, err := s.podcastProvider.FetchDetails(ctx, podcast)
	if err != nil {
		return nil, false, err
	}

	model.MergePodcastDetails(podcast, details)
	s.deducePodcastGenre(ctx, podcast)
	podcast.DetailsFetchedAt = stampNow()

	if err := s.podcasts.SaveEnrichment(ctx, podcast); err != nil {
		log.Error().Err(err).Str("podcast_id", podcast.ID.String()).
			Msg("podcast enrichment not persisted, serving unsaved result")
	}
	return podcast, false, nil
}

func (s *Service) ForceRefetchPodcast(ctx context.Context, id uuid.UUID) (*model.Podcast, error) {
	podcast, err := s.podcasts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details, err := s.podcastProvider.FetchDetails(ctx, podcast)
	if err != nil {
		return nil, err
	}

	model.ApplyPodcastDetails(podcast, details)
	s.deducePodcastGenre(ctx, podcast)
	podcast.DetailsFetchedAt = stampNow()

	if err := s.podcasts.SaveEnrichment(ctx, podcast); err != nil {
		log.Error().Err(err).Str("podcast_id", podcast.ID.String()).
			Msg("podcast enrichment not persisted, serving unsaved result")
	}
	return podcast, nil
}

func (s *Service) deducePodcastGenre(ctx context.Context, podcast *model.Podcast) {
	if podcast.Genre != nil {
		return
	}
	var creator string
	if podcast.Publisher != nil {
		creator = *podcast.Publisher
	}
	genre, ok := s.genres.Deduce(ctx, model.KindPodcast, GenreHints{
		Title:       podcast.Title,
		Creator:     creator,
		Description: podcast.Description,
	})
	if ok {
		podcast.Genre = &genre
	}
}
