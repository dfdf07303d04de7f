package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"mediashelf-backend/internal/domains/catalog/model"
)

func (s *Service) GetOrFetchMovie(ctx context.Context, id uuid.UUID) (*model.Movie, bool, error) {
	movie, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if movie.DetailsFetchedAt != nil {
		return movie, true, nil
	}

	details, err := s.movieProvider.FetchDetails(ctx, movie)
	if err != nil {
		return nil, false, err
	}

	model.MergeMovieDetails(movie, details)
	s.deduceMovieGenre(ctx, movie)
	movie.DetailsFetchedAt = stampNow()

	if err := s.movies.SaveEnrichment(ctx, movie); err != nil {
		log.Error().Err(err).Str("movie_id", movie.ID.String()).
			Msg("movie enrichment not persisted, serving unsaved result")
	}
	return movie, false, nil
}

func (s *Service) ForceRefetchMovie(ctx context.Context, id uuid.UUID) (*model.Movie, error) {
	movie, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details, err := s.movieProvider.FetchDetails(ctx, movie)
	if err != nil {
		return nil, err
	}

	model.ApplyMovieDetails(movie, details)
	s.deduceMovieGenre(ctx, movie)
	movie.DetailsFetchedAt = stampNow()

	if err := s.movies.SaveEnrichment(ctx, movie); err != nil {
		log.Error().Err(err).Str("movie_id", movie.ID.String()).
			Msg("movie enrichment not persisted, serving unsaved result")
	}
	return movie, nil
}

func (s *Service) deduceMovieGenre(ctx context.Context, movie *model.Movie) {
	if movie.Genre != nil {
		return
	}
	var creator string
	if movie.Director != nil {
		creator = *movie.Director
	}
	genre, ok := s.genres.Deduce(ctx, model.KindMovie, GenreHints{
		Title:       movie.Title,
		Creator:     creator,
		Description: movie.Description,
	})
	if ok {
		movie.Genre = &genre
	}
}
