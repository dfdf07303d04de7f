package provider

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	catalog "mediashelf-backend/internal/domains/catalog/model"
	emodel "mediashelf-backend/internal/domains/enrichment/model"
)

// movieProvider uses TMDB for structured data (poster, overview, runtime,
// genres, credits) and OMDb for the named external rating sources. OMDb being
// down or out of quota for the day must not block TMDB's contribution,
// except that its rate-limit signal propagates like everyone else's.
type movieProvider struct {
	tmdb *tmdbClient
	omdb *omdbClient
}

func NewMovieProvider(tmdbCfg TMDBConfig, omdbCfg OMDBConfig, cooldown *CooldownStore) MovieProvider {
	return &movieProvider{
		tmdb: newTMDBClient(tmdbCfg, cooldown),
		omdb: newOMDBClient(omdbCfg, cooldown),
	}
}

func (p *movieProvider) FetchDetails(ctx context.Context, movie *catalog.Movie) (catalog.MovieDetails, error) {
	var details catalog.MovieDetails

	id, err := p.tmdb.searchMovie(ctx, movie.Title, movie.Year)
	if err != nil {
		if _, ok := emodel.AsRateLimit(err); ok {
			return catalog.MovieDetails{}, err
		}
		log.Warn().Err(err).Str("title", movie.Title).Msg("tmdb search contributed nothing")
		return details, nil
	}

	detail, err := p.tmdb.movieDetail(ctx, id)
	if err != nil {
		if _, ok := emodel.AsRateLimit(err); ok {
			return catalog.MovieDetails{}, err
		}
		log.Warn().Err(err).Str("title", movie.Title).Msg("tmdb detail contributed nothing")
		return details, nil
	}

	details.TMDBID = &detail.ID
	if poster := p.tmdb.posterURL(detail.PosterPath); poster != "" {
		details.PosterURL = &poster
	}
	if detail.Overview != "" {
		details.Description = &detail.Overview
	}
	if detail.Runtime > 0 {
		details.Runtime = &detail.Runtime
	}
	if detail.IMDBID != "" {
		details.IMDBID = &detail.IMDBID
		link := "https://www.imdb.com/title/" + detail.IMDBID
		details.InfoLink = &link
	}
	if y := yearFromDate(detail.ReleaseDate); y != nil {
		details.Year = y
	}
	if names := castNames(detail.Credits, 8); len(names) > 0 {
		details.Cast = names
	}
	details.Director = directorName(detail.Credits)

	if len(detail.Genres) > 0 {
		genres := make([]string, 0, len(detail.Genres))
		for _, g := range detail.Genres {
			genres = append(genres, g.Name)
		}
		details.Genres = genres
		details.Genre = &genres[0]
	}

	ratings := catalog.Ratings{}
	if detail.VoteAverage > 0 {
		score := decimal.NewFromFloat(detail.VoteAverage).Round(1)
		entry := catalog.RatingEntry{Source: "TMDB", Score: &score, Display: score.String() + "/10"}
		if detail.VoteCount > 0 {
			count := detail.VoteCount
			entry.Count = &count
		}
		ratings = append(ratings, entry)
	}

	if detail.IMDBID != "" {
		omdbRatings, err := p.omdb.ratingsByIMDBID(ctx, detail.IMDBID)
		if err != nil {
			if _, ok := emodel.AsRateLimit(err); ok {
				return catalog.MovieDetails{}, err
			}
			log.Warn().Err(err).Str("imdb_id", detail.IMDBID).Msg("omdb contributed nothing")
		} else {
			ratings = append(ratings, omdbRatings...)
		}
	}
	if len(ratings) > 0 {
		details.Ratings = ratings
	}

	return details, nil
}
