package provider

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	catalog "mediashelf-backend/internal/domains/catalog/model"
	emodel "mediashelf-backend/internal/domains/enrichment/model"
)

// tvShowProvider mirrors the movie provider for TMDB's TV endpoints, with
// OMDb ratings looked up by title (TV entries often lack an IMDb id in the
// user's shelf).
type tvShowProvider struct {
	tmdb *tmdbClient
	omdb *omdbClient
}

func NewTVShowProvider(tmdbCfg TMDBConfig, omdbCfg OMDBConfig, cooldown *CooldownStore) TVShowProvider {
	return &tvShowProvider{
		tmdb: newTMDBClient(tmdbCfg, cooldown),
		omdb: newOMDBClient(omdbCfg, cooldown),
	}
}

func (p *tvShowProvider) FetchDetails(ctx context.Context, show *catalog.TVShow) (catalog.TVShowDetails, error) {
	var details catalog.TVShowDetails

	id, err := p.tmdb.searchTV(ctx, show.Title, show.FirstAirYear)
	if err != nil {
		if _, ok := emodel.AsRateLimit(err); ok {
			return catalog.TVShowDetails{}, err
		}
		log.Warn().Err(err).Str("title", show.Title).Msg("tmdb tv search contributed nothing")
		return details, nil
	}

	detail, err := p.tmdb.tvDetail(ctx, id)
	if err != nil {
		if _, ok := emodel.AsRateLimit(err); ok {
			return catalog.TVShowDetails{}, err
		}
		log.Warn().Err(err).Str("title", show.Title).Msg("tmdb tv detail contributed nothing")
		return details, nil
	}

	details.TMDBID = &detail.ID
	if poster := p.tmdb.posterURL(detail.PosterPath); poster != "" {
		details.PosterURL = &poster
	}
	if detail.Overview != "" {
		details.Description = &detail.Overview
	}
	if detail.NumberOfSeasons > 0 {
		details.Seasons = &detail.NumberOfSeasons
	}
	if detail.NumberOfEpisodes > 0 {
		details.Episodes = &detail.NumberOfEpisodes
	}
	if detail.ExternalIDs.IMDBID != "" {
		imdbID := detail.ExternalIDs.IMDBID
		details.IMDBID = &imdbID
		link := "https://www.imdb.com/title/" + imdbID
		details.InfoLink = &link
	}
	if y := yearFromDate(detail.FirstAirDate); y != nil {
		details.FirstAirYear = y
	}
	if len(detail.CreatedBy) > 0 {
		details.Creator = &detail.CreatedBy[0].Name
	}
	if names := castNames(detail.Credits, 8); len(names) > 0 {
		details.Cast = names
	}

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

	omdbRatings, err := p.lookupOMDB(ctx, show, detail)
	if err != nil {
		return catalog.TVShowDetails{}, err
	}
	ratings = append(ratings, omdbRatings...)

	if len(ratings) > 0 {
		details.Ratings = ratings
	}
	return details, nil
}

func (p *tvShowProvider) lookupOMDB(ctx context.Context, show *catalog.TVShow, detail *tmdbTVDetail) (catalog.Ratings, error) {
	var (
		ratings catalog.Ratings
		err     error
	)
	if detail.ExternalIDs.IMDBID != "" {
		ratings, err = p.omdb.ratingsByIMDBID(ctx, detail.ExternalIDs.IMDBID)
	} else {
		ratings, err = p.omdb.ratingsByTitle(ctx, show.Title, show.FirstAirYear)
	}
	if err != nil {
		if _, ok := emodel.AsRateLimit(err); ok {
			return nil, err
		}
		log.Warn().Err(err).Str("title", show.Title).Msg("omdb contributed nothing")
		return nil, nil
	}
	return ratings, nil
}
