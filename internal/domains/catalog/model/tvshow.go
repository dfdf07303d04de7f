package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// TVShow catalog entity.
type TVShow struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Creator      *string   `json:"creator,omitempty" db:"creator"`
	FirstAirYear *int      `json:"first_air_year,omitempty" db:"first_air_year"`

	// Enrichment fields
	PosterURL   *string        `json:"poster_url,omitempty" db:"poster_url"`
	Description *string        `json:"description,omitempty" db:"description"`
	Seasons     *int           `json:"seasons,omitempty" db:"seasons"`
	Episodes    *int           `json:"episodes,omitempty" db:"episodes"`
	Genre       *string        `json:"genre,omitempty" db:"genre"`
	Genres      pq.StringArray `json:"genres,omitempty" db:"genres"`
	Cast        pq.StringArray `json:"cast,omitempty" db:"cast_members"`
	Ratings     Ratings        `json:"ratings,omitempty" db:"ratings"`
	TMDBID      *int64         `json:"tmdb_id,omitempty" db:"tmdb_id"`
	IMDBID      *string        `json:"imdb_id,omitempty" db:"imdb_id"`
	InfoLink    *string        `json:"info_link,omitempty" db:"info_link"`

	DetailsFetchedAt *time.Time `json:"details_fetched_at,omitempty" db:"details_fetched_at"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

type TVShowDetails struct {
	PosterURL   *string
	Description *string
	Seasons     *int
	Episodes    *int
	Genre       *string
	Genres      []string
	Cast        []string
	Ratings     Ratings
	TMDBID      *int64
	IMDBID      *string
	InfoLink    *string
	Creator     *string
	FirstAirYear *int
}

func MergeTVShowDetails(t *TVShow, p TVShowDetails) {
	if p.PosterURL != nil {
		t.PosterURL = p.PosterURL
	}
	if p.Description != nil {
		t.Description = p.Description
	}
	if p.Seasons != nil {
		t.Seasons = p.Seasons
	}
	if p.Episodes != nil {
		t.Episodes = p.Episodes
	}
	if p.Genre != nil {
		t.Genre = p.Genre
	}
	if p.Genres != nil {
		t.Genres = pq.StringArray(p.Genres)
	}
	if p.Cast != nil {
		t.Cast = pq.StringArray(p.Cast)
	}
	if p.Ratings != nil {
		t.Ratings = p.Ratings
	}
	if p.TMDBID != nil {
		t.TMDBID = p.TMDBID
	}
	if p.IMDBID != nil {
		t.IMDBID = p.IMDBID
	}
	if p.InfoLink != nil {
		t.InfoLink = p.InfoLink
	}
	if p.Creator != nil {
		t.Creator = p.Creator
	}
	if p.FirstAirYear != nil {
		t.FirstAirYear = p.FirstAirYear
	}
}

func ApplyTVShowDetails(t *TVShow, p TVShowDetails) {
	t.PosterURL = p.PosterURL
	t.Description = p.Description
	t.Seasons = p.Seasons
	t.Episodes = p.Episodes
	t.Genre = p.Genre
	t.Genres = pq.StringArray(p.Genres)
	t.Cast = pq.StringArray(p.Cast)
	t.Ratings = p.Ratings
	t.TMDBID = p.TMDBID
	t.IMDBID = p.IMDBID
	t.InfoLink = p.InfoLink
	if p.Creator != nil {
		t.Creator = p.Creator
	}
	if p.FirstAirYear != nil {
		t.FirstAirYear = p.FirstAirYear
	}
}
