package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Movie catalog entity. Director and Year are identifying hints for provider
// lookups; they may be empty when the entity was created from a bare title.
type Movie struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Title    string    `json:"title" db:"title"`
	Director *string   `json:"director,omitempty" db:"director"`
	Year     *int      `json:"year,omitempty" db:"year"`

	// Enrichment fields
	PosterURL   *string        `json:"poster_url,omitempty" db:"poster_url"`
	Description *string        `json:"description,omitempty" db:"description"`
	Runtime     *int           `json:"runtime,omitempty" db:"runtime"`
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

type MovieDetails struct {
	PosterURL   *string
	Description *string
	Runtime     *int
	Genre       *string
	Genres      []string
	Cast        []string
	Ratings     Ratings
	TMDBID      *int64
	IMDBID      *string
	InfoLink    *string
	// Identifying fields a provider can backfill (e.g. release year resolved
	// during search). Merged like any other field.
	Director *string
	Year     *int
}

func MergeMovieDetails(m *Movie, p MovieDetails) {
	if p.PosterURL != nil {
		m.PosterURL = p.PosterURL
	}
	if p.Description != nil {
		m.Description = p.Description
	}
	if p.Runtime != nil {
		m.Runtime = p.Runtime
	}
	if p.Genre != nil {
		m.Genre = p.Genre
	}
	if p.Genres != nil {
		m.Genres = pq.StringArray(p.Genres)
	}
	if p.Cast != nil {
		m.Cast = pq.StringArray(p.Cast)
	}
	if p.Ratings != nil {
		m.Ratings = p.Ratings
	}
	if p.TMDBID != nil {
		m.TMDBID = p.TMDBID
	}
	if p.IMDBID != nil {
		m.IMDBID = p.IMDBID
	}
	if p.InfoLink != nil {
		m.InfoLink = p.InfoLink
	}
	if p.Director != nil {
		m.Director = p.Director
	}
	if p.Year != nil {
		m.Year = p.Year
	}
}

func ApplyMovieDetails(m *Movie, p MovieDetails) {
	m.PosterURL = p.PosterURL
	m.Description = p.Description
	m.Runtime = p.Runtime
	m.Genre = p.Genre
	m.Genres = pq.StringArray(p.Genres)
	m.Cast = pq.StringArray(p.Cast)
	m.Ratings = p.Ratings
	m.TMDBID = p.TMDBID
	m.IMDBID = p.IMDBID
	m.InfoLink = p.InfoLink
	// Identifying hints are only ever improved, never cleared: a refetch that
	// failed to resolve the year should not wipe what we knew.
	if p.Director != nil {
		m.Director = p.Director
	}
	if p.Year != nil {
		m.Year = p.Year
	}
}
