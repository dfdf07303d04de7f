package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mediashelf-backend/internal/domains/catalog/model"
)

type movieRepository struct {
	pool *pgxpool.Pool
}

func NewMovieRepository(pool *pgxpool.Pool) MovieRepository {
	return &movieRepository{pool: pool}
}

const movieColumns = `
	id, title, director, year,
	poster_url, description, runtime, genre, genres, cast_members, ratings,
	tmdb_id, imdb_id, info_link,
	details_fetched_at, created_at, updated_at`

func scanMovie(row pgx.Row) (*model.Movie, error) {
	var m model.Movie
	err := row.Scan(
		&m.ID, &m.Title, &m.Director, &m.Year,
		&m.PosterURL, &m.Description, &m.Runtime, &m.Genre, &m.Genres, &m.Cast, &m.Ratings,
		&m.TMDBID, &m.IMDBID, &m.InfoLink,
		&m.DetailsFetchedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("scan movie: %w", err)
	}
	return &m, nil
}

func (r *movieRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`
	return scanMovie(r.pool.QueryRow(ctx, query, id))
}

func (r *movieRepository) FindOrCreate(ctx context.Context, title string, director *string, year *int) (*model.Movie, error) {
	query := `
		INSERT INTO movies (id, title, director, year)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (lower(title), coalesce(year, 0)) DO UPDATE SET title = movies.title
		RETURNING ` + movieColumns
	return scanMovie(r.pool.QueryRow(ctx, query, uuid.New(), title, director, year))
}

func (r *movieRepository) SaveEnrichment(ctx context.Context, m *model.Movie) error {
	query := `
		UPDATE movies SET
			director = $2, year = $3,
			poster_url = $4, description = $5, runtime = $6, genre = $7,
			genres = $8, cast_members = $9, ratings = $10,
			tmdb_id = $11, imdb_id = $12, info_link = $13,
			details_fetched_at = $14, updated_at = now()
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query,
		m.ID,
		m.Director, m.Year,
		m.PosterURL, m.Description, m.Runtime, m.Genre,
		m.Genres, m.Cast, m.Ratings,
		m.TMDBID, m.IMDBID, m.InfoLink,
		m.DetailsFetchedAt,
	)
	if err != nil {
		return fmt.Errorf("save movie enrichment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *movieRepository) ListUnenriched(ctx context.Context, limit int) ([]model.Movie, error) {
	query := `SELECT ` + movieColumns + `
		FROM movies
		WHERE details_fetched_at IS NULL
		ORDER BY created_at ASC
		LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list unenriched movies: %w", err)
	}
	defer rows.Close()

	var movies []model.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *m)
	}
	return movies, rows.Err()
}
