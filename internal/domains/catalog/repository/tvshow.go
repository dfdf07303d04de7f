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

type tvShowRepository struct {
	pool *pgxpool.Pool
}

func NewTVShowRepository(pool *pgxpool.Pool) TVShowRepository {
	return &tvShowRepository{pool: pool}
}

const tvShowColumns = `
	id, title, creator, first_air_year,
	poster_url, description, seasons, episodes, genre, genres, cast_members, ratings,
	tmdb_id, imdb_id, info_link,
	details_fetched_at, created_at, updated_at`

func scanTVShow(row pgx.Row) (*model.TVShow, error) {
	var t model.TVShow
	err := row.Scan(
		&t.ID, &t.Title, &t.Creator, &t.FirstAirYear,
		&t.PosterURL, &t.Description, &t.Seasons, &t.Episodes, &t.Genre, &t.Genres, &t.Cast, &t.Ratings,
		&t.TMDBID, &t.IMDBID, &t.InfoLink,
		&t.DetailsFetchedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("scan tv show: %w", err)
	}
	return &t, nil
}

func (r *tvShowRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TVShow, error) {
	query := `SELECT ` + tvShowColumns + ` FROM tv_shows WHERE id = $1`
	return scanTVShow(r.pool.QueryRow(ctx, query, id))
}

func (r *tvShowRepository) FindOrCreate(ctx context.Context, title string, creator *string, firstAirYear *int) (*model.TVShow, error) {
	query := `
		INSERT INTO tv_shows (id, title, creator, first_air_year)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (lower(title), coalesce(first_air_year, 0)) DO UPDATE SET title = tv_shows.title
		RETURNING ` + tvShowColumns
	return scanTVShow(r.pool.QueryRow(ctx, query, uuid.New(), title, creator, firstAirYear))
}

func (r *tvShowRepository) SaveEnrichment(ctx context.Context, t *model.TVShow) error {
	query := `
		UPDATE tv_shows SET
			creator = $2, first_air_year = $3,
			poster_url = $4, description = $5, seasons = $6, episodes = $7,
			genre = $8, genres = $9, cast_members = $10, ratings = $11,
			tmdb_id = $12, imdb_id = $13, info_link = $14,
			details_fetched_at = $15, updated_at = now()
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query,
		t.ID,
		t.Creator, t.FirstAirYear,
		t.PosterURL, t.Description, t.Seasons, t.Episodes,
		t.Genre, t.Genres, t.Cast, t.Ratings,
		t.TMDBID, t.IMDBID, t.InfoLink,
		t.DetailsFetchedAt,
	)
	if err != nil {
		return fmt.Errorf("save tv show enrichment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *tvShowRepository) ListUnenriched(ctx context.Context, limit int) ([]model.TVShow, error) {
	query := `SELECT ` + tvShowColumns + `
		FROM tv_shows
		WHERE details_fetched_at IS NULL
		ORDER BY created_at ASC
		LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list unenriched tv shows: %w", err)
	}
	defer rows.Close()

	var shows []model.TVShow
	for rows.Next() {
		t, err := scanTVShow(rows)
		if err != nil {
			return nil, err
		}
		shows = append(shows, *t)
	}
	return shows, rows.Err()
}
