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

type podcastRepository struct {
	pool *pgxpool.Pool
}

func NewPodcastRepository(pool *pgxpool.Pool) PodcastRepository {
	return &podcastRepository{pool: pool}
}

const podcastColumns = `
	id, title, publisher,
	artwork_url, description, feed_url, genre, episode_count, itunes_id, info_link,
	details_fetched_at, created_at, updated_at`

func scanPodcast(row pgx.Row) (*model.Podcast, error) {
	var p model.Podcast
	err := row.Scan(
		&p.ID, &p.Title, &p.Publisher,
		&p.ArtworkURL, &p.Description, &p.FeedURL, &p.Genre, &p.EpisodeCount, &p.ITunesID, &p.InfoLink,
		&p.DetailsFetchedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("scan podcast: %w", err)
	}
	return &p, nil
}

func (r *podcastRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Podcast, error) {
	query := `SELECT ` + podcastColumns + ` FROM podcasts WHERE id = $1`
	return scanPodcast(r.pool.QueryRow(ctx, query, id))
}

func (r *podcastRepository) FindOrCreate(ctx context.Context, title string, publisher *string) (*model.Podcast, error) {
	query := `
		INSERT INTO podcasts (id, title, publisher)
		VALUES ($1, $2, $3)
		ON CONFLICT (lower(title)) DO UPDATE SET title = podcasts.title
		RETURNING ` + podcastColumns
	return scanPodcast(r.pool.QueryRow(ctx, query, uuid.New(), title, publisher))
}

func (r *podcastRepository) SaveEnrichment(ctx context.Context, p *model.Podcast) error {
	query := `
		UPDATE podcasts SET
			publisher = $2,
			artwork_url = $3, description = $4, feed_url = $5, genre = $6,
			episode_count = $7, itunes_id = $8, info_link = $9,
			details_fetched_at = $10, updated_at = now()
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Publisher,
		p.ArtworkURL, p.Description, p.FeedURL, p.Genre,
		p.EpisodeCount, p.ITunesID, p.InfoLink,
		p.DetailsFetchedAt,
	)
	if err != nil {
		return fmt.Errorf("save podcast enrichment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *podcastRepository) ListUnenriched(ctx context.Context, limit int) ([]model.Podcast, error) {
	query := `SELECT ` + podcastColumns + `
		FROM podcasts
		WHERE details_fetched_at IS NULL
		ORDER BY created_at ASC
		LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list unenriched podcasts: %w", err)
	}
	defer rows.Close()

	var podcasts []model.Podcast
	for rows.Next() {
		p, err := scanPodcast(rows)
		if err != nil {
			return nil, err
		}
		podcasts = append(podcasts, *p)
	}
	return podcasts, rows.Err()
}
