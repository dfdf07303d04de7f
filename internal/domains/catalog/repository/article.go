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

type articleRepository struct {
	pool *pgxpool.Pool
}

func NewArticleRepository(pool *pgxpool.Pool) ArticleRepository {
	return &articleRepository{pool: pool}
}

const articleColumns = `
	id, title, url,
	author, description, image_url, site_name, genre, published_at, canonical_url,
	details_fetched_at, created_at, updated_at`

func scanArticle(row pgx.Row) (*model.Article, error) {
	var a model.Article
	err := row.Scan(
		&a.ID, &a.Title, &a.URL,
		&a.Author, &a.Description, &a.ImageURL, &a.SiteName, &a.Genre, &a.PublishedAt, &a.CanonicalURL,
		&a.DetailsFetchedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("scan article: %w", err)
	}
	return &a, nil
}

func (r *articleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	return scanArticle(r.pool.QueryRow(ctx, query, id))
}

// FindOrCreate dedupes articles on the URL, which is the one stable
// identifier a pasted link gives us.
func (r *articleRepository) FindOrCreate(ctx context.Context, title, url string) (*model.Article, error) {
	query := `
		INSERT INTO articles (id, title, url)
		VALUES ($1, $2, $3)
		ON CONFLICT (url) DO UPDATE SET url = articles.url
		RETURNING ` + articleColumns
	return scanArticle(r.pool.QueryRow(ctx, query, uuid.New(), title, url))
}

func (r *articleRepository) SaveEnrichment(ctx context.Context, a *model.Article) error {
	query := `
		UPDATE articles SET
			title = $2,
			author = $3, description = $4, image_url = $5, site_name = $6,
			genre = $7, published_at = $8, canonical_url = $9,
			details_fetched_at = $10, updated_at = now()
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query,
		a.ID,
		a.Title,
		a.Author, a.Description, a.ImageURL, a.SiteName,
		a.Genre, a.PublishedAt, a.CanonicalURL,
		a.DetailsFetchedAt,
	)
	if err != nil {
		return fmt.Errorf("save article enrichment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *articleRepository) ListUnenriched(ctx context.Context, limit int) ([]model.Article, error) {
	query := `SELECT ` + articleColumns + `
		FROM articles
		WHERE details_fetched_at IS NULL
		ORDER BY created_at ASC
		LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list unenriched articles: %w", err)
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *a)
	}
	return articles, rows.Err()
}
