package repository

import (
	"context"

	"github.com/google/uuid"

	"mediashelf-backend/internal/domains/catalog/model"
)

// BookRepository is the persistence seam for book entities. SaveEnrichment is
// an idempotent write of the enrichment columns keyed by id: concurrent
// writers converge last-writer-wins, which is all the detail cache needs.
type BookRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	FindOrCreate(ctx context.Context, title, author string, isbn *string) (*model.Book, error)
	SaveEnrichment(ctx context.Context, b *model.Book) error
	ListUnenriched(ctx context.Context, limit int) ([]model.Book, error)
}

type MovieRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Movie, error)
	FindOrCreate(ctx context.Context, title string, director *string, year *int) (*model.Movie, error)
	SaveEnrichment(ctx context.Context, m *model.Movie) error
	ListUnenriched(ctx context.Context, limit int) ([]model.Movie, error)
}

type TVShowRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.TVShow, error)
	FindOrCreate(ctx context.Context, title string, creator *string, firstAirYear *int) (*model.TVShow, error)
	SaveEnrichment(ctx context.Context, t *model.TVShow) error
	ListUnenriched(ctx context.Context, limit int) ([]model.TVShow, error)
}

type PodcastRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Podcast, error)
	FindOrCreate(ctx context.Context, title string, publisher *string) (*model.Podcast, error)
	SaveEnrichment(ctx context.Context, p *model.Podcast) error
	ListUnenriched(ctx context.Context, limit int) ([]model.Podcast, error)
}

type ArticleRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Article, error)
	FindOrCreate(ctx context.Context, title, url string) (*model.Article, error)
	SaveEnrichment(ctx context.Context, a *model.Article) error
	ListUnenriched(ctx context.Context, limit int) ([]model.Article, error)
}
