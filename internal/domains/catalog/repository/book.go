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

type bookRepository struct {
	pool *pgxpool.Pool
}

func NewBookRepository(pool *pgxpool.Pool) BookRepository {
	return &bookRepository{pool: pool}
}

const bookColumns = `
	id, title, author, isbn,
	cover_url, description, publisher, published_year, pages,
	genre, subjects, ratings, open_library_key, google_books_id, info_link,
	details_fetched_at, created_at, updated_at`

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.ISBN,
		&b.CoverURL, &b.Description, &b.Publisher, &b.PublishedYear, &b.Pages,
		&b.Genre, &b.Subjects, &b.Ratings, &b.OpenLibraryKey, &b.GoogleBooksID, &b.InfoLink,
		&b.DetailsFetchedAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("scan book: %w", err)
	}
	return &b, nil
}

func (r *bookRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	return scanBook(r.pool.QueryRow(ctx, query, id))
}

// FindOrCreate looks an entity up by its identifying fields and inserts a bare
// row when none exists. The unique index on (lower(title), lower(author))
// makes the insert race-safe: a concurrent creator wins and we re-read.
func (r *bookRepository) FindOrCreate(ctx context.Context, title, author string, isbn *string) (*model.Book, error) {
	query := `
		INSERT INTO books (id, title, author, isbn)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (lower(title), lower(author)) DO UPDATE SET title = books.title
		RETURNING ` + bookColumns
	return scanBook(r.pool.QueryRow(ctx, query, uuid.New(), title, author, isbn))
}

// SaveEnrichment writes every enrichment column plus the fetch stamp in one
// statement. Callers decide merge vs replace before calling; the write itself
// is a plain last-writer-wins update keyed by id.
func (r *bookRepository) SaveEnrichment(ctx context.Context, b *model.Book) error {
	query := `
		UPDATE books SET
			cover_url = $2, description = $3, publisher = $4, published_year = $5,
			pages = $6, genre = $7, subjects = $8, ratings = $9,
			open_library_key = $10, google_books_id = $11, info_link = $12,
			details_fetched_at = $13, updated_at = now()
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query,
		b.ID,
		b.CoverURL, b.Description, b.Publisher, b.PublishedYear,
		b.Pages, b.Genre, b.Subjects, b.Ratings,
		b.OpenLibraryKey, b.GoogleBooksID, b.InfoLink,
		b.DetailsFetchedAt,
	)
	if err != nil {
		return fmt.Errorf("save book enrichment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *bookRepository) ListUnenriched(ctx context.Context, limit int) ([]model.Book, error) {
	query := `SELECT ` + bookColumns + `
		FROM books
		WHERE details_fetched_at IS NULL
		ORDER BY created_at ASC
		LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list unenriched books: %w", err)
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *b)
	}
	return books, rows.Err()
}
