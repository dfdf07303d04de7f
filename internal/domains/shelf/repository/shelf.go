package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"mediashelf-backend/internal/domains/shelf/model"
)

type RepositoryInterface interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ShelfEntry, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*model.ShelfEntry, error)
	Insert(ctx context.Context, entry *model.ShelfEntry) error
	Update(ctx context.Context, entry *model.ShelfEntry) error
	Remove(ctx context.Context, userID, id uuid.UUID) error
}

type shelfRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &shelfRepository{pool: pool}
}

const shelfColumns = `
	id, user_id, kind, entity_id, status, rating, notes, priority,
	created_at, updated_at`

func scanEntry(row pgx.Row) (*model.ShelfEntry, error) {
	var e model.ShelfEntry
	err := row.Scan(
		&e.ID, &e.UserID, &e.Kind, &e.EntityID, &e.Status, &e.Rating, &e.Notes, &e.Priority,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("scan shelf entry: %w", err)
	}
	return &e, nil
}

// ListByUser returns the shelf in insertion order, which is also the order
// the walker processes it in.
func (r *shelfRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ShelfEntry, error) {
	query := `SELECT ` + shelfColumns + ` FROM shelf_entries WHERE user_id = $1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list shelf: %w", err)
	}
	defer rows.Close()

	var entries []model.ShelfEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (r *shelfRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*model.ShelfEntry, error) {
	query := `SELECT ` + shelfColumns + ` FROM shelf_entries WHERE id = $1 AND user_id = $2`
	return scanEntry(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *shelfRepository) Insert(ctx context.Context, entry *model.ShelfEntry) error {
	query := `
		INSERT INTO shelf_entries (id, user_id, kind, entity_id, status, rating, notes, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		entry.ID, entry.UserID, entry.Kind, entry.EntityID,
		entry.Status, entry.Rating, entry.Notes, entry.Priority,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505: unique violation on (user_id, kind, entity_id)
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrDuplicate
		}
		return fmt.Errorf("insert shelf entry: %w", err)
	}
	return nil
}

func (r *shelfRepository) Update(ctx context.Context, entry *model.ShelfEntry) error {
	query := `
		UPDATE shelf_entries SET
			status = $3, rating = $4, notes = $5, priority = $6, updated_at = now()
		WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query,
		entry.ID, entry.UserID, entry.Status, entry.Rating, entry.Notes, entry.Priority)
	if err != nil {
		return fmt.Errorf("update shelf entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *shelfRepository) Remove(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM shelf_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("remove shelf entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
