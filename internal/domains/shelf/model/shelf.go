package model

import (
	"errors"
	"time"

	"github.com/google/uuid"

	catalog "mediashelf-backend/internal/domains/catalog/model"
)

var (
	ErrNotFound  = errors.New("shelf entry not found")
	ErrDuplicate = errors.New("entity already on shelf")
)

// Status tracks where the user is with an entry.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
	StatusAbandoned  Status = "abandoned"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusQueued, StatusInProgress, StatusFinished, StatusAbandoned:
		return true
	}
	return false
}

// ShelfEntry is the per-user join row onto a shared catalog entity. User
// fields here survive independently of the entity's enrichment state.
type ShelfEntry struct {
	ID       uuid.UUID    `json:"id" db:"id"`
	UserID   uuid.UUID    `json:"user_id" db:"user_id"`
	Kind     catalog.Kind `json:"kind" db:"kind"`
	EntityID uuid.UUID    `json:"entity_id" db:"entity_id"`
	Status   Status       `json:"status" db:"status"`
	Rating   *int         `json:"rating,omitempty" db:"rating"`
	Notes    *string      `json:"notes,omitempty" db:"notes"`
	Priority int          `json:"priority" db:"priority"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
