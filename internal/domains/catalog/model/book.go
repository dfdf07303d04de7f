package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Book is a shared catalog entity. Identifying fields (Title, Author, ISBN)
// are populated at find-or-create time; everything below the enrichment
// divider is nullable and only filled in by the detail cache.
// DetailsFetchedAt is the single source of truth for cache-hit decisions:
// nil means never successfully enriched.
type Book struct {
	ID     uuid.UUID `json:"id" db:"id"`
	Title  string    `json:"title" db:"title"`
	Author string    `json:"author" db:"author"`
	ISBN   *string   `json:"isbn,omitempty" db:"isbn"`

	// Enrichment fields
	CoverURL       *string        `json:"cover_url,omitempty" db:"cover_url"`
	Description    *string        `json:"description,omitempty" db:"description"`
	Publisher      *string        `json:"publisher,omitempty" db:"publisher"`
	PublishedYear  *int           `json:"published_year,omitempty" db:"published_year"`
	Pages          *int           `json:"pages,omitempty" db:"pages"`
	Genre          *string        `json:"genre,omitempty" db:"genre"`
	Subjects       pq.StringArray `json:"subjects,omitempty" db:"subjects"`
	Ratings        Ratings        `json:"ratings,omitempty" db:"ratings"`
	OpenLibraryKey *string        `json:"open_library_key,omitempty" db:"open_library_key"`
	GoogleBooksID  *string        `json:"google_books_id,omitempty" db:"google_books_id"`
	InfoLink       *string        `json:"info_link,omitempty" db:"info_link"`

	DetailsFetchedAt *time.Time `json:"details_fetched_at,omitempty" db:"details_fetched_at"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// BookDetails is the patch a provider client returns for a book. Nil fields
// mean "the provider had nothing for this"; how that is interpreted depends
// on merge vs apply.
type BookDetails struct {
	CoverURL       *string
	Description    *string
	Publisher      *string
	PublishedYear  *int
	Pages          *int
	Genre          *string
	Subjects       []string
	Ratings        Ratings
	OpenLibraryKey *string
	GoogleBooksID  *string
	InfoLink       *string
}

// MergeBookDetails applies a first-enrichment patch: non-nil patch fields
// overwrite, nil patch fields preserve whatever the row already holds.
func MergeBookDetails(b *Book, p BookDetails) {
	if p.CoverURL != nil {
		b.CoverURL = p.CoverURL
	}
	if p.Description != nil {
		b.Description = p.Description
	}
	if p.Publisher != nil {
		b.Publisher = p.Publisher
	}
	if p.PublishedYear != nil {
		b.PublishedYear = p.PublishedYear
	}
	if p.Pages != nil {
		b.Pages = p.Pages
	}
	if p.Genre != nil {
		b.Genre = p.Genre
	}
	if p.Subjects != nil {
		b.Subjects = pq.StringArray(p.Subjects)
	}
	if p.Ratings != nil {
		b.Ratings = p.Ratings
	}
	if p.OpenLibraryKey != nil {
		b.OpenLibraryKey = p.OpenLibraryKey
	}
	if p.GoogleBooksID != nil {
		b.GoogleBooksID = p.GoogleBooksID
	}
	if p.InfoLink != nil {
		b.InfoLink = p.InfoLink
	}
}

// ApplyBookDetails replaces every enrichment field with the patch, clearing
// fields the patch does not carry. Used by force refetch only.
func ApplyBookDetails(b *Book, p BookDetails) {
	b.CoverURL = p.CoverURL
	b.Description = p.Description
	b.Publisher = p.Publisher
	b.PublishedYear = p.PublishedYear
	b.Pages = p.Pages
	b.Genre = p.Genre
	b.Subjects = pq.StringArray(p.Subjects)
	b.Ratings = p.Ratings
	b.OpenLibraryKey = p.OpenLibraryKey
	b.GoogleBooksID = p.GoogleBooksID
	b.InfoLink = p.InfoLink
}
