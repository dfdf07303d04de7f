package model

import (
	"time"

	"github.com/google/uuid"
)

// Article catalog entity. URL is the identifying field; Title may start out
// as whatever the user pasted and gets corrected by enrichment.
type Article struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Title string    `json:"title" db:"title"`
	URL   string    `json:"url" db:"url"`

	// Enrichment fields
	Author       *string `json:"author,omitempty" db:"author"`
	Description  *string `json:"description,omitempty" db:"description"`
	ImageURL     *string `json:"image_url,omitempty" db:"image_url"`
	SiteName     *string `json:"site_name,omitempty" db:"site_name"`
	Genre        *string `json:"genre,omitempty" db:"genre"`
	PublishedAt  *string `json:"published_at,omitempty" db:"published_at"`
	CanonicalURL *string `json:"canonical_url,omitempty" db:"canonical_url"`

	DetailsFetchedAt *time.Time `json:"details_fetched_at,omitempty" db:"details_fetched_at"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

type ArticleDetails struct {
	Title        *string
	Author       *string
	Description  *string
	ImageURL     *string
	SiteName     *string
	Genre        *string
	PublishedAt  *string
	CanonicalURL *string
}

func MergeArticleDetails(a *Article, d ArticleDetails) {
	if d.Title != nil && *d.Title != "" {
		a.Title = *d.Title
	}
	if d.Author != nil {
		a.Author = d.Author
	}
	if d.Description != nil {
		a.Description = d.Description
	}
	if d.ImageURL != nil {
		a.ImageURL = d.ImageURL
	}
	if d.SiteName != nil {
		a.SiteName = d.SiteName
	}
	if d.Genre != nil {
		a.Genre = d.Genre
	}
	if d.PublishedAt != nil {
		a.PublishedAt = d.PublishedAt
	}
	if d.CanonicalURL != nil {
		a.CanonicalURL = d.CanonicalURL
	}
}

func ApplyArticleDetails(a *Article, d ArticleDetails) {
	if d.Title != nil && *d.Title != "" {
		a.Title = *d.Title
	}
	a.Author = d.Author
	a.Description = d.Description
	a.ImageURL = d.ImageURL
	a.SiteName = d.SiteName
	a.Genre = d.Genre
	a.PublishedAt = d.PublishedAt
	a.CanonicalURL = d.CanonicalURL
}
