package model

import (
	"time"

	"github.com/google/uuid"
)

// Podcast catalog entity. Publisher is the show-level artist/network name.
type Podcast struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Publisher *string   `json:"publisher,omitempty" db:"publisher"`

	// Enrichment fields
	ArtworkURL   *string `json:"artwork_url,omitempty" db:"artwork_url"`
	Description  *string `json:"description,omitempty" db:"description"`
	FeedURL      *string `json:"feed_url,omitempty" db:"feed_url"`
	Genre        *string `json:"genre,omitempty" db:"genre"`
	EpisodeCount *int    `json:"episode_count,omitempty" db:"episode_count"`
	ITunesID     *int64  `json:"itunes_id,omitempty" db:"itunes_id"`
	InfoLink     *string `json:"info_link,omitempty" db:"info_link"`

	DetailsFetchedAt *time.Time `json:"details_fetched_at,omitempty" db:"details_fetched_at"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

type PodcastDetails struct {
	ArtworkURL   *string
	Description  *string
	FeedURL      *string
	Genre        *string
	EpisodeCount *int
	ITunesID     *int64
	InfoLink     *string
	Publisher    *string
}

func MergePodcastDetails(p *Podcast, d PodcastDetails) {
	if d.ArtworkURL != nil {
		p.ArtworkURL = d.ArtworkURL
	}
	if d.Description != nil {
		p.Description = d.Description
	}
	if d.FeedURL != nil {
		p.FeedURL = d.FeedURL
	}
	if d.Genre != nil {
		p.Genre = d.Genre
	}
	if d.EpisodeCount != nil {
		p.EpisodeCount = d.EpisodeCount
	}
	if d.ITunesID != nil {
		p.ITunesID = d.ITunesID
	}
	if d.InfoLink != nil {
		p.InfoLink = d.InfoLink
	}
	if d.Publisher != nil {
		p.Publisher = d.Publisher
	}
}

func ApplyPodcastDetails(p *Podcast, d PodcastDetails) {
	p.ArtworkURL = d.ArtworkURL
	p.Description = d.Description
	p.FeedURL = d.FeedURL
	p.Genre = d.Genre
	p.EpisodeCount = d.EpisodeCount
	p.ITunesID = d.ITunesID
	p.InfoLink = d.InfoLink
	if d.Publisher != nil {
		p.Publisher = d.Publisher
	}
}
