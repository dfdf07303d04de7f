package provider

import (
	"context"
	"net/url"

	"github.com/rs/zerolog/log"

	catalog "mediashelf-backend/internal/domains/catalog/model"
	emodel "mediashelf-backend/internal/domains/enrichment/model"
)

// podcastProvider wraps the iTunes Search API. Apple throttles this endpoint
// aggressively (about 20 calls/minute) and answers 403 as well as 429 when it
// does, so both are mapped to the rate-limit signal.
type podcastProvider struct {
	itunes  *upstreamClient
	baseURL string
}

type PodcastProviderConfig struct {
	ITunesURL string // default https://itunes.apple.com
}

func NewPodcastProvider(cfg PodcastProviderConfig, cooldown *CooldownStore) PodcastProvider {
	if cfg.ITunesURL == "" {
		cfg.ITunesURL = "https://itunes.apple.com"
	}
	itunes := newUpstreamClient("itunes", 0.3, 1, cooldown)
	itunes.extraRateLimitStatus = 403
	return &podcastProvider{
		itunes:  itunes,
		baseURL: cfg.ITunesURL,
	}
}

type itunesSearchResponse struct {
	Results []struct {
		CollectionID      int64  `json:"collectionId"`
		ArtistName        string `json:"artistName"`
		CollectionName    string `json:"collectionName"`
		FeedURL           string `json:"feedUrl"`
		ArtworkURL600     string `json:"artworkUrl600"`
		PrimaryGenreName  string `json:"primaryGenreName"`
		TrackCount        int    `json:"trackCount"`
		CollectionViewURL string `json:"collectionViewUrl"`
	} `json:"results"`
}

func (p *podcastProvider) FetchDetails(ctx context.Context, podcast *catalog.Podcast) (catalog.PodcastDetails, error) {
	q := url.Values{}
	q.Set("term", podcast.Title)
	q.Set("media", "podcast")
	q.Set("limit", "1")

	var resp itunesSearchResponse
	if err := p.itunes.getJSON(ctx, p.baseURL+"/search?"+q.Encode(), &resp); err != nil {
		if _, ok := emodel.AsRateLimit(err); ok {
			return catalog.PodcastDetails{}, err
		}
		log.Warn().Err(err).Str("title", podcast.Title).Msg("itunes contributed nothing")
		return catalog.PodcastDetails{}, nil
	}
	if len(resp.Results) == 0 {
		log.Warn().Str("title", podcast.Title).Msg("itunes: no podcast match")
		return catalog.PodcastDetails{}, nil
	}
	r := resp.Results[0]

	var details catalog.PodcastDetails
	if r.CollectionID != 0 {
		details.ITunesID = &r.CollectionID
	}
	if r.ArtworkURL600 != "" {
		details.ArtworkURL = &r.ArtworkURL600
	}
	if r.FeedURL != "" {
		details.FeedURL = &r.FeedURL
	}
	if r.PrimaryGenreName != "" {
		details.Genre = &r.PrimaryGenreName
	}
	if r.TrackCount > 0 {
		details.EpisodeCount = &r.TrackCount
	}
	if r.CollectionViewURL != "" {
		details.InfoLink = &r.CollectionViewURL
	}
	if r.ArtistName != "" {
		details.Publisher = &r.ArtistName
	}
	return details, nil
}
