package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "mediashelf-backend/internal/domains/catalog/model"
	emodel "mediashelf-backend/internal/domains/enrichment/model"
)

func TestPodcastProviderNormalizesITunesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "podcast", r.URL.Query().Get("media"))
		w.Write([]byte(`{
			"results": [{
				"collectionId": 394775318,
				"artistName": "Roman Mars",
				"collectionName": "99% Invisible",
				"feedUrl": "https://feeds.example/99pi",
				"artworkUrl600": "https://img.example/99pi.jpg",
				"primaryGenreName": "Design",
				"trackCount": 560,
				"collectionViewUrl": "https://podcasts.apple.com/podcast/id394775318"
			}]
		}`))
	}))
	defer srv.Close()

	p := NewPodcastProvider(PodcastProviderConfig{ITunesURL: srv.URL}, noCooldown())

	details, err := p.FetchDetails(context.Background(), &catalog.Podcast{Title: "99% Invisible"})
	require.NoError(t, err)

	assert.Equal(t, int64(394775318), *details.ITunesID)
	assert.Equal(t, "Roman Mars", *details.Publisher)
	assert.Equal(t, "https://feeds.example/99pi", *details.FeedURL)
	assert.Equal(t, "https://img.example/99pi.jpg", *details.ArtworkURL)
	assert.Equal(t, "Design", *details.Genre)
	assert.Equal(t, 560, *details.EpisodeCount)
}

func TestPodcastProviderTreats403AsRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	p := NewPodcastProvider(PodcastProviderConfig{ITunesURL: srv.URL}, noCooldown())

	_, err := p.FetchDetails(context.Background(), &catalog.Podcast{Title: "99% Invisible"})
	rle, ok := emodel.AsRateLimit(err)
	require.True(t, ok, "iTunes throttles with 403")
	assert.Equal(t, "itunes", rle.Provider)
}

func TestPodcastProviderNoMatchIsEmptySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	p := NewPodcastProvider(PodcastProviderConfig{ITunesURL: srv.URL}, noCooldown())

	details, err := p.FetchDetails(context.Background(), &catalog.Podcast{Title: "Nope"})
	require.NoError(t, err)
	assert.Equal(t, catalog.PodcastDetails{}, details)
}
