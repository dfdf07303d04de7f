package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "mediashelf-backend/internal/domains/catalog/model"
	emodel "mediashelf-backend/internal/domains/enrichment/model"
)

func newTMDBStub(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/movie":
			assert.Equal(t, "Arrival", r.URL.Query().Get("query"))
			w.Write([]byte(`{"results":[{"id":329865}]}`))
		case "/movie/329865":
			w.Write([]byte(`{
				"id": 329865,
				"overview": "A linguist is recruited by the military.",
				"poster_path": "/arrival.jpg",
				"release_date": "2016-11-10",
				"runtime": 116,
				"vote_average": 7.9,
				"vote_count": 18000,
				"imdb_id": "tt2543164",
				"genres": [{"name":"Science Fiction"},{"name":"Drama"}],
				"credits": {
					"cast": [{"name":"Amy Adams"},{"name":"Jeremy Renner"}],
					"crew": [{"name":"Denis Villeneuve","job":"Director"}]
				}
			}`))
		default:
			t.Errorf("unexpected tmdb path %s", r.URL.Path)
		}
	}))
}

const omdbRatingsBody = `{
	"Response": "True",
	"imdbVotes": "761,432",
	"Ratings": [
		{"Source": "Internet Movie Database", "Value": "7.9/10"},
		{"Source": "Rotten Tomatoes", "Value": "94%"},
		{"Source": "Metacritic", "Value": "81/100"}
	]
}`

func TestMovieProviderNormalizesTMDBAndOMDB(t *testing.T) {
	tmdb := newTMDBStub(t)
	defer tmdb.Close()

	omdb := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tt2543164", r.URL.Query().Get("i"))
		w.Write([]byte(omdbRatingsBody))
	}))
	defer omdb.Close()

	p := NewMovieProvider(
		TMDBConfig{APIKey: "k", BaseURL: tmdb.URL, ImageURL: "https://img.example"},
		OMDBConfig{APIKey: "k", BaseURL: omdb.URL},
		noCooldown(),
	)

	details, err := p.FetchDetails(context.Background(), &catalog.Movie{Title: "Arrival"})
	require.NoError(t, err)

	assert.Equal(t, int64(329865), *details.TMDBID)
	assert.Equal(t, "https://img.example/arrival.jpg", *details.PosterURL)
	assert.Equal(t, 116, *details.Runtime)
	assert.Equal(t, "tt2543164", *details.IMDBID)
	assert.Equal(t, "https://www.imdb.com/title/tt2543164", *details.InfoLink)
	assert.Equal(t, 2016, *details.Year)
	assert.Equal(t, "Denis Villeneuve", *details.Director)
	assert.Equal(t, []string{"Science Fiction", "Drama"}, details.Genres)
	assert.Equal(t, "Science Fiction", *details.Genre)
	assert.Equal(t, []string{"Amy Adams", "Jeremy Renner"}, details.Cast)

	require.Len(t, details.Ratings, 4, "TMDB score plus all three OMDb sources")
	assert.Equal(t, "TMDB", details.Ratings[0].Source)
	assert.Equal(t, "IMDb", details.Ratings[1].Source)
	assert.Equal(t, 761432, *details.Ratings[1].Count)
	assert.Equal(t, "Rotten Tomatoes", details.Ratings[2].Source)
	assert.Equal(t, "94%", details.Ratings[2].Display)
	assert.True(t, details.Ratings[2].Score.Equal(decimal.NewFromInt(94)))
	assert.Equal(t, "Metacritic", details.Ratings[3].Source)
}

func TestMovieProviderOMDBQuotaBodyIsRateLimit(t *testing.T) {
	// OMDb ships the same quota payload on a 200 or a 401 depending on the
	// endpoint; both must surface as the rate-limit signal.
	for _, status := range []int{http.StatusOK, http.StatusUnauthorized} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			tmdb := newTMDBStub(t)
			defer tmdb.Close()

			omdb := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				w.Write([]byte(`{"Response":"False","Error":"Request limit reached!"}`))
			}))
			defer omdb.Close()

			p := NewMovieProvider(
				TMDBConfig{APIKey: "k", BaseURL: tmdb.URL},
				OMDBConfig{APIKey: "k", BaseURL: omdb.URL},
				noCooldown(),
			)

			_, err := p.FetchDetails(context.Background(), &catalog.Movie{Title: "Arrival"})
			rle, ok := emodel.AsRateLimit(err)
			require.True(t, ok, "quota body must surface as the rate-limit signal")
			assert.Equal(t, "omdb", rle.Provider)
			assert.Equal(t, "Request limit reached!", rle.Message)
		})
	}
}

func TestMovieProviderTMDB429PropagatesBeforeDetailCall(t *testing.T) {
	tmdb := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer tmdb.Close()

	p := NewMovieProvider(TMDBConfig{APIKey: "k", BaseURL: tmdb.URL}, OMDBConfig{}, noCooldown())

	_, err := p.FetchDetails(context.Background(), &catalog.Movie{Title: "Arrival"})
	rle, ok := emodel.AsRateLimit(err)
	require.True(t, ok)
	assert.Equal(t, "tmdb", rle.Provider)
}

func TestMovieProviderNoMatchIsEmptySuccess(t *testing.T) {
	tmdb := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer tmdb.Close()

	p := NewMovieProvider(TMDBConfig{APIKey: "k", BaseURL: tmdb.URL}, OMDBConfig{}, noCooldown())

	details, err := p.FetchDetails(context.Background(), &catalog.Movie{Title: "Completely Unknown Film"})
	require.NoError(t, err)
	assert.Equal(t, catalog.MovieDetails{}, details)
}

func TestParseRatingValue(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"8.5/10", "8.5", true},
		{"94%", "94", true},
		{"81/100", "81", true},
		{"7.9", "7.9", true},
		{"N/A", "", false},
	}
	for _, tc := range cases {
		got, ok := parseRatingValue(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if tc.ok {
			want, err := decimal.NewFromString(tc.want)
			require.NoError(t, err)
			assert.True(t, got.Equal(want), tc.in)
		}
	}
}
