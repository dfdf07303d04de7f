package provider

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// tmdbClient is the shared TMDB surface used by the movie and TV providers.
// TMDB allows roughly 50 requests/second but a much lower sustained rate is
// plenty for one-entity-at-a-time enrichment.
type tmdbClient struct {
	http     *upstreamClient
	baseURL  string
	imageURL string
	apiKey   string
}

type TMDBConfig struct {
	APIKey   string
	BaseURL  string // default https://api.themoviedb.org/3
	ImageURL string // default https://image.tmdb.org/t/p/w500
}

func newTMDBClient(cfg TMDBConfig, cooldown *CooldownStore) *tmdbClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.themoviedb.org/3"
	}
	if cfg.ImageURL == "" {
		cfg.ImageURL = "https://image.tmdb.org/t/p/w500"
	}
	return &tmdbClient{
		http:     newUpstreamClient("tmdb", 4, 8, cooldown),
		baseURL:  cfg.BaseURL,
		imageURL: cfg.ImageURL,
		apiKey:   cfg.APIKey,
	}
}

type tmdbSearchResult struct {
	Results []struct {
		ID           int64  `json:"id"`
		Overview     string `json:"overview"`
		PosterPath   string `json:"poster_path"`
		ReleaseDate  string `json:"release_date"`
		FirstAirDate string `json:"first_air_date"`
	} `json:"results"`
}

type tmdbCredits struct {
	Cast []struct {
		Name string `json:"name"`
	} `json:"cast"`
	Crew []struct {
		Name string `json:"name"`
		Job  string `json:"job"`
	} `json:"crew"`
}

type tmdbMovieDetail struct {
	ID          int64   `json:"id"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	Runtime     int     `json:"runtime"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	IMDBID      string  `json:"imdb_id"`
	Genres      []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Credits tmdbCredits `json:"credits"`
}

type tmdbTVDetail struct {
	ID               int64   `json:"id"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	FirstAirDate     string  `json:"first_air_date"`
	NumberOfSeasons  int     `json:"number_of_seasons"`
	NumberOfEpisodes int     `json:"number_of_episodes"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Genres           []struct {
		Name string `json:"name"`
	} `json:"genres"`
	CreatedBy []struct {
		Name string `json:"name"`
	} `json:"created_by"`
	ExternalIDs struct {
		IMDBID string `json:"imdb_id"`
	} `json:"external_ids"`
	Credits tmdbCredits `json:"credits"`
}

func (c *tmdbClient) searchMovie(ctx context.Context, title string, year *int) (int64, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("query", title)
	if year != nil {
		q.Set("year", strconv.Itoa(*year))
	}
	var resp tmdbSearchResult
	if err := c.http.getJSON(ctx, c.baseURL+"/search/movie?"+q.Encode(), &resp); err != nil {
		return 0, err
	}
	if len(resp.Results) == 0 {
		return 0, fmt.Errorf("tmdb: no movie match for %q", title)
	}
	return resp.Results[0].ID, nil
}

func (c *tmdbClient) movieDetail(ctx context.Context, id int64) (*tmdbMovieDetail, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("append_to_response", "credits")
	var detail tmdbMovieDetail
	if err := c.http.getJSON(ctx, fmt.Sprintf("%s/movie/%d?%s", c.baseURL, id, q.Encode()), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *tmdbClient) searchTV(ctx context.Context, title string, firstAirYear *int) (int64, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("query", title)
	if firstAirYear != nil {
		q.Set("first_air_date_year", strconv.Itoa(*firstAirYear))
	}
	var resp tmdbSearchResult
	if err := c.http.getJSON(ctx, c.baseURL+"/search/tv?"+q.Encode(), &resp); err != nil {
		return 0, err
	}
	if len(resp.Results) == 0 {
		return 0, fmt.Errorf("tmdb: no tv match for %q", title)
	}
	return resp.Results[0].ID, nil
}

func (c *tmdbClient) tvDetail(ctx context.Context, id int64) (*tmdbTVDetail, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("append_to_response", "credits,external_ids")
	var detail tmdbTVDetail
	if err := c.http.getJSON(ctx, fmt.Sprintf("%s/tv/%d?%s", c.baseURL, id, q.Encode()), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *tmdbClient) posterURL(path string) string {
	if path == "" {
		return ""
	}
	return c.imageURL + path
}

func yearFromDate(date string) *int {
	if len(date) < 4 {
		return nil
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil || y == 0 {
		return nil
	}
	return &y
}

func castNames(credits tmdbCredits, limit int) []string {
	var names []string
	for i, c := range credits.Cast {
		if i >= limit {
			break
		}
		names = append(names, c.Name)
	}
	return names
}

func directorName(credits tmdbCredits) *string {
	for _, c := range credits.Crew {
		if c.Job == "Director" {
			name := c.Name
			return &name
		}
	}
	return nil
}
