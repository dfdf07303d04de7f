package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	catalog "mediashelf-backend/internal/domains/catalog/model"
)

// omdbClient pulls the named rating sources (IMDb, Rotten Tomatoes,
// Metacritic) OMDb aggregates. OMDb signals an exhausted daily quota with an
// HTTP 200/401 whose body says "Request limit reached!", so quota detection
// has to look at the payload, not just the status.
type omdbClient struct {
	http    *upstreamClient
	baseURL string
	apiKey  string
}

type OMDBConfig struct {
	APIKey  string
	BaseURL string // default https://www.omdbapi.com
}

func newOMDBClient(cfg OMDBConfig, cooldown *CooldownStore) *omdbClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.omdbapi.com"
	}
	return &omdbClient{
		http:    newUpstreamClient("omdb", 1, 2, cooldown),
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

type omdbResponse struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
	Ratings  []struct {
		Source string `json:"Source"`
		Value  string `json:"Value"`
	} `json:"Ratings"`
	IMDBVotes string `json:"imdbVotes"`
}

// ratingsByIMDBID returns every rating source OMDb knows for the title.
// A quota body becomes the rate-limit signal; anything else is a plain error
// for the caller to absorb.
func (c *omdbClient) ratingsByIMDBID(ctx context.Context, imdbID string) (catalog.Ratings, error) {
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("i", imdbID)
	return c.fetchRatings(ctx, q)
}

func (c *omdbClient) ratingsByTitle(ctx context.Context, title string, year *int) (catalog.Ratings, error) {
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("t", title)
	if year != nil {
		q.Set("y", strconv.Itoa(*year))
	}
	return c.fetchRatings(ctx, q)
}

func (c *omdbClient) fetchRatings(ctx context.Context, q url.Values) (catalog.Ratings, error) {
	body, err := c.http.get(ctx, c.baseURL+"/?"+q.Encode())
	if err != nil {
		// A spent daily quota arrives as a 401 carrying the same
		// "Request limit reached!" payload as the 200 variant.
		var se *statusError
		if errors.As(err, &se) {
			var resp omdbResponse
			if json.Unmarshal(se.body, &resp) == nil && isQuotaBody(resp) {
				return nil, c.http.rateLimited(ctx, resp.Error)
			}
		}
		return nil, err
	}

	var resp omdbResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("omdb: decode response: %w", err)
	}
	if resp.Response == "False" {
		if isQuotaBody(resp) {
			return nil, c.http.rateLimited(ctx, resp.Error)
		}
		return nil, errNotFound
	}

	var ratings catalog.Ratings
	for _, r := range resp.Ratings {
		entry := catalog.RatingEntry{Source: r.Source, Display: r.Value}
		if score, ok := parseRatingValue(r.Value); ok {
			entry.Score = &score
		}
		if r.Source == "Internet Movie Database" {
			entry.Source = "IMDb"
			if votes := parseVotes(resp.IMDBVotes); votes > 0 {
				entry.Count = &votes
			}
		}
		ratings = append(ratings, entry)
	}
	return ratings, nil
}

// isQuotaBody reports whether an OMDb payload is the request-limit error,
// regardless of which HTTP status carried it.
func isQuotaBody(resp omdbResponse) bool {
	return resp.Response == "False" && strings.Contains(strings.ToLower(resp.Error), "request limit")
}

// parseRatingValue normalizes "8.5/10", "94%" and "74/100" to a decimal on
// the source's own scale.
func parseRatingValue(display string) (decimal.Decimal, bool) {
	display = strings.TrimSpace(display)
	if v, ok := strings.CutSuffix(display, "%"); ok {
		d, err := decimal.NewFromString(v)
		return d, err == nil
	}
	if num, _, ok := strings.Cut(display, "/"); ok {
		d, err := decimal.NewFromString(strings.TrimSpace(num))
		return d, err == nil
	}
	d, err := decimal.NewFromString(display)
	return d, err == nil
}

func parseVotes(s string) int {
	s = strings.ReplaceAll(s, ",", "")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
