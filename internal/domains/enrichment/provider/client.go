package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	emodel "mediashelf-backend/internal/domains/enrichment/model"
)

const maxResponseBytes = 4 << 20

// upstreamClient carries the outbound concerns every provider shares: one
// http.Client with a timeout, a token-bucket limiter so a walker run cannot
// burst an upstream, cooldown short-circuiting, and uniform 429 handling.
type upstreamClient struct {
	name     string
	client   *http.Client
	limiter  *rate.Limiter
	cooldown *CooldownStore

	// extraRateLimitStatus marks an additional status code that means
	// "throttled" for this upstream (iTunes answers 403 when it throttles).
	extraRateLimitStatus int
}

func newUpstreamClient(name string, perSecond float64, burst int, cooldown *CooldownStore) *upstreamClient {
	return &upstreamClient{
		name:     name,
		client:   &http.Client{Timeout: 15 * time.Second},
		limiter:  rate.NewLimiter(rate.Limit(perSecond), burst),
		cooldown: cooldown,
	}
}

// get performs a GET and returns the body. A 429 (or any status the caller
// later maps) arms the cooldown and returns the rate-limit signal; 404 is
// reported as errNotFound so callers can absorb it as "no data".
func (c *upstreamClient) get(ctx context.Context, url string) ([]byte, error) {
	if msg, active := c.cooldown.Active(ctx, c.name); active {
		return nil, emodel.NewRateLimitError(c.name, msg, 0)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: limiter wait: %w", c.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", c.name, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "mediashelf/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests,
		c.extraRateLimitStatus != 0 && resp.StatusCode == c.extraRateLimitStatus:
		rle := emodel.NewRateLimitError(c.name, "", parseRetryAfter(resp.Header.Get("Retry-After")))
		c.cooldown.Arm(ctx, rle)
		return nil, rle
	case resp.StatusCode == http.StatusNotFound:
		return nil, errNotFound
	case resp.StatusCode != http.StatusOK:
		// Keep the body: some upstreams put a meaningful error payload on
		// non-200 answers (OMDb reports a spent quota on a 401).
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		return nil, &statusError{name: c.name, status: resp.StatusCode, body: body}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", c.name, err)
	}
	return body, nil
}

// getJSON fetches and decodes into dest.
func (c *upstreamClient) getJSON(ctx context.Context, url string, dest interface{}) error {
	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.name, err)
	}
	return nil
}

// rateLimited builds the signal for a quota condition detected in a response
// body rather than a status code (some upstreams answer 200/401 with an
// error payload) and arms the cooldown.
func (c *upstreamClient) rateLimited(ctx context.Context, message string) *emodel.RateLimitError {
	rle := emodel.NewRateLimitError(c.name, message, 0)
	c.cooldown.Arm(ctx, rle)
	return rle
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	if secs, err := strconv.Atoi(header); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// errNotFound marks a genuine upstream not-found; always absorbed by the
// provider that sees it.
var errNotFound = fmt.Errorf("upstream resource not found")

// statusError is a non-200 answer with its body retained, so a provider can
// recognize error payloads the upstream ships on unexpected statuses.
type statusError struct {
	name   string
	status int
	body   []byte
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.name, e.status)
}
