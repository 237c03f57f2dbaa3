package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/moviemates/backend/internal/logging"
)

// HTTPClient implements Client against a TMDB-compatible REST API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewHTTPClient constructs a catalog client. The timeout bounds each request;
// the upstream contract itself has no latency guarantees.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type listResponse struct {
	Results []Movie `json:"results"`
}

// GetByID fetches full details, including credits, for a single movie.
func (c *HTTPClient) GetByID(ctx context.Context, id int64) (MovieDetails, error) {
	endpoint := fmt.Sprintf("%s/movie/%d?api_key=%s&language=en-US&append_to_response=credits", c.baseURL, id, url.QueryEscape(c.apiKey))

	var details MovieDetails
	if err := c.get(ctx, endpoint, &details); err != nil {
		return MovieDetails{}, err
	}
	return details, nil
}

// Search runs a free-text title search and returns matching movies.
func (c *HTTPClient) Search(ctx context.Context, query string) ([]Movie, error) {
	endpoint := fmt.Sprintf("%s/search/movie?api_key=%s&query=%s", c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(query))

	var payload listResponse
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// Trending returns this week's trending movies.
func (c *HTTPClient) Trending(ctx context.Context) ([]Movie, error) {
	endpoint := fmt.Sprintf("%s/trending/movie/week?api_key=%s", c.baseURL, url.QueryEscape(c.apiKey))

	var payload listResponse
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// TopRated returns the catalog's top rated movies.
func (c *HTTPClient) TopRated(ctx context.Context) ([]Movie, error) {
	endpoint := fmt.Sprintf("%s/movie/top_rated?api_key=%s&language=en-US&page=1", c.baseURL, url.QueryEscape(c.apiKey))

	var payload listResponse
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

func (c *HTTPClient) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logging.FromContext(ctx).Warn("catalog request failed", "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		logging.FromContext(ctx).Warn("catalog returned unexpected status", "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}
	return nil
}

var _ Client = (*HTTPClient)(nil)
