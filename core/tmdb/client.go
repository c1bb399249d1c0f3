package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cinegate/logger"
)

// ErrUpstream marks any failure talking to the movie catalog: transport
// error, non-200 status, or an undecodable body. Handlers map it to a
// generic 500 without leaking upstream detail.
var ErrUpstream = errors.New("upstream catalog unavailable")

// Client talks to a TMDB-compatible movie catalog API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a catalog client. The API key is sent as a bearer
// credential on every request.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetTimeout overrides the request timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

// get performs an authenticated GET against the catalog and decodes the
// response body into out. Unknown upstream fields are dropped by the decoder.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create catalog request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("[tmdb] request failed", logger.String("path", path), logger.ErrorField(err))
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("[tmdb] unexpected status", logger.String("path", path), logger.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logger.Error("[tmdb] failed to decode response", logger.String("path", path), logger.ErrorField(err))
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return nil
}

// MovieDetail fetches the full detail for one movie and projects it down to
// the restricted field set.
func (c *Client) MovieDetail(ctx context.Context, movieID string) (*MovieDetail, error) {
	var detail MovieDetail
	if err := c.get(ctx, "/movie/"+movieID, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// NowPlaying fetches the movies currently in theaters.
func (c *Client) NowPlaying(ctx context.Context) ([]NowPlayingMovie, error) {
	var page struct {
		Results []NowPlayingMovie `json:"results"`
	}
	if err := c.get(ctx, "/movie/now_playing", &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// AiringToday fetches the TV series airing today.
func (c *Client) AiringToday(ctx context.Context) ([]AiringTodayShow, error) {
	var page struct {
		Results []AiringTodayShow `json:"results"`
	}
	if err := c.get(ctx, "/tv/airing_today", &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}
