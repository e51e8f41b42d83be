package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/xid"
	"golang.org/x/time/rate"

	"github.com/ghfinder/ghfinder-cli/internal/errors"
	"github.com/ghfinder/ghfinder-cli/internal/models"
	"github.com/ghfinder/ghfinder-cli/pkg/version"
)

const (
	DefaultAPIURL  = "https://api.github.com"
	DefaultTimeout = 10 * time.Second
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL           string
	UserAgent         string
	Timeout           time.Duration
	CacheTTL          time.Duration
	RequestsPerSecond float64
	Debug             bool
	HTTPClient        *http.Client
}

// Client issues the three read operations against the profile provider.
// It never retries; failures are returned classified.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	debug      bool
	cache      *ResponseCache
	limiter    *rate.Limiter
	logger     *slog.Logger
}

func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = version.GetUserAgent()
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		debug:      opts.Debug,
		cache:      NewResponseCache(opts.CacheTTL),
		limiter:    rate.NewLimiter(limit, 1),
		logger:     slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
}

// SetLogger replaces the debug logger
func (c *Client) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// GetAPIEndpoint returns the base URL requests are sent to
func (c *Client) GetAPIEndpoint() string {
	return c.baseURL
}

// Close releases the session cache
func (c *Client) Close() {
	c.cache.Close()
}

func (c *Client) doRequest(ctx context.Context, path string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &errors.NetworkError{Err: err, Operation: "GET " + path, URL: c.baseURL + path}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", c.userAgent)

	requestID := xid.New().String()
	if c.debug {
		c.logger.Debug("API request", "id", requestID, "method", http.MethodGet, "url", req.URL.String())
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.debug {
			c.logger.Debug("API request failed", "id", requestID, "error", err, "elapsed", time.Since(start))
		}
		return nil, &errors.NetworkError{
			Err:       err,
			Operation: "GET " + path,
			URL:       c.baseURL + path,
		}
	}

	if c.debug {
		c.logger.Debug("API response", "id", requestID, "status", resp.Status,
			"rate_remaining", resp.Header.Get("X-RateLimit-Remaining"), "elapsed", time.Since(start))
	}

	return resp, nil
}

// getJSON performs a GET and decodes into out. Cacheable paths are served
// from and stored in the session cache.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}, cacheable bool) error {
	if !cacheable {
		_, err := c.fetchBody(ctx, path, out)
		return err
	}

	if body, ok := c.cache.Get(path); ok {
		if c.debug {
			c.logger.Debug("API cache hit", "path", path)
		}
		return decodeBody(body, out)
	}

	body, err := c.fetchBody(ctx, path, out)
	if err != nil {
		return err
	}
	c.cache.Set(path, body)
	return nil
}

func (c *Client) fetchBody(ctx context.Context, path string, out interface{}) ([]byte, error) {
	resp, err := c.doRequest(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := ValidateResponseOK(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.NetworkError{Err: err, Operation: "read " + path, URL: c.baseURL + path}
	}

	if err := decodeBody(body, out); err != nil {
		return nil, err
	}
	return body, nil
}

func decodeBody(body []byte, out interface{}) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// FetchProfile returns the profile for handle. Every call reaches the API.
func (c *Client) FetchProfile(ctx context.Context, handle string) (*models.Profile, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, errors.ErrEmptyHandle
	}

	var profile models.Profile
	if err := c.getJSON(ctx, ProfileURL(handle), &profile, false); err != nil {
		return nil, err
	}
	return &profile, nil
}

// FetchRepositories returns one page of PageSize repositories, most recently updated first
func (c *Client) FetchRepositories(ctx context.Context, handle string, page int) ([]models.Repository, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, errors.ErrEmptyHandle
	}
	if page < 1 {
		return nil, errors.ErrInvalidPage
	}

	var repos []models.Repository
	if err := c.getJSON(ctx, RepositoriesURL(handle, page), &repos, false); err != nil {
		return nil, err
	}
	if repos == nil {
		repos = []models.Repository{}
	}
	return repos, nil
}

// SearchHandles returns one page of handle suggestions for query
func (c *Client) SearchHandles(ctx context.Context, query string, page int) (*models.SuggestionPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.ErrEmptyQuery
	}
	if page < 1 {
		return nil, errors.ErrInvalidPage
	}

	var resp models.SearchHandlesResponse
	if err := c.getJSON(ctx, SearchHandlesURL(query, page), &resp, true); err != nil {
		return nil, err
	}

	// total_count can exceed what search returns, so an empty page ends the list too
	items := resp.Items
	if items == nil {
		items = []models.Suggestion{}
	}

	return &models.SuggestionPage{
		Items:      items,
		TotalCount: resp.TotalCount,
		HasMore:    len(items) > 0 && resp.TotalCount > page*PageSize,
	}, nil
}
