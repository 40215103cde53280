// Package remote implements the HTTP client for the media server's
// catalog API and the mapping from wire records to cache rows.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/asteroid-belt/couchpilot/internal/log"
	"github.com/asteroid-belt/couchpilot/internal/models"
	"github.com/asteroid-belt/couchpilot/pkg/version"
)

// bulkTimeout is deliberately generous: catalog pages are large and a
// slow server is not a dead server.
const bulkTimeout = 60 * time.Second

const clientProduct = "couchpilot"

// CatalogService is the abstract remote catalog consumed by the sync
// engine and the detail reconciler.
type CatalogService interface {
	// ListCatalog fetches one bulk page of the catalog. Pages are
	// 1-based; a short or empty page is the final one.
	ListCatalog(ctx context.Context, page, pageSize int) ([]models.CatalogItem, error)
	// GetByID fetches a single record by cache id.
	GetByID(ctx context.Context, id string) (*models.CatalogItem, error)
}

// Client talks to a Plex-style media server. It implements CatalogService.
type Client struct {
	baseURL    string
	token      string
	clientID   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Options tunes a Client beyond the required server address.
type Options struct {
	// ClientID identifies this installation to the server.
	ClientID string
	// RequestsPerMinute caps the request rate; 0 disables limiting.
	RequestsPerMinute int
	// Timeout overrides the default bulk timeout.
	Timeout time.Duration
}

// NewClient creates a catalog client for the given server.
func NewClient(baseURL, token string, opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = bulkTimeout
	}

	var limiter *rate.Limiter
	if opts.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), opts.RequestsPerMinute)
	}

	return &Client{
		baseURL:  baseURL,
		token:    token,
		clientID: opts.ClientID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: limiter,
	}
}

// BaseURL returns the configured server address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping checks whether the server is reachable. Used as the network gate
// for scheduled syncs.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/identity", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ErrServerOffline
	}
	defer resp.Body.Close()
	return nil
}

// doRequest performs an authenticated request and returns the raw body.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Plex-Token", c.token)
	req.Header.Set("X-Plex-Client-Identifier", c.clientID)
	req.Header.Set("X-Plex-Product", clientProduct)
	req.Header.Set("X-Plex-Version", version.Short())
	req.Header.Set("User-Agent", clientProduct+"/"+version.Short())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("catalog request failed: %v", err)
		return nil, ErrServerOffline
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrAuthFailed
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrItemNotFound
	case resp.StatusCode != http.StatusOK:
		log.Errorf("catalog request error: status %d", resp.StatusCode)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}

// parseResponse parses a JSON response body into a MediaContainer.
func parseResponse(body []byte) (*MediaContainer, error) {
	var resp APIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return &resp.MediaContainer, nil
}

// ListCatalog fetches one bulk catalog page and maps it to cache rows.
// Records without a resolvable id are skipped, not fatal to the page.
func (c *Client) ListCatalog(ctx context.Context, page, pageSize int) ([]models.CatalogItem, error) {
	if page < 1 {
		page = 1
	}

	query := url.Values{}
	query.Set("X-Plex-Container-Start", strconv.Itoa((page-1)*pageSize))
	query.Set("X-Plex-Container-Size", strconv.Itoa(pageSize))

	body, err := c.doRequest(ctx, "/library/all", query)
	if err != nil {
		return nil, err
	}

	container, err := parseResponse(body)
	if err != nil {
		return nil, err
	}

	items := make([]models.CatalogItem, 0, len(container.Metadata))
	for _, m := range container.Metadata {
		item, ok := MapItem(m, c.baseURL)
		if !ok {
			log.Errorf("skipping record with no resolvable id (title=%q)", m.Title)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// GetByID fetches a single record by id.
func (c *Client) GetByID(ctx context.Context, id string) (*models.CatalogItem, error) {
	body, err := c.doRequest(ctx, "/library/metadata/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	container, err := parseResponse(body)
	if err != nil {
		return nil, err
	}

	if len(container.Metadata) == 0 {
		return nil, ErrItemNotFound
	}

	item, ok := MapItem(container.Metadata[0], c.baseURL)
	if !ok {
		return nil, ErrItemNotFound
	}
	return &item, nil
}
