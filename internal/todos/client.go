package todos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Store defines the collection operations the shell depends on.
// It is implemented by *Client and can be faked in tests.
type Store interface {
	List(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, id int) (Item, error)
	Create(ctx context.Context, item Item) (Item, error)
	Update(ctx context.Context, item Item) error
	Remove(ctx context.Context, id int) error
}

// Ensure Client implements Store at compile time.
var _ Store = (*Client)(nil)

// Client talks to a REST todo collection.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *log.Logger
}

const (
	// DefaultBaseURL is the collection host used when nothing is configured.
	DefaultBaseURL   = "http://localhost:3005"
	defaultUserAgent = "docket/0.1"
	requestTimeout   = 5 * time.Second
	collectionPath   = "/todos"
	jsonContentType  = "application/json;charset=utf-8"
	requestIDHeader  = "X-Request-ID"
	maxResponseBytes = 8 << 20
)

// Option customises a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger routes request diagnostics to logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a Client for the collection host at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised collection host.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL.String()
}

// List retrieves the full collection in store order.
func (c *Client) List(ctx context.Context) ([]Item, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body, err := c.do(ctx, http.MethodGet, collectionPath, nil)
	if err != nil {
		return nil, err
	}
	return decodeCollection(body)
}

// Get retrieves a single item.
func (c *Client) Get(ctx context.Context, id int) (Item, error) {
	if c == nil {
		return Item{}, fmt.Errorf("client is nil")
	}
	body, err := c.do(ctx, http.MethodGet, itemPath(id), nil)
	if err != nil {
		return Item{}, err
	}
	var item Item
	if err := json.Unmarshal(body, &item); err != nil {
		return Item{}, fmt.Errorf("%w: decode response: %v", ErrMalformed, err)
	}
	return item, nil
}

// Create posts a new item. When item.ID is zero the store assigns the id and
// the returned Item carries it if the response includes one.
func (c *Client) Create(ctx context.Context, item Item) (Item, error) {
	if c == nil {
		return Item{}, fmt.Errorf("client is nil")
	}
	body, err := c.do(ctx, http.MethodPost, collectionPath, item)
	if err != nil {
		return Item{}, err
	}
	created := item
	var echoed Item
	if len(bytes.TrimSpace(body)) > 0 && json.Unmarshal(body, &echoed) == nil && echoed.ID > 0 {
		created.ID = echoed.ID
	}
	return created, nil
}

// Update replaces the stored item with the same id.
func (c *Client) Update(ctx context.Context, item Item) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if item.ID <= 0 {
		return fmt.Errorf("item id required")
	}
	_, err := c.do(ctx, http.MethodPut, itemPath(item.ID), item)
	return err
}

// Remove deletes the item with the given id.
func (c *Client) Remove(ctx context.Context, id int) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return fmt.Errorf("item id required")
	}
	_, err := c.do(ctx, http.MethodDelete, itemPath(id), nil)
	return err
}

func itemPath(id int) string {
	return collectionPath + "/" + strconv.Itoa(id)
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", jsonContentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "request_id", requestID, "err", err)
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(start))

	if resp.StatusCode == http.StatusNotFound && method == http.MethodGet && path != collectionPath {
		return nil, fmt.Errorf("api %s: %w", path, ErrNotFound)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
