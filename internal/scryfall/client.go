// Package scryfall is a client for the parts of the Scryfall card API used to
// resolve decklists: named lookups, exact printings, and batched collection searches.
//
// API documentation: https://scryfall.com/docs/api
package scryfall

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/arcanaland/scrydeck/internal/card"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL   = "https://api.scryfall.com"
	DefaultUserAgent = "scrydeck/1.0"
	DefaultTimeout   = 30 * time.Second

	// MaxCollectionSize is the most identifiers the collection endpoint accepts per request
	MaxCollectionSize = 75
)

// Client issues requests against the Scryfall API. Requests are sequential;
// paged lookups wait for each page before sending the next.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds every request; zero keeps the default
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client with the default base URL and timeout
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if c.timeout > 0 {
		// never modify a client owned by the caller
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// CollectionResult is the merged response of a paged collection lookup
type CollectionResult struct {
	Data     []card.Record     `json:"data"`
	NotFound []card.Identifier `json:"not_found"`
}

type collectionRequest struct {
	Identifiers []card.Identifier `json:"identifiers"`
}

// Named looks a card up by its exact name
func (c *Client) Named(ctx context.Context, name string) (*card.Record, error) {
	u := c.baseURL + "/cards/named?exact=" + url.QueryEscape(name)
	return c.getRecord(ctx, "Named", u)
}

// NamedFuzzy looks a card up by an approximate name
func (c *Client) NamedFuzzy(ctx context.Context, name string) (*card.Record, error) {
	u := c.baseURL + "/cards/named?fuzzy=" + url.QueryEscape(name)
	return c.getRecord(ctx, "NamedFuzzy", u)
}

// Printing looks up the English printing of a card by set code and collector number
func (c *Client) Printing(ctx context.Context, set, number string) (*card.Record, error) {
	u := fmt.Sprintf("%s/cards/%s/%s/en", c.baseURL, url.PathEscape(strings.ToLower(set)), url.PathEscape(number))
	return c.getRecord(ctx, "Printing", u)
}

// Collection resolves decklist entries in pages of MaxCollectionSize.
// Entries carrying both set and collector number are looked up by printing, others by name.
// Found records and unresolved identifiers keep the order of the pages.
func (c *Client) Collection(ctx context.Context, entries []card.Entry) (*CollectionResult, error) {
	ids := make([]card.Identifier, len(entries))
	for i, e := range entries {
		ids[i] = e.Identifier()
	}
	return c.collection(ctx, "Collection", ids)
}

// Tokens resolves token card objects by id. No request is made for an empty list.
func (c *Client) Tokens(ctx context.Context, ids []uuid.UUID) ([]card.Record, error) {
	if len(ids) == 0 {
		return []card.Record{}, nil
	}

	identifiers := make([]card.Identifier, len(ids))
	for i, id := range ids {
		identifiers[i] = card.Identifier{ID: id.String()}
	}

	res, err := c.collection(ctx, "Tokens", identifiers)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// Image downloads and decodes a card image
func (c *Client) Image(ctx context.Context, imageURL string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating image request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	body, err := c.do(req, "Image", nil)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error decoding image %s: %w", imageURL, err)
	}
	return img, nil
}

func (c *Client) collection(ctx context.Context, op string, ids []card.Identifier) (*CollectionResult, error) {
	full := &CollectionResult{
		Data:     []card.Record{},
		NotFound: []card.Identifier{},
	}

	for page, start := 0, 0; start < len(ids); page, start = page+1, start+MaxCollectionSize {
		end := min(start+MaxCollectionSize, len(ids))

		payload, err := json.Marshal(collectionRequest{Identifiers: ids[start:end]})
		if err != nil {
			return nil, fmt.Errorf("error encoding collection request: %w", err)
		}

		c.logger.Debug("collection page",
			zap.String("op", op),
			zap.Int("page", page),
			zap.Int("identifiers", end-start),
		)

		var res CollectionResult
		if err := c.postJSON(ctx, op, c.baseURL+"/cards/collection", payload, &res); err != nil {
			return nil, err
		}

		full.Data = append(full.Data, res.Data...)
		full.NotFound = append(full.NotFound, res.NotFound...)
	}

	return full, nil
}

func (c *Client) getRecord(ctx context.Context, op, u string) (*card.Record, error) {
	req, err := c.newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(req, op, nil)
	if err != nil {
		return nil, err
	}

	var record card.Record
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("%s: error decoding card: %w", op, err)
	}
	return &record, nil
}

func (c *Client) postJSON(ctx context.Context, op, u string, payload []byte, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req, op, payload)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: error decoding response: %w", op, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, u string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	return req, nil
}

// do executes the request and returns the response body, turning any
// non-2xx status into a *ResponseError
func (c *Client) do(req *http.Request, op string, payload []byte) ([]byte, error) {
	c.logger.Debug("request",
		zap.String("op", op),
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %s %s: %w", op, req.Method, req.URL, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: error reading response: %w", op, err)
	}

	c.logger.Debug("response",
		zap.String("op", op),
		zap.Int("status", res.StatusCode),
		zap.Int("bytes", len(body)),
	)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &ResponseError{
			Op:          op,
			Method:      req.Method,
			URL:         req.URL.String(),
			RequestBody: string(payload),
			StatusCode:  res.StatusCode,
			Body:        string(body),
		}
	}
	return body, nil
}
