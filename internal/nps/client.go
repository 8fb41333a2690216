package nps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/trailhead/internal/logging"
)

const (
	// DefaultBaseURL is the public NPS API root.
	DefaultBaseURL = "https://developer.nps.gov/api/v1"
	// DefaultTimeout bounds a single upstream request.
	DefaultTimeout = 30 * time.Second
	// MaxLimit is the largest page size the tools will ask for.
	MaxLimit = 50

	maxErrorBody = 1 << 10
)

// Cache stores raw upstream bodies.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Client talks to the NPS API.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	cache      Cache
	cacheTTL   time.Duration
	observe    func(endpoint string, err error)
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the key sent in the X-Api-Key header.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d, Transport: c.httpClient.Transport}
		}
	}
}

// WithCache enables response caching for ttl. A zero ttl disables it.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// WithObserver registers a callback run after every upstream request.
// Cache hits are not reported.
func WithObserver(fn func(endpoint string, err error)) Option {
	return func(c *Client) { c.observe = fn }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: "trailhead",
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Params are the query parameters shared by the list endpoints.
// Zero values are omitted.
type Params struct {
	ParkCode  string
	StateCode string
	Query     string
	Limit     int
	Start     int
}

func (p Params) values() url.Values {
	v := url.Values{}
	if p.ParkCode != "" {
		v.Set("parkCode", p.ParkCode)
	}
	if p.StateCode != "" {
		v.Set("stateCode", p.StateCode)
	}
	if p.Query != "" {
		v.Set("q", p.Query)
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(min(p.Limit, MaxLimit)))
	}
	if p.Start > 0 {
		v.Set("start", strconv.Itoa(p.Start))
	}
	return v
}

// EventParams extends Params with a date window (YYYY-MM-DD).
type EventParams struct {
	Params
	DateStart string
	DateEnd   string
}

// window returns the page size and the offset of Start within its page.
// A zero size means no paging was requested.
func (p EventParams) window() (size, offset int) {
	if p.Limit <= 0 {
		return 0, 0
	}
	size = min(p.Limit, MaxLimit)
	return size, max(p.Start, 0) % size
}

// values maps limit/start onto the page-based paging of /events, asking for
// the page that holds Start plus skip further pages.
func (p EventParams) values(skip int) url.Values {
	v := p.Params.values()
	v.Del("limit")
	v.Del("start")
	if size, _ := p.window(); size > 0 {
		v.Set("pageSize", strconv.Itoa(size))
		v.Set("pageNumber", strconv.Itoa(max(p.Start, 0)/size+1+skip))
	}
	if p.DateStart != "" {
		v.Set("dateStart", p.DateStart)
	}
	if p.DateEnd != "" {
		v.Set("dateEnd", p.DateEnd)
	}
	return v
}

// Parks lists parks.
func (c *Client) Parks(ctx context.Context, p Params) (*Response[Park], error) {
	return list[Park](ctx, c, "/parks", p.values())
}

// Park returns the park with the given code, or ErrNotFound. A blank code
// is never sent upstream, where it would match every park.
func (c *Client) Park(ctx context.Context, parkCode string) (*Park, error) {
	if strings.TrimSpace(parkCode) == "" {
		return nil, fmt.Errorf("empty park code: %w", ErrNotFound)
	}
	resp, err := c.Parks(ctx, Params{ParkCode: parkCode})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("park %s: %w", parkCode, ErrNotFound)
	}
	return &resp.Data[0], nil
}

// Alerts lists alerts.
func (c *Client) Alerts(ctx context.Context, p Params) (*Response[Alert], error) {
	return list[Alert](ctx, c, "/alerts", p.values())
}

// VisitorCenters lists visitor centers.
func (c *Client) VisitorCenters(ctx context.Context, p Params) (*Response[VisitorCenter], error) {
	return list[VisitorCenter](ctx, c, "/visitorcenters", p.values())
}

// Campgrounds lists campgrounds.
func (c *Client) Campgrounds(ctx context.Context, p Params) (*Response[Campground], error) {
	return list[Campground](ctx, c, "/campgrounds", p.values())
}

// Events lists events. /events pages by number, so a Start that is not a
// multiple of Limit is served from the two pages it straddles.
func (c *Client) Events(ctx context.Context, p EventParams) (*Response[Event], error) {
	resp, err := list[Event](ctx, c, "/events", p.values(0))
	if err != nil {
		return nil, err
	}
	size, offset := p.window()
	if offset == 0 {
		return resp, nil
	}

	full := len(resp.Data) == size
	items := append([]Event(nil), resp.Data[min(offset, len(resp.Data)):]...)
	if full && len(items) < size {
		next, err := list[Event](ctx, c, "/events", p.values(1))
		if err != nil {
			return nil, err
		}
		items = append(items, next.Data...)
	}
	resp.Data = items[:min(size, len(items))]
	resp.Limit = FlexInt(size)
	resp.Start = FlexInt(p.Start)
	return resp, nil
}

func list[T any](ctx context.Context, c *Client, endpoint string, params url.Values) (*Response[T], error) {
	var resp Response[T]
	if err := c.get(ctx, endpoint, params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// get fetches endpoint and decodes the body into dst, going through the
// cache when one is configured.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, dst any) error {
	key := endpoint + "?" + params.Encode()

	if c.cache != nil && c.cacheTTL > 0 {
		if body, ok := c.cache.Get(ctx, key); ok {
			if err := json.Unmarshal(body, dst); err == nil {
				c.logger.Debug("nps cache hit", "endpoint", endpoint)
				return nil
			}
			c.logger.Warn("discarding undecodable cache entry", "key", key)
		}
	}

	body, err := c.fetch(ctx, endpoint, params)
	if err == nil {
		if uerr := json.Unmarshal(body, dst); uerr != nil {
			err = fmt.Errorf("decode %s response: %w", endpoint, uerr)
		}
	}
	if c.observe != nil {
		c.observe(endpoint, err)
	}
	if err != nil {
		return err
	}

	if c.cache != nil && c.cacheTTL > 0 {
		if err := c.cache.Set(ctx, key, body, c.cacheTTL); err != nil {
			c.logger.Warn("nps cache write failed", "key", key, "error", err)
		}
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("nps request", "endpoint", endpoint, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}
	return body, nil
}
