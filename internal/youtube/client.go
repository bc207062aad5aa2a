package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"movienight/internal/catalog"
)

const (
	// DefaultBaseURL is the YouTube Data API v3 root.
	DefaultBaseURL = "https://www.googleapis.com/youtube/v3"
	// MaxBatchIDs is the largest id list the videos endpoint accepts.
	MaxBatchIDs = 50
	// MaxPageSize is the largest page the search endpoint returns.
	MaxPageSize = 50
)

// Order selects the search ranking strategy.
type Order string

const (
	OrderDate       Order = "date"
	OrderViewCount  Order = "viewCount"
	OrderRelevance  Order = "relevance"
	OrderRating     Order = "rating"
	OrderTitle      Order = "title"
	OrderVideoCount Order = "videoCount"
)

// Valid reports whether o is an order the search endpoint accepts.
func (o Order) Valid() bool {
	switch o {
	case OrderDate, OrderViewCount, OrderRelevance, OrderRating, OrderTitle, OrderVideoCount:
		return true
	default:
		return false
	}
}

// SearchRequest describes one page of a search.
type SearchRequest struct {
	Query      string
	Order      Order
	PageToken  string
	MaxResults int
}

// SearchResult is a single search hit.
type SearchResult struct {
	ID struct {
		Kind    string `json:"kind"`
		VideoID string `json:"videoId"`
	} `json:"id"`
}

// SearchPage is one page of search results.
type SearchPage struct {
	Items         []SearchResult `json:"items"`
	NextPageToken string         `json:"nextPageToken"`
}

// VideoIDs returns the trimmed, non-empty video ids in result order.
func (p *SearchPage) VideoIDs() []string {
	if p == nil {
		return nil
	}
	ids := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		if id := strings.TrimSpace(item.ID.VideoID); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Thumbnail is one rendition of a video thumbnail.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Video is a full record from the videos endpoint.
type Video struct {
	ID      string `json:"id"`
	Snippet struct {
		Title        string               `json:"title"`
		PublishedAt  string               `json:"publishedAt"`
		ChannelTitle string               `json:"channelTitle"`
		Thumbnails   map[string]Thumbnail `json:"thumbnails"`
	} `json:"snippet"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
	Statistics struct {
		ViewCount string `json:"viewCount"`
	} `json:"statistics"`
}

// Candidate converts the record into a catalog candidate.
func (v Video) Candidate() catalog.Candidate {
	thumbs := make(map[string]string, len(v.Snippet.Thumbnails))
	for variant, thumb := range v.Snippet.Thumbnails {
		if thumb.URL != "" {
			thumbs[variant] = thumb.URL
		}
	}
	views, _ := strconv.ParseInt(v.Statistics.ViewCount, 10, 64)
	return catalog.Candidate{
		ID:          strings.TrimSpace(v.ID),
		Title:       strings.TrimSpace(v.Snippet.Title),
		Duration:    v.ContentDetails.Duration,
		Thumbnails:  thumbs,
		PublishedAt: v.Snippet.PublishedAt,
		ViewCount:   views,
	}
}

type videoListResponse struct {
	Items []Video `json:"items"`
}

// Source defines the YouTube operations used by row filling.
type Source interface {
	Search(ctx context.Context, req SearchRequest) (*SearchPage, error)
	Videos(ctx context.Context, ids []string) ([]Video, error)
}

// Client provides access to the YouTube Data API.
type Client struct {
	apiKey        string
	baseURL       string
	durationClass string
	safeSearch    string
	httpClient    *http.Client
}

var _ Source = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithDurationClass sets the videoDuration search filter ("long" by default).
func WithDurationClass(class string) Option {
	return func(c *Client) {
		if class = strings.TrimSpace(class); class != "" {
			c.durationClass = class
		}
	}
}

// WithSafeSearch sets the safeSearch flag ("none" by default).
func WithSafeSearch(mode string) Option {
	return func(c *Client) {
		if mode = strings.TrimSpace(mode); mode != "" {
			c.safeSearch = mode
		}
	}
}

// New creates a YouTube client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("youtube api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &Client{
		apiKey:        apiKey,
		baseURL:       strings.TrimRight(baseURL, "/"),
		durationClass: "long",
		safeSearch:    "none",
		httpClient:    &http.Client{Timeout: 25 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Search fetches one page of long-form video results.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchPage, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	order := req.Order
	if order == "" {
		order = OrderRelevance
	}
	maxResults := req.MaxResults
	if maxResults <= 0 || maxResults > MaxPageSize {
		maxResults = 25
	}
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("order", string(order))
	params.Set("videoDuration", c.durationClass)
	params.Set("safeSearch", c.safeSearch)
	if token := strings.TrimSpace(req.PageToken); token != "" {
		params.Set("pageToken", token)
	}

	var page SearchPage
	if err := c.get(ctx, "/search", "youtube search", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Videos fetches full records for up to MaxBatchIDs ids. Unknown ids are
// simply absent from the result.
func (c *Client) Videos(ctx context.Context, ids []string) ([]Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > MaxBatchIDs {
		return nil, fmt.Errorf("youtube videos: %d ids exceeds batch limit %d", len(ids), MaxBatchIDs)
	}
	params := url.Values{}
	params.Set("part", "snippet,contentDetails,statistics")
	params.Set("id", strings.Join(ids, ","))
	params.Set("maxResults", strconv.Itoa(MaxBatchIDs))

	var payload videoListResponse
	if err := c.get(ctx, "/videos", "youtube videos", params, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

func (c *Client) get(ctx context.Context, path, label string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse youtube url: %w", err)
	}
	params.Set("key", c.apiKey)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned %d (latency=%v): %s", label, resp.StatusCode, latency, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", label, err)
	}
	return nil
}
