package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	// DefaultEndpoint is the public Wikidata SPARQL service.
	DefaultEndpoint = "https://query.wikidata.org/sparql"
	// DefaultUserAgent identifies the job to the query service operators.
	DefaultUserAgent = "MovieNight/1.0 (daily curation job)"
)

var imdbIDPattern = regexp.MustCompile(`^tt\d+$`)

// StatusError reports a non-200 response from the query service.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("wikidata sparql returned %d", e.StatusCode)
}

type sparqlResponse struct {
	Results struct {
		Bindings []struct {
			Award struct {
				Type  string `json:"type"`
				Value string `json:"value"`
			} `json:"award"`
		} `json:"bindings"`
	} `json:"results"`
}

// Client queries Wikidata for film award relations.
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
}

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

// New creates a Wikidata client. Blank arguments fall back to defaults.
func New(endpoint, userAgent string, opts ...Option) *Client {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	client := &Client{
		endpoint:   endpoint,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 25 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// AwardIDs returns the entity ids (e.g. "Q103360") of every "award received"
// (P166) statement on the film whose IMDb id (P345) matches. Ids that are not
// IMDb title ids yield no results without a request.
func (c *Client) AwardIDs(ctx context.Context, imdbID string) ([]string, error) {
	imdbID = strings.TrimSpace(imdbID)
	if !imdbIDPattern.MatchString(imdbID) {
		return nil, nil
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("query", awardQuery(imdbID))
	endpoint := c.endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/sparql-results+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var payload sparqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode sparql response: %w", err)
	}

	ids := make([]string, 0, len(payload.Results.Bindings))
	for _, binding := range payload.Results.Bindings {
		uri := strings.TrimSpace(binding.Award.Value)
		if uri == "" {
			continue
		}
		ids = append(ids, uri[strings.LastIndex(uri, "/")+1:])
	}
	return ids, nil
}

func awardQuery(imdbID string) string {
	return fmt.Sprintf(`SELECT ?award WHERE {
  ?film wdt:P345 %q .
  ?film wdt:P166 ?award .
}`, imdbID)
}
