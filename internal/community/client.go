package community

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PatternService defines the community API operations regexfav depends on.
// It is implemented by *Client and can be replaced in tests.
type PatternService interface {
	PatternList(ctx context.Context, ids []string) ([]Pattern, error)
	Rate(ctx context.Context, id string, rating int) error
	TrackVisit(ctx context.Context, id string) error
}

// Ensure Client implements PatternService at compile time.
var _ PatternService = (*Client)(nil)

// Client talks to the community pattern HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultBaseURL   = "https://regexr.com"
	defaultUserAgent = "regexfav/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the API rooted at base.
func NewClient(base string) (*Client, error) {
	u, err := parseBaseURL(base)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: u,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// PatternList retrieves the records for ids. A response without results
// yields an empty slice and no error.
func (c *Client) PatternList(ctx context.Context, ids []string) ([]Pattern, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	clean := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			clean = append(clean, id)
		}
	}
	if len(clean) == 0 {
		return nil, nil
	}
	values := url.Values{}
	values.Set("ids", strings.Join(clean, ","))
	rel := &url.URL{Path: "/api/patterns", RawQuery: values.Encode()}

	var payload PatternListResponse
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// Rate submits a 0-5 star rating for a pattern.
func (c *Client) Rate(ctx context.Context, id string, rating int) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if rating < 0 || rating > 5 {
		return fmt.Errorf("rating %d out of range", rating)
	}
	rel, err := patternPath(id, "rating")
	if err != nil {
		return err
	}
	return c.doURL(ctx, http.MethodPost, rel, RatingRequest{Rating: rating}, nil)
}

// TrackVisit records that a pattern was loaded into the editor.
func (c *Client) TrackVisit(ctx context.Context, id string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel, err := patternPath(id, "visit")
	if err != nil {
		return err
	}
	return c.doURL(ctx, http.MethodPost, rel, nil, nil)
}

func patternPath(id, action string) (*url.URL, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("pattern id required")
	}
	if strings.ContainsAny(id, "/?#") {
		return nil, fmt.Errorf("invalid pattern id %q", id)
	}
	return &url.URL{Path: "/api/patterns/" + id + "/" + action}, nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", base, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
