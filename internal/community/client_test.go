package community

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Host != "regexr.com" {
		t.Fatalf("default base = %q, want https://regexr.com", u.String())
	}

	u, err = parseBaseURL("example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_CallsEndpoints(t *testing.T) {
	t.Parallel()

	var gotIDs, gotUserAgent, gotContentType string
	var gotRating RatingRequest
	var visited []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/patterns":
			gotIDs = r.URL.Query().Get("ids")
			_, _ = w.Write([]byte(`{"results":[{"id":12,"name":"Email","pattern":"/\\w+@\\w+/g","weightedVote":4.5},{"id":"13","name":"Digits","pattern":"/\\d+/","weightedVote":"3"}]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/patterns/12/rating":
			gotContentType = r.Header.Get("Content-Type")
			_ = json.NewDecoder(r.Body).Decode(&gotRating)
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/visit"):
			visited = append(visited, r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	items, err := c.PatternList(ctx, []string{"12", " ", "13"})
	if err != nil {
		t.Fatalf("PatternList returned error: %v", err)
	}
	if gotIDs != "12,13" {
		t.Fatalf("ids query = %q, want %q", gotIDs, "12,13")
	}
	if len(items) != 2 || items[0].ID != "12" || items[1].ID != "13" {
		t.Fatalf("PatternList items = %#v, want ids 12 and 13", items)
	}
	if items[0].WeightedVote != "4.5" || items[1].WeightedVote != "3" {
		t.Fatalf("weightedVote = %q/%q, want 4.5/3", items[0].WeightedVote, items[1].WeightedVote)
	}

	if err := c.Rate(ctx, "12", 4); err != nil {
		t.Fatalf("Rate returned error: %v", err)
	}
	if gotRating.Rating != 4 {
		t.Fatalf("rating body = %#v, want 4", gotRating)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", gotContentType)
	}

	if err := c.TrackVisit(ctx, "13"); err != nil {
		t.Fatalf("TrackVisit returned error: %v", err)
	}
	if len(visited) != 1 || visited[0] != "/api/patterns/13/visit" {
		t.Fatalf("visited = %v, want [/api/patterns/13/visit]", visited)
	}

	if !strings.HasPrefix(gotUserAgent, "regexfav/") {
		t.Fatalf("User-Agent = %q, want regexfav/*", gotUserAgent)
	}
}

func TestClient_PatternListWithoutIDsSkipsRequest(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	items, err := c.PatternList(context.Background(), nil)
	if err != nil || items != nil {
		t.Fatalf("PatternList(nil) = %v, %v; want nil, nil", items, err)
	}
	if calls != 0 {
		t.Fatalf("server calls = %d, want 0", calls)
	}
}

func TestClient_MissingResultsIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	items, err := c.PatternList(context.Background(), []string{"1"})
	if err != nil {
		t.Fatalf("PatternList returned error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("items = %#v, want empty", items)
	}
}

func TestClient_ValidatesArguments(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.Rate(context.Background(), "1", 6); err == nil {
		t.Fatalf("Rate(6) returned nil error, want range error")
	}
	if err := c.TrackVisit(context.Background(), " "); err == nil {
		t.Fatalf("TrackVisit(blank) returned nil error, want error")
	}
	if err := c.TrackVisit(context.Background(), "1/2"); err == nil {
		t.Fatalf("TrackVisit(1/2) returned nil error, want error")
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/patterns":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.PatternList(context.Background(), []string{"1"})
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("PatternList error = %v, want decode response error", err)
	}

	err = c.TrackVisit(context.Background(), "1")
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("TrackVisit error = %v, want status 500 error", err)
	}
}
