package service

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	defaultSearchRootURL = "http://webhose.io/search"
	defaultSearchSize    = 10
	searchSummaryRunes   = 200
)

var (
	// ErrSearchKeyMissing means the API key file is absent or empty. It is
	// a configuration problem, not a transport one, and callers on the
	// rendering path recover from it by showing no external results.
	ErrSearchKeyMissing  = errors.New("search API key not configured")
	ErrSearchTransport   = errors.New("search request failed")
	ErrSearchBadResponse = errors.New("search response malformed")
)

// httpDoer lets tests swap the transport out for a fake.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// SearchResult is one external hit: title, link, and a snippet of body text.
// Results are produced fresh per query and never persisted.
type SearchResult struct {
	Title   string
	Link    string
	Summary string
}

// SearchService queries the webhose API. Every call re-reads the key file and
// re-runs the query; there is no caching layer.
type SearchService struct {
	keyPath string
	rootURL string
	http    httpDoer
}

// NewSearchService returns a SearchService reading its API key from keyPath.
func NewSearchService(keyPath string) *SearchService {
	return &SearchService{
		keyPath: keyPath,
		rootURL: defaultSearchRootURL,
		http:    &http.Client{Timeout: 20 * time.Second},
	}
}

// SetHTTPClient replaces the outbound transport, mainly for tests.
func (s *SearchService) SetHTTPClient(client httpDoer) {
	if client == nil {
		s.http = &http.Client{Timeout: 20 * time.Second}
		return
	}
	s.http = client
}

// SetRootURL points the connector at a different endpoint, mainly for tests.
func (s *SearchService) SetRootURL(root string) {
	root = strings.TrimRight(strings.TrimSpace(root), "/")
	if root == "" {
		return
	}
	s.rootURL = root
}

// readKey loads the first line of the key file.
func (s *SearchService) readKey() (string, error) {
	f, err := os.Open(s.keyPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSearchKeyMissing, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		if key := strings.TrimSpace(scanner.Text()); key != "" {
			return key, nil
		}
	}

	return "", fmt.Errorf("%w: key file %s is empty", ErrSearchKeyMissing, s.keyPath)
}

type searchPost struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Text  string `json:"text"`
}

type searchPayload struct {
	Posts []searchPost `json:"posts"`
}

// RunQuery performs one relevance-sorted query for up to size results.
// Failures come back as typed errors (ErrSearchKeyMissing, ErrSearchTransport,
// ErrSearchBadResponse) so the caller can decide how hard to fail.
func (s *SearchService) RunQuery(ctx context.Context, query string, size int) ([]SearchResult, error) {
	key, err := s.readKey()
	if err != nil {
		return nil, err
	}

	if size <= 0 {
		size = defaultSearchSize
	}

	searchURL := fmt.Sprintf("%s?token=%s&format=json&q=%s&sort=relevancy&size=%d",
		s.rootURL, url.QueryEscape(key), url.QueryEscape(query), size)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchTransport, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrSearchTransport, resp.Status)
	}

	var payload searchPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchBadResponse, err)
	}

	results := make([]SearchResult, 0, len(payload.Posts))
	for _, post := range payload.Posts {
		results = append(results, SearchResult{
			Title:   post.Title,
			Link:    post.URL,
			Summary: truncateRunes(post.Text, searchSummaryRunes),
		})
	}

	return results, nil
}

// SearchOrDefault is the merge-facade entry point: it searches for query when
// one was submitted, falling back to fallback (usually the category name)
// otherwise. Every connector failure is logged and swallowed here; the page
// still renders, just without external results.
func (s *SearchService) SearchOrDefault(ctx context.Context, query, fallback string) []SearchResult {
	terms := strings.TrimSpace(query)
	if terms == "" {
		terms = strings.TrimSpace(fallback)
	}
	if terms == "" {
		return []SearchResult{}
	}

	results, err := s.RunQuery(ctx, terms, defaultSearchSize)
	if err != nil {
		log.Printf("search for %q degraded to empty results: %v", terms, err)
		return []SearchResult{}
	}

	return results
}

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
