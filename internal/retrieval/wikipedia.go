package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const wikipediaAPIURL = "https://en.wikipedia.org/w/api.php"

// RetryBaseDelay is the initial backoff after a failed search attempt.
// It doubles per attempt. A variable so tests can shorten it.
var RetryBaseDelay = 500 * time.Millisecond

// WikipediaClient queries the MediaWiki search API for reference documents.
type WikipediaClient struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
}

// NewWikipediaClient builds a client against the public Wikipedia API.
func NewWikipediaClient() *WikipediaClient {
	return &WikipediaClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    wikipediaAPIURL,
		maxRetries: 2,
	}
}

// NewWikipediaClientWithBase builds a client against a custom endpoint.
func NewWikipediaClientWithBase(baseURL string, httpClient *http.Client) *WikipediaClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &WikipediaClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		maxRetries: 2,
	}
}

type wikiSearchResponse struct {
	Query struct {
		Search []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"search"`
	} `json:"query"`
}

// Search runs a full-text search and returns the top documents. Transport
// failures and throttling responses are retried with exponential backoff;
// the last error is returned once retries are exhausted.
func (c *WikipediaClient) Search(ctx context.Context, query string, limit int) ([]Document, error) {
	if limit <= 0 {
		limit = 5
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := RetryBaseDelay << (attempt - 1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		docs, retryable, err := c.searchOnce(ctx, query, limit)
		if err == nil {
			return docs, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return nil, lastErr
}

func (c *WikipediaClient) searchOnce(ctx context.Context, query string, limit int) ([]Document, bool, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", fmt.Sprintf("%d", limit))
	params.Set("srprop", "snippet")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("search returned status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	var parsed wikiSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, false, fmt.Errorf("failed to decode search response: %w", err)
	}

	docs := make([]Document, 0, len(parsed.Query.Search))
	for _, result := range parsed.Query.Search {
		docs = append(docs, Document{
			Title:   result.Title,
			URL:     articleURL(result.Title),
			Snippet: stripMarkup(result.Snippet),
		})
	}
	return docs, false, nil
}

func articleURL(title string) string {
	return "https://en.wikipedia.org/wiki/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}

// stripMarkup flattens the HTML fragments the search API returns (snippet
// text carries searchmatch highlight spans) down to plain text.
func stripMarkup(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return strings.TrimSpace(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.TrimSpace(doc.Text())
}
