package retrieval

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchFixture = `{
  "query": {
    "search": [
      {"title": "Search engine optimization", "snippet": "<span class=\"searchmatch\">Search</span> <span class=\"searchmatch\">engine</span> optimization improves visibility"},
      {"title": "Keyword research", "snippet": "identifies popular search terms"}
    ]
  }
}`

func fastRetry(t *testing.T) {
	t.Helper()
	original := RetryBaseDelay
	RetryBaseDelay = time.Millisecond
	t.Cleanup(func() { RetryBaseDelay = original })
}

func TestWikipediaSearch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("srsearch")
		assert.Equal(t, "query", r.URL.Query().Get("action"))
		assert.Equal(t, "search", r.URL.Query().Get("list"))
		w.Write([]byte(searchFixture))
	}))
	defer srv.Close()

	client := NewWikipediaClientWithBase(srv.URL, srv.Client())
	docs, err := client.Search(context.Background(), "search engine optimization", 5)
	require.NoError(t, err)

	assert.Equal(t, "search engine optimization", gotQuery)
	require.Len(t, docs, 2)
	assert.Equal(t, "Search engine optimization", docs[0].Title)
	assert.Equal(t, "Search engine optimization improves visibility", docs[0].Snippet,
		"highlight markup is stripped")
	assert.Equal(t, "https://en.wikipedia.org/wiki/Search_engine_optimization", docs[0].URL)
}

func TestWikipediaSearch_RetriesServerErrors(t *testing.T) {
	fastRetry(t)

	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(searchFixture))
	}))
	defer srv.Close()

	client := NewWikipediaClientWithBase(srv.URL, srv.Client())
	docs, err := client.Search(context.Background(), "seo", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Len(t, docs, 2)
}

func TestWikipediaSearch_ExhaustsRetries(t *testing.T) {
	fastRetry(t)

	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewWikipediaClientWithBase(srv.URL, srv.Client())
	_, err := client.Search(context.Background(), "seo", 5)
	assert.Error(t, err)
	assert.Equal(t, 3, attempts, "initial attempt plus two retries")
}

func TestWikipediaSearch_ClientErrorNotRetried(t *testing.T) {
	fastRetry(t)

	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewWikipediaClientWithBase(srv.URL, srv.Client())
	_, err := client.Search(context.Background(), "seo", 5)
	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}
