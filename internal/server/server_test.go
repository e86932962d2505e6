package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/seo-assistant/internal/bulk"
	"github.com/jonathan/seo-assistant/internal/calendar"
	"github.com/jonathan/seo-assistant/internal/llm"
	"github.com/jonathan/seo-assistant/internal/pipeline"
	"github.com/jonathan/seo-assistant/internal/retrieval"
	"github.com/jonathan/seo-assistant/internal/server/ratelimit"
	"github.com/jonathan/seo-assistant/internal/tasks"
	"github.com/jonathan/seo-assistant/internal/types"
)

const briefJSON = `{
  "title": "SEO Tools: The Complete Guide",
  "meta_description": "Learn how to pick and use the best SEO tools to grow organic traffic, with practical tips for audits, keywords, and tracking results.",
  "content_type": "guide",
  "word_count_target": 1500,
  "outline": ["Introduction", "Choosing a tool", "Conclusion"],
  "call_to_action": "Try an audit on your own site today."
}`

type stubClient struct{}

func (stubClient) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return briefJSON, nil
}

func (stubClient) GenerateContent(context.Context, string, llm.ModelTier) (string, error) {
	return "Section body text.", nil
}

func (stubClient) GetModel(llm.ModelTier) string { return "stub" }
func (stubClient) Close() error                  { return nil }

type stubSource struct{}

func (stubSource) Search(context.Context, string, int) ([]retrieval.Document, error) {
	return []retrieval.Document{
		{Title: "Search engine optimization", Snippet: "seo improves visibility"},
	}, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	p := pipeline.New(stubClient{}, stubSource{}, pipeline.Options{})
	manager := tasks.NewManager(p, 2)
	t.Cleanup(manager.Shutdown)
	coordinator := bulk.NewCoordinator(p, 0)

	s, err := New(Config{
		Port:        0,
		Pipeline:    p,
		TaskManager: manager,
		Coordinator: coordinator,
		Planner:     calendar.NewPlanner(p, coordinator),
		RateLimit:   &ratelimit.Config{Enabled: false},
	})
	require.NoError(t, err)
	return s
}

func postJSON(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestHandleAnalyze(t *testing.T) {
	s := newTestServer(t)
	rec := postJSON(t, s, "/analyze", map[string]string{"keyword": "seo tools"})

	require.Equal(t, http.StatusOK, rec.Code)
	var rc types.RetrievalContext
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rc))
	assert.Equal(t, "seo tools", rc.Keyword)
	assert.Greater(t, rc.QualityScore, 0.0)
}

func TestHandleAnalyze_MissingKeyword(t *testing.T) {
	s := newTestServer(t)
	rec := postJSON(t, s, "/analyze", map[string]string{"goal": "traffic"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAnalyze_InvalidBody(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest("POST", "/analyze", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleBrief(t *testing.T) {
	s := newTestServer(t)
	rec := postJSON(t, s, "/brief", map[string]string{"keyword": "seo tools"})

	require.Equal(t, http.StatusOK, rec.Code)
	var brief types.ContentBrief
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &brief))
	assert.Equal(t, "SEO Tools: The Complete Guide", brief.Title)
}

func TestHandleArticle_Async(t *testing.T) {
	s := newTestServer(t)
	rec := postJSON(t, s, "/article", map[string]string{"keyword": "seo tools"})

	require.Equal(t, http.StatusAccepted, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	taskID := resp["task_id"]
	require.NotEmpty(t, taskID)

	// Poll the task endpoint until the article completes.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		req := httptest.NewRequest("GET", "/tasks/"+taskID, nil)
		poll := httptest.NewRecorder()
		s.routes().ServeHTTP(poll, req)
		require.Equal(t, http.StatusOK, poll.Code)

		var task types.Task
		require.NoError(t, json.Unmarshal(poll.Body.Bytes(), &task))
		if task.Status.Terminal() {
			assert.Equal(t, types.TaskCompleted, task.Status)
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("article task never completed")
}

func TestHandleGetTask_NotFound(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest("GET", "/tasks/does-not-exist", nil)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleCreateTask_UnknownOperation(t *testing.T) {
	s := newTestServer(t)
	rec := postJSON(t, s, "/tasks", map[string]string{"operation": "translate", "keyword": "seo"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleBulk(t *testing.T) {
	s := newTestServer(t)
	rec := postJSON(t, s, "/bulk", map[string]any{
		"keywords": []string{"seo tools", "keyword research"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var result types.BulkResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Succeeded)
}

func TestHandleBulk_TooManyKeywords(t *testing.T) {
	s := newTestServer(t)
	keywords := make([]string, bulk.MaxKeywords+1)
	for i := range keywords {
		keywords[i] = "kw"
	}
	rec := postJSON(t, s, "/bulk", map[string]any{"keywords": keywords})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCalendar(t *testing.T) {
	s := newTestServer(t)
	rec := postJSON(t, s, "/calendar", map[string]any{
		"keywords":        []string{"seo tools", "keyword research", "link building"},
		"timeframe_weeks": 2,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var cal types.Calendar
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cal))
	assert.Equal(t, 2, cal.TimeframeWeeks)
	assert.Len(t, cal.Items, 3)
}

func TestHandleCalendar_InvalidWeeks(t *testing.T) {
	s := newTestServer(t)
	rec := postJSON(t, s, "/calendar", map[string]any{
		"keywords":        []string{"seo tools"},
		"timeframe_weeks": 90,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleListRuns_NoDatabase(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest("GET", "/runs", nil)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleGetRunArtifact_NoDatabase(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest("GET", "/runs/"+uuid.New().String()+"/artifacts/content_brief", nil)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
