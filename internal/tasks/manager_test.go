package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/seo-assistant/internal/llm"
	"github.com/jonathan/seo-assistant/internal/pipeline"
	"github.com/jonathan/seo-assistant/internal/retrieval"
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

type stubClient struct {
	jsonResponse string
	delay        time.Duration
}

func (c *stubClient) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	return c.jsonResponse, nil
}

func (c *stubClient) GenerateContent(context.Context, string, llm.ModelTier) (string, error) {
	return "Generated section body with several words in it.", nil
}

func (c *stubClient) GetModel(llm.ModelTier) string { return "stub" }
func (c *stubClient) Close() error                  { return nil }

type stubSource struct{}

func (stubSource) Search(context.Context, string, int) ([]retrieval.Document, error) {
	return []retrieval.Document{
		{Title: "Search engine optimization", Snippet: "seo tools improve visibility"},
	}, nil
}

func newManager(t *testing.T, client llm.Client) *Manager {
	t.Helper()
	p := pipeline.New(client, stubSource{}, pipeline.Options{})
	m := NewManager(p, 2)
	t.Cleanup(m.Shutdown)
	return m
}

func waitForTerminal(t *testing.T, m *Manager, taskID string) *types.Task {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		task, err := m.Get(taskID)
		require.NoError(t, err)
		if task.Status.Terminal() {
			return task
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("task never reached a terminal state")
	return nil
}

func TestDispatch_ReturnsImmediately(t *testing.T) {
	m := newManager(t, &stubClient{jsonResponse: briefJSON, delay: 100 * time.Millisecond})

	start := time.Now()
	taskID, err := m.Dispatch(OpBrief, "seo tools", "")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 50*time.Millisecond, "dispatch must not wait for generation")

	task, err := m.Get(taskID)
	require.NoError(t, err)
	assert.False(t, task.Status.Terminal())

	done := waitForTerminal(t, m, taskID)
	assert.Equal(t, types.TaskCompleted, done.Status)
}

func TestTask_CompletesBriefWithResult(t *testing.T) {
	m := newManager(t, &stubClient{jsonResponse: briefJSON})

	taskID, err := m.Dispatch(OpBrief, "seo tools", "grow traffic")
	require.NoError(t, err)

	task := waitForTerminal(t, m, taskID)
	assert.Equal(t, types.TaskCompleted, task.Status)
	assert.InDelta(t, 1.0, task.Progress, 1e-9)
	assert.Empty(t, task.Error)

	brief, ok := task.Result.(*types.ContentBrief)
	require.True(t, ok)
	assert.Equal(t, "seo tools", brief.Keyword)
}

func TestTask_ArticleOperation(t *testing.T) {
	m := newManager(t, &stubClient{jsonResponse: briefJSON})

	taskID, err := m.Dispatch(OpArticle, "seo tools", "")
	require.NoError(t, err)

	task := waitForTerminal(t, m, taskID)
	require.Equal(t, types.TaskCompleted, task.Status)

	article, ok := task.Result.(*types.Article)
	require.True(t, ok)
	assert.Len(t, article.Sections, 3)
}

func TestTask_ParseFailureFails(t *testing.T) {
	m := newManager(t, &stubClient{jsonResponse: "not json"})

	taskID, err := m.Dispatch(OpBrief, "seo tools", "")
	require.NoError(t, err)

	task := waitForTerminal(t, m, taskID)
	assert.Equal(t, types.TaskFailed, task.Status)
	assert.NotEmpty(t, task.Error)
	assert.Nil(t, task.Result)
	assert.Less(t, task.Progress, 1.0, "failed tasks never report full progress")
}

func TestTask_ProgressMonotonic(t *testing.T) {
	m := newManager(t, &stubClient{jsonResponse: briefJSON, delay: 20 * time.Millisecond})

	taskID, err := m.Dispatch(OpArticle, "seo tools", "")
	require.NoError(t, err)

	last := -1.0
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		task, err := m.Get(taskID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, task.Progress, last)
		last = task.Progress
		if task.Status.Terminal() {
			break
		}
		time.Sleep(2 * time.Millisecond)
	}
	assert.InDelta(t, 1.0, last, 1e-9)
}

func TestGet_UnknownID(t *testing.T) {
	m := newManager(t, &stubClient{jsonResponse: briefJSON})

	_, err := m.Get("no-such-task")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Contains(t, err.Error(), "not found")
}

func TestDispatch_UnknownOperation(t *testing.T) {
	m := newManager(t, &stubClient{jsonResponse: briefJSON})

	_, err := m.Dispatch(Operation("translate"), "seo tools", "")
	assert.Error(t, err)
}

func TestGet_SnapshotIsCopy(t *testing.T) {
	m := newManager(t, &stubClient{jsonResponse: briefJSON})

	taskID, err := m.Dispatch(OpAnalyze, "seo tools", "")
	require.NoError(t, err)
	task := waitForTerminal(t, m, taskID)

	task.Status = types.TaskQueued
	again, err := m.Get(taskID)
	require.NoError(t, err)
	assert.Equal(t, types.TaskCompleted, again.Status, "mutating a snapshot must not affect the manager")
}
