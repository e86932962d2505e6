// Package tasks runs generation requests in the background on a bounded
// worker pool and exposes their status by ID.
package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/seo-assistant/internal/pipeline"
	"github.com/jonathan/seo-assistant/internal/types"
)

// Operation selects what a dispatched task produces.
type Operation string

// Supported background operations.
const (
	OpAnalyze Operation = "analyze"
	OpBrief   Operation = "brief"
	OpArticle Operation = "article"
)

// Progress milestones. Each phase only ever moves progress forward.
const (
	progressQueued    = 0.0
	progressRetrieval = 0.2
	progressBrief     = 0.6
	progressDone      = 1.0
)

// DefaultWorkers is the worker pool size when none is configured.
const DefaultWorkers = 4

const queueCapacity = 256

// NotFoundError indicates a task ID with no known task.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task with ID %s not found", e.ID)
}

type job struct {
	taskID    string
	operation Operation
	keyword   string
	goal      string
}

// Manager dispatches generation tasks onto a worker pool. Dispatch never
// blocks on generation; it records a queued task and returns its ID
// immediately. Task snapshots are copies, safe for the caller to hold.
type Manager struct {
	pipeline *pipeline.Pipeline

	mu    sync.RWMutex
	tasks map[string]*types.Task

	queue  chan job
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc

	now func() time.Time
}

// NewManager starts a manager with the given number of workers.
func NewManager(p *pipeline.Pipeline, workers int) *Manager {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		pipeline: p,
		tasks:    make(map[string]*types.Task),
		queue:    make(chan job, queueCapacity),
		ctx:      ctx,
		cancel:   cancel,
		now:      time.Now,
	}
	for i := 0; i < workers; i++ {
		m.wg.Add(1)
		go m.worker()
	}
	return m
}

// Shutdown stops accepting work, cancels running tasks, and waits for the
// workers to exit. Jobs still queued are abandoned.
func (m *Manager) Shutdown() {
	m.cancel()
	m.wg.Wait()
}

// Dispatch enqueues a generation task and returns its ID immediately.
func (m *Manager) Dispatch(operation Operation, keyword, goal string) (string, error) {
	switch operation {
	case OpAnalyze, OpBrief, OpArticle:
	default:
		return "", fmt.Errorf("unknown operation %q", operation)
	}

	taskID := uuid.New().String()
	now := m.now()

	m.mu.Lock()
	m.tasks[taskID] = &types.Task{
		ID:        taskID,
		Keyword:   types.NormalizeKeyword(keyword),
		Status:    types.TaskQueued,
		Progress:  progressQueued,
		Message:   "queued",
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.mu.Unlock()

	select {
	case m.queue <- job{taskID: taskID, operation: operation, keyword: keyword, goal: goal}:
	case <-m.ctx.Done():
		m.fail(taskID, fmt.Errorf("manager is shutting down"))
	}
	return taskID, nil
}

// Get returns a snapshot of a task, or a *NotFoundError for unknown IDs.
func (m *Manager) Get(taskID string) (*types.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	task, ok := m.tasks[taskID]
	if !ok {
		return nil, &NotFoundError{ID: taskID}
	}
	snapshot := *task
	return &snapshot, nil
}

func (m *Manager) worker() {
	defer m.wg.Done()
	for {
		select {
		case <-m.ctx.Done():
			return
		case j := <-m.queue:
			m.run(j)
		}
	}
}

func (m *Manager) run(j job) {
	m.update(j.taskID, types.TaskProcessing, 0.05, "retrieving context")

	rc, err := m.pipeline.AnalyzeKeyword(m.ctx, j.keyword, j.goal)
	if err != nil {
		m.fail(j.taskID, err)
		return
	}
	if j.operation == OpAnalyze {
		m.complete(j.taskID, rc)
		return
	}
	m.update(j.taskID, types.TaskProcessing, progressRetrieval, "context designed")

	brief, err := m.pipeline.BriefFromContext(m.ctx, rc)
	if err != nil {
		m.fail(j.taskID, err)
		return
	}
	if j.operation == OpBrief {
		m.complete(j.taskID, brief)
		return
	}
	m.update(j.taskID, types.TaskProcessing, progressBrief, "writing article sections")

	article, err := m.pipeline.ArticleFromBrief(m.ctx, brief)
	if err != nil {
		m.fail(j.taskID, err)
		return
	}
	m.complete(j.taskID, article)
}

// update advances a task's state. Progress never moves backwards.
func (m *Manager) update(taskID string, status types.TaskStatus, progress float64, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[taskID]
	if !ok || task.Status.Terminal() {
		return
	}
	task.Status = status
	if progress > task.Progress {
		task.Progress = progress
	}
	task.Message = message
	task.UpdatedAt = m.now()
}

func (m *Manager) complete(taskID string, result any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[taskID]
	if !ok || task.Status.Terminal() {
		return
	}
	task.Status = types.TaskCompleted
	task.Progress = progressDone
	task.Message = "completed"
	task.Result = result
	task.UpdatedAt = m.now()
}

func (m *Manager) fail(taskID string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[taskID]
	if !ok || task.Status.Terminal() {
		return
	}
	task.Status = types.TaskFailed
	task.Message = "failed"
	task.Error = err.Error()
	task.UpdatedAt = m.now()
}
