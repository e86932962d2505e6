//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// TaskStatus is the lifecycle state of a background task
type TaskStatus string

// Task lifecycle states. Queued and Processing are transient;
// Completed and Failed are terminal.
const (
	TaskQueued     TaskStatus = "queued"
	TaskProcessing TaskStatus = "processing"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
)

// Terminal reports whether the status is an end state.
func (s TaskStatus) Terminal() bool {
	return s == TaskCompleted || s == TaskFailed
}

// Task is a snapshot of a long-running generation request.
// Progress is monotonically non-decreasing while processing and reaches
// exactly 1.0 only at completion. Result is set iff completed; Error iff failed.
type Task struct {
	ID        string     `json:"task_id"`
	Keyword   string     `json:"keyword"`
	Status    TaskStatus `json:"status"`
	Progress  float64    `json:"progress"`
	Message   string     `json:"message,omitempty"`
	Result    any        `json:"result,omitempty"`
	Error     string     `json:"error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
