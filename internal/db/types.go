package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents one generation run record.
type Run struct {
	ID          uuid.UUID  `json:"id"`
	Keyword     string     `json:"keyword"`
	Goal        string     `json:"goal,omitempty"`
	Operation   string     `json:"operation"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// User represents a registered API user.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
