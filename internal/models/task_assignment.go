package models

import "time"

// TaskAssignment is one (task, employee) pairing as returned by the remote
// API, normalized once at the client boundary.
type TaskAssignment struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	DueDate     time.Time  `json:"due_date"`
	Assignee    UserRef    `json:"assignee"`
	Kind        TaskKind   `json:"kind"`
	Picture     string     `json:"picture,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// HasDueDate reports whether the remote record carried a due date.
func (a TaskAssignment) HasDueDate() bool {
	return !a.DueDate.IsZero()
}
