package models

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is one of the three statuses the remote API accepts.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// TaskKind distinguishes recurring checklist items from tasks backed by a
// feedback form.
type TaskKind string

const (
	TaskKindRecurring TaskKind = "recurring"
	TaskKindFormBased TaskKind = "form-based"
)
