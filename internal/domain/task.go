package domain

import (
	"strings"
	"time"
)

// Status identifies the board column a task belongs to.
type Status string

const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// Columns returns the three fixed board columns in display order.
func Columns() []Status {
	return []Status{StatusTodo, StatusDoing, StatusDone}
}

// IsValid checks if the status is one of the three column keys.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	default:
		return false
	}
}

// Title returns the human-readable column title shown to users and
// embedded in activity messages.
func (s Status) Title() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusDoing:
		return "In Progress"
	case StatusDone:
		return "Completed"
	default:
		return string(s)
	}
}

// Priority represents the priority level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid checks if the priority is one of the allowed values.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Task represents one unit of work on the board.
//
// UpdatedAt is set only by the explicit edit path, never by a move;
// CreatedAt is immutable after creation. DueDate is an ISO calendar
// date string ("2006-01-02") or empty.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	DueDate     string     `json:"dueDate,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// TaskDraft is the input for creating a task. ID and CreatedAt are
// assigned by the store. Zero-value Status and Priority default to
// todo and medium.
type TaskDraft struct {
	Title       string
	Description string
	Priority    Priority
	Status      Status
	DueDate     string
	Tags        []string
}

// TaskPatch carries the fields to merge into an existing task. Nil
// fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *Priority
	Status      *Status
	DueDate     *string
	Tags        []string
}

// NormalizeTags trims each tag and drops empties, preserving the
// insertion order of what remains.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
