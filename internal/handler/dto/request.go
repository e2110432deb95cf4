package dto

import "github.com/mtlprog/taskboard/internal/domain"

// LoginRequest represents the request body for POST /login.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// CreateTaskRequest represents the request body for POST /tasks.
type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Status      string   `json:"status,omitempty"`
	DueDate     string   `json:"dueDate,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Draft converts the request into a creation draft.
func (r CreateTaskRequest) Draft() domain.TaskDraft {
	return domain.TaskDraft{
		Title:       r.Title,
		Description: r.Description,
		Priority:    domain.Priority(r.Priority),
		Status:      domain.Status(r.Status),
		DueDate:     r.DueDate,
		Tags:        r.Tags,
	}
}

// UpdateTaskRequest represents the request body for PATCH /tasks/:id.
// Absent fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Priority    *string  `json:"priority,omitempty"`
	Status      *string  `json:"status,omitempty"`
	DueDate     *string  `json:"dueDate,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Patch converts the request into a merge patch.
func (r UpdateTaskRequest) Patch() domain.TaskPatch {
	patch := domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Tags:        r.Tags,
	}
	if r.Priority != nil {
		p := domain.Priority(*r.Priority)
		patch.Priority = &p
	}
	if r.Status != nil {
		s := domain.Status(*r.Status)
		patch.Status = &s
	}
	return patch
}

// MoveTaskRequest represents the request body for POST /tasks/:id/move.
type MoveTaskRequest struct {
	Status string `json:"status"`
}
