package dto

import (
	"time"

	"github.com/mtlprog/taskboard/internal/domain"
	"github.com/mtlprog/taskboard/internal/view"
)

// TaskInfo represents a task in API responses. Field names mirror the
// persisted record shape.
type TaskInfo struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     string     `json:"dueDate,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// ToTaskInfo converts a domain.Task.
func ToTaskInfo(task *domain.Task) TaskInfo {
	return TaskInfo{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		DueDate:     task.DueDate,
		Tags:        task.Tags,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskInfos converts a task slice.
func ToTaskInfos(tasks []domain.Task) []TaskInfo {
	out := make([]TaskInfo, len(tasks))
	for i := range tasks {
		out[i] = ToTaskInfo(&tasks[i])
	}
	return out
}

// ColumnInfo is one board column with its filtered tasks.
type ColumnInfo struct {
	Key   string     `json:"key"`
	Title string     `json:"title"`
	Count int        `json:"count"`
	Tasks []TaskInfo `json:"tasks"`
}

// BoardResponse represents the response for GET /board.
type BoardResponse struct {
	Columns []ColumnInfo    `json:"columns"`
	Stats   view.BoardStats `json:"stats"`
}

// MoveTaskResponse represents the response for POST /tasks/:id/move.
// Moved is false when source and destination column were identical.
type MoveTaskResponse struct {
	Task  TaskInfo `json:"task"`
	Moved bool     `json:"moved"`
}

// TemplateAppliedResponse represents the response for POST
// /templates/:key/apply.
type TemplateAppliedResponse struct {
	Created int        `json:"created"`
	Tasks   []TaskInfo `json:"tasks"`
}

// ActivityInfo represents one activity log entry.
type ActivityInfo struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ActivityResponse represents the response for GET /activity.
type ActivityResponse struct {
	Activities []ActivityInfo `json:"activities"`
	Total      int            `json:"total"`
}

// ToActivityInfos converts activity entries.
func ToActivityInfos(entries []domain.ActivityEntry) []ActivityInfo {
	out := make([]ActivityInfo, len(entries))
	for i, e := range entries {
		out[i] = ActivityInfo{
			ID:        e.ID,
			Type:      string(e.Type),
			Message:   e.Message,
			Timestamp: e.Timestamp,
		}
	}
	return out
}

// AnalyticsResponse represents the response for GET /analytics.
type AnalyticsResponse struct {
	Stats        view.BoardStats    `json:"stats"`
	Priority     view.PriorityShare `json:"priority"`
	Trend        []view.TrendPoint  `json:"trend"`
	WeekTotal    int                `json:"weekTotal"`
	DailyAverage float64            `json:"dailyAverage"`
}

// SessionResponse represents the response for GET /session and POST
// /login.
type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
}
