// Package board owns the authoritative in-memory task collection and
// the activity log. Every mutation is flushed write-through to the
// persistence gateway before the operation returns; a failed write is
// logged and the in-memory state stays authoritative for the session.
package board

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mtlprog/taskboard/internal/domain"
	"github.com/mtlprog/taskboard/internal/storage"
)

// Store coordinates task mutations, activity recording, and
// write-through persistence.
type Store struct {
	mu       sync.Mutex
	gateway  *storage.Gateway
	tasks    []domain.Task
	activity []domain.ActivityEntry
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the store's time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store and loads both persisted records. Missing or
// corrupt records come back as empty defaults from the gateway.
func New(ctx context.Context, gateway *storage.Gateway, opts ...Option) *Store {
	s := &Store{
		gateway:  gateway,
		tasks:    gateway.LoadTasks(ctx),
		activity: gateway.LoadActivity(ctx),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the draft and appends a new task to the collection.
// Status defaults to todo and priority to medium when unspecified.
func (s *Store) Create(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.taskFromDraft(draft, domain.Status(""))
	if err != nil {
		return nil, err
	}

	s.tasks = append(s.tasks, *task)
	s.record(ctx, domain.ActivityCreated, fmt.Sprintf("Created task: %q", task.Title))
	s.persistTasks(ctx)

	slog.Info("task created", "task_id", task.ID, "status", task.Status)

	return task, nil
}

// CreateFromTemplate appends one task per draft, each with a fresh ID
// and status forced to todo. The whole batch is validated before any
// task is added, produces a single summary activity entry, and is
// flushed in one write.
func (s *Store) CreateFromTemplate(ctx context.Context, drafts []domain.TaskDraft) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := make([]domain.Task, 0, len(drafts))
	for _, draft := range drafts {
		task, err := s.taskFromDraft(draft, domain.StatusTodo)
		if err != nil {
			return nil, err
		}
		created = append(created, *task)
	}

	s.tasks = append(s.tasks, created...)
	s.record(ctx, domain.ActivityCreated, fmt.Sprintf("Created %d tasks from template", len(created)))
	s.persistTasks(ctx)

	slog.Info("tasks created from template", "count", len(created))

	return created, nil
}

// Update merges the patch into the task with the given id and stamps
// UpdatedAt. The edit path is the only one that advances UpdatedAt.
func (s *Store) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, domain.ErrTaskNotFound
	}

	merged := s.tasks[idx]
	if patch.Title != nil {
		merged.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.Priority != nil {
		merged.Priority = *patch.Priority
	}
	if patch.Status != nil {
		merged.Status = *patch.Status
	}
	if patch.DueDate != nil {
		merged.DueDate = *patch.DueDate
	}
	if patch.Tags != nil {
		merged.Tags = domain.NormalizeTags(patch.Tags)
	}

	if merged.Title == "" {
		return nil, domain.ErrEmptyTitle
	}
	if !merged.Status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}
	if !merged.Priority.IsValid() {
		return nil, domain.ErrInvalidPriority
	}

	updatedAt := s.now()
	merged.UpdatedAt = &updatedAt
	s.tasks[idx] = merged

	s.record(ctx, domain.ActivityEdited, fmt.Sprintf("Updated task: %q", merged.Title))
	s.persistTasks(ctx)

	slog.Info("task updated", "task_id", merged.ID)

	return &merged, nil
}

// Move sets the task's status to newStatus. Moving a task onto the
// column it is already in is a silent non-event: no activity entry,
// no UpdatedAt change, and the second return value is false.
func (s *Store) Move(ctx context.Context, id string, newStatus domain.Status) (*domain.Task, bool, error) {
	if !newStatus.IsValid() {
		return nil, false, domain.ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, false, domain.ErrTaskNotFound
	}

	if s.tasks[idx].Status == newStatus {
		task := s.tasks[idx]
		return &task, false, nil
	}

	s.tasks[idx].Status = newStatus
	task := s.tasks[idx]

	s.record(ctx, domain.ActivityMoved, fmt.Sprintf("Moved %q to %s", task.Title, newStatus.Title()))
	s.persistTasks(ctx)

	slog.Info("task moved", "task_id", task.ID, "new_status", newStatus)

	return &task, true, nil
}

// Delete removes the task with the given id. The activity message
// snapshots the title before removal.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.ErrTaskNotFound
	}

	title := s.tasks[idx].Title
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)

	s.record(ctx, domain.ActivityDeleted, fmt.Sprintf("Deleted task: %q", title))
	s.persistTasks(ctx)

	slog.Info("task deleted", "task_id", id)

	return nil
}

// Reset clears the whole task collection and activity log in one
// step. The reset itself generates no activity entry.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = []domain.Task{}
	s.activity = []domain.ActivityEntry{}

	if err := s.gateway.ClearBoard(ctx); err != nil {
		slog.Warn("board clear write failed, in-memory state kept", "error", err)
	}

	slog.Info("board reset")

	return nil
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, domain.ErrTaskNotFound
	}
	task := s.tasks[idx]
	return &task, nil
}

// Tasks returns a snapshot of the task collection in insertion order.
func (s *Store) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Activities returns a snapshot of the activity log, newest first.
// Storage is unbounded; display layers cap what they show.
func (s *Store) Activities() []domain.ActivityEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ActivityEntry, len(s.activity))
	copy(out, s.activity)
	return out
}

// taskFromDraft validates a draft and builds the new task. When
// forceStatus is set it overrides whatever the draft carries.
func (s *Store) taskFromDraft(draft domain.TaskDraft, forceStatus domain.Status) (*domain.Task, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}

	status := draft.Status
	if forceStatus != "" {
		status = forceStatus
	}
	if status == "" {
		status = domain.StatusTodo
	}
	if !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	priority := draft.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, domain.ErrInvalidPriority
	}

	now := s.now()
	return &domain.Task{
		ID:          domain.NewID(now),
		Title:       title,
		Description: draft.Description,
		Priority:    priority,
		Status:      status,
		DueDate:     draft.DueDate,
		Tags:        domain.NormalizeTags(draft.Tags),
		CreatedAt:   now,
	}, nil
}

// record prepends an activity entry and writes the log through.
func (s *Store) record(ctx context.Context, typ domain.ActivityType, message string) {
	now := s.now()
	entry := domain.ActivityEntry{
		ID:        domain.NewID(now),
		Type:      typ,
		Message:   message,
		Timestamp: now,
	}
	s.activity = append([]domain.ActivityEntry{entry}, s.activity...)

	if err := s.gateway.SaveActivity(ctx, s.activity); err != nil {
		slog.Warn("activity write failed, in-memory state kept", "error", err)
	}
}

// persistTasks writes the collection through to the gateway.
func (s *Store) persistTasks(ctx context.Context) {
	if err := s.gateway.SaveTasks(ctx, s.tasks); err != nil {
		slog.Warn("task write failed, in-memory state kept", "error", err)
	}
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
