package board_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mtlprog/taskboard/internal/board"
	"github.com/mtlprog/taskboard/internal/domain"
	"github.com/mtlprog/taskboard/internal/storage"
	"github.com/stretchr/testify/suite"
)

// StoreTestSuite is the test suite for the board store.
type StoreTestSuite struct {
	suite.Suite
	db      *storage.DB
	gateway *storage.Gateway
	store   *board.Store

	// clock is the store's frozen time source; tests advance it.
	clock time.Time
}

// SetupTest opens a fresh database file for every test.
func (s *StoreTestSuite) SetupTest() {
	ctx := context.Background()

	db, err := storage.Open(filepath.Join(s.T().TempDir(), "board.db"))
	s.Require().NoError(err, "failed to open database")
	s.db = db

	err = storage.RunMigrations(ctx, db.Handle())
	s.Require().NoError(err, "failed to run migrations")

	s.gateway = storage.NewGateway(db)
	s.clock = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	s.store = board.New(ctx, s.gateway, board.WithClock(func() time.Time { return s.clock }))
}

// TearDownTest closes the database.
func (s *StoreTestSuite) TearDownTest() {
	if s.db != nil {
		s.db.Close()
	}
}

// TestCreate_Defaults tests that status and priority default.
func (s *StoreTestSuite) TestCreate_Defaults() {
	ctx := context.Background()

	task, err := s.store.Create(ctx, domain.TaskDraft{Title: "  Write docs  "})
	s.Require().NoError(err)

	s.Equal("Write docs", task.Title)
	s.Equal(domain.StatusTodo, task.Status)
	s.Equal(domain.PriorityMedium, task.Priority)
	s.Nil(task.UpdatedAt)
	s.Equal(s.clock, task.CreatedAt)
}

// TestCreate_UniqueIDs tests that consecutive creates get distinct IDs.
func (s *StoreTestSuite) TestCreate_UniqueIDs() {
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		task, err := s.store.Create(ctx, domain.TaskDraft{Title: "Task"})
		s.Require().NoError(err)
		s.False(seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
		s.clock = s.clock.Add(time.Millisecond)
	}
}

// TestCreate_EmptyTitle tests that a blank title is rejected without
// touching the collection or the activity log.
func (s *StoreTestSuite) TestCreate_EmptyTitle() {
	ctx := context.Background()

	_, err := s.store.Create(ctx, domain.TaskDraft{Title: "   "})
	s.Error(err)
	s.ErrorIs(err, domain.ErrEmptyTitle)

	s.Empty(s.store.Tasks())
	s.Empty(s.store.Activities())
}

// TestCreate_InvalidEnums tests status and priority validation.
func (s *StoreTestSuite) TestCreate_InvalidEnums() {
	ctx := context.Background()

	_, err := s.store.Create(ctx, domain.TaskDraft{Title: "T", Status: domain.Status("archived")})
	s.ErrorIs(err, domain.ErrInvalidStatus)

	_, err = s.store.Create(ctx, domain.TaskDraft{Title: "T", Priority: domain.Priority("urgent")})
	s.ErrorIs(err, domain.ErrInvalidPriority)
}

// TestCreate_ActivityMessage tests the created activity entry.
func (s *StoreTestSuite) TestCreate_ActivityMessage() {
	ctx := context.Background()

	_, err := s.store.Create(ctx, domain.TaskDraft{Title: "Ship it"})
	s.Require().NoError(err)

	entries := s.store.Activities()
	s.Require().Len(entries, 1)
	s.Equal(domain.ActivityCreated, entries[0].Type)
	s.Equal(`Created task: "Ship it"`, entries[0].Message)
}

// TestUpdate_StampsUpdatedAt tests that editing stamps UpdatedAt.
func (s *StoreTestSuite) TestUpdate_StampsUpdatedAt() {
	ctx := context.Background()

	task, err := s.store.Create(ctx, domain.TaskDraft{Title: "Draft"})
	s.Require().NoError(err)
	s.Nil(task.UpdatedAt)

	s.clock = s.clock.Add(time.Hour)
	title := "Final"
	updated, err := s.store.Update(ctx, task.ID, domain.TaskPatch{Title: &title})
	s.Require().NoError(err)

	s.Equal("Final", updated.Title)
	s.Require().NotNil(updated.UpdatedAt)
	s.Equal(s.clock, *updated.UpdatedAt)

	entries := s.store.Activities()
	s.Equal(`Updated task: "Final"`, entries[0].Message)
}

// TestUpdate_PartialPatch tests that omitted fields keep their values.
func (s *StoreTestSuite) TestUpdate_PartialPatch() {
	ctx := context.Background()

	task, err := s.store.Create(ctx, domain.TaskDraft{
		Title:       "Keep me",
		Description: "Original description",
		Priority:    domain.PriorityHigh,
		Tags:        []string{"infra"},
	})
	s.Require().NoError(err)

	due := "2024-04-01"
	updated, err := s.store.Update(ctx, task.ID, domain.TaskPatch{DueDate: &due})
	s.Require().NoError(err)

	s.Equal("Keep me", updated.Title)
	s.Equal("Original description", updated.Description)
	s.Equal(domain.PriorityHigh, updated.Priority)
	s.Equal([]string{"infra"}, updated.Tags)
	s.Equal("2024-04-01", updated.DueDate)
}

// TestUpdate_EmptyTitle tests that an edit cannot blank the title.
func (s *StoreTestSuite) TestUpdate_EmptyTitle() {
	ctx := context.Background()

	task, err := s.store.Create(ctx, domain.TaskDraft{Title: "Valid"})
	s.Require().NoError(err)

	blank := "   "
	_, err = s.store.Update(ctx, task.ID, domain.TaskPatch{Title: &blank})
	s.ErrorIs(err, domain.ErrEmptyTitle)

	// Task unchanged.
	got, err := s.store.Get(task.ID)
	s.Require().NoError(err)
	s.Equal("Valid", got.Title)
	s.Nil(got.UpdatedAt)
}

// TestUpdate_NotFound tests editing a missing task.
func (s *StoreTestSuite) TestUpdate_NotFound() {
	ctx := context.Background()

	title := "x"
	_, err := s.store.Update(ctx, "missing", domain.TaskPatch{Title: &title})
	s.ErrorIs(err, domain.ErrTaskNotFound)
}

// TestMove_ChangesOnlyStatus tests a real move.
func (s *StoreTestSuite) TestMove_ChangesOnlyStatus() {
	ctx := context.Background()

	task, err := s.store.Create(ctx, domain.TaskDraft{Title: "Mover"})
	s.Require().NoError(err)

	moved, ok, err := s.store.Move(ctx, task.ID, domain.StatusDoing)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(domain.StatusDoing, moved.Status)

	// Moving never stamps UpdatedAt.
	s.Nil(moved.UpdatedAt)

	entries := s.store.Activities()
	s.Require().Len(entries, 2)
	s.Equal(domain.ActivityMoved, entries[0].Type)
	s.Equal(`Moved "Mover" to In Progress`, entries[0].Message)
}

// TestMove_SameColumn tests that moving onto the current column is a
// silent no-op.
func (s *StoreTestSuite) TestMove_SameColumn() {
	ctx := context.Background()

	task, err := s.store.Create(ctx, domain.TaskDraft{Title: "Stayer"})
	s.Require().NoError(err)
	before := len(s.store.Activities())

	got, ok, err := s.store.Move(ctx, task.ID, domain.StatusTodo)
	s.Require().NoError(err)
	s.False(ok)
	s.Equal(domain.StatusTodo, got.Status)
	s.Len(s.store.Activities(), before)
}

// TestMove_InvalidStatus tests that the status check runs before the
// existence check.
func (s *StoreTestSuite) TestMove_InvalidStatus() {
	ctx := context.Background()

	_, _, err := s.store.Move(ctx, "missing", domain.Status("archived"))
	s.ErrorIs(err, domain.ErrInvalidStatus)

	_, _, err = s.store.Move(ctx, "missing", domain.StatusDone)
	s.ErrorIs(err, domain.ErrTaskNotFound)
}

// TestDelete_RetainsTitleInActivity tests the delete message.
func (s *StoreTestSuite) TestDelete_RetainsTitleInActivity() {
	ctx := context.Background()

	task, err := s.store.Create(ctx, domain.TaskDraft{Title: "Doomed"})
	s.Require().NoError(err)

	err = s.store.Delete(ctx, task.ID)
	s.Require().NoError(err)

	_, err = s.store.Get(task.ID)
	s.ErrorIs(err, domain.ErrTaskNotFound)

	entries := s.store.Activities()
	s.Require().Len(entries, 2)
	s.Equal(domain.ActivityDeleted, entries[0].Type)
	s.Equal(`Deleted task: "Doomed"`, entries[0].Message)
}

// TestCreateFromTemplate tests the batch create path.
func (s *StoreTestSuite) TestCreateFromTemplate() {
	ctx := context.Background()

	drafts := []domain.TaskDraft{
		{Title: "First", Priority: domain.PriorityHigh, Status: domain.StatusDone},
		{Title: "Second"},
	}

	created, err := s.store.CreateFromTemplate(ctx, drafts)
	s.Require().NoError(err)
	s.Require().Len(created, 2)

	// Batch creation forces todo regardless of the draft status.
	s.Equal(domain.StatusTodo, created[0].Status)
	s.Equal(domain.StatusTodo, created[1].Status)

	// One summary entry for the whole batch.
	entries := s.store.Activities()
	s.Require().Len(entries, 1)
	s.Equal("Created 2 tasks from template", entries[0].Message)
}

// TestCreateFromTemplate_AllOrNothing tests that a bad draft rejects
// the whole batch.
func (s *StoreTestSuite) TestCreateFromTemplate_AllOrNothing() {
	ctx := context.Background()

	drafts := []domain.TaskDraft{
		{Title: "Good"},
		{Title: "  "},
	}

	_, err := s.store.CreateFromTemplate(ctx, drafts)
	s.ErrorIs(err, domain.ErrEmptyTitle)
	s.Empty(s.store.Tasks())
	s.Empty(s.store.Activities())
}

// TestReset tests that reset clears tasks and activity without adding
// an entry of its own.
func (s *StoreTestSuite) TestReset() {
	ctx := context.Background()

	_, err := s.store.Create(ctx, domain.TaskDraft{Title: "Gone soon"})
	s.Require().NoError(err)

	err = s.store.Reset(ctx)
	s.Require().NoError(err)

	s.Empty(s.store.Tasks())
	s.Empty(s.store.Activities())
}

// TestPersistence_Reload tests that a second store sees the first
// store's writes.
func (s *StoreTestSuite) TestPersistence_Reload() {
	ctx := context.Background()

	task, err := s.store.Create(ctx, domain.TaskDraft{Title: "Durable", Tags: []string{"a", "b"}})
	s.Require().NoError(err)
	_, _, err = s.store.Move(ctx, task.ID, domain.StatusDoing)
	s.Require().NoError(err)

	reloaded := board.New(ctx, s.gateway)
	tasks := reloaded.Tasks()
	s.Require().Len(tasks, 1)
	s.Equal("Durable", tasks[0].Title)
	s.Equal(domain.StatusDoing, tasks[0].Status)
	s.Equal([]string{"a", "b"}, tasks[0].Tags)

	entries := reloaded.Activities()
	s.Require().Len(entries, 2)
	s.Equal(domain.ActivityMoved, entries[0].Type)
}

// TestStoreTestSuite runs the test suite.
func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
