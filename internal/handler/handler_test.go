package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mtlprog/taskboard/internal/auth"
	"github.com/mtlprog/taskboard/internal/board"
	"github.com/mtlprog/taskboard/internal/config"
	"github.com/mtlprog/taskboard/internal/handler"
	"github.com/mtlprog/taskboard/internal/handler/dto"
	"github.com/mtlprog/taskboard/internal/storage"
	"github.com/mtlprog/taskboard/internal/template"
)

type HandlerTestSuite struct {
	suite.Suite
	db  *storage.DB
	mux *http.ServeMux
}

// SetupTest builds a fresh application on a temp database for every
// test.
func (s *HandlerTestSuite) SetupTest() {
	ctx := context.Background()

	db, err := storage.Open(filepath.Join(s.T().TempDir(), "handler.db"))
	s.Require().NoError(err)
	s.db = db

	err = storage.RunMigrations(ctx, db.Handle())
	s.Require().NoError(err)

	gateway := storage.NewGateway(db)
	store := board.New(ctx, gateway)
	authManager := auth.New(ctx, gateway, config.DefaultEmail, config.DefaultPassword)

	templates, err := template.Load()
	s.Require().NoError(err)

	h := handler.New(db, store, authManager, templates)
	s.mux = http.NewServeMux()
	h.RegisterRoutes(s.mux)
}

func (s *HandlerTestSuite) TearDownTest() {
	if s.db != nil {
		s.db.Close()
	}
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

// Helper to send a JSON request through the mux.
func (s *HandlerTestSuite) makeRequest(method, path string, body interface{}) *httptest.ResponseRecorder {
	var bodyReader *bytes.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader([]byte{})
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)
	return w
}

// Helper to log in with the demo credential.
func (s *HandlerTestSuite) login() {
	w := s.makeRequest("POST", "/api/v1/login", dto.LoginRequest{
		Email:    config.DefaultEmail,
		Password: config.DefaultPassword,
	})
	s.Require().Equal(http.StatusOK, w.Code)
}

// Helper to create a task and return its response body.
func (s *HandlerTestSuite) createTask(req dto.CreateTaskRequest) dto.TaskInfo {
	w := s.makeRequest("POST", "/api/v1/tasks", req)
	s.Require().Equal(http.StatusCreated, w.Code)

	var task dto.TaskInfo
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&task))
	return task
}

// Test 1: Unauthenticated request returns 401
func (s *HandlerTestSuite) TestCreateTask_Unauthorized() {
	w := s.makeRequest("POST", "/api/v1/tasks", dto.CreateTaskRequest{Title: "Test Task"})
	s.Equal(http.StatusUnauthorized, w.Code)
}

// Test 2: Login rejects the wrong credential
func (s *HandlerTestSuite) TestLogin_InvalidCredentials() {
	w := s.makeRequest("POST", "/api/v1/login", dto.LoginRequest{
		Email:    config.DefaultEmail,
		Password: "wrong",
	})
	s.Equal(http.StatusUnauthorized, w.Code)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&errResp))
	s.Equal("INVALID_CREDENTIALS", errResp.Error.Code)
}

// Test 3: Session endpoint reflects the login state
func (s *HandlerTestSuite) TestSession_Lifecycle() {
	w := s.makeRequest("GET", "/api/v1/session", nil)
	s.Equal(http.StatusOK, w.Code)

	var session dto.SessionResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&session))
	s.False(session.Authenticated)

	s.login()

	w = s.makeRequest("GET", "/api/v1/session", nil)
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&session))
	s.True(session.Authenticated)
	s.Require().NotNil(session.User)
	s.Equal(config.DefaultEmail, session.User.Email)

	w = s.makeRequest("POST", "/api/v1/logout", nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.makeRequest("GET", "/api/v1/session", nil)
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&session))
	s.False(session.Authenticated)
}

// Test 4: Validation error returns 422
func (s *HandlerTestSuite) TestCreateTask_ValidationError() {
	s.login()

	w := s.makeRequest("POST", "/api/v1/tasks", dto.CreateTaskRequest{Title: "   "})
	s.Equal(http.StatusUnprocessableEntity, w.Code)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&errResp))
	s.Equal("VALIDATION_ERROR", errResp.Error.Code)
}

// Test 5: Create, move, and delete a task end to end
func (s *HandlerTestSuite) TestTask_Lifecycle() {
	s.login()

	task := s.createTask(dto.CreateTaskRequest{
		Title:    "Ship the release",
		Priority: "high",
		Tags:     []string{"release"},
	})
	s.Equal("todo", task.Status)
	s.Equal("high", task.Priority)

	// Move to doing.
	w := s.makeRequest("POST", "/api/v1/tasks/"+task.ID+"/move", dto.MoveTaskRequest{Status: "doing"})
	s.Require().Equal(http.StatusOK, w.Code)

	var moveResp dto.MoveTaskResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&moveResp))
	s.True(moveResp.Moved)
	s.Equal("doing", moveResp.Task.Status)
	s.Nil(moveResp.Task.UpdatedAt)

	// Moving onto the same column reports moved=false.
	w = s.makeRequest("POST", "/api/v1/tasks/"+task.ID+"/move", dto.MoveTaskRequest{Status: "doing"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&moveResp))
	s.False(moveResp.Moved)

	// Delete.
	w = s.makeRequest("DELETE", "/api/v1/tasks/"+task.ID, nil)
	s.Equal(http.StatusNoContent, w.Code)

	w = s.makeRequest("GET", "/api/v1/tasks/"+task.ID, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

// Test 6: Edit stamps updatedAt and records activity
func (s *HandlerTestSuite) TestUpdateTask() {
	s.login()

	task := s.createTask(dto.CreateTaskRequest{Title: "Draft title"})

	title := "Final title"
	w := s.makeRequest("PATCH", "/api/v1/tasks/"+task.ID, dto.UpdateTaskRequest{Title: &title})
	s.Require().Equal(http.StatusOK, w.Code)

	var updated dto.TaskInfo
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&updated))
	s.Equal("Final title", updated.Title)
	s.NotNil(updated.UpdatedAt)

	w = s.makeRequest("GET", "/api/v1/activity", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var activity dto.ActivityResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&activity))
	s.Equal(2, activity.Total)
	s.Equal(`Updated task: "Final title"`, activity.Activities[0].Message)
}

// Test 7: Board view partitions by column and applies filters
func (s *HandlerTestSuite) TestBoard_Filters() {
	s.login()

	s.createTask(dto.CreateTaskRequest{Title: "Fix login bug", Priority: "high"})
	s.createTask(dto.CreateTaskRequest{Title: "Write docs", Priority: "low"})
	done := s.createTask(dto.CreateTaskRequest{Title: "Old chore"})
	w := s.makeRequest("POST", "/api/v1/tasks/"+done.ID+"/move", dto.MoveTaskRequest{Status: "done"})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.makeRequest("GET", "/api/v1/board?priority=high", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var boardResp dto.BoardResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&boardResp))
	s.Require().Len(boardResp.Columns, 3)

	s.Equal("todo", boardResp.Columns[0].Key)
	s.Equal(1, boardResp.Columns[0].Count)
	s.Equal("Fix login bug", boardResp.Columns[0].Tasks[0].Title)
	s.Equal(0, boardResp.Columns[2].Count)

	// Stats cover the whole collection, not the filtered view.
	s.Equal(3, boardResp.Stats.Total)
	s.Equal(1, boardResp.Stats.Completed)
	s.Equal(33, boardResp.Stats.CompletionRate)
}

// Test 8: Applying a template pack creates its tasks in todo
func (s *HandlerTestSuite) TestApplyTemplate() {
	s.login()

	w := s.makeRequest("POST", "/api/v1/templates/startup/apply", nil)
	s.Require().Equal(http.StatusCreated, w.Code)

	var applied dto.TemplateAppliedResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&applied))
	s.Equal(4, applied.Created)
	for _, task := range applied.Tasks {
		s.Equal("todo", task.Status)
	}

	var activity dto.ActivityResponse
	w = s.makeRequest("GET", "/api/v1/activity", nil)
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&activity))
	s.Equal(1, activity.Total)
	s.Equal("Created 4 tasks from template", activity.Activities[0].Message)
}

// Test 9: Unknown template key returns 404
func (s *HandlerTestSuite) TestApplyTemplate_NotFound() {
	s.login()

	w := s.makeRequest("POST", "/api/v1/templates/nonexistent/apply", nil)
	s.Equal(http.StatusNotFound, w.Code)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&errResp))
	s.Equal("TEMPLATE_NOT_FOUND", errResp.Error.Code)
}

// Test 10: Board reset clears tasks and activity
func (s *HandlerTestSuite) TestResetBoard() {
	s.login()

	s.createTask(dto.CreateTaskRequest{Title: "Doomed"})

	w := s.makeRequest("POST", "/api/v1/board/reset", nil)
	s.Equal(http.StatusNoContent, w.Code)

	w = s.makeRequest("GET", "/api/v1/tasks", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var tasks []dto.TaskInfo
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&tasks))
	s.Empty(tasks)

	var activity dto.ActivityResponse
	w = s.makeRequest("GET", "/api/v1/activity", nil)
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&activity))
	s.Equal(0, activity.Total)
}

// Test 11: CSV export carries the attachment headers and quoting
func (s *HandlerTestSuite) TestExportCSV() {
	s.login()

	s.createTask(dto.CreateTaskRequest{Title: "Exported", Priority: "low", Tags: []string{"a", "b"}})

	w := s.makeRequest("GET", "/api/v1/export/csv", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	s.Contains(w.Header().Get("Content-Disposition"), "attachment")

	body := w.Body.String()
	s.Contains(body, "Title,Priority,Status,Due Date,Tags")
	s.Contains(body, `"Exported","low","todo","","a; b"`)
}

// Test 12: Analytics shape
func (s *HandlerTestSuite) TestAnalytics() {
	s.login()

	s.createTask(dto.CreateTaskRequest{Title: "One", Priority: "high"})
	s.createTask(dto.CreateTaskRequest{Title: "Two"})

	w := s.makeRequest("GET", "/api/v1/analytics", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var analytics dto.AnalyticsResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&analytics))
	s.Equal(2, analytics.Stats.Total)
	s.InDelta(50.0, analytics.Priority.High, 0.001)
	s.Len(analytics.Trend, 7)
	s.Equal(0, analytics.WeekTotal)
}

// Test 13: Health check
func (s *HandlerTestSuite) TestHealthz() {
	w := s.makeRequest("GET", "/healthz", nil)
	s.Equal(http.StatusOK, w.Code)
}
