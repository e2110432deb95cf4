package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	_ "github.com/mtlprog/taskboard/docs" // Import generated docs
	"github.com/mtlprog/taskboard/internal/auth"
	"github.com/mtlprog/taskboard/internal/board"
	"github.com/mtlprog/taskboard/internal/handler/dto"
	"github.com/mtlprog/taskboard/internal/middleware"
	"github.com/mtlprog/taskboard/internal/static"
	"github.com/mtlprog/taskboard/internal/storage"
	"github.com/mtlprog/taskboard/internal/template"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	db        *storage.DB
	store     *board.Store
	auth      *auth.Manager
	templates *template.Catalog
	session   *middleware.SessionMiddleware
}

// New creates a new Handler instance with all dependencies.
func New(db *storage.DB, store *board.Store, authManager *auth.Manager, templates *template.Catalog) *Handler {
	return &Handler{
		db:        db,
		store:     store,
		auth:      authManager,
		templates: templates,
		session:   middleware.NewSessionMiddleware(authManager),
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Landing page
	mux.HandleFunc("GET /{$}", h.handleIndex)

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	// Session routes (no auth required)
	mux.HandleFunc("POST /api/v1/login", h.handleLogin)
	mux.HandleFunc("GET /api/v1/session", h.handleSession)

	// API v1 routes behind the session guard
	mux.Handle("POST /api/v1/logout", h.session.Require(http.HandlerFunc(h.handleLogout)))
	mux.Handle("GET /api/v1/board", h.session.Require(http.HandlerFunc(h.handleBoard)))
	mux.Handle("POST /api/v1/board/reset", h.session.Require(http.HandlerFunc(h.handleResetBoard)))
	mux.Handle("GET /api/v1/tasks", h.session.Require(http.HandlerFunc(h.handleListTasks)))
	mux.Handle("POST /api/v1/tasks", h.session.Require(http.HandlerFunc(h.handleCreateTask)))
	mux.Handle("GET /api/v1/tasks/{id}", h.session.Require(http.HandlerFunc(h.handleGetTask)))
	mux.Handle("PATCH /api/v1/tasks/{id}", h.session.Require(http.HandlerFunc(h.handleUpdateTask)))
	mux.Handle("DELETE /api/v1/tasks/{id}", h.session.Require(http.HandlerFunc(h.handleDeleteTask)))
	mux.Handle("POST /api/v1/tasks/{id}/move", h.session.Require(http.HandlerFunc(h.handleMoveTask)))
	mux.Handle("GET /api/v1/templates", h.session.Require(http.HandlerFunc(h.handleListTemplates)))
	mux.Handle("POST /api/v1/templates/{key}/apply", h.session.Require(http.HandlerFunc(h.handleApplyTemplate)))
	mux.Handle("GET /api/v1/activity", h.session.Require(http.HandlerFunc(h.handleActivity)))
	mux.Handle("GET /api/v1/analytics", h.session.Require(http.HandlerFunc(h.handleAnalytics)))
	mux.Handle("GET /api/v1/export/csv", h.session.Require(http.HandlerFunc(h.handleExportCSV)))
	mux.Handle("GET /api/v1/export/full-csv", h.session.Require(http.HandlerFunc(h.handleExportFullCSV)))
	mux.Handle("GET /api/v1/export/json", h.session.Require(http.HandlerFunc(h.handleExportJSON)))
	mux.Handle("GET /api/v1/report", h.session.Require(http.HandlerFunc(h.handleReport)))
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.db.Ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// handleIndex serves the embedded landing page.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(static.IndexHTML))
}

// Ping checks if the database is reachable (used for testing).
func (h *Handler) Ping(ctx context.Context) error {
	return h.db.Ping(ctx)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// extractTaskID extracts and validates the task ID path parameter.
// Returns (taskID, true) if present, ("", false) if missing (error
// already sent to client).
func extractTaskID(w http.ResponseWriter, r *http.Request) (string, bool) {
	taskID := r.PathValue("id")
	if taskID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "task id is required")
		return "", false
	}
	return taskID, true
}
