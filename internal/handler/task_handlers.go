package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mtlprog/taskboard/internal/domain"
	"github.com/mtlprog/taskboard/internal/handler/dto"
)

// handleCreateTask creates a new task.
// @Summary Create a new task
// @Description Creates a task. Status defaults to todo, priority to medium.
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task creation request"
// @Success 201 {object} dto.TaskInfo
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /tasks [post]
func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	task, err := h.store.Create(ctx, req.Draft())
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTaskInfo(task))
}

// handleListTasks returns the full task collection.
// @Summary List all tasks
// @Description Get the whole task collection in insertion order
// @Tags tasks
// @Produce json
// @Success 200 {array} dto.TaskInfo
// @Router /tasks [get]
func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.ToTaskInfos(h.store.Tasks()))
}

// handleGetTask returns one task.
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskInfo
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{id} [get]
func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.store.Get(taskID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskInfo(task))
}

// handleUpdateTask edits a task.
// @Summary Edit a task
// @Description Merge the given fields into the task and stamp updatedAt
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Fields to change"
// @Success 200 {object} dto.TaskInfo
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /tasks/{id} [patch]
func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	task, err := h.store.Update(ctx, taskID, req.Patch())
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskInfo(task))
}

// handleMoveTask moves a task to another column.
// @Summary Move a task
// @Description Set the task's column. Moving onto the current column is a no-op with moved=false.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.MoveTaskRequest true "Destination column"
// @Success 200 {object} dto.MoveTaskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /tasks/{id}/move [post]
func (h *Handler) handleMoveTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	var req dto.MoveTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	task, moved, err := h.store.Move(ctx, taskID, domain.Status(req.Status))
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.MoveTaskResponse{
		Task:  dto.ToTaskInfo(task),
		Moved: moved,
	})
}

// handleDeleteTask deletes a task.
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(ctx, taskID); err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleResetBoard clears the whole board.
// @Summary Reset the board
// @Description Delete every task and the whole activity log
// @Tags board
// @Success 204
// @Router /board/reset [post]
func (h *Handler) handleResetBoard(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Reset(r.Context()); err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListTemplates lists the built-in template packs.
// @Summary List template packs
// @Tags templates
// @Produce json
// @Success 200 {array} template.Pack
// @Router /templates [get]
func (h *Handler) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.templates.List())
}

// handleApplyTemplate instantiates a template pack onto the board.
// @Summary Apply a template pack
// @Description Create the pack's tasks, each forced into the todo column
// @Tags templates
// @Produce json
// @Param key path string true "Template key"
// @Success 201 {object} dto.TemplateAppliedResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /templates/{key}/apply [post]
func (h *Handler) handleApplyTemplate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key := r.PathValue("key")
	if key == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "template key is required")
		return
	}

	pack, err := h.templates.Get(key)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	created, err := h.store.CreateFromTemplate(ctx, pack.Drafts())
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusCreated, dto.TemplateAppliedResponse{
		Created: len(created),
		Tasks:   dto.ToTaskInfos(created),
	})
}
