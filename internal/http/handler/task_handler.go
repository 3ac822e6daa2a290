package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/salesdesk/crm-api/internal/domain"
	"github.com/salesdesk/crm-api/internal/service"
	"go.uber.org/zap"
)

// TaskHandler handles HTTP requests for tasks, global and customer-owned
type TaskHandler struct {
	taskService *service.TaskService
	logger      *zap.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ListGlobalTasks godoc
// @Summary List global tasks
// @Tags Tasks
// @Produce json
// @Success 200 {array} domain.Task
// @Router /tasks [get]
func (h *TaskHandler) ListGlobalTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListGlobal(r.Context())
	if err != nil {
		h.logger.Error("failed to list global tasks", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list tasks")
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

// CreateGlobalTask godoc
// @Summary Create a global task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param task body domain.TaskRequest true "Task"
// @Success 201 {object} domain.Task
// @Failure 400 {object} domain.APIError
// @Router /tasks [post]
func (h *TaskHandler) CreateGlobalTask(w http.ResponseWriter, r *http.Request) {
	var req domain.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	task, err := h.taskService.Create(r.Context(), nil, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to create task")
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

// ListCustomerTasks godoc
// @Summary List tasks of a customer
// @Tags Tasks
// @Produce json
// @Param customerId path string true "Customer ID"
// @Success 200 {array} domain.Task
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId}/tasks [get]
func (h *TaskHandler) ListCustomerTasks(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")

	tasks, err := h.taskService.ListByCustomer(r.Context(), customerID)
	if err != nil {
		respondServiceError(w, err, "Failed to list tasks")
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

// CreateCustomerTask godoc
// @Summary Create a task for a customer
// @Tags Tasks
// @Accept json
// @Produce json
// @Param customerId path string true "Customer ID"
// @Param task body domain.TaskRequest true "Task"
// @Success 201 {object} domain.Task
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId}/tasks [post]
func (h *TaskHandler) CreateCustomerTask(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")

	var req domain.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	task, err := h.taskService.Create(r.Context(), &customerID, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to create task")
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

// GetTask godoc
// @Summary Get a task
// @Tags Tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} domain.Task
// @Failure 404 {object} domain.APIError
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	task, err := h.taskService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get task")
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// UpdateTask godoc
// @Summary Update a task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param task body domain.TaskRequest true "Task"
// @Success 200 {object} domain.Task
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	task, err := h.taskService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to update task")
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// CompleteTask godoc
// @Summary Mark a task completed or reopen it
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param body body object true "Flag" SchemaExample({\"completed\": true})
// @Success 200 {object} domain.Task
// @Failure 404 {object} domain.APIError
// @Router /tasks/{id}/complete [put]
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Completed bool `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.taskService.SetCompleted(r.Context(), id, req.Completed)
	if err != nil {
		respondServiceError(w, err, "Failed to update task")
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags Tasks
// @Param id path string true "Task ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.taskService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete task")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
