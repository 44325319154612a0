package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rahafha1/project-manager-api/internal/access"
	"github.com/rahafha1/project-manager-api/internal/dto"
	apierrors "github.com/rahafha1/project-manager-api/internal/errors"
	"github.com/rahafha1/project-manager-api/internal/middleware"
	"github.com/rahafha1/project-manager-api/internal/models"
	"github.com/rahafha1/project-manager-api/internal/services"
	"github.com/rahafha1/project-manager-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	registerValidators()
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the tasks visible to the caller.
// Supports project, assigned_to, status, due_date and search filters.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params, ok := pagination(c)
	if !ok {
		return
	}
	input := services.ListTasksInput{
		Search:     strings.TrimSpace(c.Query("search")),
		Pagination: params,
	}

	if input.ProjectID, ok = queryID(c, "project"); !ok {
		return
	}
	if input.AssignedToID, ok = queryID(c, "assigned_to"); !ok {
		return
	}
	if raw := c.Query("status"); raw != "" {
		status, valid := models.ParseTaskStatus(raw)
		if !valid {
			apierrors.BadRequest(c, "Invalid status")
			return
		}
		input.Status = &status
	}
	if raw := c.Query("due_date"); raw != "" {
		day, err := dto.ParseDate(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid due_date")
			return
		}
		input.DueDate = &day
	}

	tasks, total, err := h.taskService.ListTasks(c.Request.Context(), middleware.GetPrincipal(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, utils.NewPaginationResponse(input.Pagination, total)))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), middleware.GetPrincipal(c), services.CreateTaskInput{
		ProjectID:    req.Project,
		Title:        req.Title,
		Description:  req.Description,
		AssignedToID: req.AssignedTo,
		Status:       models.TaskStatus(req.Status),
		DueDate:      req.DueDate.Ptr(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ReplaceTask handles PUT. The project must be resent and cannot change.
func (h *TaskHandler) ReplaceTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	status := models.TaskStatusTodo
	if req.Status != "" {
		status = models.TaskStatus(req.Status)
	}

	h.update(c, access.ActionUpdate, id, services.UpdateTaskInput{
		ProjectID:    &req.Project,
		Title:        &req.Title,
		Description:  &req.Description,
		AssignedToID: &req.AssignedTo,
		Status:       &status,
		DueDate:      req.DueDate.Ptr(),
		ClearDueDate: req.DueDate == nil,
	})
}

// PatchTask handles PATCH: only supplied fields change
func (h *TaskHandler) PatchTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.PatchTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	input := services.UpdateTaskInput{
		ProjectID:    req.Project,
		Title:        req.Title,
		Description:  req.Description,
		AssignedToID: req.AssignedTo,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.DueDate.Set {
		input.DueDate = req.DueDate.Value
		input.ClearDueDate = req.DueDate.Value == nil
	}

	h.update(c, access.ActionPartialUpdate, id, input)
}

func (h *TaskHandler) update(c *gin.Context, action access.Action, id uint64, input services.UpdateTaskInput) {
	task, err := h.taskService.UpdateTask(c.Request.Context(), middleware.GetPrincipal(c), action, id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
