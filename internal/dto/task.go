package dto

import (
	"time"

	"github.com/rahafha1/project-manager-api/internal/models"
	"github.com/rahafha1/project-manager-api/internal/services"
	"github.com/rahafha1/project-manager-api/internal/utils"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64            `json:"id"`
	Project     uint64            `json:"project"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	AssignedTo  uint64            `json:"assigned_to"`
	Status      models.TaskStatus `json:"status"`
	DueDate     *string           `json:"due_date"`
	CreatedAt   time.Time         `json:"created_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// SuggestedTaskDTO represents an AI suggestion
type SuggestedTaskDTO struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
}

// CreateTaskRequest is the body of POST /api/tasks and PUT /api/tasks/:id
type CreateTaskRequest struct {
	Project     uint64 `json:"project" binding:"required"`
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description"`
	AssignedTo  uint64 `json:"assigned_to" binding:"required"`
	Status      string `json:"status" binding:"omitempty,task_status"`
	DueDate     *Date  `json:"due_date"`
}

// PatchTaskRequest is the body of PATCH /api/tasks/:id
type PatchTaskRequest struct {
	Project     *uint64      `json:"project"`
	Title       *string      `json:"title" binding:"omitempty,max=100"`
	Description *string      `json:"description"`
	AssignedTo  *uint64      `json:"assigned_to"`
	Status      *string      `json:"status" binding:"omitempty,task_status"`
	DueDate     OptionalDate `json:"due_date"`
}

// SuggestTasksRequest is the body of POST /api/projects/:id/task-suggestions
type SuggestTasksRequest struct {
	Text string `json:"text" binding:"required"`
}

// ToTaskDTO converts a task to DTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Project:     task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		AssignedTo:  task.AssignedToID,
		Status:      task.Status,
		DueDate:     FormatDate(task.DueDate),
		CreatedAt:   task.CreatedAt,
	}
}

// ToTaskListResponse converts tasks to a paginated response
func ToTaskListResponse(tasks []models.Task, pagination utils.PaginationResponse) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return TaskListResponse{Tasks: items, Pagination: pagination}
}

// ToSuggestedTaskDTOs converts AI suggestions
func ToSuggestedTaskDTOs(tasks []services.SuggestedTask) []SuggestedTaskDTO {
	items := make([]SuggestedTaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = SuggestedTaskDTO{
			Title:       task.Title,
			Description: task.Description,
			DueDate:     FormatDate(task.DueDate),
		}
	}
	return items
}
