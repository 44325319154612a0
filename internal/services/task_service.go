package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rahafha1/project-manager-api/internal/access"
	"github.com/rahafha1/project-manager-api/internal/constants"
	"github.com/rahafha1/project-manager-api/internal/models"
	"github.com/rahafha1/project-manager-api/internal/repository"
	"github.com/rahafha1/project-manager-api/internal/utils"
	"gorm.io/gorm"
)

const maxTaskTitleLength = 100

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	engine      *access.Engine
	aiService   *AIService
}

// NewTaskService creates a new TaskService. aiService may be nil.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, engine *access.Engine, aiService *AIService) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		engine:      engine,
		aiService:   aiService,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	ProjectID    *uint64
	AssignedToID *uint64
	Status       *models.TaskStatus
	DueDate      *time.Time
	Search       string
	Pagination   utils.PaginationParams
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	ProjectID    uint64
	Title        string
	Description  string
	AssignedToID uint64
	Status       models.TaskStatus
	DueDate      *time.Time
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// unchanged; ClearDueDate removes the due date.
type UpdateTaskInput struct {
	ProjectID    *uint64
	Title        *string
	Description  *string
	AssignedToID *uint64
	Status       *models.TaskStatus
	DueDate      *time.Time
	ClearDueDate bool
}

// ListTasks returns the tasks visible to p, narrowed by the filters
func (s *TaskService) ListTasks(ctx context.Context, p access.Principal, input ListTasksInput) ([]models.Task, int64, error) {
	if err := s.engine.AuthorizeTask(ctx, p, access.ActionList, nil, nil); err != nil {
		return nil, 0, err
	}

	tasks, total, err := s.taskRepo.List(ctx, repository.TaskFilter{
		Scope:        s.engine.TaskScope(p),
		ProjectID:    input.ProjectID,
		AssignedToID: input.AssignedToID,
		Status:       input.Status,
		DueDate:      input.DueDate,
		Search:       input.Search,
		Pagination:   input.Pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a visible task
func (s *TaskService) GetTask(ctx context.Context, p access.Principal, taskID uint64) (*models.Task, error) {
	task, _, err := s.authorized(ctx, p, access.ActionRetrieve, taskID)
	return task, err
}

// CreateTask creates a task after the creation guard admits p on the
// referenced project. Nothing is written when the guard denies.
func (s *TaskService) CreateTask(ctx context.Context, p access.Principal, input CreateTaskInput) (*models.Task, error) {
	if !p.IsAuthenticated {
		return nil, access.ErrUnauthenticated
	}

	title, err := validateTaskTitle(input.Title)
	if err != nil {
		return nil, err
	}
	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	project, err := s.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskProjectMissing
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.engine.AuthorizeTaskCreate(ctx, p, project); err != nil {
		return nil, err
	}

	if err := s.ensureAssignable(ctx, project, input.AssignedToID); err != nil {
		return nil, err
	}

	task := &models.Task{
		ProjectID:    project.ID,
		Title:        title,
		Description:  input.Description,
		AssignedToID: input.AssignedToID,
		Status:       input.Status,
		DueDate:      input.DueDate,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask applies a full or partial update. action is ActionUpdate or
// ActionPartialUpdate.
func (s *TaskService) UpdateTask(ctx context.Context, p access.Principal, action access.Action, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, project, err := s.authorized(ctx, p, action, taskID)
	if err != nil {
		return nil, err
	}

	if input.ProjectID != nil && *input.ProjectID != task.ProjectID {
		return nil, ErrTaskProjectImmutable
	}
	if input.Title != nil {
		title, err := validateTaskTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.AssignedToID != nil && *input.AssignedToID != task.AssignedToID {
		if err := s.ensureAssignable(ctx, project, *input.AssignedToID); err != nil {
			return nil, err
		}
		task.AssignedToID = *input.AssignedToID
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes a task
func (s *TaskService) DeleteTask(ctx context.Context, p access.Principal, taskID uint64) error {
	if _, _, err := s.authorized(ctx, p, access.ActionDestroy, taskID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// SuggestTasks asks the AI service for tasks described by text. The caller
// needs the same rights on the project as for creating a task.
func (s *TaskService) SuggestTasks(ctx context.Context, p access.Principal, projectID uint64, text string) ([]SuggestedTask, error) {
	if !p.IsAuthenticated {
		return nil, access.ErrUnauthenticated
	}

	project, err := s.projectRepo.FindByID(ctx, projectID, s.engine.ProjectScope(p))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if err := s.engine.AuthorizeProject(ctx, p, access.ActionSuggestTasks, project); err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrAITextRequired
	}
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	suggestions, err := s.aiService.SuggestTasks(ctx, text)
	if err != nil {
		if errors.Is(err, ErrAIUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}
	if len(suggestions) == 0 {
		return nil, ErrAINoTasksGenerated
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	valid := make([]SuggestedTask, 0, len(suggestions))
	for _, suggestion := range suggestions {
		if suggestion.Title == "" {
			continue
		}
		if utf8.RuneCountInString(suggestion.Title) > maxTaskTitleLength {
			suggestion.Title = string([]rune(suggestion.Title)[:maxTaskTitleLength])
		}
		if suggestion.DueDate != nil && suggestion.DueDate.Before(today) {
			suggestion.DueDate = nil
		}
		valid = append(valid, suggestion)
		if len(valid) == constants.MaxAIGeneratedTasks {
			break
		}
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidTasks
	}

	return valid, nil
}

// authorized loads a task through the visibility scope, resolves its project
// and checks action. Invisible tasks are reported as missing.
func (s *TaskService) authorized(ctx context.Context, p access.Principal, action access.Action, taskID uint64) (*models.Task, *models.Project, error) {
	if !p.IsAuthenticated {
		return nil, nil, access.ErrUnauthenticated
	}

	task, err := s.taskRepo.FindByID(ctx, taskID, s.engine.TaskScope(p))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTaskNotFound
		}
		return nil, nil, fmt.Errorf("failed to find task: %w", err)
	}

	project, err := s.projectRepo.FindByID(ctx, task.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTaskNotFound
		}
		return nil, nil, fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.engine.AuthorizeTask(ctx, p, action, project, task); err != nil {
		return nil, nil, err
	}
	return task, project, nil
}

// ensureAssignable verifies that userID is the project's manager or a member
func (s *TaskService) ensureAssignable(ctx context.Context, project *models.Project, userID uint64) error {
	if userID == 0 {
		return ErrInvalidTaskAssignee
	}
	if userID == project.ManagerID {
		return nil
	}

	ok, err := s.projectRepo.IsMember(ctx, project.ID, userID)
	if err != nil {
		return fmt.Errorf("failed to verify assignee: %w", err)
	}
	if !ok {
		return ErrInvalidTaskAssignee
	}
	return nil
}

func validateTaskTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > maxTaskTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}
