package repository

import (
	"context"
	"strings"

	"github.com/rahafha1/project-manager-api/internal/database"
	"github.com/rahafha1/project-manager-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task by ID within the given scopes
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64, scopes ...Scope) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Scopes(scopes...).First(&task, "tasks.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Task{})
	if filter.Scope != nil {
		query = query.Scopes(filter.Scope)
	}

	// Apply filters
	if filter.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.AssignedToID != nil {
		query = query.Where("tasks.assigned_to_id = ?", *filter.AssignedToID)
	}
	if filter.Status != nil {
		query = query.Where("LOWER(tasks.status) = ?", strings.ToLower(string(*filter.Status)))
	}
	if filter.DueDate != nil {
		day := *filter.DueDate
		query = query.Where("tasks.due_date >= ? AND tasks.due_date < ?", day, day.AddDate(0, 0, 1))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("(LOWER(tasks.title) LIKE ? OR LOWER(tasks.description) LIKE ?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.Task
	if err := query.Order("tasks.id ASC").Scopes(database.Paginate(filter.Pagination)).Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update saves every column of a task
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit("Project", "AssignedTo").Save(task).Error
}

// Delete soft deletes a task
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Task{}, id).Error
}
