package repository

import (
	"context"
	"errors"

	"github.com/rahafha1/project-manager-api/internal/database"
	"github.com/rahafha1/project-manager-api/internal/models"
	"github.com/rahafha1/project-manager-api/internal/utils"
	"gorm.io/gorm"
)

// ErrMembershipExists is returned when adding a membership row twice.
var ErrMembershipExists = errors.New("project repository: membership already exists")

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// FindByID finds a project by ID within the given scopes
func (r *GormProjectRepository) FindByID(ctx context.Context, id uint64, scopes ...Scope) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Scopes(scopes...).
		Preload("Manager").
		Preload("Memberships", func(db *gorm.DB) *gorm.DB {
			return db.Order("project_members.user_id ASC")
		}).
		Preload("Memberships.User").
		First(&project, "projects.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves projects within scope with pagination
func (r *GormProjectRepository) List(ctx context.Context, scope Scope, params utils.PaginationParams) ([]models.Project, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Project{})
	if scope != nil {
		query = query.Scopes(scope)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	err := query.
		Preload("Manager").
		Preload("Memberships", func(db *gorm.DB) *gorm.DB {
			return db.Order("project_members.user_id ASC")
		}).
		Preload("Memberships.User").
		Order("projects.id ASC").
		Scopes(database.Paginate(params)).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// Update saves a project's editable columns. The manager is never changed.
func (r *GormProjectRepository) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).
		Model(project).
		Select("name", "description").
		Updates(project).Error
}

// Delete deletes a project together with its tasks and memberships
func (r *GormProjectRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}

// IsMember reports whether a membership row exists
func (r *GormProjectRepository) IsMember(ctx context.Context, projectID, userID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddMember adds a member to a project. The composite primary key decides
// duplicates, so concurrent adds of the same user cannot both succeed.
func (r *GormProjectRepository) AddMember(ctx context.Context, member *models.ProjectMember) error {
	err := r.db.WithContext(ctx).Omit("Project", "User").Create(member).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrMembershipExists
	}
	return err
}

// RemoveMember removes a member from a project
func (r *GormProjectRepository) RemoveMember(ctx context.Context, projectID, userID uint64) error {
	result := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListMembers lists all members of a project
func (r *GormProjectRepository) ListMembers(ctx context.Context, projectID uint64) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("user_id ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}
