package repository

import (
	"context"
	"time"

	"github.com/rahafha1/project-manager-api/internal/models"
	"github.com/rahafha1/project-manager-api/internal/utils"
	"gorm.io/gorm"
)

// Scope narrows a query, typically to the rows a principal may see.
type Scope = func(db *gorm.DB) *gorm.DB

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID within the given scopes
	FindByID(ctx context.Context, id uint64, scopes ...Scope) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error)

	// Update saves every column of a task
	Update(ctx context.Context, task *models.Task) error

	// Delete soft deletes a task
	Delete(ctx context.Context, id uint64) error
}

// TaskFilter holds filtering options for listing tasks. Scope is applied
// first; the other filters only ever narrow it.
type TaskFilter struct {
	Scope        Scope
	ProjectID    *uint64
	AssignedToID *uint64
	Status       *models.TaskStatus
	DueDate      *time.Time
	Search       string
	Pagination   utils.PaginationParams
}

// ProjectRepository defines the interface for project and membership data access
type ProjectRepository interface {
	// Create creates a new project
	Create(ctx context.Context, project *models.Project) error

	// FindByID finds a project by ID within the given scopes
	FindByID(ctx context.Context, id uint64, scopes ...Scope) (*models.Project, error)

	// List retrieves projects within scope with pagination
	List(ctx context.Context, scope Scope, params utils.PaginationParams) ([]models.Project, int64, error)

	// Update saves a project's editable columns
	Update(ctx context.Context, project *models.Project) error

	// Delete deletes a project together with its tasks and memberships
	Delete(ctx context.Context, id uint64) error

	// IsMember reports whether a membership row exists
	IsMember(ctx context.Context, projectID, userID uint64) (bool, error)

	// AddMember adds a member to a project
	AddMember(ctx context.Context, member *models.ProjectMember) error

	// RemoveMember removes a member from a project
	RemoveMember(ctx context.Context, projectID, userID uint64) error

	// ListMembers lists all members of a project
	ListMembers(ctx context.Context, projectID uint64) ([]models.ProjectMember, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// List retrieves users ordered by ID
	List(ctx context.Context, params utils.PaginationParams) ([]models.User, int64, error)

	// UpdateFlags sets the account flags of a user
	UpdateFlags(ctx context.Context, id uint64, flags UserFlags) (*models.User, error)
}

// UserFlags holds the administratively managed account flags. Nil fields are
// left unchanged.
type UserFlags struct {
	IsStaff     *bool
	IsActive    *bool
	IsSuperuser *bool
}
