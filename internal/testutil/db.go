// Package testutil provides an in-memory database and fixtures for tests.
package testutil

import (
	"testing"
	"time"

	"github.com/rahafha1/project-manager-api/internal/database"
	"github.com/rahafha1/project-manager-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory sqlite database closed at test cleanup.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// UserOption adjusts a fixture user before it is saved.
type UserOption func(*models.User)

func Superuser() UserOption { return func(u *models.User) { u.IsSuperuser = true } }
func Staff() UserOption     { return func(u *models.User) { u.IsStaff = true } }
func Inactive() UserOption  { return func(u *models.User) { u.IsActive = false } }

// CreateUser stores a user with a placeholder password hash.
func CreateUser(t *testing.T, db *gorm.DB, username string, opts ...UserOption) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
		IsActive:     true,
	}
	for _, opt := range opts {
		opt(user)
	}
	require.NoError(t, db.Create(user).Error)

	// gorm skips zero values that have a column default
	if !user.IsActive {
		require.NoError(t, db.Model(user).Update("is_active", false).Error)
	}
	return user
}

// CreateProject stores a project managed by manager.
func CreateProject(t *testing.T, db *gorm.DB, name string, manager *models.User) *models.Project {
	t.Helper()

	project := &models.Project{
		Name:        name,
		Description: name + " description",
		ManagerID:   manager.ID,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

// AddMember stores a membership row.
func AddMember(t *testing.T, db *gorm.DB, project *models.Project, user *models.User) {
	t.Helper()

	require.NoError(t, db.Create(&models.ProjectMember{
		ProjectID: project.ID,
		UserID:    user.ID,
		JoinedAt:  time.Now(),
	}).Error)
}

// CreateTask stores a task in project assigned to assignee.
func CreateTask(t *testing.T, db *gorm.DB, title string, project *models.Project, assignee *models.User, status models.TaskStatus) *models.Task {
	t.Helper()

	if status == "" {
		status = models.TaskStatusTodo
	}
	task := &models.Task{
		ProjectID:    project.ID,
		Title:        title,
		Description:  title + " description",
		AssignedToID: assignee.ID,
		Status:       status,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}
