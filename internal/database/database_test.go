package database

import (
	"testing"

	"github.com/rahafha1/project-manager-api/internal/config"
	"github.com/rahafha1/project-manager-api/internal/models"
	"github.com/rahafha1/project-manager-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql", "sqlite"} {
		d, err := Dialector(&config.Config{DBDriver: driver, SQLitePath: ":memory:"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openMemory(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasIndex(&models.ProjectMember{}, "idx_project_members_user_id"))
	assert.True(t, db.Migrator().HasIndex(&models.Task{}, "idx_tasks_project_id"))
}

func TestPaginate(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, Migrate(db))

	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.User{Username: string(rune('a' + i)), PasswordHash: "x"}).Error)
	}

	var users []models.User
	require.NoError(t, db.Scopes(Paginate(utils.NewPaginationParams(2, 2))).Order("id").Find(&users).Error)
	require.Len(t, users, 2)
	assert.Equal(t, "c", users[0].Username)

	require.NoError(t, db.Scopes(Paginate(utils.PaginationParams{})).Find(&users).Error)
	assert.Len(t, users, 5)
}
