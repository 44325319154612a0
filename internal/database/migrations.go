package database

import (
	"fmt"
	"strings"

	"github.com/rahafha1/project-manager-api/internal/models"
	"gorm.io/gorm"
)

type indexDef struct {
	model   interface{}
	name    string
	columns []string
}

// AddIndexes adds the indexes the visibility and filter queries rely on.
func AddIndexes(db *gorm.DB) error {
	indexes := []indexDef{
		// Visibility: projects a user manages, projects a user belongs to
		{&models.Project{}, "idx_projects_manager_id", []string{"manager_id"}},
		{&models.ProjectMember{}, "idx_project_members_user_id", []string{"user_id"}},

		// Task filters
		{&models.Task{}, "idx_tasks_project_id", []string{"project_id"}},
		{&models.Task{}, "idx_tasks_assigned_to_id", []string{"assigned_to_id"}},
		{&models.Task{}, "idx_tasks_status", []string{"status"}},
		{&models.Task{}, "idx_tasks_due_date", []string{"due_date"}},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return fmt.Errorf("failed to parse model for index %s: %w", idx.name, err)
		}

		if err := db.Exec(fmt.Sprintf("CREATE INDEX %s ON %s (%s)",
			idx.name, stmt.Schema.Table, strings.Join(idx.columns, ", "))).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
