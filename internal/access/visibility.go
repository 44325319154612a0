package access

import "gorm.io/gorm"

const (
	visibleProjectsSQL = "(projects.manager_id = ? OR projects.id IN " +
		"(SELECT project_members.project_id FROM project_members WHERE project_members.user_id = ?))"

	visibleTasksSQL = "tasks.project_id IN " +
		"(SELECT projects.id FROM projects WHERE projects.deleted_at IS NULL AND " + visibleProjectsSQL + ")"
)

// ProjectScope restricts a projects query to the projects p manages or
// belongs to. Membership is a sub-select, so a project is returned once no
// matter how many rows match.
func (e *Engine) ProjectScope(p Principal) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case !p.IsAuthenticated:
			return db.Where("1 = 0")
		case p.IsSuperuser && requireVisible.superuserBypass(e.policy.Superuser):
			return db
		}
		return db.Where(visibleProjectsSQL, p.UserID, p.UserID)
	}
}

// TaskScope restricts a tasks query to tasks whose project is visible to p.
func (e *Engine) TaskScope(p Principal) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case !p.IsAuthenticated:
			return db.Where("1 = 0")
		case p.IsSuperuser && requireVisible.superuserBypass(e.policy.Superuser):
			return db
		}
		return db.Where(visibleTasksSQL, p.UserID, p.UserID)
	}
}
