package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rahafha1/project-manager-api/internal/models"
	"github.com/rahafha1/project-manager-api/internal/testutil"
	"github.com/rahafha1/project-manager-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type TaskRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo TaskRepository

	manager, member *models.User
	p, q            *models.Project
	todo, done      *models.Task
	other           *models.Task
}

func (s *TaskRepositoryTestSuite) SetupTest() {
	t := s.T()
	s.db = testutil.NewDB(t)
	s.repo = NewTaskRepository(s.db)

	s.manager = testutil.CreateUser(t, s.db, "manager")
	s.member = testutil.CreateUser(t, s.db, "member")
	s.p = testutil.CreateProject(t, s.db, "P", s.manager)
	s.q = testutil.CreateProject(t, s.db, "Q", s.member)

	s.todo = testutil.CreateTask(t, s.db, "Write report", s.p, s.member, models.TaskStatusTodo)
	s.done = testutil.CreateTask(t, s.db, "Ship release", s.p, s.manager, models.TaskStatusDone)
	s.other = testutil.CreateTask(t, s.db, "Plan roadmap", s.q, s.member, models.TaskStatusDone)
}

func (s *TaskRepositoryTestSuite) ids(tasks []models.Task) []uint64 {
	ids := make([]uint64, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}

func (s *TaskRepositoryTestSuite) list(filter TaskFilter) []uint64 {
	tasks, total, err := s.repo.List(context.Background(), filter)
	s.Require().NoError(err)
	s.Equal(int64(len(tasks)), total)
	return s.ids(tasks)
}

func (s *TaskRepositoryTestSuite) TestListWithoutFilters() {
	s.Equal([]uint64{s.todo.ID, s.done.ID, s.other.ID}, s.list(TaskFilter{}))
}

func (s *TaskRepositoryTestSuite) TestListStatusIsCaseInsensitive() {
	s.Require().NoError(s.db.Model(s.done).Update("status", "DONE").Error)

	status := models.TaskStatusDone
	s.Equal([]uint64{s.done.ID, s.other.ID}, s.list(TaskFilter{Status: &status}))
}

func (s *TaskRepositoryTestSuite) TestListScopeIsNeverWidened() {
	scope := func(db *gorm.DB) *gorm.DB { return db.Where("tasks.project_id = ?", s.p.ID) }
	status := models.TaskStatusDone

	s.Equal([]uint64{s.done.ID}, s.list(TaskFilter{Scope: scope, Status: &status}))

	otherProject := s.q.ID
	s.Empty(s.list(TaskFilter{Scope: scope, ProjectID: &otherProject}))
}

func (s *TaskRepositoryTestSuite) TestListByProjectAndAssignee() {
	projectID := s.p.ID
	assignee := s.member.ID

	s.Equal([]uint64{s.todo.ID, s.done.ID}, s.list(TaskFilter{ProjectID: &projectID}))
	s.Equal([]uint64{s.todo.ID, s.other.ID}, s.list(TaskFilter{AssignedToID: &assignee}))
	s.Equal([]uint64{s.todo.ID}, s.list(TaskFilter{ProjectID: &projectID, AssignedToID: &assignee}))
}

func (s *TaskRepositoryTestSuite) TestListSearchMatchesTitleOrDescription() {
	s.Require().NoError(s.db.Model(s.other).Update("description", "includes the REPORT appendix").Error)

	s.Equal([]uint64{s.todo.ID, s.other.ID}, s.list(TaskFilter{Search: "report"}))
	s.Equal([]uint64{s.done.ID}, s.list(TaskFilter{Search: "SHIP"}))
	s.Empty(s.list(TaskFilter{Search: "nothing like this"}))
}

func (s *TaskRepositoryTestSuite) TestListByDueDate() {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(s.db.Model(s.todo).Update("due_date", day).Error)
	s.Require().NoError(s.db.Model(s.done).Update("due_date", day.AddDate(0, 0, 1)).Error)

	s.Equal([]uint64{s.todo.ID}, s.list(TaskFilter{DueDate: &day}))
}

func (s *TaskRepositoryTestSuite) TestListPaginates() {
	tasks, total, err := s.repo.List(context.Background(), TaskFilter{Pagination: utils.NewPaginationParams(2, 2)})
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Equal([]uint64{s.other.ID}, s.ids(tasks))
}

func (s *TaskRepositoryTestSuite) TestFindByIDWithScope() {
	ctx := context.Background()

	found, err := s.repo.FindByID(ctx, s.todo.ID)
	s.Require().NoError(err)
	s.Equal("Write report", found.Title)

	hidden := func(db *gorm.DB) *gorm.DB { return db.Where("tasks.project_id = ?", s.q.ID) }
	_, err = s.repo.FindByID(ctx, s.todo.ID, hidden)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *TaskRepositoryTestSuite) TestUpdateClearsDueDate() {
	ctx := context.Background()
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	s.todo.DueDate = &day
	s.todo.Status = models.TaskStatusInProgress
	s.Require().NoError(s.repo.Update(ctx, s.todo))

	found, err := s.repo.FindByID(ctx, s.todo.ID)
	s.Require().NoError(err)
	s.Require().NotNil(found.DueDate)
	s.Equal(models.TaskStatusInProgress, found.Status)

	found.DueDate = nil
	s.Require().NoError(s.repo.Update(ctx, found))

	found, err = s.repo.FindByID(ctx, s.todo.ID)
	s.Require().NoError(err)
	s.Nil(found.DueDate)
}

func (s *TaskRepositoryTestSuite) TestDelete() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Delete(ctx, s.todo.ID))

	_, err := s.repo.FindByID(ctx, s.todo.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func TestTaskRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TaskRepositoryTestSuite))
}

func TestUserRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice")
	testutil.CreateUser(t, db, "bob")

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)

	_, err = repo.FindByUsername(ctx, "carol")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	users, total, err := repo.List(ctx, utils.NewPaginationParams(1, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)

	staff, inactive := true, false
	updated, err := repo.UpdateFlags(ctx, alice.ID, UserFlags{IsStaff: &staff, IsActive: &inactive})
	require.NoError(t, err)
	assert.True(t, updated.IsStaff)
	assert.False(t, updated.IsActive)
	assert.False(t, updated.IsSuperuser)

	_, err = repo.UpdateFlags(ctx, 999, UserFlags{IsStaff: &staff})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
