package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rahafha1/project-manager-api/internal/access"
	"github.com/rahafha1/project-manager-api/internal/models"
	"github.com/rahafha1/project-manager-api/internal/repository"
	"github.com/rahafha1/project-manager-api/internal/utils"
	"gorm.io/gorm"
)

const maxProjectNameLength = 255

// ProjectService handles project and membership business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	engine      *access.Engine
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, engine *access.Engine) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		engine:      engine,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description string
}

// UpdateProjectInput represents input for updating a project. Nil fields are
// left unchanged.
type UpdateProjectInput struct {
	Name        *string
	Description *string
}

// ListProjects returns the projects visible to p
func (s *ProjectService) ListProjects(ctx context.Context, p access.Principal, params utils.PaginationParams) ([]models.Project, int64, error) {
	if err := s.engine.AuthorizeProject(ctx, p, access.ActionList, nil); err != nil {
		return nil, 0, err
	}

	projects, total, err := s.projectRepo.List(ctx, s.engine.ProjectScope(p), params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// GetProject returns a visible project
func (s *ProjectService) GetProject(ctx context.Context, p access.Principal, projectID uint64) (*models.Project, error) {
	return s.authorized(ctx, p, access.ActionRetrieve, projectID)
}

// CreateProject creates a project managed by p
func (s *ProjectService) CreateProject(ctx context.Context, p access.Principal, input CreateProjectInput) (*models.Project, error) {
	if err := s.engine.AuthorizeProject(ctx, p, access.ActionCreate, nil); err != nil {
		return nil, err
	}

	name, err := validateProjectName(input.Name)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        name,
		Description: input.Description,
		ManagerID:   p.UserID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.reload(ctx, project.ID)
}

// UpdateProject applies a full or partial update. action is ActionUpdate or
// ActionPartialUpdate.
func (s *ProjectService) UpdateProject(ctx context.Context, p access.Principal, action access.Action, projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.authorized(ctx, p, action, projectID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := validateProjectName(*input.Name)
		if err != nil {
			return nil, err
		}
		project.Name = name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.reload(ctx, project.ID)
}

// DeleteProject deletes a project with its tasks and memberships
func (s *ProjectService) DeleteProject(ctx context.Context, p access.Principal, projectID uint64) error {
	if _, err := s.authorized(ctx, p, access.ActionDestroy, projectID); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// ListMembers returns the membership rows of a visible project
func (s *ProjectService) ListMembers(ctx context.Context, p access.Principal, projectID uint64) ([]models.ProjectMember, error) {
	if _, err := s.authorized(ctx, p, access.ActionListMembers, projectID); err != nil {
		return nil, err
	}

	members, err := s.projectRepo.ListMembers(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// AddMember adds a user to a project. Only the manager may do this.
func (s *ProjectService) AddMember(ctx context.Context, p access.Principal, projectID, userID uint64) (*models.ProjectMember, error) {
	project, err := s.authorized(ctx, p, access.ActionAddMember, projectID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberUserMissing
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.ID == project.ManagerID {
		return nil, ErrAlreadyMember
	}

	member := &models.ProjectMember{
		ProjectID: project.ID,
		UserID:    user.ID,
		JoinedAt:  time.Now(),
	}
	if err := s.projectRepo.AddMember(ctx, member); err != nil {
		if errors.Is(err, repository.ErrMembershipExists) {
			return nil, ErrAlreadyMember
		}
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	member.User = *user
	return member, nil
}

// RemoveMember removes a user from a project. Their tasks stay in place.
func (s *ProjectService) RemoveMember(ctx context.Context, p access.Principal, projectID, userID uint64) error {
	if _, err := s.authorized(ctx, p, access.ActionRemoveMember, projectID); err != nil {
		return err
	}

	if err := s.projectRepo.RemoveMember(ctx, projectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// authorized loads a project through the visibility scope and checks action
// against it. Invisible projects are reported as missing.
func (s *ProjectService) authorized(ctx context.Context, p access.Principal, action access.Action, projectID uint64) (*models.Project, error) {
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

	if err := s.engine.AuthorizeProject(ctx, p, action, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) reload(ctx context.Context, projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return project, nil
}

func validateProjectName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	if utf8.RuneCountInString(name) > maxProjectNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}
