package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rahafha1/project-manager-api/internal/access"
	"github.com/rahafha1/project-manager-api/internal/models"
	"github.com/rahafha1/project-manager-api/internal/repository"
	"github.com/rahafha1/project-manager-api/internal/utils"
	"gorm.io/gorm"
)

// AdminService serves the staff-only endpoints. These operations are not
// scoped to any project.
type AdminService struct {
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	engine      *access.Engine
}

// NewAdminService creates a new AdminService
func NewAdminService(userRepo repository.UserRepository, projectRepo repository.ProjectRepository, engine *access.Engine) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		engine:      engine,
	}
}

// UpdateUserInput holds the flags staff may change. The superuser flag is
// only managed from the command line.
type UpdateUserInput struct {
	IsStaff  *bool
	IsActive *bool
}

// ListUsers returns every user
func (s *AdminService) ListUsers(ctx context.Context, p access.Principal, params utils.PaginationParams) ([]models.User, int64, error) {
	if err := s.engine.AuthorizeAdmin(p, access.ActionListUsers); err != nil {
		return nil, 0, err
	}

	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// UpdateUser changes the staff and active flags of a user
func (s *AdminService) UpdateUser(ctx context.Context, p access.Principal, userID uint64, input UpdateUserInput) (*models.User, error) {
	if err := s.engine.AuthorizeAdmin(p, access.ActionUpdateUser); err != nil {
		return nil, err
	}
	if userID == p.UserID {
		return nil, ErrCannotChangeOwnFlags
	}

	target, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	// only a superuser may change another superuser's account
	if target.IsSuperuser && !p.IsSuperuser {
		return nil, access.ErrForbidden
	}

	user, err := s.userRepo.UpdateFlags(ctx, userID, repository.UserFlags{
		IsStaff:  input.IsStaff,
		IsActive: input.IsActive,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// ListProjects returns every project regardless of membership
func (s *AdminService) ListProjects(ctx context.Context, p access.Principal, params utils.PaginationParams) ([]models.Project, int64, error) {
	if err := s.engine.AuthorizeAdmin(p, access.ActionListProjects); err != nil {
		return nil, 0, err
	}

	projects, total, err := s.projectRepo.List(ctx, nil, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}
