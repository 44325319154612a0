package dto

import (
	"time"

	"github.com/rahafha1/project-manager-api/internal/models"
	"github.com/rahafha1/project-manager-api/internal/utils"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Manager     UserDTO   `json:"manager"`
	Members     []UserDTO `json:"members"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectMemberDTO represents a membership row in API responses
type ProjectMemberDTO struct {
	Project  uint64    `json:"project"`
	User     UserDTO   `json:"user"`
	JoinedAt time.Time `json:"joined_at"`
}

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Projects   []ProjectDTO             `json:"projects"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// CreateProjectRequest is the body of POST and PUT /api/projects
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

// PatchProjectRequest is the body of PATCH /api/projects/:id
type PatchProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
}

// AddMemberRequest is the body of POST /api/projects/:id/members
type AddMemberRequest struct {
	UserID uint64 `json:"user_id" binding:"required"`
}

// ToProjectDTO converts a project with preloaded manager and memberships
func ToProjectDTO(project models.Project) ProjectDTO {
	members := make([]UserDTO, len(project.Memberships))
	for i, m := range project.Memberships {
		members[i] = ToUserDTO(m.User)
	}

	return ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Manager:     ToUserDTO(project.Manager),
		Members:     members,
		CreatedAt:   project.CreatedAt,
	}
}

// ToProjectListResponse converts projects to a paginated response
func ToProjectListResponse(projects []models.Project, pagination utils.PaginationResponse) ProjectListResponse {
	items := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		items[i] = ToProjectDTO(project)
	}
	return ProjectListResponse{Projects: items, Pagination: pagination}
}

// ToProjectMemberDTO converts a membership row with preloaded user
func ToProjectMemberDTO(member models.ProjectMember) ProjectMemberDTO {
	return ProjectMemberDTO{
		Project:  member.ProjectID,
		User:     ToUserDTO(member.User),
		JoinedAt: member.JoinedAt,
	}
}

// ToProjectMemberDTOs converts membership rows
func ToProjectMemberDTOs(members []models.ProjectMember) []ProjectMemberDTO {
	items := make([]ProjectMemberDTO, len(members))
	for i, m := range members {
		items[i] = ToProjectMemberDTO(m)
	}
	return items
}
