package dto

import (
	"time"

	"github.com/rahafha1/project-manager-api/internal/models"
	"github.com/rahafha1/project-manager-api/internal/utils"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AccountDTO represents a user together with account flags
type AccountDTO struct {
	UserDTO
	IsSuperuser bool      `json:"is_superuser"`
	IsStaff     bool      `json:"is_staff"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	Access  string     `json:"access"`
	Refresh string     `json:"refresh"`
	User    AccountDTO `json:"user"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users      []AccountDTO             `json:"users"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest is the body of POST /api/auth/refresh
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// UpdateUserRequest is the body of PATCH /api/admin/users/:id
type UpdateUserRequest struct {
	IsStaff  *bool `json:"is_staff"`
	IsActive *bool `json:"is_active"`
}

// ToUserDTO converts a user to DTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// ToAccountDTO converts a user to DTO including account flags
func ToAccountDTO(user models.User) AccountDTO {
	return AccountDTO{
		UserDTO:     ToUserDTO(user),
		IsSuperuser: user.IsSuperuser,
		IsStaff:     user.IsStaff,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
	}
}

// ToUserListResponse converts users to a paginated response
func ToUserListResponse(users []models.User, pagination utils.PaginationResponse) UserListResponse {
	items := make([]AccountDTO, len(users))
	for i, user := range users {
		items[i] = ToAccountDTO(user)
	}
	return UserListResponse{Users: items, Pagination: pagination}
}
