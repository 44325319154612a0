package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rahafha1/project-manager-api/internal/dto"
	"github.com/rahafha1/project-manager-api/internal/middleware"
	"github.com/rahafha1/project-manager-api/internal/services"
	"github.com/rahafha1/project-manager-api/internal/utils"
)

// AdminHandler serves the staff endpoints.
type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	registerValidators()
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	params, ok := pagination(c)
	if !ok {
		return
	}

	users, total, err := h.adminService.ListUsers(c.Request.Context(), middleware.GetPrincipal(c), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users, utils.NewPaginationResponse(params, total)))
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.adminService.UpdateUser(c.Request.Context(), middleware.GetPrincipal(c), id, services.UpdateUserInput{
		IsStaff:  req.IsStaff,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountDTO(*user))
}

// ListProjects returns every project regardless of membership.
func (h *AdminHandler) ListProjects(c *gin.Context) {
	params, ok := pagination(c)
	if !ok {
		return
	}

	projects, total, err := h.adminService.ListProjects(c.Request.Context(), middleware.GetPrincipal(c), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectListResponse(projects, utils.NewPaginationResponse(params, total)))
}
