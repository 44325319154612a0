package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rahafha1/project-manager-api/internal/access"
	"github.com/rahafha1/project-manager-api/internal/dto"
	"github.com/rahafha1/project-manager-api/internal/middleware"
	"github.com/rahafha1/project-manager-api/internal/services"
	"github.com/rahafha1/project-manager-api/internal/utils"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	taskService    *services.TaskService
}

func NewProjectHandler(projectService *services.ProjectService, taskService *services.TaskService) *ProjectHandler {
	registerValidators()
	return &ProjectHandler{
		projectService: projectService,
		taskService:    taskService,
	}
}

// ListProjects returns the projects visible to the caller
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	params, ok := pagination(c)
	if !ok {
		return
	}

	projects, total, err := h.projectService.ListProjects(c.Request.Context(), middleware.GetPrincipal(c), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectListResponse(projects, utils.NewPaginationResponse(params, total)))
}

// GetProject returns one visible project
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// CreateProject creates a project managed by the caller
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), middleware.GetPrincipal(c), services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// ReplaceProject handles PUT: every writable field is required
func (h *ProjectHandler) ReplaceProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	h.update(c, access.ActionUpdate, id, services.UpdateProjectInput{
		Name:        &req.Name,
		Description: &req.Description,
	})
}

// PatchProject handles PATCH: only supplied fields change
func (h *ProjectHandler) PatchProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.PatchProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	h.update(c, access.ActionPartialUpdate, id, services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
}

func (h *ProjectHandler) update(c *gin.Context, action access.Action, id uint64, input services.UpdateProjectInput) {
	project, err := h.projectService.UpdateProject(c.Request.Context(), middleware.GetPrincipal(c), action, id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject removes a project together with its tasks and memberships
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListMembers returns the membership rows of a project
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	members, err := h.projectService.ListMembers(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectMemberDTOs(members))
}

// AddMember adds a user to a project
func (h *ProjectHandler) AddMember(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.projectService.AddMember(c.Request.Context(), middleware.GetPrincipal(c), id, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectMemberDTO(*member))
}

// RemoveMember removes a user from a project
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	if err := h.projectService.RemoveMember(c.Request.Context(), middleware.GetPrincipal(c), id, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SuggestTasks asks the AI service for task proposals. Nothing is saved.
func (h *ProjectHandler) SuggestTasks(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.SuggestTasksRequest
	if !bindJSON(c, &req) {
		return
	}

	tasks, err := h.taskService.SuggestTasks(c.Request.Context(), middleware.GetPrincipal(c), id, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": dto.ToSuggestedTaskDTOs(tasks)})
}
