package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rahafha1/project-manager-api/internal/constants"
	"github.com/rahafha1/project-manager-api/internal/middleware"
	"github.com/rahafha1/project-manager-api/internal/services"
	"go.uber.org/zap"
)

// RouterConfig carries what NewRouter needs to wire the HTTP surface.
type RouterConfig struct {
	AuthService    *services.AuthService
	ProjectService *services.ProjectService
	TaskService    *services.TaskService
	AdminService   *services.AdminService
	SessionStore   sessions.Store
	Logger         *zap.SugaredLogger
	// LoginLimiter throttles register and login per client IP. Nil disables it.
	LoginLimiter *middleware.IPRateLimiter
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.Metrics(),
		sessions.Sessions(constants.SessionCookieName, cfg.SessionStore),
	)

	authHandler := NewAuthHandler(cfg.AuthService)
	projectHandler := NewProjectHandler(cfg.ProjectService, cfg.TaskService)
	taskHandler := NewTaskHandler(cfg.TaskService)
	adminHandler := NewAdminHandler(cfg.AdminService)

	requireAuth := middleware.RequireAuth(cfg.AuthService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Project Manager API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			limited := middleware.RateLimit(cfg.LoginLimiter)
			auth.POST("/register", limited, authHandler.Register)
			auth.POST("/login", limited, authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		projects := api.Group("/projects")
		projects.Use(requireAuth)
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.ReplaceProject)
			projects.PATCH("/:id", projectHandler.PatchProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
			projects.GET("/:id/members", projectHandler.ListMembers)
			projects.POST("/:id/members", projectHandler.AddMember)
			projects.DELETE("/:id/members/:user_id", projectHandler.RemoveMember)
			projects.POST("/:id/task-suggestions", projectHandler.SuggestTasks)
		}

		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.ReplaceTask)
			tasks.PATCH("/:id", taskHandler.PatchTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		admin := api.Group("/admin")
		admin.Use(requireAuth)
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.PATCH("/users/:id", adminHandler.UpdateUser)
			admin.GET("/projects", adminHandler.ListProjects)
		}
	}

	return r
}
