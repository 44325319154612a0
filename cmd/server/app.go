package main

import (
	"fmt"

	"github.com/rahafha1/project-manager-api/internal/access"
	"github.com/rahafha1/project-manager-api/internal/auth"
	"github.com/rahafha1/project-manager-api/internal/config"
	"github.com/rahafha1/project-manager-api/internal/database"
	"github.com/rahafha1/project-manager-api/internal/logger"
	"github.com/rahafha1/project-manager-api/internal/repository"
	"github.com/rahafha1/project-manager-api/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds the wired dependencies shared by every subcommand.
type app struct {
	cfg *config.Config
	log *zap.SugaredLogger
	db  *gorm.DB

	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository

	engine   *access.Engine
	auth     *services.AuthService
	projects *services.ProjectService
	tasks    *services.TaskService
	admin    *services.AdminService
}

func newApp() (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	policy, err := access.ParsePolicy(cfg.TaskMutationPolicy, cfg.SuperuserScope)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:         cfg,
		log:         log,
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		projectRepo: repository.NewProjectRepository(db),
		taskRepo:    repository.NewTaskRepository(db),
	}

	a.engine = access.NewEngine(policy, access.NewResolver(a.projectRepo), log.Named("access"))
	a.auth = services.NewAuthService(a.userRepo, tokens)
	a.projects = services.NewProjectService(a.projectRepo, a.userRepo, a.engine)
	a.tasks = services.NewTaskService(a.taskRepo, a.projectRepo, a.engine, services.NewAIService(cfg.OpenAIAPIKey))
	a.admin = services.NewAdminService(a.userRepo, a.projectRepo, a.engine)

	log.Infow("configured",
		"db_driver", cfg.DBDriver,
		"task_mutation_policy", policy.TaskMutation,
		"superuser_scope", policy.Superuser,
		"ai_enabled", cfg.OpenAIAPIKey != "",
	)
	return a, nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.log.Sync()
}
