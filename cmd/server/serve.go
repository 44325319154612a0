package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/rahafha1/project-manager-api/internal/config"
	"github.com/rahafha1/project-manager-api/internal/database"
	"github.com/rahafha1/project-manager-api/internal/handlers"
	"github.com/rahafha1/project-manager-api/internal/middleware"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := database.Migrate(a.db); err != nil {
		return err
	}

	gin.SetMode(a.cfg.GinMode)

	store, err := sessionStore(a.cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var limiter *middleware.IPRateLimiter
	if a.cfg.LoginRateLimit > 0 {
		limiter = middleware.NewIPRateLimiter(a.cfg.LoginRateLimit)
		go limiter.Run(ctx, time.Minute)
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		AuthService:    a.auth,
		ProjectService: a.projects,
		TaskService:    a.tasks,
		AdminService:   a.admin,
		SessionStore:   store,
		Logger:         a.log.Named("http"),
		LoginLimiter:   limiter,
	})

	srv := &http.Server{
		Addr:    a.cfg.HTTPAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Infow("server starting", "addr", a.cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Infow("shutting down", "timeout", a.cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// sessionStore builds the cookie or redis backed session store.
func sessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case "redis":
		rs, err := redisStore.NewStore(
			10,    // pool size
			"tcp", // network type
			cfg.RedisAddr(),
			"", // password
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		store = rs
	default:
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
