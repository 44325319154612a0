package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "postgres", cfg.DBDriver)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "broad", cfg.TaskMutationPolicy)
	require.Equal(t, "all", cfg.SuperuserScope)
	require.Equal(t, 15*time.Minute, cfg.JWTAccessTTL)
	require.Equal(t, 10, cfg.LoginRateLimit)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("TASK_MUTATION_POLICY", "narrow")
	t.Setenv("JWT_ACCESS_TTL", "5m")
	t.Setenv("LOGIN_RATE_LIMIT", "3")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "sqlite", cfg.DBDriver)
	require.Equal(t, "narrow", cfg.TaskMutationPolicy)
	require.Equal(t, 5*time.Minute, cfg.JWTAccessTTL)
	require.Equal(t, 3, cfg.LoginRateLimit)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SUPERUSER_SCOPE=object_checks\nDB_NAME=from_file\n"), 0o600))
	t.Setenv("DB_NAME", "from_env")
	// Registered so t.Setenv restores the variable the env file sets.
	t.Setenv("SUPERUSER_SCOPE", "")
	require.NoError(t, os.Unsetenv("SUPERUSER_SCOPE"))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "object_checks", cfg.SuperuserScope)
	require.Equal(t, "from_env", cfg.DBName)
}

func TestLoad_RejectsUnknownPolicy(t *testing.T) {
	t.Setenv("TASK_MUTATION_POLICY", "everyone")

	_, err := Load("")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	bad := *cfg
	bad.DBDriver = "oracle"
	require.Error(t, bad.Validate())

	bad = *cfg
	bad.SessionStore = "memcached"
	require.Error(t, bad.Validate())

	bad = *cfg
	bad.JWTSecret = " "
	require.Error(t, bad.Validate())
}
