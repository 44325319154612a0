package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DBDriver      string        `mapstructure:"db_driver"`
	DBHost        string        `mapstructure:"db_host"`
	DBPort        string        `mapstructure:"db_port"`
	DBUser        string        `mapstructure:"db_user"`
	DBPassword    string        `mapstructure:"db_password"`
	DBName        string        `mapstructure:"db_name"`
	DBSSLMode     string        `mapstructure:"db_sslmode"`
	SQLitePath    string        `mapstructure:"sqlite_path"`
	HTTPAddr      string        `mapstructure:"http_addr"`
	GinMode       string        `mapstructure:"gin_mode"`
	LogLevel      string        `mapstructure:"log_level"`
	JWTSecret     string        `mapstructure:"jwt_secret"`
	JWTAccessTTL  time.Duration `mapstructure:"jwt_access_ttl"`
	JWTRefreshTTL time.Duration `mapstructure:"jwt_refresh_ttl"`
	SessionSecret string        `mapstructure:"session_secret"`
	SessionStore  string        `mapstructure:"session_store"`
	RedisHost     string        `mapstructure:"redis_host"`
	RedisPort     string        `mapstructure:"redis_port"`
	OpenAIAPIKey  string        `mapstructure:"openai_api_key"`

	// TaskMutationPolicy selects who may modify tasks: "broad" or "narrow".
	TaskMutationPolicy string `mapstructure:"task_mutation_policy"`
	// SuperuserScope selects where the superuser override applies: "all" or "object_checks".
	SuperuserScope string `mapstructure:"superuser_scope"`

	LoginRateLimit  int           `mapstructure:"login_rate_limit"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Load reads configuration from the environment. When envFile exists its
// values are used for keys not already present in the environment.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if envMap, err := godotenv.Read(envFile); err == nil {
			for k, val := range envMap {
				if _, exists := os.LookupEnv(k); !exists {
					_ = os.Setenv(k, val)
				}
			}
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	for _, key := range v.AllKeys() {
		_ = v.BindEnv(key, strings.ToUpper(key))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_driver", "postgres")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "pmuser")
	v.SetDefault("db_password", "pmpassword")
	v.SetDefault("db_name", "project_manager")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("sqlite_path", "project_manager.db")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("log_level", "info")
	v.SetDefault("jwt_secret", "default-jwt-secret-change-me")
	v.SetDefault("jwt_access_ttl", 15*time.Minute)
	v.SetDefault("jwt_refresh_ttl", 24*time.Hour)
	v.SetDefault("session_secret", "default-secret-key-change-me")
	v.SetDefault("session_store", "cookie")
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("openai_api_key", "")
	v.SetDefault("task_mutation_policy", "broad")
	v.SetDefault("superuser_scope", "all")
	v.SetDefault("login_rate_limit", 10)
	v.SetDefault("shutdown_timeout", 5*time.Second)
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported db_driver %q", c.DBDriver)
	}
	switch c.SessionStore {
	case "cookie", "redis":
	default:
		return fmt.Errorf("unsupported session_store %q", c.SessionStore)
	}
	switch c.TaskMutationPolicy {
	case "broad", "narrow":
	default:
		return fmt.Errorf("unsupported task_mutation_policy %q", c.TaskMutationPolicy)
	}
	switch c.SuperuserScope {
	case "all", "object_checks":
	default:
		return fmt.Errorf("unsupported superuser_scope %q", c.SuperuserScope)
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("jwt_secret is required")
	}
	if c.JWTAccessTTL <= 0 || c.JWTRefreshTTL <= 0 {
		return errors.New("jwt token lifetimes must be positive")
	}
	if c.LoginRateLimit < 0 {
		return errors.New("login_rate_limit cannot be negative")
	}
	return nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// RedisAddr returns host:port of the session redis.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
