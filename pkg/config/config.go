package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	NATS       NATSConfig
	JWT        JWTConfig
	Log        LogConfig
	RateLimit  RateLimitConfig
	Pagination PaginationConfig
	Task       TaskConfig
}

type AppConfig struct {
	Name  string
	Port  string
	Env   string
	Debug bool // adds stack_trace to error responses

	CORSOrigins string // comma separated
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig backs the shared rate-limit counters. An empty URL keeps
// counters in process memory.
type RedisConfig struct {
	URL      string // redis://localhost:6379/0
	Password string
	DB       int
}

// NATSConfig for task events. An empty URL disables publishing.
type NATSConfig struct {
	URL           string // nats://localhost:4222
	SubjectPrefix string
}

type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stdout, file, both
	FilePath   string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

type RateLimitConfig struct {
	Enabled       bool
	AuthPerMinute int // register and login, per client IP
	PerMinute     int
	PerHour       int
}

type PaginationConfig struct {
	DefaultLimit int
	MaxLimit     int
}

type TaskConfig struct {
	// CompleteOnUpdate marks a task completed on every successful update.
	CompleteOnUpdate bool
}

func LoadConfig() (*Config, error) {
	// a missing .env is fine, the environment still applies
	_ = godotenv.Load()

	config := &Config{
		App: AppConfig{
			Name:  getEnv("APP_NAME", "Task Manager API"),
			Port:  getEnv("APP_PORT", "8080"),
			Env:   getEnv("APP_ENV", "development"),
			Debug: getEnvBool("APP_DEBUG", false),

			CORSOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "taskmanager"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		NATS: NATSConfig{
			URL:           getEnv("NATS_URL", ""),
			SubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "tasks"),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", ""),
			AccessTTL:  getEnvDuration("JWT_ACCESS_TTL", 30*time.Minute),
			RefreshTTL: getEnvDuration("JWT_REFRESH_TTL", 7*24*time.Hour),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			FilePath:   getEnv("LOG_FILE", "logs/app.log"),
			MaxSize:    getEnvInt("LOG_MAX_SIZE", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
			MaxAge:     getEnvInt("LOG_MAX_AGE", 30),
			Compress:   getEnvBool("LOG_COMPRESS", true),
		},
		RateLimit: RateLimitConfig{
			Enabled:       getEnvBool("RATE_LIMIT_ENABLED", true),
			AuthPerMinute: getEnvInt("RATE_LIMIT_AUTH_PER_MINUTE", 5),
			PerMinute:     getEnvInt("RATE_LIMIT_PER_MINUTE", 100),
			PerHour:       getEnvInt("RATE_LIMIT_PER_HOUR", 1000),
		},
		Pagination: PaginationConfig{
			DefaultLimit: getEnvInt("PAGINATION_DEFAULT_LIMIT", 100),
			MaxLimit:     getEnvInt("PAGINATION_MAX_LIMIT", 1000),
		},
		Task: TaskConfig{
			CompleteOnUpdate: getEnvBool("TASK_COMPLETE_ON_UPDATE", false),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" && c.IsProduction() {
		return errors.New("JWT_SECRET is required in production")
	}
	if c.Pagination.MaxLimit < 1 {
		return errors.New("PAGINATION_MAX_LIMIT must be positive")
	}
	if c.Pagination.DefaultLimit < 1 || c.Pagination.DefaultLimit > c.Pagination.MaxLimit {
		return errors.New("PAGINATION_DEFAULT_LIMIT must be between 1 and PAGINATION_MAX_LIMIT")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
