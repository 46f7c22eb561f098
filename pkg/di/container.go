package di

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskmanager/application/serviceimpl"
	"taskmanager/domain/ports"
	"taskmanager/domain/repositories"
	"taskmanager/domain/services"
	"taskmanager/infrastructure/messaging"
	natspkg "taskmanager/infrastructure/nats"
	"taskmanager/infrastructure/postgres"
	redispkg "taskmanager/infrastructure/redis"
	"taskmanager/interfaces/api/handlers"
	"taskmanager/interfaces/api/middleware"
	"taskmanager/pkg/config"
	"taskmanager/pkg/logger"
	"taskmanager/pkg/utils"
)

type Container struct {
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *redispkg.Client // optional, shares rate-limit counters
	LimiterStorage *redispkg.LimiterStorage
	NATSClient     *natspkg.Client // optional, task events
	EventPublisher ports.EventPublisherPort
	Transactor     repositories.Transactor
	TokenManager   *utils.TokenManager

	// Repositories
	UserRepository repositories.UserRepository
	TaskRepository repositories.TaskRepository

	// Services
	UserService services.UserService
	TaskService services.TaskService
	AuthService services.AuthService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	c.initServices()

	logger.Info("Container initialized")
	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
	)
	return nil
}

func (c *Container) initInfrastructure() error {
	dbConfig := postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
		LogLevel: c.Config.Log.Level,
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info("Database migrated")

	c.Transactor = postgres.NewTransactor(db)

	// Redis is optional, without it counters stay in process memory
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed (in-memory rate limits)", "error", err)
		} else {
			c.RedisClient = redisClient
			c.LimiterStorage = redispkg.NewLimiterStorage(redisClient, redispkg.DefaultLimiterPrefix)
		}
	}

	c.EventPublisher = messaging.NewNoopEventPublisher()
	if c.Config.NATS.URL != "" {
		natsClient, err := natspkg.NewClient(natspkg.ClientConfig{
			URL:           c.Config.NATS.URL,
			SubjectPrefix: c.Config.NATS.SubjectPrefix,
		})
		if err != nil {
			logger.Warn("NATS client initialization failed (task events disabled)", "error", err)
		} else {
			c.NATSClient = natsClient
			c.EventPublisher = messaging.NewNATSEventPublisher(natspkg.NewPublisher(natsClient))
			logger.Info("NATS client initialized", "url", c.Config.NATS.URL)
		}
	}

	return c.initTokenManager()
}

// initTokenManager falls back to a random per-process secret. Config
// validation already refuses an empty secret in production.
func (c *Container) initTokenManager() error {
	secret := c.Config.JWT.Secret
	if secret == "" {
		generated, err := utils.GenerateRandomString(32)
		if err != nil {
			return fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		secret = generated
		logger.Warn("JWT_SECRET not set, using an ephemeral secret")
	}

	c.TokenManager = utils.NewTokenManager(secret, c.Config.JWT.AccessTTL, c.Config.JWT.RefreshTTL)
	return nil
}

func (c *Container) initRepositories() error {
	var err error
	if c.UserRepository, err = postgres.NewUserRepository(c.DB); err != nil {
		return err
	}
	if c.TaskRepository, err = postgres.NewTaskRepository(c.DB); err != nil {
		return err
	}
	logger.Info("Repositories initialized")
	return nil
}

func (c *Container) initServices() {
	c.UserService = serviceimpl.NewUserService(c.UserRepository, c.TaskRepository, c.Transactor)
	c.TaskService = serviceimpl.NewTaskService(
		c.TaskRepository,
		c.UserRepository,
		c.Transactor,
		c.EventPublisher,
		serviceimpl.TaskServiceOptions{CompleteOnUpdate: c.Config.Task.CompleteOnUpdate},
	)
	c.AuthService = serviceimpl.NewAuthService(c.UserService, c.TokenManager)

	logger.Info("Services initialized",
		"complete_on_update", c.Config.Task.CompleteOnUpdate,
	)
}

func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	if c.NATSClient != nil {
		if err := c.NATSClient.Close(); err != nil {
			logger.Warn("Failed to close NATS connection", "error", err)
		} else {
			logger.Info("NATS connection closed")
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				return err
			}
			logger.Info("Database connection closed")
		}
	}

	logger.Info("Cleanup completed")
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		UserService: c.UserService,
		TaskService: c.TaskService,
		AuthService: c.AuthService,
		Pagination:  c.Config.Pagination,

		ServiceName:  c.Config.App.Name,
		HealthChecks: c.healthChecks(),
	}
}

// healthChecks covers the database always and redis when it is in use.
func (c *Container) healthChecks() map[string]handlers.HealthCheck {
	checks := map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := c.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if c.RedisClient != nil {
		checks["redis"] = c.RedisClient.Ping
	}
	return checks
}

// GetRateLimiter returns a limiter backed by redis when it is configured.
func (c *Container) GetRateLimiter() *middleware.RateLimiter {
	if c.LimiterStorage != nil {
		return middleware.NewRateLimiter(c.Config.RateLimit, c.LimiterStorage)
	}
	return middleware.NewRateLimiter(c.Config.RateLimit, nil)
}
