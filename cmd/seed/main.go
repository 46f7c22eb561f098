package main

import (
	"context"
	"fmt"
	"os"

	"gorm.io/gorm"

	"taskmanager/application/serviceimpl"
	"taskmanager/domain/models"
	"taskmanager/infrastructure/messaging"
	"taskmanager/infrastructure/postgres"
	"taskmanager/pkg/config"
	"taskmanager/pkg/logger"
	"taskmanager/pkg/utils"
)

const seedPassword = "StrongP@ssw0rd"

type seedTask struct {
	title       string
	description string
	completed   bool
}

type seedUser struct {
	username string
	email    string
	tasks    []seedTask
}

var seedUsers = []seedUser{
	{
		username: "alice",
		email:    "alice@example.com",
		tasks: []seedTask{
			{title: "Buy groceries", description: "Milk, Bread, Eggs"},
			{title: "Read a book", description: "Finish reading '1984'", completed: true},
		},
	},
	{
		username: "bob",
		email:    "bob@example.com",
		tasks: []seedTask{
			{title: "Workout", description: "30 minutes cardio"},
		},
	},
}

func main() {
	fmt.Println("============================================")
	fmt.Println("  Task Manager - Reset & Seed Database")
	fmt.Println("============================================")
	fmt.Println()

	cfg, err := config.LoadConfig()
	if err != nil {
		fail("Failed to load config", err)
	}
	logConfig := logger.DefaultConfig()
	logConfig.Level = "warn"
	logConfig.Format = "text"
	if err := logger.Init(logConfig); err != nil {
		fail("Failed to init logger", err)
	}

	db, err := postgres.NewDatabase(postgres.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
		LogLevel: "error",
	})
	if err != nil {
		fail("Failed to connect to database", err)
	}

	fmt.Println("[1/3] Dropping tables...")
	if err := postgres.DropAll(db); err != nil {
		fail("Failed to drop tables", err)
	}

	fmt.Println("[2/3] Creating tables...")
	if err := postgres.Migrate(db); err != nil {
		fail("Failed to migrate", err)
	}

	fmt.Println("[3/3] Seeding users and tasks...")
	if cfg.JWT.Secret == "" {
		fmt.Println("     JWT_SECRET is empty, printed tokens will not be accepted by the API")
	}
	if err := seed(context.Background(), db, cfg); err != nil {
		fail("Failed to seed data", err)
	}

	fmt.Println()
	fmt.Println("============================================")
	fmt.Println("  Done!")
	fmt.Println("============================================")
}

// seed goes through the services so the active flag is maintained the same
// way as for API traffic.
func seed(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	userRepo, err := postgres.NewUserRepository(db)
	if err != nil {
		return err
	}
	taskRepo, err := postgres.NewTaskRepository(db)
	if err != nil {
		return err
	}
	tx := postgres.NewTransactor(db)

	userService := serviceimpl.NewUserService(userRepo, taskRepo, tx)
	taskService := serviceimpl.NewTaskService(taskRepo, userRepo, tx,
		messaging.NewNoopEventPublisher(), serviceimpl.TaskServiceOptions{})

	secret := cfg.JWT.Secret
	if secret == "" {
		if secret, err = utils.GenerateRandomString(32); err != nil {
			return err
		}
	}
	tokens := utils.NewTokenManager(secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	hash, err := utils.HashPassword(seedPassword)
	if err != nil {
		return err
	}

	for _, su := range seedUsers {
		user, err := userService.CreateUser(ctx, su.username, su.email, hash)
		if err != nil {
			return fmt.Errorf("create user %s: %w", su.username, err)
		}

		for _, st := range su.tasks {
			description := st.description
			task, err := taskService.CreateTask(ctx, user.ID, st.title, &description)
			if err != nil {
				return fmt.Errorf("create task %q: %w", st.title, err)
			}
			if st.completed {
				completed := true
				if _, err := taskService.UpdateTaskByUserAndID(ctx, user.ID, task.ID, models.TaskPatch{IsCompleted: &completed}); err != nil {
					return fmt.Errorf("complete task %q: %w", st.title, err)
				}
			}
		}

		pair, err := tokens.GenerateTokenPair(user.ID, user.Username)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Printf("     User: %s\n", user.Username)
		fmt.Printf("     Email: %s\n", user.Email)
		fmt.Printf("     Password: %s\n", seedPassword)
		fmt.Printf("     Access Token:\n%s\n", pair.AccessToken)
		fmt.Printf("     Refresh Token:\n%s\n", pair.RefreshToken)
	}
	return nil
}

func fail(msg string, err error) {
	fmt.Fprintf(os.Stderr, "     %s: %v\n", msg, err)
	os.Exit(1)
}
