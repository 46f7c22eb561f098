package postgres

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"taskmanager/domain/models"
)

// newTestDB opens a fresh in-memory SQLite database with the schema migrated.
// One connection keeps every query on the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), "error")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustCreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func mustCreateTask(t *testing.T, db *gorm.DB, userID uint, title string, completed bool) *models.Task {
	t.Helper()
	task := &models.Task{Title: title, UserID: userID}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("create task %s: %v", title, err)
	}
	if completed {
		if err := db.Model(task).Update("is_completed", true).Error; err != nil {
			t.Fatalf("complete task %s: %v", title, err)
		}
		task.IsCompleted = true
	}
	return task
}

func titles(tasks []*models.Task) map[string]bool {
	set := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		set[task.Title] = true
	}
	return set
}

var bg = context.Background()
