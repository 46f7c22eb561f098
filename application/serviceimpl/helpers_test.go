package serviceimpl

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"taskmanager/domain/models"
	"taskmanager/domain/ports"
	"taskmanager/infrastructure/postgres"
	"taskmanager/pkg/utils"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []*ports.TaskEvent
	err    error
}

func (p *recordingPublisher) PublishTaskEvent(_ context.Context, event *ports.TaskEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type testEnv struct {
	db        *gorm.DB
	users     *UserServiceImpl
	tasks     *TaskServiceImpl
	publisher *recordingPublisher
}

func newTestEnv(t *testing.T, opts TaskServiceOptions) *testEnv {
	t.Helper()

	db, err := postgres.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), "error")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := postgres.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	userRepo, err := postgres.NewUserRepository(db)
	if err != nil {
		t.Fatalf("user repo: %v", err)
	}
	taskRepo, err := postgres.NewTaskRepository(db)
	if err != nil {
		t.Fatalf("task repo: %v", err)
	}
	tx := postgres.NewTransactor(db)
	publisher := &recordingPublisher{}

	return &testEnv{
		db:        db,
		users:     newUserService(userRepo, taskRepo, tx),
		tasks:     newTaskService(taskRepo, userRepo, tx, publisher, opts),
		publisher: publisher,
	}
}

// createUser inserts a user with a placeholder hash; bcrypt is not needed here.
func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := e.users.CreateUser(context.Background(), username, username+"@example.com", "hash")
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", username, err)
	}
	return user
}

func (e *testEnv) createTask(t *testing.T, userID uint, title string) *models.Task {
	t.Helper()
	task, err := e.tasks.CreateTask(context.Background(), userID, title, nil)
	if err != nil {
		t.Fatalf("CreateTask(%s): %v", title, err)
	}
	return task
}

func (e *testEnv) isActive(t *testing.T, userID uint) bool {
	t.Helper()
	user, err := e.users.GetProfile(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	return user.IsActive
}

func asPrincipal(user *models.User) context.Context {
	return utils.ContextWithPrincipal(context.Background(), &utils.UserContext{ID: user.ID, Username: user.Username})
}

var errPublish = errors.New("nats unavailable")
