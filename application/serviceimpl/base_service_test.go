package serviceimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"

	"taskmanager/domain/models"
	"taskmanager/pkg/apperror"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// countMessages counts JSON log lines whose msg equals want.
func (b *lockedBuffer) countMessages(t *testing.T, want string) int {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, line := range bytes.Split(b.buf.Bytes(), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var entry struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(line, &entry); err != nil {
			t.Fatalf("log line %q: %v", line, err)
		}
		if entry.Msg == want {
			n++
		}
	}
	return n
}

func captureLogs(t *testing.T) *lockedBuffer {
	t.Helper()
	out := &lockedBuffer{}
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return out
}

func TestNestedOperationLogsRejectionOnce(t *testing.T) {
	env := newTestEnv(t, TaskServiceOptions{})
	alice := env.createUser(t, "alice")
	logs := captureLogs(t)

	title := "renamed"
	_, err := env.tasks.UpdateTaskByUserAndID(context.Background(), alice.ID, 999, models.TaskPatch{Title: &title})
	if !apperror.HasCode(err, apperror.CodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}

	if got := logs.countMessages(t, "Operation rejected"); got != 1 {
		t.Fatalf("rejection logged %d times, want 1", got)
	}
	if got := logs.countMessages(t, "Operation failed"); got != 0 {
		t.Fatalf("failure logged %d times for a rejection", got)
	}
}

func TestOperationFailureLoggedAtErrorOnce(t *testing.T) {
	env := newTestEnv(t, TaskServiceOptions{})
	alice := env.createUser(t, "alice")

	sqlDB, err := env.db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	_ = sqlDB.Close()
	logs := captureLogs(t)

	_, err = env.tasks.GetTaskByUserAndID(context.Background(), alice.ID, 1)
	if !apperror.HasCode(err, apperror.CodeDatabase) {
		t.Fatalf("err = %v, want DATABASE_ERROR", err)
	}
	if got := logs.countMessages(t, "Operation failed"); got != 1 {
		t.Fatalf("failure logged %d times, want 1", got)
	}
}
