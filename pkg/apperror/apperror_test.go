package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err    *Error
		status int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{NotFound("missing"), http.StatusNotFound},
		{AlreadyExists("dup"), http.StatusConflict},
		{PermissionDenied("no"), http.StatusForbidden},
		{OperationNotAllowed("no"), http.StatusForbidden},
		{ResourceConflict("conflict"), http.StatusConflict},
		{BusinessRule("rule"), http.StatusBadRequest},
		{Unauthorized("who"), http.StatusUnauthorized},
		{RateLimited("slow down"), http.StatusTooManyRequests},
		{Internal("boom", nil), http.StatusInternalServerError},
		{Database("task.create", errors.New("conn reset")), http.StatusInternalServerError},
		{Integrity("task.create", errors.New("unique")), http.StatusConflict},
		{New(Code("SOMETHING_ELSE"), "?"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			if got := tt.err.HTTPStatus(); got != tt.status {
				t.Fatalf("HTTPStatus() = %d, want %d", got, tt.status)
			}
		})
	}
}

func TestWrapKeepsAppErrors(t *testing.T) {
	original := NotFound("Task with id 7 not found")
	wrapped := fmt.Errorf("handler: %w", original)

	got := Wrap("Task.get_by_id", wrapped)
	if got != wrapped {
		t.Fatalf("Wrap replaced an error that already carries an *Error")
	}
	if !HasCode(got, CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", got)
	}
}

func TestWrapTurnsDriverErrorsIntoDatabaseErrors(t *testing.T) {
	cause := errors.New("connection refused")

	err := Wrap("Task.create_item", cause)

	appErr, ok := As(err)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if appErr.Code != CodeDatabase {
		t.Fatalf("code = %s, want %s", appErr.Code, CodeDatabase)
	}
	if appErr.Details["operation"] != "Task.create_item" {
		t.Fatalf("details = %v", appErr.Details)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause is not reachable through Unwrap")
	}
	if Wrap("noop", nil) != nil {
		t.Fatalf("Wrap(nil) must be nil")
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", Validation("Title is required"))

	if !errors.Is(err, Validation("")) {
		t.Fatalf("errors.Is should match on code")
	}
	if errors.Is(err, NotFound("")) {
		t.Fatalf("errors.Is matched a different code")
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"message only", Validation("Title is required"), "Title is required"},
		{"with op", &Error{Code: CodeNotFound, Message: "gone", Op: "User.get"}, "User.get: gone"},
		{"with cause", Internal("boom", errors.New("nil map")), "boom: nil map"},
		{"op and cause", Database("task.list", errors.New("timeout")), "task.list: Database operation failed: timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWithDetail(t *testing.T) {
	err := Validation("bad").WithDetail("field", "title")
	if err.Details["field"] != "title" {
		t.Fatalf("details = %v", err.Details)
	}
}
