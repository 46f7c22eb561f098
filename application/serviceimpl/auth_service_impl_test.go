package serviceimpl

import (
	"context"
	"testing"
	"time"

	"taskmanager/domain/dto"
	"taskmanager/pkg/apperror"
	"taskmanager/pkg/utils"
)

func newTestAuth(t *testing.T) (*AuthServiceImpl, *utils.TokenManager) {
	t.Helper()
	env := newTestEnv(t, TaskServiceOptions{})
	tokens := utils.NewTokenManager("auth-service-test-secret-0123456789", time.Minute, time.Hour)
	return NewAuthService(env.users, tokens).(*AuthServiceImpl), tokens
}

func TestRegisterLoginVerify(t *testing.T) {
	auth, tokens := newTestAuth(t)
	ctx := context.Background()

	registered, err := auth.Register(ctx, &dto.RegisterRequest{
		Username: " alice ",
		Email:    "Alice@Example.com",
		Password: "StrongP@ssw0rd",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if registered.User == nil || registered.User.Username != "alice" || registered.User.Email != "alice@example.com" {
		t.Fatalf("registered user = %+v", registered.User)
	}

	loggedIn, err := auth.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "StrongP@ssw0rd"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	principal, err := tokens.ParseAccessToken(loggedIn.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	verified, err := auth.Verify(ctx, principal)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !verified.Valid || verified.UserID != registered.User.ID || verified.Username != "alice" {
		t.Fatalf("verified = %+v", verified)
	}

	refreshed, err := auth.Refresh(ctx, loggedIn.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.User != nil {
		t.Fatalf("refreshed = %+v", refreshed)
	}
}

func TestRegisterRejections(t *testing.T) {
	auth, _ := newTestAuth(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, &dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "StrongP@ssw0rd"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tests := []struct {
		name string
		req  dto.RegisterRequest
		code apperror.Code
	}{
		{"weak password", dto.RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "abc"}, apperror.CodeValidation},
		{"bad email", dto.RegisterRequest{Username: "bob", Email: "bob@", Password: "StrongP@ssw0rd"}, apperror.CodeValidation},
		{"duplicate username", dto.RegisterRequest{Username: "alice", Email: "x@example.com", Password: "StrongP@ssw0rd"}, apperror.CodeAlreadyExists},
		{"duplicate email", dto.RegisterRequest{Username: "alice2", Email: "alice@example.com", Password: "StrongP@ssw0rd"}, apperror.CodeAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			if _, err := auth.Register(ctx, &req); !apperror.HasCode(err, tt.code) {
				t.Fatalf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	auth, _ := newTestAuth(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, &dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "StrongP@ssw0rd"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	for _, req := range []dto.LoginRequest{
		{Username: "alice", Password: "wrong"},
		{Username: "nobody", Password: "StrongP@ssw0rd"},
	} {
		req := req
		_, err := auth.Login(ctx, &req)
		appErr, ok := apperror.As(err)
		if !ok || appErr.Code != apperror.CodeNotFound || appErr.Message != "Invalid username or password" {
			t.Fatalf("Login(%s) err = %v", req.Username, err)
		}
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	auth, tokens := newTestAuth(t)

	pair, err := tokens.GenerateTokenPair(1, "alice")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if _, err := auth.Refresh(context.Background(), pair.AccessToken); !apperror.HasCode(err, apperror.CodeValidation) {
		t.Fatalf("err = %v", err)
	}
}
