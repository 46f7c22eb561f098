package services

import (
	"context"

	"taskmanager/domain/dto"
	"taskmanager/pkg/utils"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Verify(ctx context.Context, principal *utils.UserContext) (*dto.VerifyResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
}
