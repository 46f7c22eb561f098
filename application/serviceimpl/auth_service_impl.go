package serviceimpl

import (
	"context"
	"strings"

	"taskmanager/domain/dto"
	"taskmanager/domain/services"
	"taskmanager/pkg/apperror"
	"taskmanager/pkg/logger"
	"taskmanager/pkg/utils"
)

const invalidCredentials = "Invalid username or password"

type AuthServiceImpl struct {
	userService services.UserService
	tokens      *utils.TokenManager
}

func NewAuthService(userService services.UserService, tokens *utils.TokenManager) services.AuthService {
	return &AuthServiceImpl{
		userService: userService,
		tokens:      tokens,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	req.Normalize()

	if !utils.IsValidEmail(req.Email) {
		return nil, apperror.Validation("Invalid email format")
	}
	if problems := utils.CheckPasswordStrength(req.Password); len(problems) > 0 {
		return nil, apperror.Validation("Password is too weak: " + strings.Join(problems, "; "))
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to hash password", "error", err)
		return nil, apperror.Internal("Failed to hash password", err)
	}

	user, err := s.userService.CreateUser(ctx, req.Username, req.Email, hash)
	if err != nil {
		return nil, err
	}

	pair, err := s.tokens.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		return nil, apperror.Internal("Failed to issue tokens", err)
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID)
	return &dto.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         dto.UserToSummary(user),
	}, nil
}

// Login answers not found for both an unknown user and a wrong password.
func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userService.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		logger.WarnContext(ctx, "Login failed - unknown username")
		return nil, apperror.NotFound(invalidCredentials)
	}
	if !utils.VerifyPassword(req.Password, user.PasswordHash) {
		logger.WarnContext(ctx, "Login failed - invalid password", "user_id", user.ID)
		return nil, apperror.NotFound(invalidCredentials)
	}

	pair, err := s.tokens.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		return nil, apperror.Internal("Failed to issue tokens", err)
	}

	logger.InfoContext(ctx, "User logged in", "user_id", user.ID)
	return &dto.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         dto.UserToSummary(user),
	}, nil
}

func (s *AuthServiceImpl) Verify(ctx context.Context, principal *utils.UserContext) (*dto.VerifyResponse, error) {
	if principal == nil {
		return nil, apperror.Validation("Invalid token or user not found")
	}
	user, err := s.userService.GetProfile(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	return &dto.VerifyResponse{
		Valid:    true,
		UserID:   user.ID,
		Username: user.Username,
	}, nil
}

// Refresh trades a valid refresh token for a new pair.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		logger.WarnContext(ctx, "Refresh rejected", "error", err)
		return nil, apperror.Validation("Invalid or expired refresh token")
	}

	pair, err := s.tokens.GenerateTokenPair(claims.ID, claims.Username)
	if err != nil {
		return nil, apperror.Internal("Failed to issue tokens", err)
	}
	return &dto.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}
