package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskmanager/domain/dto"
	"taskmanager/domain/services"
	"taskmanager/pkg/utils"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	fieldErrors, err := bindAndValidate(c, &req)
	if err != nil {
		return err
	}
	if fieldErrors != nil {
		return utils.ValidationErrorResponse(c, fieldErrors)
	}

	resp, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return utils.CreatedResponse(c, resp, "User registered successfully")
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	fieldErrors, err := bindAndValidate(c, &req)
	if err != nil {
		return err
	}
	if fieldErrors != nil {
		return utils.ValidationErrorResponse(c, fieldErrors)
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return utils.SuccessMessageResponse(c, resp, "Login successful")
}

// Verify handles GET /auth/verify
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	user, err := principal(c)
	if err != nil {
		return err
	}

	resp, err := h.authService.Verify(c.UserContext(), user)
	if err != nil {
		return err
	}
	return utils.SuccessMessageResponse(c, resp, "Token is valid")
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	fieldErrors, err := bindAndValidate(c, &req)
	if err != nil {
		return err
	}
	if fieldErrors != nil {
		return utils.ValidationErrorResponse(c, fieldErrors)
	}

	resp, err := h.authService.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}
	return utils.SuccessMessageResponse(c, resp, "Token refreshed successfully")
}
