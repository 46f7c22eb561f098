package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"taskmanager/domain/models"
	"taskmanager/domain/services"
	"taskmanager/pkg/apperror"
	"taskmanager/pkg/logger"
	"taskmanager/pkg/utils"
)

const currentUserKey = "current_user"

// Protected validates the bearer access token and stores the principal in
// fiber locals and the request context.
func Protected(tokens *utils.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := utils.ExtractTokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return utils.UnauthorizedResponse(c, "Missing or invalid token")
		}

		principal, err := tokens.ParseAccessToken(token)
		if err != nil {
			logger.WarnContext(c.UserContext(), "Token validation failed", "error", err)
			switch {
			case errors.Is(err, utils.ErrInvalidTokenType):
				return utils.UnauthorizedResponse(c, "Invalid token type")
			case errors.Is(err, utils.ErrExpiredToken):
				return utils.UnauthorizedResponse(c, "Access token expired")
			default:
				return utils.UnauthorizedResponse(c, "Invalid token")
			}
		}

		utils.SetUser(c, principal)
		return c.Next()
	}
}

// CurrentUser loads the principal's user row. Must run after Protected.
func CurrentUser(userService services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := utils.GetUserFromContext(c)
		if err != nil {
			return utils.UnauthorizedResponse(c, "Missing or invalid token")
		}

		user, err := userService.GetProfile(c.UserContext(), principal.ID)
		if err != nil {
			if apperror.HasCode(err, apperror.CodeNotFound) {
				return utils.ErrorResponse(c, fiber.StatusNotFound, string(apperror.CodeNotFound), "User not found", nil)
			}
			return err
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// GetCurrentUser returns the user loaded by CurrentUser, or nil.
func GetCurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}
