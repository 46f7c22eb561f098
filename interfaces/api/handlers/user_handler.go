package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskmanager/domain/dto"
	"taskmanager/domain/services"
	"taskmanager/pkg/apperror"
	"taskmanager/pkg/utils"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile handles GET /user/
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	user, err := principal(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.GetProfile(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.Map{"user": dto.UserToUserResponse(profile)})
}

// UpdateProfile handles PUT /user/
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	user, err := principal(c)
	if err != nil {
		return err
	}

	var req dto.UpdateUserRequest
	fieldErrors, err := bindAndValidate(c, &req)
	if err != nil {
		return err
	}
	if fieldErrors != nil {
		return utils.ValidationErrorResponse(c, fieldErrors)
	}

	updated, err := h.userService.UpdateProfile(c.UserContext(), user.ID, &req)
	if err != nil {
		return err
	}
	return utils.SuccessMessageResponse(c, fiber.Map{"user": dto.UserToUserResponse(updated)}, "User updated successfully")
}

// DeleteProfile handles DELETE /user/
func (h *UserHandler) DeleteProfile(c *fiber.Ctx) error {
	user, err := principal(c)
	if err != nil {
		return err
	}

	deleted, err := h.userService.DeleteUser(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.OperationNotAllowed("Failed to delete user")
	}
	return utils.SuccessMessageResponse(c, fiber.Map{}, "User deleted successfully")
}

// GetTaskStatus handles GET /user/task-status
func (h *UserHandler) GetTaskStatus(c *fiber.Ctx) error {
	user, err := principal(c)
	if err != nil {
		return err
	}

	status, err := h.userService.GetUserTaskStatus(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, status)
}
