package utils

import (
	"github.com/gofiber/fiber/v2"
)

// ========== Response Structures ==========

type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

type ErrorBody struct {
	Error      string         `json:"error"`
	ErrorCode  string         `json:"error_code"`
	Details    map[string]any `json:"details,omitempty"`
	StackTrace string         `json:"stack_trace,omitempty"`
}

// Page is the data payload of every listing endpoint.
type Page struct {
	Items      any    `json:"items"`
	Count      int    `json:"count"`
	Skip       int    `json:"skip"`
	Limit      int    `json:"limit"`
	TotalCount *int64 `json:"total_count,omitempty"`
}

func NewPage(items any, count, skip, limit int, total *int64) Page {
	return Page{Items: items, Count: count, Skip: skip, Limit: limit, TotalCount: total}
}

// ========== Success Responses ==========

func SuccessResponse(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Data:    data,
	})
}

func SuccessMessageResponse(c *fiber.Ctx, data any, message string) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func CreatedResponse(c *fiber.Ctx, data any, message string) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// ========== Error Responses ==========

func ErrorResponse(c *fiber.Ctx, statusCode int, code, message string, details map[string]any) error {
	return c.Status(statusCode).JSON(ErrorBody{
		Error:     message,
		ErrorCode: code,
		Details:   details,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, fieldErrors map[string]string) error {
	return ErrorResponse(
		c,
		fiber.StatusBadRequest,
		"VALIDATION_ERROR",
		"Validation failed",
		map[string]any{"field_errors": fieldErrors},
	)
}

func UnauthorizedResponse(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Unauthorized"
	}
	return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}
