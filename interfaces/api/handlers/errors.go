package handlers

import (
	"errors"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"

	"taskmanager/pkg/apperror"
	"taskmanager/pkg/logger"
	"taskmanager/pkg/utils"
)

// HandleError logs err and writes the error envelope. Errors that are not
// *apperror.Error or *fiber.Error are reported as internal errors without
// their text.
func HandleError(c *fiber.Ctx, err error, withStack bool) error {
	ctx := c.UserContext()

	status := fiber.StatusInternalServerError
	code := string(apperror.CodeInternal)
	message := "Internal server error"
	var details map[string]any

	var appErr *apperror.Error
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &appErr):
		status = appErr.HTTPStatus()
		code = string(appErr.Code)
		message = appErr.Message
		details = appErr.Details
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
		code = string(codeForStatus(fiberErr.Code))
		message = fiberErr.Message
	}

	if status >= fiber.StatusInternalServerError {
		logger.ErrorContext(ctx, "Request failed",
			"method", c.Method(),
			"path", c.Path(),
			"error_code", code,
			"error", err,
		)
	} else {
		logger.WarnContext(ctx, "Request rejected",
			"method", c.Method(),
			"path", c.Path(),
			"error_code", code,
			"error", err,
		)
	}

	body := utils.ErrorBody{
		Error:     message,
		ErrorCode: code,
		Details:   details,
	}
	if withStack {
		body.StackTrace = err.Error() + "\n" + string(debug.Stack())
	}
	return c.Status(status).JSON(body)
}

func codeForStatus(status int) apperror.Code {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return apperror.CodeValidation
	case fiber.StatusUnauthorized:
		return apperror.CodeUnauthorized
	case fiber.StatusForbidden:
		return apperror.CodePermissionDenied
	case fiber.StatusNotFound:
		return apperror.CodeNotFound
	case fiber.StatusMethodNotAllowed:
		return apperror.CodeOperationNotAllowed
	case fiber.StatusConflict:
		return apperror.CodeResourceConflict
	case fiber.StatusTooManyRequests:
		return apperror.CodeRateLimited
	case fiber.StatusServiceUnavailable:
		return apperror.CodeConnection
	default:
		return apperror.CodeInternal
	}
}

// bindAndValidate parses the JSON body into req and runs struct validation.
// A non-nil error is already an *apperror.Error; fieldErrors is set when
// validation rejected the body.
func bindAndValidate(c *fiber.Ctx, req any) (map[string]string, error) {
	if err := c.BodyParser(req); err != nil {
		return nil, apperror.Validation("Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.GetValidationErrors(err), nil
	}
	return nil, nil
}

func principal(c *fiber.Ctx) (*utils.UserContext, error) {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return nil, apperror.Unauthorized("Missing or invalid token")
	}
	return user, nil
}
