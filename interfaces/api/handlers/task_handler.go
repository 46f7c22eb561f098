package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"taskmanager/domain/dto"
	"taskmanager/domain/repositories"
	"taskmanager/domain/services"
	"taskmanager/pkg/apperror"
	"taskmanager/pkg/config"
	"taskmanager/pkg/logger"
	"taskmanager/pkg/utils"
)

type TaskHandler struct {
	taskService services.TaskService
	pagination  config.PaginationConfig
}

func NewTaskHandler(taskService services.TaskService, pagination config.PaginationConfig) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		pagination:  pagination,
	}
}

// ListTasks handles GET /tasks/?skip=&limit=&is_completed=
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var query dto.TaskListQuery
	if err := c.QueryParser(&query); err != nil {
		return apperror.Validation("Invalid query parameters")
	}

	page, msg := dto.NewPagination(query.Skip, query.Limit,
		h.pagination.DefaultLimit, h.pagination.MaxLimit, c.Query("limit") != "")
	if msg != "" {
		return apperror.Validation(msg)
	}

	opts := repositories.ListOptions{
		Limit:  page.Limit,
		Offset: page.Skip,
	}
	if query.IsCompleted != nil {
		opts.Filters = repositories.Filters{"is_completed": *query.IsCompleted}
	}

	list, err := h.taskService.ListTasks(ctx, opts)
	if err != nil {
		return err
	}

	logger.DebugContext(ctx, "Tasks listed", "count", len(list.Tasks), "total", list.Total)

	total := list.Total
	items := dto.TasksToTaskResponses(list.Tasks)
	return utils.SuccessResponse(c, utils.NewPage(items, len(items), page.Skip, page.Limit, &total))
}

// CreateTask handles POST /tasks/
func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	user, err := principal(c)
	if err != nil {
		return err
	}

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	req.Normalize()
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	task, err := h.taskService.CreateTask(c.UserContext(), user.ID, req.Title, req.Description)
	if err != nil {
		return err
	}
	return utils.CreatedResponse(c, fiber.Map{"task": dto.TaskToTaskResponse(task)}, "Task created successfully")
}

// GetTask handles GET /tasks/:id
func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	user, err := principal(c)
	if err != nil {
		return err
	}
	taskID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTaskByUserAndID(c.UserContext(), user.ID, taskID)
	if err != nil {
		return err
	}
	return utils.SuccessMessageResponse(c, fiber.Map{"task": dto.TaskToTaskResponse(task)},
		fmt.Sprintf("Get Task %d successfully", taskID))
}

// UpdateTask handles PUT /tasks/:id
func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	user, err := principal(c)
	if err != nil {
		return err
	}
	taskID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateTaskRequest
	fieldErrors, err := bindAndValidate(c, &req)
	if err != nil {
		return err
	}
	if fieldErrors != nil {
		return utils.ValidationErrorResponse(c, fieldErrors)
	}

	task, err := h.taskService.UpdateTaskByUserAndID(c.UserContext(), user.ID, taskID, req.Patch())
	if err != nil {
		return err
	}
	return utils.SuccessMessageResponse(c, fiber.Map{"task": dto.TaskToTaskResponse(task)},
		fmt.Sprintf("Task %d updated successfully", taskID))
}

// DeleteTask handles DELETE /tasks/:id
func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	user, err := principal(c)
	if err != nil {
		return err
	}
	taskID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	deleted, err := h.taskService.DeleteTaskByUserAndID(c.UserContext(), user.ID, taskID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound(fmt.Sprintf("Task with id %d not found for user %d", taskID, user.ID))
	}
	return utils.SuccessMessageResponse(c, fiber.Map{"task_id": taskID},
		fmt.Sprintf("Task %d deleted successfully", taskID))
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Validation(fmt.Sprintf("Invalid %s: %q", param, raw))
	}
	return uint(id), nil
}
