package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avigeya/projectboard/internal/dto"
	apierrors "github.com/avigeya/projectboard/internal/errors"
	"github.com/avigeya/projectboard/internal/repository"
	"github.com/avigeya/projectboard/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TaskHandler serves the task mutation endpoints.
type TaskHandler struct {
	taskService *services.TaskService
	log         *zap.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, log *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		log:         log,
	}
}

// UpdateTask applies a full task update from the request body.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.TaskDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.taskService.UpdateTask(taskID, req)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Status:  "success",
		Message: "Task updated successfully",
		Data:    updated,
	})
}

// UpdatePriorities reorders tasks by the given id sequence.
func (h *TaskHandler) UpdatePriorities(c *gin.Context) {
	var taskIDs []int64
	if err := c.ShouldBindJSON(&taskIDs); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.taskService.UpdateTaskPriorities(taskIDs); err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Status:  "success",
		Message: "Task priorities updated successfully",
	})
}

// BatchUpdate applies a list of partial updates atomically.
func (h *TaskHandler) BatchUpdate(c *gin.Context) {
	var updates []dto.TaskBatchUpdateRequest
	if err := c.ShouldBindJSON(&updates); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.taskService.BatchUpdateTasks(updates); err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Status:  "success",
		Message: "Tasks updated successfully",
	})
}

// UpdateMembers replaces the curator and member set of a task.
func (h *TaskHandler) UpdateMembers(c *gin.Context) {
	taskID, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.TaskMemberUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.taskService.UpdateTaskMembers(taskID, req.CuratorID, req.MemberIDs, req.ModifierName); err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Status:  "success",
		Message: "Task members updated successfully",
	})
}

// DeleteTask deletes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID); err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrStatusNotFound):
		apierrors.NotFound(c, "Status not found")
	case errors.Is(err, services.ErrStageNotFound):
		apierrors.NotFound(c, "Stage not found")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, repository.ErrVersionConflict):
		apierrors.VersionConflict(c, "Task was modified by someone else, reload and retry")
	default:
		h.log.Error("task operation failed", zap.Error(err))
		apierrors.InternalError(c, "")
	}
}

// parseID reads the :id path parameter and writes the 400 itself on failure.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}
