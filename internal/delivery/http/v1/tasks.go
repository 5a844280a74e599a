package v1

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-tasks-api/internal/models"
	"github.com/adanyl0v/go-tasks-api/internal/services"
)

type getTaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

func newGetTaskResponse(task *models.Task) getTaskResponse {
	return getTaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
	}
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	tasks, err := h.tasks.ListTasks(c)
	if err != nil {
		h.requestLogger(c).Error().
			Err(err).
			Msg("failed to get tasks")
		abortWithServiceError(c, err)
		return
	}

	response := make([]getTaskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = newGetTaskResponse(task)
	}
	c.JSON(http.StatusOK, response)
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := bindOptionalJSON(c, &req)
	if err != nil {
		h.requestLogger(c).Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(msgInvalidRequestBody))
		return
	}

	task, err := h.tasks.CreateTask(c, services.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.requestLogger(c).Error().
			Err(err).
			Msg("failed to create task")
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newGetTaskResponse(task))
}

type updateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	var req updateTaskRequest
	err := bindOptionalJSON(c, &req)
	if err != nil {
		h.requestLogger(c).Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(msgInvalidRequestBody))
		return
	}

	task, err := h.tasks.UpdateTask(c, services.UpdateTaskParams{
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		h.requestLogger(c).Error().
			Err(err).
			Str("task_id", c.Param("id")).
			Msg("failed to update task")
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	taskID := c.Param("id")

	err := h.tasks.DeleteTask(c, taskID)
	if err != nil {
		h.requestLogger(c).Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete task")
		abortWithServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// bindOptionalJSON binds the request body, treating a missing
// body as an empty object.
func bindOptionalJSON(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		abort(c, newNotFoundError(msgTaskNotFound))
	case errors.Is(err, services.ErrTaskAlreadyExists):
		abort(c, newConflictError(msgTaskAlreadyExists))
	case errors.Is(err, services.ErrStorageUnavailable):
		abort(c, newStatusTextError(http.StatusServiceUnavailable))
	default:
		abort(c, newStatusTextError(http.StatusInternalServerError))
	}
}
