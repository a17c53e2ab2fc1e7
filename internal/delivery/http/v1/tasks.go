package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/prathmeshai01/task-manager/internal/models"
	"github.com/prathmeshai01/task-manager/internal/services"
)

type taskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	DueDate     *string   `json:"due_date"`
	Priority    string    `json:"priority"`
	Category    *string   `json:"category"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newTaskResponse(task *models.Task) taskResponse {
	response := taskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		Category:    task.Category,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.DueDate != nil {
		dueDate := models.FormatDate(*task.DueDate)
		response.DueDate = &dueDate
	}
	return response
}

// taskRequest is the allow-list of externally settable fields.
// Anything else in the body is discarded by the decoder.
type taskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    *string `json:"priority"`
	Category    *string `json:"category"`
	Status      *string `json:"status"`
}

func (r taskRequest) toInput() services.TaskInput {
	return services.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Priority:    r.Priority,
		Category:    r.Category,
		Status:      r.Status,
	}
}

func (h *handlerImpl) HandleListTasks(c *gin.Context) {
	logger := h.requestLogger(c)

	var filters services.ListTasksFilters
	if category := c.Query("category"); category != "" {
		filters.Category = &category
	}
	if status := c.Query("status"); status != "" {
		filters.Status = &status
	}

	tasks, err := h.tasks.ListTasks(c, filters)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to list tasks")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := make([]taskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = newTaskResponse(task)
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	logger := h.requestLogger(c)

	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(c, id)
	if err != nil {
		h.abortTaskError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	logger := h.requestLogger(c)

	var req taskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError("invalid request body"))
		return
	}

	task, err := h.tasks.CreateTask(c, req.toInput())
	if err != nil {
		h.abortTaskError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      task.ID,
		"message": "task created successfully",
		"task":    newTaskResponse(task),
	})
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	logger := h.requestLogger(c)

	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req taskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError("invalid request body"))
		return
	}

	task, err := h.tasks.UpdateTask(c, id, req.toInput())
	if err != nil {
		h.abortTaskError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	logger := h.requestLogger(c)

	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	err := h.tasks.DeleteTask(c, id)
	if err != nil {
		h.abortTaskError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task deleted successfully"})
}

// taskIDParam parses the id path parameter. A non-numeric id
// cannot name an existing task, so it reads as not found.
func taskIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abort(c, newNotFoundError("task not found"))
		return 0, false
	}
	return id, true
}

func (h *handlerImpl) abortTaskError(c *gin.Context, logger zerolog.Logger, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		abortValidation(c, validationErr)
	case errors.Is(err, services.ErrTaskNotFound):
		abort(c, newNotFoundError("task not found"))
	default:
		logger.Error().
			Err(err).
			Msg("task operation failed")
		abort(c, newStatusTextError(http.StatusInternalServerError))
	}
}
