package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/prathmeshai01/task-manager/internal/services"
)

type Handler interface {
	HandleListTasks(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	tasks  services.TaskService
}

func New(
	logger zerolog.Logger,
	taskService services.TaskService,
) Handler {
	return &handlerImpl{
		logger: logger,
		tasks:  taskService,
	}
}

func (h *handlerImpl) requestLogger(c *gin.Context) zerolog.Logger {
	requestID := c.GetString(requestIDCtxKey)
	if requestID == "" {
		return h.logger
	}
	return h.logger.With().Str("request_id", requestID).Logger()
}
