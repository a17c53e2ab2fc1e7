package app

import (
	"context"
	"errors"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/prathmeshai01/task-manager/internal/config"
	v1 "github.com/prathmeshai01/task-manager/internal/delivery/http/v1"
	"github.com/prathmeshai01/task-manager/internal/repository"
	"github.com/prathmeshai01/task-manager/internal/services"
	"github.com/prathmeshai01/task-manager/web"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: httpCfg.CORSAllowOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
	}))
	router.Use(v1.RequestIDMiddleware())
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router *gin.Engine) {
	taskRepo := repository.NewPostgresTaskRepository(globalLogger, globalPostgresPool)
	taskService := services.NewTaskService(globalLogger, taskRepo)
	v1Handler := v1.New(globalLogger, taskService)

	api := router.Group("/api")
	api.GET("/tasks", v1Handler.HandleListTasks)
	api.GET("/tasks/:id", v1Handler.HandleGetTask)
	api.POST("/tasks", v1Handler.HandleCreateTask)
	api.PUT("/tasks/:id", v1Handler.HandleUpdateTask)
	api.DELETE("/tasks/:id", v1Handler.HandleDeleteTask)

	router.GET("/healthz", handleHealthz)

	// The task list page talks to /api/tasks over fetch.
	router.GET("/", handleIndex)
	staticFS, err := fs.Sub(web.Assets, "static")
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to mount static assets")
		panic(err)
	}
	router.StaticFS("/static", http.FS(staticFS))
}

func handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.Index)
}

func handleHealthz(c *gin.Context) {
	err := globalPostgresPool.Ping(c)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
