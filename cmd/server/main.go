package main

import (
	"net/http"

	"github.com/avigeya/projectboard/internal/auth"
	"github.com/avigeya/projectboard/internal/config"
	"github.com/avigeya/projectboard/internal/database"
	"github.com/avigeya/projectboard/internal/handlers"
	"github.com/avigeya/projectboard/internal/middleware"
	"github.com/avigeya/projectboard/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	var logger *zap.Logger
	if cfg.GinMode == gin.ReleaseMode {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	db := database.GetDB()

	if cfg.BotToken == "" {
		logger.Warn("TELEGRAM_BOT_TOKEN is empty, every initData signature will be rejected")
	}
	if cfg.DebugAuth {
		logger.Warn("debug authentication is enabled, do not use in production")
	}

	appDataService := services.NewAppDataService(db, logger)
	taskService := services.NewTaskService(db, logger)
	projectService := services.NewProjectService(db, logger)
	connectionsService := services.NewConnectionsService(db, logger)

	authenticator := auth.New(cfg.BotToken, cfg.DebugAuth)

	appDataHandler := handlers.NewAppDataHandler(authenticator, appDataService, logger)
	taskHandler := handlers.NewTaskHandler(taskService, logger)
	projectHandler := handlers.NewProjectHandler(projectService, logger)
	connectionsHandler := handlers.NewConnectionsHandler(connectionsService, logger)

	r := gin.Default()
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/app-data", appDataHandler.GetAppData)

		api.PUT("/tasks/priorities", taskHandler.UpdatePriorities)
		api.PUT("/tasks/batch-update", taskHandler.BatchUpdate)
		api.PUT("/tasks/:id", taskHandler.UpdateTask)
		api.PUT("/tasks/:id/members", taskHandler.UpdateMembers)
		api.DELETE("/tasks/:id", taskHandler.DeleteTask)

		api.PUT("/projects/:id/stages", projectHandler.UpdateStages)
		api.PUT("/projects/:id/members", projectHandler.UpdateMembers)

		api.GET("/connections/all", connectionsHandler.GetAll)
	}

	logger.Info("starting server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
