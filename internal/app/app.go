package app

import (
	"fmt"

	"yardwork_backend/database"
	"yardwork_backend/internal/config"
	"yardwork_backend/internal/events"
	"yardwork_backend/internal/handlers"
	"yardwork_backend/internal/logger"
	"yardwork_backend/internal/middleware"
	"yardwork_backend/internal/routes"
	"yardwork_backend/internal/services"
	"yardwork_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("AutoMigrate failed", "error", err)
	}
	logger.Info("AutoMigrate completed")

	bus := events.NewBus()
	defer bus.Close()

	ginRouter := SetupRouter(gormDB, bus)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает зависимости и возвращает готовый *gin.Engine.
// Все зависимости передаются явно через конструкторы, без глобальной шины.
func SetupRouter(gormDB *gorm.DB, bus *events.Bus) *gin.Engine {
	serviceContainer := services.NewServiceContainer(gormDB, bus)

	// Подписчики шины событий. Переходы жизненного цикла публикуют
	// события после коммита, уведомления пишутся асинхронно.
	bus.Subscribe(serviceContainer.Notification.HandleEvent)

	customValidator := validator.New()
	appHandlers := handlers.NewAppHandlers(serviceContainer, customValidator)

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	return router
}
