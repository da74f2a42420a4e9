package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"motor-api/config"
	"motor-api/database"
	"motor-api/logger"
	"motor-api/middleware"
	"motor-api/routes"
	"motor-api/services"
	"motor-api/utils"
)

func main() {
	// Load configuration; refuses to start without a signing secret
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal("Invalid configuration: ", err)
	}

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal("Failed to connect to database: ", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Log.Error("Failed to close database: ", err)
		}
	}()

	// Run migrations before accepting requests
	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("Failed to migrate database: ", err)
	}

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	emailService := services.NewEmailService(cfg)

	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS())
	router.Use(middleware.RateLimit(300, 50))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Log.Errorf("Panic recovered: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Something went wrong!",
			Error:   "internal server error",
		})
	}))

	routes.SetupRoutes(router, db, tokenService, emailService)

	logger.Log.Infof("Starting Motor API server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatal("Failed to start server: ", err)
	}
}
