package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"motor-api/controllers"
	"motor-api/middleware"
	"motor-api/services"
	"motor-api/utils"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, tokenService *services.TokenService, emailService *services.EmailService) {
	// Controllers
	authController := controllers.NewAuthController(db, tokenService, emailService)
	userController := controllers.NewUserController(db)
	imageController := controllers.NewImageController(db)
	bikeController := controllers.NewBikeController(db)
	bikeImageController := controllers.NewBikeImageController(db)

	authRequired := middleware.AuthRequired(tokenService)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.APIResponse{
			Success: true,
			Message: "API Motor Backend is running!",
			Data: gin.H{
				"register":        "POST /api/auth/register",
				"login":           "POST /api/auth/login",
				"getProfile":      "GET /api/auth/profile (requires token)",
				"getAllUsers":     "GET /api/users (requires token)",
				"getUserById":     "GET /api/users/:id (own profile only)",
				"updateUser":      "PUT /api/users/:id (own profile only)",
				"deleteUser":      "DELETE /api/users/:id (own profile only)",
				"uploadImage":     "POST /api/images/upload (requires token)",
				"getImage":        "GET /api/images/:userId (public)",
				"updateImage":     "PUT /api/images/:userId (own image only)",
				"deleteImage":     "DELETE /api/images/:userId (own image only)",
				"createBike":      "POST /api/bikes",
				"getAllBikes":     "GET /api/bikes",
				"getBikeById":     "GET /api/bikes/:id",
				"uploadBikeImage": "POST /api/bike-images/upload",
				"getBikeImage":    "GET /api/bike-images/:bikeId",
			},
		})
	})

	api := r.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/profile", authRequired, authController.GetProfile)
	}

	// User routes (all require a token)
	users := api.Group("/users")
	users.Use(authRequired)
	{
		users.GET("", userController.GetAllUsers)
		users.GET("/:id", userController.GetUserByID)
		users.PUT("/:id", userController.UpdateUser)
		users.DELETE("/:id", userController.DeleteUser)
	}

	// Profile image routes; fetching is public, mutations need a token
	images := api.Group("/images")
	{
		images.POST("/upload", authRequired, imageController.UploadImage)
		images.GET("/:userId", imageController.GetImage)
		images.PUT("/:userId", authRequired, imageController.UpdateImage)
		images.DELETE("/:userId", authRequired, imageController.DeleteImage)
	}

	// Bike routes (no authentication by design)
	bikes := api.Group("/bikes")
	{
		bikes.POST("", bikeController.CreateBike)
		bikes.GET("", bikeController.GetAllBikes)
		bikes.GET("/:id", bikeController.GetBikeByID)
	}

	// Bike image routes (no authentication by design)
	bikeImages := api.Group("/bike-images")
	{
		bikeImages.POST("/upload", bikeImageController.UploadBikeImage)
		bikeImages.GET("/:bikeId", bikeImageController.GetBikeImage)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, utils.APIResponse{
			Success: false,
			Message: "Endpoint not found",
		})
	})
}
