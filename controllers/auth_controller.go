package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"motor-api/logger"
	"motor-api/middleware"
	"motor-api/models"
	"motor-api/services"
	"motor-api/utils"
)

type AuthController struct {
	db           *gorm.DB
	tokenService *services.TokenService
	emailService *services.EmailService
}

func NewAuthController(db *gorm.DB, tokenService *services.TokenService, emailService *services.EmailService) *AuthController {
	return &AuthController{
		db:           db,
		tokenService: tokenService,
		emailService: emailService,
	}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		utils.SendError(c, http.StatusBadRequest, "Username, email and password are required")
		return
	}

	// Check if username or email already taken
	var existing models.User
	if err := ac.db.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error; err == nil {
		utils.SendError(c, http.StatusConflict, "Username or email already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.WithField("component", "auth").Errorf("Failed to hash password: %v", err)
		utils.SendServerError(c, "Internal server error", err)
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := ac.db.Create(&user).Error; err != nil {
		// The pre-check and the insert are not atomic, so a concurrent
		// registration can still trip the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.SendError(c, http.StatusConflict, "Username or email already exists")
			return
		}
		logger.Log.WithField("component", "auth").Errorf("Failed to create user: %v", err)
		utils.SendServerError(c, "Internal server error", err)
		return
	}

	if ac.emailService.Enabled() {
		go func(email, username string) {
			if err := ac.emailService.SendWelcomeEmail(email, username); err != nil {
				logger.Log.WithField("component", "auth").Errorf("Failed to send welcome email: %v", err)
			}
		}(user.Email, user.Username)
	}

	utils.SendCreated(c, "User registered successfully", user.ToResponse())
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	identifier := req.Identifier
	if identifier == "" {
		identifier = req.Username
	}
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" || req.Password == "" {
		utils.SendError(c, http.StatusBadRequest, "Identifier and password are required")
		return
	}

	var user models.User
	if err := ac.db.Where("username = ? OR email = ?", identifier, identifier).First(&user).Error; err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := ac.tokenService.Issue(user.ID, user.Username)
	if err != nil {
		logger.Log.WithField("component", "auth").Errorf("Failed to issue token: %v", err)
		utils.SendServerError(c, "Internal server error", err)
		return
	}

	utils.SendSuccess(c, "Login successful", gin.H{
		"token": token,
		"user":  user.ToResponse(),
	})
}

func (ac *AuthController) GetProfile(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var user models.User
	if err := ac.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, "User not found")
			return
		}
		logger.Log.WithField("component", "auth").Errorf("Failed to load profile: %v", err)
		utils.SendServerError(c, "Internal server error", err)
		return
	}

	utils.SendSuccess(c, "Profile retrieved successfully", user.ToResponse())
}
