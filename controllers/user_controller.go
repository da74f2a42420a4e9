package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"motor-api/logger"
	"motor-api/middleware"
	"motor-api/models"
	"motor-api/utils"
)

type UserController struct {
	db *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

type UpdateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (uc *UserController) GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := uc.db.Order("created_at DESC").Find(&users).Error; err != nil {
		logger.Log.WithField("component", "users").Errorf("Failed to list users: %v", err)
		utils.SendServerError(c, "Internal server error", err)
		return
	}

	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}

	utils.SendSuccess(c, "Users retrieved successfully", responses)
}

func (uc *UserController) GetUserByID(c *gin.Context) {
	targetID := parseID(c.Param("id"))
	requesterID := middleware.CurrentUserID(c)

	if requesterID != targetID {
		utils.SendError(c, http.StatusForbidden, "Access denied. You can only access your own profile.")
		return
	}

	var user models.User
	if err := uc.db.First(&user, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, "User not found")
			return
		}
		logger.Log.WithField("component", "users").Errorf("Failed to load user %d: %v", targetID, err)
		utils.SendServerError(c, "Internal server error", err)
		return
	}

	utils.SendSuccess(c, "User retrieved successfully", user.ToResponse())
}

func (uc *UserController) UpdateUser(c *gin.Context) {
	targetID := parseID(c.Param("id"))
	requesterID := middleware.CurrentUserID(c)

	if requesterID != targetID {
		utils.SendError(c, http.StatusForbidden, "Access denied. You can only update your own profile.")
		return
	}

	var user models.User
	if err := uc.db.First(&user, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, "User not found")
			return
		}
		logger.Log.WithField("component", "users").Errorf("Failed to load user %d: %v", targetID, err)
		utils.SendServerError(c, "Internal server error", err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email != "" && !utils.IsValidEmail(req.Email) {
		utils.SendError(c, http.StatusBadRequest, "Invalid email format")
		return
	}

	// Uniqueness check against other rows. Not atomic with the update below:
	// a concurrent update can pass here and still hit the unique index.
	if req.Username != "" || req.Email != "" {
		query := uc.db.Model(&models.User{}).Where("id <> ?", targetID)
		switch {
		case req.Username != "" && req.Email != "":
			query = query.Where("username = ? OR email = ?", req.Username, req.Email)
		case req.Username != "":
			query = query.Where("username = ?", req.Username)
		default:
			query = query.Where("email = ?", req.Email)
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			logger.Log.WithField("component", "users").Errorf("Failed to check uniqueness: %v", err)
			utils.SendServerError(c, "Internal server error", err)
			return
		}
		if count > 0 {
			utils.SendError(c, http.StatusConflict, "Username or email already exists")
			return
		}
	}

	updates := map[string]interface{}{}
	if req.Username != "" {
		updates["username"] = req.Username
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Log.WithField("component", "users").Errorf("Failed to hash password: %v", err)
			utils.SendServerError(c, "Internal server error", err)
			return
		}
		updates["password"] = string(hashedPassword)
	}

	if len(updates) > 0 {
		if err := uc.db.Model(&user).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				utils.SendError(c, http.StatusConflict, "Username or email already exists")
				return
			}
			logger.Log.WithField("component", "users").Errorf("Failed to update user %d: %v", targetID, err)
			utils.SendServerError(c, "Internal server error", err)
			return
		}
	}

	var updated models.User
	if err := uc.db.First(&updated, targetID).Error; err != nil {
		logger.Log.WithField("component", "users").Errorf("Failed to reload user %d: %v", targetID, err)
		utils.SendServerError(c, "Internal server error", err)
		return
	}

	utils.SendSuccess(c, "User updated successfully", updated.ToResponse())
}

func (uc *UserController) DeleteUser(c *gin.Context) {
	targetID := parseID(c.Param("id"))
	requesterID := middleware.CurrentUserID(c)

	if requesterID != targetID {
		utils.SendError(c, http.StatusForbidden, "Access denied. You can only delete your own profile.")
		return
	}

	var user models.User
	if err := uc.db.First(&user, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, "User not found")
			return
		}
		logger.Log.WithField("component", "users").Errorf("Failed to load user %d: %v", targetID, err)
		utils.SendServerError(c, "Internal server error", err)
		return
	}

	if err := uc.db.Delete(&user).Error; err != nil {
		logger.Log.WithField("component", "users").Errorf("Failed to delete user %d: %v", targetID, err)
		utils.SendServerError(c, "Internal server error", err)
		return
	}

	utils.SendSuccess(c, "User deleted successfully", gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// parseID converts a path parameter to a numeric id. Garbage input yields 0,
// which never matches an auto-increment key.
func parseID(raw string) uint {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}
