package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"motor-api/logger"
	"motor-api/middleware"
	"motor-api/models"
	"motor-api/utils"
)

type ImageController struct {
	db *gorm.DB
}

func NewImageController(db *gorm.DB) *ImageController {
	return &ImageController{db: db}
}

type UploadImageRequest struct {
	ImageBase64 string `json:"imageBase64"`
}

// UploadImage stores the caller's profile image. The target is always the
// authenticated identity, so no ownership check is needed here.
func (ic *ImageController) UploadImage(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req UploadImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ImageBase64 == "" {
		utils.SendError(c, http.StatusBadRequest, "Image data is required")
		return
	}

	imageBytes, err := utils.DecodeBase64Image(req.ImageBase64)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid image format")
		return
	}

	var user models.User
	if err := ic.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, "User not found")
			return
		}
		logger.Log.WithField("component", "images").Errorf("Failed to load user %d: %v", userID, err)
		utils.SendServerError(c, "Internal server error", err)
		return
	}

	if err := ic.db.Model(&user).Update("profile_image", imageBytes).Error; err != nil {
		logger.Log.WithField("component", "images").Errorf("Failed to store image for user %d: %v", userID, err)
		utils.SendServerError(c, "Internal server error", err)
		return
	}

	utils.SendSuccess(c, "Profile image uploaded successfully", gin.H{
		"userId":          user.ID,
		"username":        user.Username,
		"hasProfileImage": true,
	})
}

// GetImage is public: anyone may fetch any user's profile image.
func (ic *ImageController) GetImage(c *gin.Context) {
	userID := parseID(c.Param("userId"))

	var user models.User
	if err := ic.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, "User not found")
			return
		}
		logger.Log.WithField("component", "images").Errorf("Failed to load user %d: %v", userID, err)
		utils.SendServerError(c, "Internal server error", err)
		return
	}

	if len(user.ProfileImage) == 0 {
		utils.SendError(c, http.StatusNotFound, "Profile image not found")
		return
	}

	utils.SendSuccess(c, "Profile image retrieved successfully", gin.H{
		"userId":      user.ID,
		"imageBase64": utils.EncodeImageBase64(user.ProfileImage),
	})
}

func (ic *ImageController) UpdateImage(c *gin.Context) {
	targetID := parseID(c.Param("userId"))
	requesterID := middleware.CurrentUserID(c)

	if requesterID != targetID {
		utils.SendError(c, http.StatusForbidden, "Access denied. You can only update your own profile image.")
		return
	}

	var req UploadImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ImageBase64 == "" {
		utils.SendError(c, http.StatusBadRequest, "Image data is required")
		return
	}

	imageBytes, err := utils.DecodeBase64Image(req.ImageBase64)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid image format")
		return
	}

	var user models.User
	if err := ic.db.First(&user, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, "User not found")
			return
		}
		logger.Log.WithField("component", "images").Errorf("Failed to load user %d: %v", targetID, err)
		utils.SendServerError(c, "Internal server error", err)
		return
	}

	if err := ic.db.Model(&user).Update("profile_image", imageBytes).Error; err != nil {
		logger.Log.WithField("component", "images").Errorf("Failed to store image for user %d: %v", targetID, err)
		utils.SendServerError(c, "Internal server error", err)
		return
	}

	utils.SendSuccess(c, "Profile image updated successfully", gin.H{
		"userId":          user.ID,
		"username":        user.Username,
		"hasProfileImage": true,
	})
}

func (ic *ImageController) DeleteImage(c *gin.Context) {
	targetID := parseID(c.Param("userId"))
	requesterID := middleware.CurrentUserID(c)

	if requesterID != targetID {
		utils.SendError(c, http.StatusForbidden, "Access denied. You can only delete your own profile image.")
		return
	}

	var user models.User
	if err := ic.db.First(&user, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, "User not found")
			return
		}
		logger.Log.WithField("component", "images").Errorf("Failed to load user %d: %v", targetID, err)
		utils.SendServerError(c, "Internal server error", err)
		return
	}

	if err := ic.db.Model(&user).Update("profile_image", nil).Error; err != nil {
		logger.Log.WithField("component", "images").Errorf("Failed to delete image for user %d: %v", targetID, err)
		utils.SendServerError(c, "Internal server error", err)
		return
	}

	utils.SendSuccess(c, "Profile image deleted successfully", gin.H{
		"userId":          user.ID,
		"username":        user.Username,
		"hasProfileImage": false,
	})
}
