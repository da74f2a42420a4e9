package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"motor-api/logger"
	"motor-api/models"
	"motor-api/utils"
)

type BikeImageController struct {
	db *gorm.DB
}

func NewBikeImageController(db *gorm.DB) *BikeImageController {
	return &BikeImageController{db: db}
}

type UploadBikeImageRequest struct {
	BikeID          uint   `json:"bikeId"`
	BikeImageBase64 string `json:"bikeImageBase64"`
}

func (bic *BikeImageController) UploadBikeImage(c *gin.Context) {
	var req UploadBikeImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.BikeID == 0 || req.BikeImageBase64 == "" {
		utils.SendError(c, http.StatusBadRequest, "Bike ID and image data are required")
		return
	}

	imageBytes, err := utils.DecodeBase64Image(req.BikeImageBase64)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid image format")
		return
	}

	var bike models.Bike
	if err := bic.db.First(&bike, req.BikeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, "Bike not found")
			return
		}
		logger.Log.WithField("component", "bike-images").Errorf("Failed to load bike %d: %v", req.BikeID, err)
		utils.SendServerError(c, "Internal server error", err)
		return
	}

	if err := bic.db.Model(&bike).Update("bike_image", imageBytes).Error; err != nil {
		logger.Log.WithField("component", "bike-images").Errorf("Failed to store image for bike %d: %v", req.BikeID, err)
		utils.SendServerError(c, "Internal server error", err)
		return
	}

	utils.SendSuccess(c, "Bike image uploaded successfully", gin.H{
		"bikeId":       bike.ID,
		"brand":        bike.Brand,
		"tipe":         bike.Tipe,
		"hasBikeImage": true,
	})
}

func (bic *BikeImageController) GetBikeImage(c *gin.Context) {
	bikeID := parseID(c.Param("bikeId"))

	var bike models.Bike
	if err := bic.db.First(&bike, bikeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, "Bike not found")
			return
		}
		logger.Log.WithField("component", "bike-images").Errorf("Failed to load bike %d: %v", bikeID, err)
		utils.SendServerError(c, "Internal server error", err)
		return
	}

	if len(bike.BikeImage) == 0 {
		utils.SendError(c, http.StatusNotFound, "Bike image not found")
		return
	}

	utils.SendSuccess(c, "Bike image retrieved successfully", gin.H{
		"bikeId":      bike.ID,
		"brand":       bike.Brand,
		"tipe":        bike.Tipe,
		"imageBase64": utils.EncodeImageBase64(bike.BikeImage),
	})
}
