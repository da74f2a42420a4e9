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

type BikeController struct {
	db *gorm.DB
}

func NewBikeController(db *gorm.DB) *BikeController {
	return &BikeController{db: db}
}

type CreateBikeRequest struct {
	Brand     string `json:"brand"`
	Tipe      string `json:"tipe"`
	Deskripsi string `json:"deskripsi"`
}

func (bc *BikeController) CreateBike(c *gin.Context) {
	var req CreateBikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Brand == "" || req.Tipe == "" {
		utils.SendError(c, http.StatusBadRequest, "Brand and tipe are required")
		return
	}

	bike := models.Bike{
		Brand:     req.Brand,
		Tipe:      req.Tipe,
		Deskripsi: req.Deskripsi,
	}

	if err := bc.db.Create(&bike).Error; err != nil {
		logger.Log.WithField("component", "bikes").Errorf("Failed to create bike: %v", err)
		utils.SendServerError(c, "Internal server error", err)
		return
	}

	utils.SendCreated(c, "Bike created successfully", bike.ToResponse(false))
}

func (bc *BikeController) GetAllBikes(c *gin.Context) {
	var bikes []models.Bike
	err := bc.db.
		Select("id", "brand", "tipe", "deskripsi", "created_at", "updated_at").
		Order("created_at DESC").
		Find(&bikes).Error
	if err != nil {
		logger.Log.WithField("component", "bikes").Errorf("Failed to list bikes: %v", err)
		utils.SendServerError(c, "Internal server error", err)
		return
	}

	responses := make([]models.BikeResponse, 0, len(bikes))
	for i := range bikes {
		hasImage, err := bc.bikeHasImage(bikes[i].ID)
		if err != nil {
			logger.Log.WithField("component", "bikes").Errorf("Failed to check image for bike %d: %v", bikes[i].ID, err)
			utils.SendServerError(c, "Internal server error", err)
			return
		}
		responses = append(responses, bikes[i].ToResponse(hasImage))
	}

	utils.SendSuccess(c, "Bikes retrieved successfully", responses)
}

func (bc *BikeController) GetBikeByID(c *gin.Context) {
	bikeID := parseID(c.Param("id"))

	var bike models.Bike
	if err := bc.db.First(&bike, bikeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, "Bike not found")
			return
		}
		logger.Log.WithField("component", "bikes").Errorf("Failed to load bike %d: %v", bikeID, err)
		utils.SendServerError(c, "Internal server error", err)
		return
	}

	utils.SendSuccess(c, "Bike retrieved successfully", bike.ToResponse(len(bike.BikeImage) > 0))
}

// bikeHasImage checks blob presence without pulling the blob into the list
// query.
func (bc *BikeController) bikeHasImage(bikeID uint) (bool, error) {
	var count int64
	err := bc.db.Model(&models.Bike{}).
		Where("id = ? AND bike_image IS NOT NULL AND LENGTH(bike_image) > 0", bikeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
