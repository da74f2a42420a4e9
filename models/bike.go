package models

import (
	"time"
)

type Bike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Brand     string    `json:"brand" gorm:"not null;size:255"`
	Tipe      string    `json:"tipe" gorm:"not null;size:255"`
	Deskripsi string    `json:"deskripsi" gorm:"type:text"`
	BikeImage []byte    `json:"-" gorm:"type:longblob"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BikeResponse annotates a bike with image presence instead of shipping the
// blob itself.
type BikeResponse struct {
	ID           uint      `json:"id"`
	Brand        string    `json:"brand"`
	Tipe         string    `json:"tipe"`
	Deskripsi    string    `json:"deskripsi"`
	HasBikeImage bool      `json:"hasBikeImage"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (b *Bike) ToResponse(hasImage bool) BikeResponse {
	return BikeResponse{
		ID:           b.ID,
		Brand:        b.Brand,
		Tipe:         b.Tipe,
		Deskripsi:    b.Deskripsi,
		HasBikeImage: hasImage,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
