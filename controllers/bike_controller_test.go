package controllers_test

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motor-api/models"
)

func TestCreateBike(t *testing.T) {
	api := setupTestAPI(t)

	w := api.do(t, "POST", "/api/bikes", gin.H{
		"brand":     "Honda",
		"tipe":      "CBR250RR",
		"deskripsi": "Sport bike",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	env := parseEnvelope(t, w)
	var bike models.BikeResponse
	require.NoError(t, json.Unmarshal(env.Data, &bike))
	assert.NotZero(t, bike.ID)
	assert.Equal(t, "Honda", bike.Brand)
	assert.Equal(t, "CBR250RR", bike.Tipe)
	assert.Equal(t, "Sport bike", bike.Deskripsi)
	assert.False(t, bike.HasBikeImage)
}

func TestCreateBike_Validation(t *testing.T) {
	api := setupTestAPI(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing brand", gin.H{"tipe": "CBR250RR"}},
		{"missing tipe", gin.H{"brand": "Honda"}},
		{"empty body", gin.H{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, "POST", "/api/bikes", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	// Nothing was persisted
	var count int64
	require.NoError(t, api.db.Model(&models.Bike{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestGetAllBikes_OrderAndImageFlag(t *testing.T) {
	api := setupTestAPI(t)

	older := models.Bike{Brand: "Honda", Tipe: "CBR", CreatedAt: time.Now().Add(-2 * time.Hour)}
	newer := models.Bike{Brand: "Yamaha", Tipe: "R25", CreatedAt: time.Now().Add(-1 * time.Hour)}
	require.NoError(t, api.db.Create(&older).Error)
	require.NoError(t, api.db.Create(&newer).Error)

	// Only the older bike gets an image
	payload := base64.StdEncoding.EncodeToString([]byte("bike photo"))
	w := api.do(t, "POST", "/api/bike-images/upload", gin.H{
		"bikeId":          older.ID,
		"bikeImageBase64": payload,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "upload failed: %s", w.Body.String())

	w = api.do(t, "GET", "/api/bikes", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	env := parseEnvelope(t, w)
	var bikes []models.BikeResponse
	require.NoError(t, json.Unmarshal(env.Data, &bikes))
	require.Len(t, bikes, 2)

	assert.Equal(t, "Yamaha", bikes[0].Brand, "newest first")
	assert.False(t, bikes[0].HasBikeImage)
	assert.Equal(t, "Honda", bikes[1].Brand)
	assert.True(t, bikes[1].HasBikeImage)
}

func TestGetBikeByID(t *testing.T) {
	api := setupTestAPI(t)

	bike := models.Bike{Brand: "Kawasaki", Tipe: "Ninja", Deskripsi: "Green one"}
	require.NoError(t, api.db.Create(&bike).Error)

	w := api.do(t, "GET", fmt.Sprintf("/api/bikes/%d", bike.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	env := parseEnvelope(t, w)
	var got models.BikeResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, bike.ID, got.ID)
	assert.Equal(t, "Kawasaki", got.Brand)
	assert.False(t, got.HasBikeImage)
}

func TestGetBikeByID_NotFound(t *testing.T) {
	api := setupTestAPI(t)

	w := api.do(t, "GET", "/api/bikes/9999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadBikeImage_RoundTrip(t *testing.T) {
	api := setupTestAPI(t)

	bike := models.Bike{Brand: "Suzuki", Tipe: "GSX"}
	require.NoError(t, api.db.Create(&bike).Error)

	raw := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0xff}
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	w := api.do(t, "POST", "/api/bike-images/upload", gin.H{
		"bikeId":          bike.ID,
		"bikeImageBase64": payload,
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	env := parseEnvelope(t, w)
	var uploadData struct {
		BikeID       uint `json:"bikeId"`
		HasBikeImage bool `json:"hasBikeImage"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &uploadData))
	assert.Equal(t, bike.ID, uploadData.BikeID)
	assert.True(t, uploadData.HasBikeImage)

	w = api.do(t, "GET", fmt.Sprintf("/api/bike-images/%d", bike.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	env = parseEnvelope(t, w)
	var fetchData struct {
		BikeID      uint   `json:"bikeId"`
		Brand       string `json:"brand"`
		ImageBase64 string `json:"imageBase64"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &fetchData))
	assert.Equal(t, "Suzuki", fetchData.Brand)

	prefix := "data:image/jpeg;base64,"
	require.True(t, len(fetchData.ImageBase64) > len(prefix))
	decoded, err := base64.StdEncoding.DecodeString(fetchData.ImageBase64[len(prefix):])
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestUploadBikeImage_Validation(t *testing.T) {
	api := setupTestAPI(t)

	bike := models.Bike{Brand: "Suzuki", Tipe: "GSX"}
	require.NoError(t, api.db.Create(&bike).Error)

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing bike id", gin.H{"bikeImageBase64": "aGVsbG8="}},
		{"missing image", gin.H{"bikeId": bike.ID}},
		{"bad base64", gin.H{"bikeId": bike.ID, "bikeImageBase64": "!!!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, "POST", "/api/bike-images/upload", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestUploadBikeImage_BikeNotFound(t *testing.T) {
	api := setupTestAPI(t)

	w := api.do(t, "POST", "/api/bike-images/upload", gin.H{
		"bikeId":          9999,
		"bikeImageBase64": base64.StdEncoding.EncodeToString([]byte("photo")),
	}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBikeImage_NotFound(t *testing.T) {
	api := setupTestAPI(t)

	bike := models.Bike{Brand: "Suzuki", Tipe: "GSX"}
	require.NoError(t, api.db.Create(&bike).Error)

	t.Run("unknown bike", func(t *testing.T) {
		w := api.do(t, "GET", "/api/bike-images/9999", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bike without image", func(t *testing.T) {
		w := api.do(t, "GET", fmt.Sprintf("/api/bike-images/%d", bike.ID), nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUnknownRoute(t *testing.T) {
	api := setupTestAPI(t)

	w := api.do(t, "GET", "/api/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	env := parseEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "Endpoint not found", env.Message)
}
