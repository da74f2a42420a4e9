package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"motor-api/models"
)

func TestMigrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.Bike{}))

	// Running twice is safe
	assert.NoError(t, Migrate(db))
}

func TestMigrate_UniqueConstraints(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	first := models.User{Username: "a", Email: "a@x.com", Password: "hash"}
	require.NoError(t, db.Create(&first).Error)

	dupUsername := models.User{Username: "a", Email: "other@x.com", Password: "hash"}
	assert.ErrorIs(t, db.Create(&dupUsername).Error, gorm.ErrDuplicatedKey)

	dupEmail := models.User{Username: "other", Email: "a@x.com", Password: "hash"}
	assert.ErrorIs(t, db.Create(&dupEmail).Error, gorm.ErrDuplicatedKey)
}
