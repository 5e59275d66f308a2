package services

import (
	"testing"

	"metanoia_app_go/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database with every model migrated.
// The shared cache keeps the database alive for goroutines started by the code under test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbName := "mem_" + uuid.New().String()
	db, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.AuditLog{},
		&models.LandingPage{},
		&models.Lead{},
		&models.Talk{},
		&models.Course{},
		&models.Content{},
		&models.ContactMessage{},
	))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func createTestLandingPage(t *testing.T, db *gorm.DB, slug string, active bool) *models.LandingPage {
	t.Helper()
	lp := &models.LandingPage{
		Slug:       slug,
		Name:       "Página " + slug,
		Title:      "Título " + slug,
		BannerType: models.BannerTypeImage,
		Active:     active,
	}
	require.NoError(t, db.Create(lp).Error)
	return lp
}
