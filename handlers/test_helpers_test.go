package handlers

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"metanoia_app_go/config"
	"metanoia_app_go/db"
	"metanoia_app_go/models"
	"metanoia_app_go/services"
	"metanoia_app_go/services/i18n"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testAppURL = "https://metanoia.test"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique shared memory name isolates tests while letting async audit writes see the schema
	dsn := "file:mem_" + uuid.New().String() + "?mode=memory&cache=shared&_busy_timeout=5000"
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, testDB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.AuditLog{},
		&models.LandingPage{},
		&models.Lead{},
		&models.ContactMessage{},
		&models.Talk{},
		&models.Course{},
		&models.Content{},
	))
	require.NoError(t, i18n.Load())

	saved := db.DB
	db.DB = testDB
	t.Cleanup(func() { db.DB = saved })
	return testDB
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:   "test",
		AppURL:        testAppURL,
		QRServiceURL:  config.DefaultQRServiceURL,
		EmailTestMode: true,
	}
}

// newContext builds a handler context with config and optional path params (name, value, ...)
func newContext(req *http.Request, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("config", testConfig())

	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	if len(names) > 0 {
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	return c, rec
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func htmx(req *http.Request) *http.Request {
	req.Header.Set("HX-Request", "true")
	return req
}

func createLandingPage(t *testing.T, database *gorm.DB, slug string, active bool) *models.LandingPage {
	t.Helper()
	page := &models.LandingPage{
		Slug:       slug,
		Name:       "Página " + slug,
		Title:      "Título " + slug,
		BannerType: models.BannerTypeImage,
		Active:     active,
	}
	require.NoError(t, database.Create(page).Error)
	return page
}

func createLead(t *testing.T, database *gorm.DB, pageID, name string) *models.Lead {
	t.Helper()
	lead := &models.Lead{
		LandingPageID: pageID,
		Name:          name,
		WhatsApp:      "11999990000",
		Email:         strings.ToLower(name) + "@example.com",
		Age:           30,
	}
	require.NoError(t, database.Create(lead).Error)
	return lead
}

// mockStorage is a testify mock of services.StorageProvider
type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Upload(ctx context.Context, file *multipart.FileHeader, key string) (*services.StorageResult, error) {
	args := m.Called(ctx, file, key)
	res, _ := args.Get(0).(*services.StorageResult)
	return res, args.Error(1)
}

func (m *mockStorage) UploadReader(ctx context.Context, reader io.Reader, key, contentType string, size int64) (*services.StorageResult, error) {
	args := m.Called(ctx, reader, key, contentType, size)
	res, _ := args.Get(0).(*services.StorageResult)
	return res, args.Error(1)
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockStorage) GetPublicURL(key string) string {
	return m.Called(key).String(0)
}

func (m *mockStorage) IsConfigured() bool {
	return m.Called().Bool(0)
}

func useStorage(t *testing.T, s services.StorageProvider) {
	saved := services.Storage
	services.Storage = s
	t.Cleanup(func() { services.Storage = saved })
}
