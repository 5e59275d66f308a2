package services

import (
	"testing"
	"time"

	"metanoia_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestUser(t *testing.T, db *gorm.DB, email, password string, active bool) *models.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	user := &models.User{Name: "Admin", Email: email, Password: hash, Role: models.RoleAdmin, IsActive: true}
	require.NoError(t, db.Create(user).Error)
	if !active {
		require.NoError(t, db.Model(user).Update("is_active", false).Error)
	}
	return user
}

func TestPasswordHashing(t *testing.T) {
	password := "SecretPass123!"

	hash, err := HashPassword(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	assert.True(t, VerifyPassword(hash, password))
	assert.False(t, VerifyPassword(hash, "WrongPass"))
}

func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "admin@metanoia.org", "Senha123!", true)
	createTestUser(t, db, "inativo@metanoia.org", "Senha123!", false)

	user, err := Authenticate(db, " Admin@Metanoia.org ", "Senha123!")
	require.NoError(t, err)
	assert.Equal(t, "admin@metanoia.org", user.Email)
	assert.NotNil(t, user.LastLoginAt)

	_, err = Authenticate(db, "admin@metanoia.org", "errada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = Authenticate(db, "ninguem@metanoia.org", "Senha123!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = Authenticate(db, "inativo@metanoia.org", "Senha123!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSessionLifecycle(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "admin@metanoia.org", "Senha123!", true)

	session, err := CreateSession(db, user.ID, "127.0.0.1", "TestAgent")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, user.ID, session.UserID)
	assert.WithinDuration(t, time.Now().Add(DefaultSessionDuration), session.ExpiresAt, 10*time.Second)

	valid, err := ValidateSession(db, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.ID, valid.ID)
	assert.Equal(t, "admin@metanoia.org", valid.User.Email)

	_, err = ValidateSession(db, "invalid-token")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, DeleteSession(db, session.Token))
	_, err = ValidateSession(db, session.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionExpiry(t *testing.T) {
	db := setupTestDB(t)

	token := "expired-token"
	require.NoError(t, db.Create(&models.Session{
		ID:        "sess-expired",
		UserID:    "user-exp",
		Token:     token,
		ExpiresAt: time.Now().Add(-1 * time.Hour),
	}).Error)

	sess, err := ValidateSession(db, token)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Nil(t, sess)

	var count int64
	db.Model(&models.Session{}).Where("token = ?", token).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCleanupExpiredSessions(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&models.Session{ID: "sess-valid", Token: "valid", ExpiresAt: time.Now().Add(time.Hour)})
	db.Create(&models.Session{ID: "sess-expired-1", Token: "exp1", ExpiresAt: time.Now().Add(-time.Hour)})
	db.Create(&models.Session{ID: "sess-expired-2", Token: "exp2", ExpiresAt: time.Now().Add(-2 * time.Hour)})

	removed, err := CleanupExpiredSessions(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	var remaining []models.Session
	db.Find(&remaining)
	require.Len(t, remaining, 1)
	assert.Equal(t, "sess-valid", remaining[0].ID)
}
