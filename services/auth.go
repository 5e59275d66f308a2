package services

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"metanoia_app_go/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10
	// SessionTokenLength is the length of the session token in bytes (64 chars hex)
	SessionTokenLength = 32
	// DefaultSessionDuration is the default session duration (7 days)
	DefaultSessionDuration = 7 * 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
)

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("metanoia"), BcryptCost)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}
	return string(bytes), nil
}

// VerifyPassword verifies a password against a bcrypt hash
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// GenerateSessionToken generates a cryptographically secure random token
func GenerateSessionToken() (string, error) {
	bytes := make([]byte, SessionTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", errors.Wrap(err, "failed to generate session token")
	}
	return hex.EncodeToString(bytes), nil
}

// Authenticate checks credentials of an active user and records the login time
func Authenticate(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ? AND is_active = ?", strings.ToLower(strings.TrimSpace(email)), true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same bcrypt cost for unknown emails
			bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "failed to load user")
	}

	if !VerifyPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := db.Model(&user).Update("last_login_at", now).Error; err != nil {
		zlog.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to record last login")
	}
	user.LastLoginAt = &now
	return &user, nil
}

// CreateSession creates a new session for a user
func CreateSession(db *gorm.DB, userID, ipAddress, userAgent string) (*models.Session, error) {
	token, err := GenerateSessionToken()
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(DefaultSessionDuration),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}

	if err := db.Create(session).Error; err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	return session, nil
}

// ValidateSession validates a session token and returns the session with its user
func ValidateSession(db *gorm.DB, token string) (*models.Session, error) {
	var session models.Session

	err := db.Preload("User").Where("token = ?", token).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Wrap(err, "failed to validate session")
	}

	if session.IsExpired() {
		db.Delete(&session)
		return nil, ErrSessionExpired
	}

	return &session, nil
}

// DeleteSession deletes a session (logout)
func DeleteSession(db *gorm.DB, token string) error {
	if err := db.Where("token = ?", token).Delete(&models.Session{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete session")
	}
	return nil
}

// CleanupExpiredSessions removes all expired sessions from the database
func CleanupExpiredSessions(db *gorm.DB) (int64, error) {
	result := db.Where("expires_at < ?", time.Now()).Delete(&models.Session{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to cleanup expired sessions")
	}
	return result.RowsAffected, nil
}
