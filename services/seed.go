package services

import (
	"os"
	"strings"

	"metanoia_app_go/models"

	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// UserInput describes a console account
type UserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// CreateUser validates and stores a console account with a hashed password
func CreateUser(db *gorm.DB, in UserInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Role == "" {
		in.Role = models.RoleEditor
	}

	if in.Name == "" || in.Email == "" {
		return nil, NewValidationError("Nome e email são obrigatórios")
	}
	if !strings.Contains(in.Email, "@") {
		return nil, NewValidationError("Informe um email válido")
	}
	if !models.IsValidRole(in.Role) {
		return nil, NewValidationError("Perfil inválido")
	}
	if err := ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, errors.Wrap(err, "check existing email")
	}
	if count > 0 {
		return nil, NewValidationError("Já existe um usuário com este email")
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Role:     in.Role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, errors.Wrap(err, "create user")
	}
	return user, nil
}

// SeedAdminFromEnv creates the first admin from ADMIN_EMAIL and ADMIN_PASSWORD.
// Nothing happens when the variables are unset or an admin already exists.
func SeedAdminFromEnv(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}
	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Administrador"
	}

	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return errors.Wrap(err, "count admins")
	}
	if count > 0 {
		zlog.Debug().Msg("[SEED] Admin already exists, skipping")
		return nil
	}

	user, err := CreateUser(db, UserInput{Name: name, Email: email, Password: password, Role: models.RoleAdmin})
	if err != nil {
		return err
	}
	zlog.Info().Str("email", user.Email).Msg("[SEED] Created admin user")
	return nil
}
