package services

import (
	"context"
	"strings"

	"metanoia_app_go/models"

	zlog "github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ContactInput is a public contact form submission
type ContactInput struct {
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	IPAddress string
}

// CreateContactMessage validates and stores a contact message
func CreateContactMessage(ctx context.Context, db *gorm.DB, in ContactInput) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:      StripTags(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Phone:     StripTags(in.Phone),
		Subject:   StripTags(in.Subject),
		Message:   strings.TrimSpace(in.Message),
		IPAddress: in.IPAddress,
	}

	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return nil, NewValidationError("Preencha nome, email e mensagem")
	}
	if !strings.Contains(msg.Email, "@") {
		return nil, NewValidationError("Informe um email válido")
	}
	if len(msg.Message) > 5000 {
		return nil, NewValidationError("A mensagem é muito longa")
	}

	if err := db.WithContext(ctx).Create(msg).Error; err != nil {
		zlog.Error().Err(err).Msg("Failed to save contact message")
		return nil, Internal(err, "enviar mensagem")
	}
	return msg, nil
}
