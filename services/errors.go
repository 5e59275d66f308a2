package services

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrorKind classifies failures so the HTTP layer can present them uniformly
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindDuplicateSlug
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDuplicateSlug:
		return "duplicate_slug"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// AppError is the error type returned by the landing page and lead services
type AppError struct {
	Kind    ErrorKind
	Message string // Safe to show to the user
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by kind so sentinels work with errors.Is
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Kind == e.Kind
}

var (
	ErrDuplicateSlug       = &AppError{Kind: KindDuplicateSlug, Message: "Slug já existe. Escolha outro."}
	ErrLandingPageNotFound = &AppError{Kind: KindNotFound, Message: "Página não encontrada"}
	ErrInvalidLead         = &AppError{Kind: KindValidation, Message: "Dados de inscrição inválidos"}
)

// NewValidationError builds a user-facing validation failure
func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// Internal wraps an unexpected failure with context for the logs.
// The message shown to the user stays generic.
func Internal(err error, action string) *AppError {
	return &AppError{Kind: KindInternal, Message: "Erro ao " + action + ". Tente novamente.", Err: errors.Wrap(err, action)}
}

// KindOf returns the kind of err, KindInternal for anything unclassified
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// UserMessage returns the message to display for err
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "Erro inesperado. Tente novamente."
}

// isUniqueViolation detects unique index failures from sqlite and libsql
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(errors.Cause(err).Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
