package services

import (
	"strconv"
	"unicode"
)

// MinPasswordLength applies to every admin account
const MinPasswordLength = 12

// ValidatePassword requires MinPasswordLength characters with upper and
// lower case letters, a digit and a symbol.
func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return NewValidationError("A senha deve ter pelo menos " + strconv.Itoa(MinPasswordLength) + " caracteres")
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return NewValidationError("A senha deve conter uma letra maiúscula")
	case !hasLower:
		return NewValidationError("A senha deve conter uma letra minúscula")
	case !hasNumber:
		return NewValidationError("A senha deve conter um número")
	case !hasSpecial:
		return NewValidationError("A senha deve conter um caractere especial")
	}
	return nil
}
