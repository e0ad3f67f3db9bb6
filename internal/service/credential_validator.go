package service

import (
	"fmt"
	"strings"

	apperrors "goaltracker/internal/errors"
)

const (
	usernameMinLen = 1
	passwordMinLen = 6
	// passwordMaxLen stays within bcrypt's 72-byte input limit.
	passwordMaxLen = 72
)

// Credentials is a validated registration payload.
type Credentials struct {
	Username string
	Password string
}

// CredentialValidator validates registration input.
type CredentialValidator struct{}

// NewCredentialValidator creates a new credential validator.
func NewCredentialValidator() *CredentialValidator {
	return &CredentialValidator{}
}

// Validate runs the ordered registration checks over the raw request body
// and returns the first failure. The body is inspected as decoded JSON so
// missing keys and non-string values can be told apart.
func (v *CredentialValidator) Validate(body map[string]interface{}) (*Credentials, *apperrors.ValidationError) {
	fields := []string{"username", "password"}

	for _, field := range fields {
		if _, ok := body[field]; !ok {
			return nil, apperrors.NewValidationError("Missing field", field)
		}
	}

	values := make(map[string]string, len(fields))
	for _, field := range fields {
		s, ok := body[field].(string)
		if !ok {
			return nil, apperrors.NewValidationError("Incorrect field type: expected string", field)
		}
		values[field] = s
	}

	for _, field := range fields {
		if strings.TrimSpace(values[field]) != values[field] {
			return nil, apperrors.NewValidationError("Cannot start or end with whitespace", field)
		}
	}

	if len(values["username"]) < usernameMinLen {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("Must be at least %d characters long", usernameMinLen), "username")
	}
	if len(values["password"]) < passwordMinLen {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("Must be at least %d characters long", passwordMinLen), "password")
	}
	if len(values["password"]) > passwordMaxLen {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("Must be at most %d characters long", passwordMaxLen), "password")
	}

	return &Credentials{
		Username: values["username"],
		Password: values["password"],
	}, nil
}
