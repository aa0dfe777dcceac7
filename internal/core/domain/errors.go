package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUserNotFound = errors.New("user not found")
var ErrDuplicateUser = errors.New("username already taken")
var ErrRoleNotFound = errors.New("role not found")
var ErrCategoryNotFound = errors.New("category not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrPasswordEncoding = errors.New("password encoding failed")

// Validation message codes surfaced as field-level errors.
const (
	CodeRequired          = "REQUIRED"
	CodeInvalidEmail      = "INVALID_EMAIL"
	CodeDuplicateUsername = "DUPLICATE_USERNAME"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

// ValidationError aggregates every field failure found in one validation
// pass. It is an ordinary error value: handlers recover it at the boundary
// and render the field list, never a generic failure.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, fe := range e.Fields {
		parts[i] = fmt.Sprintf("%s:%s", fe.Field, fe.Code)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Has reports whether the error contains a failure for the given field.
func (e *ValidationError) Has(field string) bool {
	for _, fe := range e.Fields {
		if fe.Field == field {
			return true
		}
	}
	return false
}
