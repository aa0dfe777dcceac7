package service

import (
	"context"
	"errors"
	"strings"

	"github.com/learning/securedapp/internal/core/domain"
	"github.com/learning/securedapp/internal/core/ports"
	"github.com/learning/securedapp/pkg/validation"
)

// userRule checks one field of a candidate user. It returns a field error
// for invalid input and a non-nil error only on infrastructure failure
// (the uniqueness lookup). forUpdate relaxes the password requirement:
// a blank password on update means "keep the stored hash".
type userRule struct {
	field string
	check func(ctx context.Context, candidate *domain.User, forUpdate bool) (*domain.FieldError, error)
}

// UserValidator validates candidate user submissions before persistence.
// Rules live in an explicit table, evaluated in the order a form would
// surface them; every rule runs so the caller gets the full failure list.
// The only side effect is the read-only uniqueness lookup.
type UserValidator struct {
	rules []userRule
}

// NewUserValidator builds the rule table against the given repository.
func NewUserValidator(users ports.UserRepository) *UserValidator {
	v := &UserValidator{}
	v.rules = []userRule{
		{field: "username", check: requireUsername},
		{field: "password", check: requirePasswordOnCreate},
		{field: "email", check: checkEmailFormat},
		{field: "username", check: checkUsernameUnique(users)},
	}
	return v
}

// Validate runs every rule against the candidate. A nil return means the
// candidate may be persisted. Invalid input comes back as
// *domain.ValidationError; infrastructure failures are returned as-is.
func (v *UserValidator) Validate(ctx context.Context, candidate *domain.User, forUpdate bool) error {
	var fields []domain.FieldError
	for _, rule := range v.rules {
		fe, err := rule.check(ctx, candidate, forUpdate)
		if err != nil {
			return err
		}
		if fe != nil {
			fields = append(fields, *fe)
		}
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func requireUsername(_ context.Context, candidate *domain.User, _ bool) (*domain.FieldError, error) {
	if strings.TrimSpace(candidate.Username) == "" {
		return &domain.FieldError{Field: "username", Code: domain.CodeRequired}, nil
	}
	return nil, nil
}

func requirePasswordOnCreate(_ context.Context, candidate *domain.User, forUpdate bool) (*domain.FieldError, error) {
	if !forUpdate && candidate.Password == "" {
		return &domain.FieldError{Field: "password", Code: domain.CodeRequired}, nil
	}
	return nil, nil
}

func checkEmailFormat(_ context.Context, candidate *domain.User, _ bool) (*domain.FieldError, error) {
	if candidate.Email == "" {
		return nil, nil
	}
	if !validation.IsValidEmail(candidate.Email) {
		return &domain.FieldError{Field: "email", Code: domain.CodeInvalidEmail}, nil
	}
	return nil, nil
}

// checkUsernameUnique is advisory: it catches most duplicates before the
// write, but the store's unique index remains the authoritative check for
// the race between validation and persistence.
func checkUsernameUnique(users ports.UserRepository) func(context.Context, *domain.User, bool) (*domain.FieldError, error) {
	return func(ctx context.Context, candidate *domain.User, _ bool) (*domain.FieldError, error) {
		if strings.TrimSpace(candidate.Username) == "" {
			return nil, nil
		}
		existing, err := users.FindByUsername(ctx, candidate.Username)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, nil
			}
			return nil, err
		}
		if existing.ID != candidate.ID {
			return &domain.FieldError{Field: "username", Code: domain.CodeDuplicateUsername}, nil
		}
		return nil, nil
	}
}
