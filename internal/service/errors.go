package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"crmapi/internal/repository"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("resource already exists")
	ErrProtected          = errors.New("resource is still referenced by addresses")
	ErrInvalidReference   = errors.New("referenced resource does not exist")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrStorageUnavailable = errors.New("export storage is not configured")
)

// ValidationError lists the rejected input fields with a reason each.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + " " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func fieldError(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

// constraintMessages describes unique and foreign key constraints in client terms.
var constraintMessages = map[string]string{
	"customers_email_key":        "email is already registered",
	"users_username_key":         "username is already taken",
	"countries_name_key":         "country name already exists",
	"countries_code_key":         "country code already exists",
	"addresses_city_id_fkey":     "city_id",
	"addresses_customer_id_fkey": "customer_id",
	"states_country_id_fkey":     "country_id",
	"cities_state_id_fkey":       "state_id",
}

// mapRepoError converts repository sentinels into service errors.
func mapRepoError(err error) error {
	if err == nil {
		return nil
	}

	var detail string
	var ce *repository.ConstraintError
	if errors.As(err, &ce) {
		detail = constraintMessages[ce.Constraint]
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrReferenced):
		return ErrProtected
	case errors.Is(err, repository.ErrDuplicate):
		if detail == "" {
			return ErrConflict
		}
		return fmt.Errorf("%w: %s", ErrConflict, detail)
	case errors.Is(err, repository.ErrInvalidReference):
		if detail == "" {
			return ErrInvalidReference
		}
		return fmt.Errorf("%w: %s", ErrInvalidReference, detail)
	}
	return err
}
