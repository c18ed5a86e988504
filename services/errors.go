package services

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Error taxonomy raised by the lifecycle engine and the issue grouping.
// Controllers translate these into distinguishable HTTP failures; anything
// else is an unexpected error and surfaces as a 500.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
)

// HTTPStatus maps a service error to its response code. 401 is reserved for
// the auth middleware; a failed role or ownership check on an authenticated
// actor is a 403.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// IsServiceError reports whether err belongs to the taxonomy above.
func IsServiceError(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrValidation)
}

// translateDBError maps storage-level errors onto the taxonomy. Duplicate
// keys come back as ErrConflict because every uniqueness rule in this system
// (reviewer pair, issue volume/number, user email) is enforced by a unique
// index rather than a check-then-insert.
func translateDBError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}
