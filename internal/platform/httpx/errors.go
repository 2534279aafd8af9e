// Package httpx provides JSON response helpers and the error taxonomy
// shared by the domain layer.
package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors returned by services and mapped to HTTP statuses here.
// Access failures are reported as ErrUnauthorized even when the underlying
// row is simply missing, so a denied caller learns nothing about which ids
// exist.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("validation failed")
	ErrDuplicate    = errors.New("duplicate entry")
)

// RespondError maps a domain error to an RFC7807 problem response.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		Problem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
