package core

import (
	"database/sql"
	"errors"
	"net/http"
)

var (
	ErrEmptyEmail = errors.New("email address can't be empty")
	ErrEmptyRole  = errors.New("role name can't be empty")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
)

// StatusCode maps an error to the HTTP status code of the response.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound), errors.Is(err, sql.ErrNoRows):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
