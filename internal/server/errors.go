// Package server provides the HTTP REST API for the content assistant.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/seo-assistant/internal/generation"
	"github.com/jonathan/seo-assistant/internal/pipeline"
	"github.com/jonathan/seo-assistant/internal/tasks"
)

// ErrEmailAlreadyExists indicates the email is already registered.
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// HTTPStatus maps domain errors to HTTP status codes.
func HTTPStatus(err error) int {
	var (
		validationErr *pipeline.ValidationError
		notFoundErr   *tasks.NotFoundError
		parseErr      *generation.ParseError
		emailErr      *ErrEmailAlreadyExists
		credsErr      *ErrInvalidCredentials
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &parseErr):
		return http.StatusBadGateway
	case errors.As(err, &emailErr):
		return http.StatusConflict
	case errors.As(err, &credsErr):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
