package api

import (
	"errors"
	"net/http"

	"complaint_tracker/internal/complaints"
	"complaint_tracker/internal/export"
	"complaint_tracker/internal/identity"

	"github.com/gin-gonic/gin"
)

// fail translates a sentinel error from the service layers into an HTTP
// response. Unknown errors become a 500 without leaking detail.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal error"
	switch {
	case errors.Is(err, identity.ErrMissingField),
		errors.Is(err, identity.ErrPasswordTooShort),
		errors.Is(err, identity.ErrPasswordMismatch),
		errors.Is(err, identity.ErrDuplicateUsername),
		errors.Is(err, identity.ErrUsernameTaken),
		errors.Is(err, identity.ErrWrongPassword),
		errors.Is(err, complaints.ErrMissingField),
		errors.Is(err, complaints.ErrEmptyText),
		errors.Is(err, export.ErrNoComplaints):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, identity.ErrInvalidCredentials),
		errors.Is(err, identity.ErrNotAuthenticated),
		errors.Is(err, complaints.ErrLoginRequired):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, identity.ErrUserNotFound),
		errors.Is(err, complaints.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	}
	c.JSON(status, gin.H{"error": message})
}
