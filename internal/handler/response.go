package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketportal/internal/backend"
	"ticketportal/internal/repository"
	"ticketportal/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Link is a navigation affordance offered on a page.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

var (
	linkOrders = Link{Label: "My tickets", Href: "/account/orders"}
	linkEvents = Link{Label: "Browse events", Href: "/events"}
)

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	_ = c.Error(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service, backend and repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	// Backend client errors keep their status; server errors become a bad gateway.
	var se *backend.StatusError
	if errors.As(err, &se) {
		if se.StatusCode >= 400 && se.StatusCode < 500 {
			return se.StatusCode
		}
		return http.StatusBadGateway
	}

	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidTicketCode),
		errors.Is(err, service.ErrInvalidEventID),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidResetToken),
		errors.Is(err, service.ErrPasswordTooShort):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, service.ErrConfirmationRequired):
		return http.StatusPreconditionRequired

	// Conflict errors
	case errors.Is(err, service.ErrDeletionInProgress):
		return http.StatusConflict

	case errors.Is(err, service.ErrTooManyRequests):
		return http.StatusTooManyRequests

	// Upstream unavailable
	case errors.Is(err, backend.ErrTransport),
		errors.Is(err, service.ErrArtifactUnavailable):
		return http.StatusBadGateway

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
