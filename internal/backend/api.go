// Package backend is the portal's view of the remote ticketing API. Every
// operation the portal needs is a method on API; Client implements it over HTTP.
package backend

import (
	"context"
	"io"

	"ticketportal/internal/domain"
)

// API is the capability interface for the remote ticketing backend.
type API interface {
	// VerifyPayment looks up the order behind an external reference.
	VerifyPayment(ctx context.Context, externalReference, paymentID string) (*VerifyResponse, error)

	// TicketArtifact opens the printable document for a ticket.
	TicketArtifact(ctx context.Context, ticketCode string) (*Artifact, error)

	// ListFavorites returns the session user's favorite events.
	ListFavorites(ctx context.Context, session domain.Session) ([]domain.FavoriteEvent, error)

	// RemoveFavorite removes an event from the session user's favorites.
	RemoveFavorite(ctx context.Context, session domain.Session, eventID string) error

	// ListArtists returns public artist profiles.
	ListArtists(ctx context.Context, activeOnly bool) ([]domain.Artist, error)

	// ForgotPassword asks the backend to send a recovery email.
	ForgotPassword(ctx context.Context, email string) error

	// VerifyResetToken reports whether a recovery token is still usable.
	VerifyResetToken(ctx context.Context, token string) (bool, error)

	// ResetPassword sets a new password using a recovery token.
	ResetPassword(ctx context.Context, token, password string) error

	// ListEvents returns every event, including drafts, for administration.
	ListEvents(ctx context.Context, session domain.Session) ([]domain.EventSummary, error)

	// DeleteEvent deletes an event together with its sessions, prices and tickets.
	DeleteEvent(ctx context.Context, session domain.Session, eventID string) error
}

// VerifyResponse is the body of GET /api/payments/verify.
type VerifyResponse struct {
	Success bool                 `json:"success"`
	Pending bool                 `json:"pending,omitempty"`
	Order   *domain.OrderSummary `json:"order,omitempty"`
}

// Artifact is an open ticket document. Callers must close Body.
type Artifact struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
	FileName      string
}

// ArtifactFileName is the local file name a ticket document is saved under.
func ArtifactFileName(ticketCode string) string {
	return "boleto-" + ticketCode + ".pdf"
}

// Ensure Client implements API.
var _ API = (*Client)(nil)
