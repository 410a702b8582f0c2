package service

import "errors"

var (
	// ErrInvalidTicketCode is returned when a ticket code is empty.
	ErrInvalidTicketCode = errors.New("invalid ticket code")

	// ErrInvalidEventID is returned when an event ID is empty.
	ErrInvalidEventID = errors.New("invalid event id")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email")

	// ErrInvalidResetToken is returned when a recovery token is empty, invalid or expired.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")

	// ErrPasswordTooShort is returned when a new password has fewer than MinPasswordLength characters.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")

	// ErrUnauthenticated is returned when a call needs a session and none is valid.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden is returned when a verified session lacks the role an operation needs.
	ErrForbidden = errors.New("insufficient role")

	// ErrConfirmationRequired is returned when a destructive action was not confirmed.
	ErrConfirmationRequired = errors.New("confirmation required")

	// ErrDeletionInProgress is returned when another deletion of the same event is running.
	ErrDeletionInProgress = errors.New("deletion already in progress")

	// ErrTooManyRequests is returned when a caller exceeded a rate limit.
	ErrTooManyRequests = errors.New("too many requests")

	// ErrInvalidTransition is returned when a result page receives an event its state cannot accept.
	ErrInvalidTransition = errors.New("invalid result page transition")

	// ErrArtifactUnavailable is returned when a ticket document could not be fetched.
	ErrArtifactUnavailable = errors.New("ticket document unavailable")
)
