package service

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"ticketportal/internal/backend"
	"ticketportal/internal/redis"
)

// MinPasswordLength is the shortest password the backend accepts.
const MinPasswordLength = 8

// RecoveryService runs the credential-recovery flow.
type RecoveryService struct {
	api      backend.API
	limiter  redis.RateLimiterInterface
	notifier *NotificationService
}

// NewRecoveryService creates a new RecoveryService. limiter may be nil.
func NewRecoveryService(api backend.API, limiter redis.RateLimiterInterface, notifier *NotificationService) *RecoveryService {
	return &RecoveryService{
		api:      api,
		limiter:  limiter,
		notifier: notifier,
	}
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ForgotPassword requests a recovery email. The result does not depend on
// whether the address has an account: backend HTTP errors are logged and the
// caller still gets the success notice.
func (s *RecoveryService) ForgotPassword(ctx context.Context, email string) (Notice, error) {
	email = NormalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return Notice{}, ErrInvalidEmail
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, email)
		if err != nil {
			log.Printf("[RECOVERY] rate limiter unavailable: %v", err)
		} else if !allowed {
			return Notice{}, ErrTooManyRequests
		}
	}

	if err := s.api.ForgotPassword(ctx, email); err != nil {
		if errors.Is(err, backend.ErrTransport) {
			return Notice{}, err
		}
		log.Printf("[RECOVERY] backend rejected forgot-password: %v", err)
	}

	return s.notifier.PasswordResetRequested(ctx), nil
}

// VerifyResetToken reports whether token can still be used.
func (s *RecoveryService) VerifyResetToken(ctx context.Context, token string) (bool, error) {
	if strings.TrimSpace(token) == "" {
		return false, ErrInvalidResetToken
	}
	return s.api.VerifyResetToken(ctx, token)
}

// ResetPassword sets a new password. Short passwords are rejected locally.
func (s *RecoveryService) ResetPassword(ctx context.Context, token, password string) (Notice, error) {
	if strings.TrimSpace(token) == "" {
		return Notice{}, ErrInvalidResetToken
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return Notice{}, ErrPasswordTooShort
	}

	if err := s.api.ResetPassword(ctx, token, password); err != nil {
		var se *backend.StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusBadRequest {
			return Notice{}, ErrInvalidResetToken
		}
		return Notice{}, err
	}

	return s.notifier.PasswordResetDone(ctx), nil
}
