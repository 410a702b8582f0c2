package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"ticketportal/internal/domain"
	"ticketportal/internal/repository"
)

const (
	defaultOutcomeListLimit = 50
	maxOutcomeListLimit     = 500
)

// OutcomeRecorder receives payment-result audit records.
type OutcomeRecorder interface {
	Record(ctx context.Context, record *domain.PaymentOutcomeRecord)
}

// AuditService stores payment-result outcomes for support reconciliation.
// Storage failures are logged and never change what the user sees.
// Reading the trail requires a verified session carrying adminRole.
type AuditService struct {
	repo      repository.PaymentOutcomeRepository
	adminRole string
}

// NewAuditService creates a new AuditService.
func NewAuditService(repo repository.PaymentOutcomeRepository, adminRole string) *AuditService {
	return &AuditService{repo: repo, adminRole: adminRole}
}

// Record persists record, filling ID and CreatedAt when unset.
func (s *AuditService) Record(ctx context.Context, record *domain.PaymentOutcomeRecord) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	if err := s.repo.Create(ctx, record); err != nil {
		log.Printf("[AUDIT] failed to store outcome page=%s reference=%s: %v", record.Page, record.ExternalReference, err)
	}
}

// ListOutcomes returns the audit trail for a reference, or the most recent
// records when externalReference is empty.
func (s *AuditService) ListOutcomes(ctx context.Context, session domain.Session, externalReference string, limit int) ([]*domain.PaymentOutcomeRecord, error) {
	if err := s.authorize(session); err != nil {
		return nil, err
	}

	if externalReference != "" {
		return s.repo.ListByExternalReference(ctx, externalReference)
	}

	if limit <= 0 {
		limit = defaultOutcomeListLimit
	}
	if limit > maxOutcomeListLimit {
		limit = maxOutcomeListLimit
	}
	return s.repo.ListRecent(ctx, limit)
}

// GetOutcome returns a single audit record.
func (s *AuditService) GetOutcome(ctx context.Context, session domain.Session, id string) (*domain.PaymentOutcomeRecord, error) {
	if err := s.authorize(session); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// authorize admits only verified admin sessions. The audit table is local
// data, so the backend never gets a chance to reject the token.
func (s *AuditService) authorize(session domain.Session) error {
	now := time.Now()
	if !session.Verified || !session.Valid(now) {
		return ErrUnauthenticated
	}
	if !session.HasRole(s.adminRole, now) {
		log.Printf("[AUDIT] denied outcome access subject=%s role=%s", session.Subject, session.Role)
		return ErrForbidden
	}
	return nil
}

// Ensure AuditService is usable as a recorder.
var _ OutcomeRecorder = (*AuditService)(nil)
