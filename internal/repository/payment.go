package repository

import (
	"context"

	"ticketportal/internal/domain"
)

// PaymentOutcomeRepository defines the persistence operations for payment-result audit records.
type PaymentOutcomeRepository interface {
	// Create persists a new outcome record.
	Create(ctx context.Context, record *domain.PaymentOutcomeRecord) error

	// GetByID retrieves an outcome record by ID.
	GetByID(ctx context.Context, id string) (*domain.PaymentOutcomeRecord, error)

	// ListByExternalReference returns every record for a reference, newest first.
	ListByExternalReference(ctx context.Context, externalReference string) ([]*domain.PaymentOutcomeRecord, error)

	// ListRecent returns the newest records, at most limit.
	ListRecent(ctx context.Context, limit int) ([]*domain.PaymentOutcomeRecord, error)
}
