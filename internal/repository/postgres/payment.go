// Package postgres stores payment-result audit records in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ticketportal/internal/domain"
	"ticketportal/internal/repository"
)

// Querier runs the outcome statements on either the pool or a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// PaymentOutcomeRepository is a PostgreSQL implementation of repository.PaymentOutcomeRepository.
type PaymentOutcomeRepository struct {
	q Querier
}

// NewPaymentOutcomeRepository creates a new PostgreSQL payment outcome repository.
func NewPaymentOutcomeRepository(db *sql.DB) *PaymentOutcomeRepository {
	return &PaymentOutcomeRepository{q: db}
}

// NewPaymentOutcomeRepositoryWithTx creates a payment outcome repository using a transaction.
func NewPaymentOutcomeRepositoryWithTx(tx *sql.Tx) *PaymentOutcomeRepository {
	return &PaymentOutcomeRepository{q: tx}
}

const paymentOutcomeColumns = `id, external_reference, payment_id, provider_status, page, outcome, reason, order_number, ticket_code, created_at`

// Create persists a new outcome record.
func (r *PaymentOutcomeRepository) Create(ctx context.Context, record *domain.PaymentOutcomeRecord) error {
	query := `
		INSERT INTO payment_outcomes (` + paymentOutcomeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.q.ExecContext(ctx, query,
		record.ID,
		record.ExternalReference,
		record.PaymentID,
		record.ProviderStatus,
		record.Page,
		record.Outcome,
		record.Reason,
		record.OrderNumber,
		record.TicketCode,
		record.CreatedAt,
	)

	return err
}

// GetByID retrieves an outcome record by ID.
func (r *PaymentOutcomeRepository) GetByID(ctx context.Context, id string) (*domain.PaymentOutcomeRecord, error) {
	query := `SELECT ` + paymentOutcomeColumns + ` FROM payment_outcomes WHERE id = $1`

	record, err := scanPaymentOutcome(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return record, nil
}

// ListByExternalReference returns every record for a reference, newest first.
func (r *PaymentOutcomeRepository) ListByExternalReference(ctx context.Context, externalReference string) ([]*domain.PaymentOutcomeRecord, error) {
	query := `
		SELECT ` + paymentOutcomeColumns + `
		FROM payment_outcomes
		WHERE external_reference = $1
		ORDER BY created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, externalReference)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPaymentOutcomes(rows)
}

// ListRecent returns the newest records, at most limit.
func (r *PaymentOutcomeRepository) ListRecent(ctx context.Context, limit int) ([]*domain.PaymentOutcomeRecord, error) {
	query := `
		SELECT ` + paymentOutcomeColumns + `
		FROM payment_outcomes
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPaymentOutcomes(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPaymentOutcome(row rowScanner) (*domain.PaymentOutcomeRecord, error) {
	var record domain.PaymentOutcomeRecord
	err := row.Scan(
		&record.ID,
		&record.ExternalReference,
		&record.PaymentID,
		&record.ProviderStatus,
		&record.Page,
		&record.Outcome,
		&record.Reason,
		&record.OrderNumber,
		&record.TicketCode,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func collectPaymentOutcomes(rows *sql.Rows) ([]*domain.PaymentOutcomeRecord, error) {
	records := make([]*domain.PaymentOutcomeRecord, 0)
	for rows.Next() {
		record, err := scanPaymentOutcome(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
