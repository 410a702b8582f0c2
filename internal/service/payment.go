package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"ticketportal/internal/backend"
	"ticketportal/internal/domain"
)

// ResolverService turns payment-provider redirects into page outcomes.
type ResolverService struct {
	api      backend.API
	recorder OutcomeRecorder
}

// NewResolverService creates a new ResolverService. recorder may be nil.
func NewResolverService(api backend.API, recorder OutcomeRecorder) *ResolverService {
	return &ResolverService{
		api:      api,
		recorder: recorder,
	}
}

// Resolve verifies a completed checkout against its backend order.
// It issues at most one verification request and never returns an error:
// every failure is folded into an Unresolved result.
func (s *ResolverService) Resolve(ctx context.Context, query domain.PaymentOutcomeQuery) domain.VerificationResult {
	if !query.HasReference() {
		return domain.Unresolved(domain.ReasonMissingReference, domain.MessageMissingReference)
	}

	resp, err := s.api.VerifyPayment(ctx, query.ExternalReference, query.PaymentID)
	if err != nil {
		if errors.Is(err, backend.ErrTransport) {
			log.Printf("[RESOLVER] transport error verifying reference=%s: %v", query.ExternalReference, err)
			return domain.Unresolved(domain.ReasonTransportError, domain.MessageTransportError)
		}
		log.Printf("[RESOLVER] verification failed for reference=%s: %v", query.ExternalReference, err)
		return domain.Unresolved(domain.ReasonVerificationFailed, domain.MessageVerificationFailed)
	}

	if resp.Success && resp.Order != nil {
		return domain.Resolved(resp.Order)
	}

	// The webhook may not have materialized the order yet.
	return domain.Unresolved(domain.ReasonNotYetResolved, domain.MessageNotYetResolved)
}

// ResolvePage runs one success-page visit through the page state machine and
// records the outcome.
func (s *ResolverService) ResolvePage(ctx context.Context, query domain.PaymentOutcomeQuery) (ResultPage, error) {
	page, err := Transition(NewResultPage(), StartEvent())
	if err != nil {
		return page, err
	}

	result := s.Resolve(ctx, query)

	page, err = Transition(page, CompleteEvent(result))
	if err != nil {
		return page, err
	}

	s.record(ctx, outcomeRecord(query, domain.PageSuccess, result))
	return page, nil
}

// RecordVisit audits a pending or failure page visit. Those pages make no
// backend call; the record keeps the provider parameters for support lookups.
func (s *ResolverService) RecordVisit(ctx context.Context, query domain.PaymentOutcomeQuery, pageKind domain.PageKind) {
	s.record(ctx, &domain.PaymentOutcomeRecord{
		ExternalReference: query.ExternalReference,
		PaymentID:         query.PaymentID,
		ProviderStatus:    providerStatus(query),
		Page:              pageKind,
		Outcome:           domain.OutcomeUnresolved,
		Reason:            query.StatusDetail,
	})
}

// FetchTicketArtifact opens the printable document for a ticket of a resolved order.
func (s *ResolverService) FetchTicketArtifact(ctx context.Context, ticketCode string) (*backend.Artifact, error) {
	if ticketCode == "" {
		return nil, ErrInvalidTicketCode
	}

	artifact, err := s.api.TicketArtifact(ctx, ticketCode)
	if err != nil {
		log.Printf("[ARTIFACT] failed to fetch document for ticket=%s: %v", ticketCode, err)
		s.record(ctx, &domain.PaymentOutcomeRecord{
			Page:       domain.PageArtifact,
			Outcome:    domain.OutcomeArtifactFailed,
			Reason:     err.Error(),
			TicketCode: ticketCode,
		})
		return nil, fmt.Errorf("%w: %w", ErrArtifactUnavailable, err)
	}

	return artifact, nil
}

func (s *ResolverService) record(ctx context.Context, record *domain.PaymentOutcomeRecord) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(ctx, record)
}

func outcomeRecord(query domain.PaymentOutcomeQuery, pageKind domain.PageKind, result domain.VerificationResult) *domain.PaymentOutcomeRecord {
	record := &domain.PaymentOutcomeRecord{
		ExternalReference: query.ExternalReference,
		PaymentID:         query.PaymentID,
		ProviderStatus:    providerStatus(query),
		Page:              pageKind,
	}

	if result.IsResolved() {
		record.Outcome = domain.OutcomeResolved
		record.OrderNumber = result.Order.OrderNumber
	} else {
		record.Outcome = domain.OutcomeUnresolved
		record.Reason = string(result.Reason)
	}
	return record
}

func providerStatus(query domain.PaymentOutcomeQuery) string {
	if query.CollectionStatus != "" {
		return query.CollectionStatus
	}
	return query.Status
}
