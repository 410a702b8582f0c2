package domain

import "time"

// PageKind is the payment-result page a record was produced on.
type PageKind string

const (
	PageSuccess  PageKind = "success"
	PagePending  PageKind = "pending"
	PageFailure  PageKind = "failure"
	PageArtifact PageKind = "artifact"
)

// OutcomeKind is the stored result of a resolution.
type OutcomeKind string

const (
	OutcomeResolved       OutcomeKind = "RESOLVED"
	OutcomeUnresolved     OutcomeKind = "UNRESOLVED"
	OutcomeArtifactFailed OutcomeKind = "ARTIFACT_FAILED"
)

// PaymentOutcomeRecord is one audited payment-result resolution.
type PaymentOutcomeRecord struct {
	ID                string      `json:"id"`
	ExternalReference string      `json:"external_reference,omitempty"`
	PaymentID         string      `json:"payment_id,omitempty"`
	ProviderStatus    string      `json:"provider_status,omitempty"`
	Page              PageKind    `json:"page"`
	Outcome           OutcomeKind `json:"outcome"`
	Reason            string      `json:"reason,omitempty"`
	OrderNumber       string      `json:"order_number,omitempty"`
	TicketCode        string      `json:"ticket_code,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
}
