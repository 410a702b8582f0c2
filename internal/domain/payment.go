package domain

import "net/url"

// Provider query parameter names on payment-result routes.
const (
	ParamPaymentID         = "payment_id"
	ParamExternalReference = "external_reference"
	ParamStatus            = "status"
	ParamStatusDetail      = "status_detail"
	ParamCollectionStatus  = "collection_status"
	ParamPaymentType       = "payment_type"
)

// PaymentOutcomeQuery is the set of provider-supplied redirect parameters.
// Every field is optional and untrusted; it is used for lookup and display only.
type PaymentOutcomeQuery struct {
	PaymentID         string
	ExternalReference string
	Status            string
	StatusDetail      string
	CollectionStatus  string
	PaymentType       string
}

// NewPaymentOutcomeQuery builds a query from URL values.
func NewPaymentOutcomeQuery(values url.Values) PaymentOutcomeQuery {
	return PaymentOutcomeQuery{
		PaymentID:         values.Get(ParamPaymentID),
		ExternalReference: values.Get(ParamExternalReference),
		Status:            values.Get(ParamStatus),
		StatusDetail:      values.Get(ParamStatusDetail),
		CollectionStatus:  values.Get(ParamCollectionStatus),
		PaymentType:       values.Get(ParamPaymentType),
	}
}

// HasReference reports whether an external reference was supplied.
func (q PaymentOutcomeQuery) HasReference() bool {
	return q.ExternalReference != ""
}

// DisplayStatus is the status shown next to the payment id.
func (q PaymentOutcomeQuery) DisplayStatus() string {
	switch {
	case q.CollectionStatus != "":
		return q.CollectionStatus
	case q.Status != "":
		return q.Status
	default:
		return "approved"
	}
}

// UnresolvedReason classifies why a verification did not produce an order.
type UnresolvedReason string

const (
	ReasonMissingReference   UnresolvedReason = "missing_reference"
	ReasonNotYetResolved     UnresolvedReason = "not_yet_resolved"
	ReasonVerificationFailed UnresolvedReason = "verification_failed"
	ReasonTransportError     UnresolvedReason = "transport_error"
)

// User-facing messages for each unresolved reason.
const (
	MessageMissingReference   = "no payment reference found"
	MessageNotYetResolved     = "payment is being processed; confirmation will arrive by email"
	MessageVerificationFailed = "could not verify payment; check email or contact support"
	MessageTransportError     = "error verifying payment"
)

// VerificationResult is either Resolved (Order set) or Unresolved (Reason and Message set).
type VerificationResult struct {
	Order   *OrderSummary
	Reason  UnresolvedReason
	Message string
}

// Resolved returns a result carrying the given order.
func Resolved(order *OrderSummary) VerificationResult {
	return VerificationResult{Order: order}
}

// Unresolved returns a result carrying an explanation.
func Unresolved(reason UnresolvedReason, message string) VerificationResult {
	return VerificationResult{Reason: reason, Message: message}
}

// IsResolved reports whether the result carries an order.
func (r VerificationResult) IsResolved() bool {
	return r.Order != nil
}
