package tests

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"ticketportal/internal/backend"
	"ticketportal/internal/domain"
	"ticketportal/internal/service"
)

func sampleOrder() *domain.OrderSummary {
	seat := "A-12"
	zone := "VIP"
	return &domain.OrderSummary{
		OrderNumber: "ORD-1",
		Total:       decimal.NewFromInt(500),
		Currency:    "MXN",
		Status:      domain.OrderStatusPaid,
		Event:       domain.OrderEvent{ID: "evt-1", Name: "Concierto X"},
		Session:     domain.OrderSession{StartsAt: time.Date(2026, 11, 20, 21, 0, 0, 0, time.UTC)},
		Venue:       &domain.OrderVenue{Name: "Foro Sol", City: "CDMX"},
		Tickets: []domain.OrderTicket{
			{Code: "TCK-1", SeatLabel: &seat, ZoneName: &zone},
		},
	}
}

func queryOf(raw string) domain.PaymentOutcomeQuery {
	values, err := url.ParseQuery(raw)
	if err != nil {
		panic(err)
	}
	return domain.NewPaymentOutcomeQuery(values)
}

// ──────────────────────────────────────────────
// 1. MISSING REFERENCE
// ──────────────────────────────────────────────

func TestResolve_MissingReference_NoNetworkCall(t *testing.T) {
	t.Parallel()

	queries := []string{
		"",
		"payment_id=999",
		"payment_id=999&status=approved&collection_status=approved",
		"external_reference=",
		"status_detail=accredited&payment_type=credit_card",
	}

	for _, raw := range queries {
		raw := raw
		t.Run(fmt.Sprintf("query=%q", raw), func(t *testing.T) {
			t.Parallel()

			api := NewMockBackendAPI()
			resolver := service.NewResolverService(api, nil)

			result := resolver.Resolve(context.Background(), queryOf(raw))

			if result.IsResolved() {
				t.Fatal("expected unresolved result")
			}
			if result.Reason != domain.ReasonMissingReference {
				t.Errorf("expected reason %s, got %s", domain.ReasonMissingReference, result.Reason)
			}
			if result.Message != domain.MessageMissingReference {
				t.Errorf("expected message %q, got %q", domain.MessageMissingReference, result.Message)
			}
			if calls := api.TotalCalls(); calls != 0 {
				t.Errorf("expected no backend calls, got %d", calls)
			}
		})
	}
}

// ──────────────────────────────────────────────
// 2. RESOLVED ORDERS
// ──────────────────────────────────────────────

func TestResolve_SuccessWithOrder_ReturnsOrderUnchanged(t *testing.T) {
	t.Parallel()

	order := sampleOrder()
	api := NewMockBackendAPI()
	api.VerifyResult = &backend.VerifyResponse{Success: true, Order: order}
	resolver := service.NewResolverService(api, nil)

	result := resolver.Resolve(context.Background(), queryOf("external_reference=ABC123&payment_id=999"))

	if !result.IsResolved() {
		t.Fatalf("expected resolved result, got %+v", result)
	}
	if result.Order != order {
		t.Error("expected the backend order to be passed through untouched")
	}
	if api.VerifyCallCount != 1 {
		t.Errorf("expected exactly 1 verify call, got %d", api.VerifyCallCount)
	}
	if api.LastVerifyCall.ExternalReference != "ABC123" || api.LastVerifyCall.PaymentID != "999" {
		t.Errorf("unexpected verify arguments: %+v", api.LastVerifyCall)
	}
}

func TestResolvePage_Scenario_ShowsOrderCard(t *testing.T) {
	t.Parallel()

	api := NewMockBackendAPI()
	api.VerifyResult = &backend.VerifyResponse{
		Success: true,
		Order: &domain.OrderSummary{
			OrderNumber: "ORD-1",
			Total:       decimal.NewFromInt(500),
			Currency:    "MXN",
			Tickets:     []domain.OrderTicket{{Code: "TCK-1"}},
		},
	}
	repo := NewMockPaymentOutcomeRepository()
	resolver := service.NewResolverService(api, service.NewAuditService(repo, "ADMIN"))

	page, err := resolver.ResolvePage(context.Background(), queryOf("external_reference=ABC123&payment_id=999"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if page.State != service.StateResolved {
		t.Fatalf("expected state %s, got %s", service.StateResolved, page.State)
	}
	order := page.Result.Order
	if order.OrderNumber != "ORD-1" {
		t.Errorf("expected order ORD-1, got %s", order.OrderNumber)
	}
	if got := order.FormattedTotal(); got != "$500 MXN" {
		t.Errorf("expected total $500 MXN, got %s", got)
	}
	if len(order.Tickets) != 1 || order.Tickets[0].Code != "TCK-1" {
		t.Errorf("expected one ticket TCK-1, got %+v", order.Tickets)
	}
	if order.Tickets[0].Zone() != "General" {
		t.Errorf("expected default zone General, got %s", order.Tickets[0].Zone())
	}

	records := repo.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(records))
	}
	if records[0].Outcome != domain.OutcomeResolved || records[0].OrderNumber != "ORD-1" {
		t.Errorf("unexpected audit record: %+v", records[0])
	}
}

// ──────────────────────────────────────────────
// 3. SOFT AND HARD FAILURES
// ──────────────────────────────────────────────

func TestResolve_NoOrderYet_IsProcessingNotFailure(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		resp *backend.VerifyResponse
	}{
		{name: "success false", resp: &backend.VerifyResponse{Success: false}},
		{name: "success true without order", resp: &backend.VerifyResponse{Success: true}},
		{name: "pending flag", resp: &backend.VerifyResponse{Success: false, Pending: true}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			api := NewMockBackendAPI()
			api.VerifyResult = tc.resp
			resolver := service.NewResolverService(api, nil)

			result := resolver.Resolve(context.Background(), queryOf("external_reference=ABC123"))

			if result.IsResolved() {
				t.Fatal("expected unresolved result")
			}
			if result.Reason != domain.ReasonNotYetResolved {
				t.Errorf("expected reason %s, got %s", domain.ReasonNotYetResolved, result.Reason)
			}
			if result.Message != domain.MessageNotYetResolved {
				t.Errorf("expected processing message, got %q", result.Message)
			}
		})
	}
}

func TestResolvePage_Scenario_ProcessingHasNoOrderCard(t *testing.T) {
	t.Parallel()

	api := NewMockBackendAPI()
	api.VerifyResult = &backend.VerifyResponse{Success: false}
	resolver := service.NewResolverService(api, nil)

	page, err := resolver.ResolvePage(context.Background(), queryOf("external_reference=ABC123&payment_id=999"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if page.State != service.StateUnresolved {
		t.Errorf("expected state %s, got %s", service.StateUnresolved, page.State)
	}
	if page.Result.Order != nil {
		t.Error("expected no order card")
	}
	if page.Result.Message != domain.MessageNotYetResolved {
		t.Errorf("expected processing message, got %q", page.Result.Message)
	}
}

func TestResolve_BackendErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		err         error
		wantReason  domain.UnresolvedReason
		wantMessage string
	}{
		{
			name:        "404",
			err:         &backend.StatusError{StatusCode: 404, Message: "Order not found"},
			wantReason:  domain.ReasonVerificationFailed,
			wantMessage: domain.MessageVerificationFailed,
		},
		{
			name:        "500",
			err:         &backend.StatusError{StatusCode: 500},
			wantReason:  domain.ReasonVerificationFailed,
			wantMessage: domain.MessageVerificationFailed,
		},
		{
			name:        "network",
			err:         fmt.Errorf("%w: connection refused", backend.ErrTransport),
			wantReason:  domain.ReasonTransportError,
			wantMessage: domain.MessageTransportError,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			api := NewMockBackendAPI()
			api.VerifyError = tc.err
			resolver := service.NewResolverService(api, nil)

			result := resolver.Resolve(context.Background(), queryOf("external_reference=ABC123"))

			if result.Reason != tc.wantReason {
				t.Errorf("expected reason %s, got %s", tc.wantReason, result.Reason)
			}
			if result.Message != tc.wantMessage {
				t.Errorf("expected message %q, got %q", tc.wantMessage, result.Message)
			}
			if api.VerifyCallCount != 1 {
				t.Errorf("expected a single attempt without retry, got %d", api.VerifyCallCount)
			}
		})
	}
}

func TestResolve_BodyCutShortByTimeout_IsTransportError(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"success": true, "ord`)
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		select {
		case <-release:
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()
	defer close(release)

	httpClient := srv.Client()
	httpClient.Timeout = 100 * time.Millisecond
	resolver := service.NewResolverService(backend.NewClientWithHTTPClient(srv.URL, httpClient), nil)

	result := resolver.Resolve(context.Background(), queryOf("external_reference=ABC123&payment_id=999"))

	if result.Reason != domain.ReasonTransportError {
		t.Errorf("expected reason %s, got %s", domain.ReasonTransportError, result.Reason)
	}
	if result.Message != domain.MessageTransportError {
		t.Errorf("expected message %q, got %q", domain.MessageTransportError, result.Message)
	}
}

func TestResolvePage_AuditFailure_DoesNotChangeOutcome(t *testing.T) {
	t.Parallel()

	api := NewMockBackendAPI()
	api.VerifyResult = &backend.VerifyResponse{Success: true, Order: sampleOrder()}
	repo := NewMockPaymentOutcomeRepository()
	repo.CreateError = errors.New("database down")
	resolver := service.NewResolverService(api, service.NewAuditService(repo, "ADMIN"))

	page, err := resolver.ResolvePage(context.Background(), queryOf("external_reference=ABC123"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if page.State != service.StateResolved {
		t.Errorf("expected state %s, got %s", service.StateResolved, page.State)
	}
	if repo.CreateCallCount != 1 {
		t.Errorf("expected 1 audit attempt, got %d", repo.CreateCallCount)
	}
}

// ──────────────────────────────────────────────
// 4. TICKET ARTIFACTS
// ──────────────────────────────────────────────

func TestFetchTicketArtifact(t *testing.T) {
	t.Parallel()

	t.Run("empty code sends no request", func(t *testing.T) {
		t.Parallel()

		api := NewMockBackendAPI()
		resolver := service.NewResolverService(api, nil)

		_, err := resolver.FetchTicketArtifact(context.Background(), "")
		if !errors.Is(err, service.ErrInvalidTicketCode) {
			t.Errorf("expected ErrInvalidTicketCode, got %v", err)
		}
		if api.ArtifactCallCount != 0 {
			t.Errorf("expected no backend calls, got %d", api.ArtifactCallCount)
		}
	})

	t.Run("document is streamed with local file name", func(t *testing.T) {
		t.Parallel()

		api := NewMockBackendAPI()
		api.Artifacts["TCK-1"] = []byte("%PDF-1.4")
		resolver := service.NewResolverService(api, nil)

		artifact, err := resolver.FetchTicketArtifact(context.Background(), "TCK-1")
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		defer artifact.Body.Close()

		if artifact.FileName != "boleto-TCK-1.pdf" {
			t.Errorf("expected file name boleto-TCK-1.pdf, got %s", artifact.FileName)
		}
		body, _ := io.ReadAll(artifact.Body)
		if string(body) != "%PDF-1.4" {
			t.Errorf("unexpected body %q", body)
		}
	})

	t.Run("failure is recorded and surfaced", func(t *testing.T) {
		t.Parallel()

		api := NewMockBackendAPI()
		repo := NewMockPaymentOutcomeRepository()
		resolver := service.NewResolverService(api, service.NewAuditService(repo, "ADMIN"))

		_, err := resolver.FetchTicketArtifact(context.Background(), "MISSING")
		if !errors.Is(err, service.ErrArtifactUnavailable) {
			t.Errorf("expected ErrArtifactUnavailable, got %v", err)
		}
		if !backend.IsNotFound(err) {
			t.Errorf("expected the backend 404 to stay inspectable, got %v", err)
		}

		records := repo.Records()
		if len(records) != 1 || records[0].Outcome != domain.OutcomeArtifactFailed || records[0].TicketCode != "MISSING" {
			t.Errorf("unexpected audit records: %+v", records)
		}
	})
}

// ──────────────────────────────────────────────
// 5. PENDING AND FAILURE VISITS
// ──────────────────────────────────────────────

func TestRecordVisit_MakesNoBackendCall(t *testing.T) {
	t.Parallel()

	api := NewMockBackendAPI()
	repo := NewMockPaymentOutcomeRepository()
	resolver := service.NewResolverService(api, service.NewAuditService(repo, "ADMIN"))

	resolver.RecordVisit(context.Background(), queryOf("external_reference=ABC123&status=rejected&status_detail=cc_rejected_insufficient_amount"), domain.PageFailure)

	if calls := api.TotalCalls(); calls != 0 {
		t.Errorf("expected no backend calls, got %d", calls)
	}
	records := repo.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(records))
	}
	if records[0].Page != domain.PageFailure || records[0].Reason != "cc_rejected_insufficient_amount" || records[0].ProviderStatus != "rejected" {
		t.Errorf("unexpected audit record: %+v", records[0])
	}
}
