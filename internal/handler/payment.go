package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"ticketportal/internal/domain"
	"ticketportal/internal/service"
)

const resolvedMessage = "Your purchase has been confirmed. We sent you an email with the details."

// PaymentHandler serves the payment-result pages and ticket documents.
type PaymentHandler struct {
	resolver *service.ResolverService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(resolver *service.ResolverService) *PaymentHandler {
	return &PaymentHandler{resolver: resolver}
}

// PaymentFootnote is the provider reference shown under the result.
type PaymentFootnote struct {
	PaymentID         string `json:"payment_id,omitempty"`
	ExternalReference string `json:"external_reference,omitempty"`
	Status            string `json:"status,omitempty"`
}

// TicketView is one ticket row of a resolved order.
type TicketView struct {
	Code        string  `json:"code"`
	Zone        string  `json:"zone"`
	SeatLabel   *string `json:"seat_label,omitempty"`
	DownloadURL string  `json:"download_url"`
}

// VenueView is the venue line of a resolved order.
type VenueView struct {
	Name string `json:"name"`
	City string `json:"city"`
}

// OrderView is the order card of the success page. Total is written as a
// bare JSON number, the same type the backend sent.
type OrderView struct {
	OrderNumber    string       `json:"order_number"`
	EventID        string       `json:"event_id"`
	EventName      string       `json:"event_name"`
	StartsAt       *time.Time   `json:"starts_at,omitempty"`
	Venue          *VenueView   `json:"venue,omitempty"`
	Status         string       `json:"status"`
	Total          json.Number  `json:"total"`
	Currency       string       `json:"currency"`
	FormattedTotal string       `json:"formatted_total"`
	Tickets        []TicketView `json:"tickets"`
}

// SuccessPageResponse is the success page in its final state.
type SuccessPageResponse struct {
	State   string           `json:"state"`
	Message string           `json:"message"`
	Reason  string           `json:"reason,omitempty"`
	Order   *OrderView       `json:"order,omitempty"`
	Payment *PaymentFootnote `json:"payment,omitempty"`
	Links   []Link           `json:"links"`
}

// PendingPageResponse is the pending page.
type PendingPageResponse struct {
	Instructions service.PendingInstructions `json:"instructions"`
	Notice       string                      `json:"notice"`
	Payment      *PaymentFootnote            `json:"payment,omitempty"`
	Links        []Link                      `json:"links"`
}

// FailurePageResponse is the failure page.
type FailurePageResponse struct {
	Message string           `json:"message"`
	Tips    []string         `json:"tips"`
	Payment *PaymentFootnote `json:"payment,omitempty"`
	Links   []Link           `json:"links"`
}

// Success handles GET /v1/payments/result/success
func (h *PaymentHandler) Success(c *gin.Context) {
	query := domain.NewPaymentOutcomeQuery(c.Request.URL.Query())

	page, err := h.resolver.ResolvePage(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := SuccessPageResponse{
		State: string(page.State),
		Links: []Link{linkOrders, linkEvents},
	}
	if page.Result.IsResolved() {
		resp.Message = resolvedMessage
		resp.Order = newOrderView(page.Result.Order)
	} else {
		resp.Message = page.Result.Message
		resp.Reason = string(page.Result.Reason)
	}
	if query.PaymentID != "" {
		resp.Payment = &PaymentFootnote{
			PaymentID: query.PaymentID,
			Status:    query.DisplayStatus(),
		}
	}

	respondJSON(c, http.StatusOK, resp)
}

// Pending handles GET /v1/payments/result/pending
func (h *PaymentHandler) Pending(c *gin.Context) {
	query := domain.NewPaymentOutcomeQuery(c.Request.URL.Query())
	h.resolver.RecordVisit(c.Request.Context(), query, domain.PagePending)

	resp := PendingPageResponse{
		Instructions: service.PendingInstructionsFor(query.PaymentType),
		Notice:       service.PendingReservationNotice,
		Links:        []Link{linkOrders, linkEvents},
	}
	if query.ExternalReference != "" {
		resp.Payment = &PaymentFootnote{
			ExternalReference: query.ExternalReference,
			PaymentID:         query.PaymentID,
		}
	}

	respondJSON(c, http.StatusOK, resp)
}

// Failure handles GET /v1/payments/result/failure
func (h *PaymentHandler) Failure(c *gin.Context) {
	query := domain.NewPaymentOutcomeQuery(c.Request.URL.Query())
	h.resolver.RecordVisit(c.Request.Context(), query, domain.PageFailure)

	resp := FailurePageResponse{
		Message: service.FailureMessageFor(query.StatusDetail),
		Tips:    service.FailureTips,
		Links: []Link{
			{Label: "Try again", Href: "/events"},
			linkEvents,
		},
	}
	if query.PaymentID != "" || query.ExternalReference != "" {
		resp.Payment = &PaymentFootnote{
			PaymentID:         query.PaymentID,
			ExternalReference: query.ExternalReference,
			Status:            query.Status,
		}
	}

	respondJSON(c, http.StatusOK, resp)
}

// TicketDocument handles GET /v1/tickets/:code/pdf
func (h *PaymentHandler) TicketDocument(c *gin.Context) {
	artifact, err := h.resolver.FetchTicketArtifact(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer artifact.Body.Close()

	c.DataFromReader(http.StatusOK, artifact.ContentLength, artifact.ContentType, artifact.Body, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", artifact.FileName),
	})
}

func newOrderView(order *domain.OrderSummary) *OrderView {
	view := &OrderView{
		OrderNumber:    order.OrderNumber,
		EventID:        order.Event.ID,
		EventName:      order.Event.Name,
		Status:         string(order.Status),
		Total:          json.Number(order.Total.String()),
		Currency:       order.Currency,
		FormattedTotal: order.FormattedTotal(),
		Tickets:        make([]TicketView, 0, len(order.Tickets)),
	}
	if startsAt := order.Session.StartsAt; !startsAt.IsZero() {
		view.StartsAt = &startsAt
	}
	if order.Venue != nil {
		view.Venue = &VenueView{Name: order.Venue.Name, City: order.Venue.City}
	}
	for _, t := range order.Tickets {
		view.Tickets = append(view.Tickets, TicketView{
			Code:        t.Code,
			Zone:        t.Zone(),
			SeatLabel:   t.SeatLabel,
			DownloadURL: "/v1/tickets/" + url.PathEscape(t.Code) + "/pdf",
		})
	}
	return view
}
