package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ticketportal/internal/domain"
	"ticketportal/internal/service"
)

// AdminHandler handles the administrator endpoints.
type AdminHandler struct {
	eventService *service.AdminEventService
	auditService *service.AuditService
}

// NewAdminHandler creates a new AdminHandler. auditService may be nil when
// auditing is disabled.
func NewAdminHandler(eventService *service.AdminEventService, auditService *service.AuditService) *AdminHandler {
	return &AdminHandler{
		eventService: eventService,
		auditService: auditService,
	}
}

// EventsResponse is the HTTP response for the admin event list.
type EventsResponse struct {
	Events []domain.EventSummary `json:"events"`
	Count  int                   `json:"count"`
}

// DeleteEventResponse is the HTTP response for a confirmed deletion.
type DeleteEventResponse struct {
	Notice service.Notice        `json:"notice"`
	Events []domain.EventSummary `json:"events,omitempty"`
}

// OutcomesResponse is the HTTP response for the payment outcome audit trail.
type OutcomesResponse struct {
	Outcomes []*domain.PaymentOutcomeRecord `json:"outcomes"`
	Count    int                            `json:"count"`
}

// ListEvents handles GET /v1/admin/events
func (h *AdminHandler) ListEvents(c *gin.Context) {
	events, err := h.eventService.List(c.Request.Context(), sessionOf(c), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, EventsResponse{Events: events, Count: len(events)})
}

// DeleteEvent handles DELETE /v1/admin/events/:id
func (h *AdminHandler) DeleteEvent(c *gin.Context) {
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))

	result, err := h.eventService.Delete(c.Request.Context(), sessionOf(c), service.DeleteEventRequest{
		EventID:   c.Param("id"),
		EventName: c.Query("name"),
		Confirmed: confirmed,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, DeleteEventResponse{
		Notice: result.Notice,
		Events: result.Events,
	})
}

// ListOutcomes handles GET /v1/admin/payments/outcomes
func (h *AdminHandler) ListOutcomes(c *gin.Context) {
	if h.auditService == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "payment outcome audit is disabled"})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	outcomes, err := h.auditService.ListOutcomes(c.Request.Context(), sessionOf(c), c.Query("external_reference"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if outcomes == nil {
		outcomes = []*domain.PaymentOutcomeRecord{}
	}

	c.JSON(http.StatusOK, OutcomesResponse{Outcomes: outcomes, Count: len(outcomes)})
}

// GetOutcome handles GET /v1/admin/payments/outcomes/:id
func (h *AdminHandler) GetOutcome(c *gin.Context) {
	if h.auditService == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "payment outcome audit is disabled"})
		return
	}

	outcome, err := h.auditService.GetOutcome(c.Request.Context(), sessionOf(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}
