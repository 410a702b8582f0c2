package service

import (
	"context"
	"log"
	"time"

	"ticketportal/internal/backend"
	"ticketportal/internal/domain"
	"ticketportal/internal/redis"
)

// AdminEventService lists and deletes events for administrators.
type AdminEventService struct {
	api       backend.API
	locks     redis.LockStoreInterface
	catalog   redis.ArtistCacheInterface
	notifier  *NotificationService
	markerTTL time.Duration
}

// NewAdminEventService creates a new AdminEventService. locks and catalog may be nil.
func NewAdminEventService(api backend.API, locks redis.LockStoreInterface, catalog redis.ArtistCacheInterface, notifier *NotificationService, markerTTL time.Duration) *AdminEventService {
	return &AdminEventService{
		api:       api,
		locks:     locks,
		catalog:   catalog,
		notifier:  notifier,
		markerTTL: markerTTL,
	}
}

// DeleteEventRequest contains the parameters for deleting an event.
type DeleteEventRequest struct {
	EventID   string
	EventName string
	Confirmed bool
}

// DeleteEventResult is the outcome of a confirmed deletion.
type DeleteEventResult struct {
	Notice Notice
	Events []domain.EventSummary
}

// List returns events whose "<name> <venue>" text matches query.
func (s *AdminEventService) List(ctx context.Context, session domain.Session, query string) ([]domain.EventSummary, error) {
	if !session.Valid(time.Now()) {
		return nil, ErrUnauthenticated
	}

	events, err := s.api.ListEvents(ctx, session)
	if err != nil {
		return nil, err
	}
	return FilterEvents(events, query), nil
}

// Delete removes an event and, through the backend, its sessions, prices and
// tickets. Unconfirmed requests never reach the backend. The in-progress marker
// is released on every path.
func (s *AdminEventService) Delete(ctx context.Context, session domain.Session, req DeleteEventRequest) (*DeleteEventResult, error) {
	if !session.Valid(time.Now()) {
		return nil, ErrUnauthenticated
	}
	if req.EventID == "" {
		return nil, ErrInvalidEventID
	}
	if !req.Confirmed {
		return nil, ErrConfirmationRequired
	}

	if s.locks != nil {
		acquired, err := s.locks.AcquireEventDeletion(ctx, req.EventID, s.markerTTL)
		if err != nil {
			return nil, err
		}
		if !acquired {
			return nil, ErrDeletionInProgress
		}
		defer func() {
			if err := s.locks.ReleaseEventDeletion(context.WithoutCancel(ctx), req.EventID); err != nil {
				log.Printf("[ADMIN] failed to release deletion marker for event=%s: %v", req.EventID, err)
			}
		}()
	}

	if err := s.api.DeleteEvent(ctx, session, req.EventID); err != nil {
		s.notifier.EventDeleteFailed(ctx, err)
		return nil, err
	}

	// Artist event counts include the deleted event.
	if s.catalog != nil {
		if err := s.catalog.InvalidateArtists(ctx); err != nil {
			log.Printf("[CACHE] artist cache invalidation failed: %v", err)
		}
	}

	name := req.EventName
	if name == "" {
		name = req.EventID
	}
	result := &DeleteEventResult{Notice: s.notifier.EventDeleted(ctx, name)}

	events, err := s.api.ListEvents(ctx, session)
	if err != nil {
		log.Printf("[ADMIN] event list refetch failed after deleting event=%s: %v", req.EventID, err)
		return result, nil
	}
	result.Events = events
	return result, nil
}

// FilterEvents matches query against the event name followed by its venue name.
func FilterEvents(events []domain.EventSummary, query string) []domain.EventSummary {
	return FilterByText(events, query, func(e domain.EventSummary) []string {
		venueName := ""
		if e.Venue != nil {
			venueName = e.Venue.Name
		}
		return []string{e.Name + " " + venueName}
	})
}
