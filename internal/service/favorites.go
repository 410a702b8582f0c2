package service

import (
	"context"
	"time"

	"ticketportal/internal/backend"
	"ticketportal/internal/domain"
)

// FavoritesService lists and edits the session user's favorite events.
type FavoritesService struct {
	api      backend.API
	notifier *NotificationService
}

// NewFavoritesService creates a new FavoritesService.
func NewFavoritesService(api backend.API, notifier *NotificationService) *FavoritesService {
	return &FavoritesService{api: api, notifier: notifier}
}

// List returns the favorites whose event name or venue matches query.
func (s *FavoritesService) List(ctx context.Context, session domain.Session, query string) ([]domain.FavoriteEvent, error) {
	if !session.Valid(time.Now()) {
		return nil, ErrUnauthenticated
	}

	favorites, err := s.api.ListFavorites(ctx, session)
	if err != nil {
		return nil, err
	}

	return FilterFavorites(favorites, query), nil
}

// Remove deletes one favorite.
func (s *FavoritesService) Remove(ctx context.Context, session domain.Session, eventID string) (Notice, error) {
	if !session.Valid(time.Now()) {
		return Notice{}, ErrUnauthenticated
	}
	if eventID == "" {
		return Notice{}, ErrInvalidEventID
	}

	if err := s.api.RemoveFavorite(ctx, session, eventID); err != nil {
		return Notice{}, err
	}

	return s.notifier.FavoriteRemoved(ctx), nil
}

// FilterFavorites matches query against event name, venue name and city.
func FilterFavorites(favorites []domain.FavoriteEvent, query string) []domain.FavoriteEvent {
	return FilterByText(favorites, query, func(f domain.FavoriteEvent) []string {
		return []string{f.EventName, f.VenueName, f.VenueCity}
	})
}
