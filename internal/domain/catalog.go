package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FavoriteEvent is one entry of a user's favorites list.
type FavoriteEvent struct {
	ID              string          `json:"id"`
	EventID         string          `json:"eventId"`
	EventName       string          `json:"eventName"`
	EventImage      *string         `json:"eventImage"`
	NextSessionDate *time.Time      `json:"nextSessionDate"`
	VenueName       string          `json:"venueName"`
	VenueCity       string          `json:"venueCity"`
	MinPrice        decimal.Decimal `json:"minPrice"`
	Status          string          `json:"status"`
	FavoritedAt     *time.Time      `json:"favoritedAt,omitempty"`
}

// Artist is a public artist profile.
type Artist struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	ShortBio       *string  `json:"shortBio,omitempty"`
	ProfileImage   *string  `json:"profileImage,omitempty"`
	CoverImage     *string  `json:"coverImage,omitempty"`
	Genres         []string `json:"genres,omitempty"`
	EventsCount    int      `json:"eventsCount,omitempty"`
	PlaylistsCount int      `json:"playlistsCount,omitempty"`
}

// EventVenue is the venue reference embedded in an event listing.
type EventVenue struct {
	Name string `json:"name"`
	City string `json:"city"`
}

// EventSummary is an event as shown in the admin listing.
type EventSummary struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Slug   string      `json:"slug"`
	Status string      `json:"status"`
	Venue  *EventVenue `json:"venue,omitempty"`
}
