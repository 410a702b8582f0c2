package redis

import (
	"context"
	"time"

	"ticketportal/internal/domain"
)

// ArtistCacheInterface defines the interface for artist list caching.
type ArtistCacheInterface interface {
	GetArtists(ctx context.Context, activeOnly bool) ([]domain.Artist, error)
	SetArtists(ctx context.Context, activeOnly bool, artists []domain.Artist) error
	InvalidateArtists(ctx context.Context) error
}

// LockStoreInterface defines the interface for deletion markers.
type LockStoreInterface interface {
	AcquireEventDeletion(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
	ReleaseEventDeletion(ctx context.Context, eventID string) error
}

// RateLimiterInterface defines the interface for per-subject rate limiting.
type RateLimiterInterface interface {
	Allow(ctx context.Context, subject string) (bool, error)
}

// Ensure concrete types implement interfaces.
var (
	_ ArtistCacheInterface = (*CacheStore)(nil)
	_ LockStoreInterface   = (*LockStore)(nil)
	_ RateLimiterInterface = (*RateLimiter)(nil)
)
