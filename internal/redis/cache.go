package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"ticketportal/internal/domain"
)

// CacheStore handles catalog caching in Redis.
type CacheStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client, ttl time.Duration) *CacheStore {
	return &CacheStore{client: client, ttl: ttl}
}

// Key prefixes
const (
	artistsCacheKey       = "cache:artists:active"
	artistsCacheAllKey    = "cache:artists:all"
	eventDeletingPrefix   = "lock:event:deleting:"
	forgotPasswordLimiter = "ratelimit:forgot_password"
)

func artistsKey(activeOnly bool) string {
	if activeOnly {
		return artistsCacheKey
	}
	return artistsCacheAllKey
}

// GetArtists retrieves the artist list from cache. A miss returns nil, nil.
func (s *CacheStore) GetArtists(ctx context.Context, activeOnly bool) ([]domain.Artist, error) {
	data, err := s.client.Get(ctx, artistsKey(activeOnly)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var artists []domain.Artist
	if err := json.Unmarshal(data, &artists); err != nil {
		return nil, err
	}
	return artists, nil
}

// SetArtists stores the artist list in cache.
func (s *CacheStore) SetArtists(ctx context.Context, activeOnly bool, artists []domain.Artist) error {
	data, err := json.Marshal(artists)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, artistsKey(activeOnly), data, s.ttl).Err()
}

// InvalidateArtists removes both cached artist lists.
func (s *CacheStore) InvalidateArtists(ctx context.Context) error {
	return s.client.Del(ctx, artistsCacheKey, artistsCacheAllKey).Err()
}
