package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore holds the "deletion in progress" markers for admin actions.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireEventDeletion marks an event as being deleted.
// Returns true if the marker was set, false if another deletion holds it.
func (s *LockStore) AcquireEventDeletion(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, eventDeletingPrefix+eventID, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseEventDeletion clears the deletion marker for an event.
func (s *LockStore) ReleaseEventDeletion(ctx context.Context, eventID string) error {
	return s.client.Del(ctx, eventDeletingPrefix+eventID).Err()
}
