package tests

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"ticketportal/internal/backend"
	"ticketportal/internal/domain"
	"ticketportal/internal/redis"
	"ticketportal/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK BACKEND API
// ──────────────────────────────────────────────

// VerifyCall records the arguments of one VerifyPayment call.
type VerifyCall struct {
	ExternalReference string
	PaymentID         string
}

// MockBackendAPI is an in-memory implementation of backend.API.
type MockBackendAPI struct {
	mu sync.RWMutex

	// Canned responses
	VerifyResult *backend.VerifyResponse
	Artifacts    map[string][]byte
	Favorites    []domain.FavoriteEvent
	Artists      []domain.Artist
	Events       []domain.EventSummary
	ValidTokens  map[string]bool

	// Counters for verification
	VerifyCallCount          int32
	ArtifactCallCount        int32
	ListFavoritesCallCount   int32
	RemoveFavoriteCallCount  int32
	ListArtistsCallCount     int32
	ForgotPasswordCallCount  int32
	VerifyTokenCallCount     int32
	ResetPasswordCallCount   int32
	ListEventsCallCount      int32
	DeleteEventCallCount     int32
	LastVerifyCall           VerifyCall
	LastSession              domain.Session
	LastResetPasswordRequest [2]string

	// Error injection
	VerifyError         error
	ArtifactError       error
	ListFavoritesError  error
	RemoveFavoriteError error
	ListArtistsError    error
	ForgotPasswordError error
	VerifyTokenError    error
	ResetPasswordError  error
	ListEventsError     error
	DeleteEventError    error

	// DeleteEventHook runs inside DeleteEvent before it returns.
	DeleteEventHook func(eventID string)
}

// NewMockBackendAPI creates a new mock backend.
func NewMockBackendAPI() *MockBackendAPI {
	return &MockBackendAPI{
		Artifacts:   make(map[string][]byte),
		ValidTokens: make(map[string]bool),
	}
}

func (m *MockBackendAPI) VerifyPayment(ctx context.Context, externalReference, paymentID string) (*backend.VerifyResponse, error) {
	atomic.AddInt32(&m.VerifyCallCount, 1)
	m.mu.Lock()
	m.LastVerifyCall = VerifyCall{ExternalReference: externalReference, PaymentID: paymentID}
	m.mu.Unlock()

	if m.VerifyError != nil {
		return nil, m.VerifyError
	}
	if m.VerifyResult == nil {
		return &backend.VerifyResponse{}, nil
	}
	copy := *m.VerifyResult
	return &copy, nil
}

func (m *MockBackendAPI) TicketArtifact(ctx context.Context, ticketCode string) (*backend.Artifact, error) {
	atomic.AddInt32(&m.ArtifactCallCount, 1)
	if m.ArtifactError != nil {
		return nil, m.ArtifactError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	body, ok := m.Artifacts[ticketCode]
	if !ok {
		return nil, &backend.StatusError{StatusCode: 404, Message: "Ticket not found"}
	}
	return &backend.Artifact{
		Body:          io.NopCloser(strings.NewReader(string(body))),
		ContentType:   "application/pdf",
		ContentLength: int64(len(body)),
		FileName:      backend.ArtifactFileName(ticketCode),
	}, nil
}

func (m *MockBackendAPI) ListFavorites(ctx context.Context, session domain.Session) ([]domain.FavoriteEvent, error) {
	atomic.AddInt32(&m.ListFavoritesCallCount, 1)
	m.remember(session)
	if m.ListFavoritesError != nil {
		return nil, m.ListFavoritesError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.FavoriteEvent{}, m.Favorites...), nil
}

func (m *MockBackendAPI) RemoveFavorite(ctx context.Context, session domain.Session, eventID string) error {
	atomic.AddInt32(&m.RemoveFavoriteCallCount, 1)
	m.remember(session)
	if m.RemoveFavoriteError != nil {
		return m.RemoveFavoriteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.Favorites[:0]
	for _, f := range m.Favorites {
		if f.EventID != eventID {
			kept = append(kept, f)
		}
	}
	m.Favorites = kept
	return nil
}

func (m *MockBackendAPI) ListArtists(ctx context.Context, activeOnly bool) ([]domain.Artist, error) {
	atomic.AddInt32(&m.ListArtistsCallCount, 1)
	if m.ListArtistsError != nil {
		return nil, m.ListArtistsError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Artist{}, m.Artists...), nil
}

func (m *MockBackendAPI) ForgotPassword(ctx context.Context, email string) error {
	atomic.AddInt32(&m.ForgotPasswordCallCount, 1)
	return m.ForgotPasswordError
}

func (m *MockBackendAPI) VerifyResetToken(ctx context.Context, token string) (bool, error) {
	atomic.AddInt32(&m.VerifyTokenCallCount, 1)
	if m.VerifyTokenError != nil {
		return false, m.VerifyTokenError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ValidTokens[token], nil
}

func (m *MockBackendAPI) ResetPassword(ctx context.Context, token, password string) error {
	atomic.AddInt32(&m.ResetPasswordCallCount, 1)
	m.mu.Lock()
	m.LastResetPasswordRequest = [2]string{token, password}
	m.mu.Unlock()
	return m.ResetPasswordError
}

func (m *MockBackendAPI) ListEvents(ctx context.Context, session domain.Session) ([]domain.EventSummary, error) {
	atomic.AddInt32(&m.ListEventsCallCount, 1)
	m.remember(session)
	if m.ListEventsError != nil {
		return nil, m.ListEventsError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.EventSummary{}, m.Events...), nil
}

func (m *MockBackendAPI) DeleteEvent(ctx context.Context, session domain.Session, eventID string) error {
	atomic.AddInt32(&m.DeleteEventCallCount, 1)
	m.remember(session)
	if m.DeleteEventHook != nil {
		m.DeleteEventHook(eventID)
	}
	if m.DeleteEventError != nil {
		return m.DeleteEventError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.Events[:0]
	for _, e := range m.Events {
		if e.ID != eventID {
			kept = append(kept, e)
		}
	}
	m.Events = kept
	return nil
}

func (m *MockBackendAPI) remember(session domain.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastSession = session
}

// TotalCalls returns the number of backend calls of any kind.
func (m *MockBackendAPI) TotalCalls() int32 {
	return atomic.LoadInt32(&m.VerifyCallCount) +
		atomic.LoadInt32(&m.ArtifactCallCount) +
		atomic.LoadInt32(&m.ListFavoritesCallCount) +
		atomic.LoadInt32(&m.RemoveFavoriteCallCount) +
		atomic.LoadInt32(&m.ListArtistsCallCount) +
		atomic.LoadInt32(&m.ForgotPasswordCallCount) +
		atomic.LoadInt32(&m.VerifyTokenCallCount) +
		atomic.LoadInt32(&m.ResetPasswordCallCount) +
		atomic.LoadInt32(&m.ListEventsCallCount) +
		atomic.LoadInt32(&m.DeleteEventCallCount)
}

// ──────────────────────────────────────────────
// MOCK PAYMENT OUTCOME REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentOutcomeRepository is a mock implementation of PaymentOutcomeRepository.
type MockPaymentOutcomeRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.PaymentOutcomeRecord

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockPaymentOutcomeRepository creates a new mock outcome repository.
func NewMockPaymentOutcomeRepository() *MockPaymentOutcomeRepository {
	return &MockPaymentOutcomeRepository{
		records: make(map[string]*domain.PaymentOutcomeRecord),
	}
}

func (m *MockPaymentOutcomeRepository) Create(ctx context.Context, record *domain.PaymentOutcomeRecord) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *record
	m.records[record.ID] = &copy
	return nil
}

func (m *MockPaymentOutcomeRepository) GetByID(ctx context.Context, id string) (*domain.PaymentOutcomeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *record
	return &copy, nil
}

func (m *MockPaymentOutcomeRepository) ListByExternalReference(ctx context.Context, externalReference string) ([]*domain.PaymentOutcomeRecord, error) {
	return m.list(func(r *domain.PaymentOutcomeRecord) bool {
		return r.ExternalReference == externalReference
	}, 0), nil
}

func (m *MockPaymentOutcomeRepository) ListRecent(ctx context.Context, limit int) ([]*domain.PaymentOutcomeRecord, error) {
	return m.list(func(*domain.PaymentOutcomeRecord) bool { return true }, limit), nil
}

func (m *MockPaymentOutcomeRepository) list(keep func(*domain.PaymentOutcomeRecord) bool, limit int) []*domain.PaymentOutcomeRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*domain.PaymentOutcomeRecord, 0, len(m.records))
	for _, r := range m.records {
		if keep(r) {
			copy := *r
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// Records returns every stored record for test assertions.
func (m *MockPaymentOutcomeRepository) Records() []*domain.PaymentOutcomeRecord {
	return m.list(func(*domain.PaymentOutcomeRecord) bool { return true }, 0)
}

// ──────────────────────────────────────────────
// MOCK REDIS STORES
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// Counters for verification
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[string]bool)}
}

func (m *MockLockStore) AcquireEventDeletion(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[eventID] {
		return false, nil
	}
	m.locks[eventID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseEventDeletion(ctx context.Context, eventID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, eventID)
	return nil
}

// IsHeld reports whether the deletion marker for eventID is set.
func (m *MockLockStore) IsHeld(eventID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locks[eventID]
}

// MockArtistCache is a mock implementation of ArtistCacheInterface.
type MockArtistCache struct {
	mu      sync.Mutex
	entries map[bool][]domain.Artist

	// Counters for verification
	GetCallCount        int32
	SetCallCount        int32
	InvalidateCallCount int32

	// Error injection
	GetError error
}

// NewMockArtistCache creates a new mock artist cache.
func NewMockArtistCache() *MockArtistCache {
	return &MockArtistCache{entries: make(map[bool][]domain.Artist)}
}

func (m *MockArtistCache) GetArtists(ctx context.Context, activeOnly bool) ([]domain.Artist, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[activeOnly], nil
}

func (m *MockArtistCache) SetArtists(ctx context.Context, activeOnly bool, artists []domain.Artist) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[activeOnly] = append([]domain.Artist{}, artists...)
	return nil
}

func (m *MockArtistCache) InvalidateArtists(ctx context.Context) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[bool][]domain.Artist)
	return nil
}

// MockRateLimiter is a counting mock of RateLimiterInterface.
type MockRateLimiter struct {
	mu     sync.Mutex
	counts map[string]int
	Limit  int

	// Error injection
	AllowError error
}

// NewMockRateLimiter creates a limiter that allows limit calls per subject.
func NewMockRateLimiter(limit int) *MockRateLimiter {
	return &MockRateLimiter{counts: make(map[string]int), Limit: limit}
}

func (m *MockRateLimiter) Allow(ctx context.Context, subject string) (bool, error) {
	if m.AllowError != nil {
		return false, m.AllowError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[subject]++
	return m.counts[subject] <= m.Limit, nil
}

// ──────────────────────────────────────────────
// FIXTURES
// ──────────────────────────────────────────────

// ValidSession returns a session that expires in an hour.
func ValidSession() domain.Session {
	return domain.Session{
		Token:     "token-abc",
		Subject:   "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// Ensure mocks implement interfaces.
var (
	_ backend.API                         = (*MockBackendAPI)(nil)
	_ repository.PaymentOutcomeRepository = (*MockPaymentOutcomeRepository)(nil)
	_ redis.LockStoreInterface            = (*MockLockStore)(nil)
	_ redis.ArtistCacheInterface          = (*MockArtistCache)(nil)
	_ redis.RateLimiterInterface          = (*MockRateLimiter)(nil)
)
