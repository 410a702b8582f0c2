package tests

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ticketportal/internal/backend"
	"ticketportal/internal/domain"
	"ticketportal/internal/service"
)

// ──────────────────────────────────────────────
// 1. CREDENTIAL RECOVERY
// ──────────────────────────────────────────────

func TestForgotPassword_BackendNotFound_StillSucceeds(t *testing.T) {
	t.Parallel()

	api := NewMockBackendAPI()
	api.ForgotPasswordError = &backend.StatusError{StatusCode: 404, Message: "User not found"}
	svc := service.NewRecoveryService(api, nil, service.NewNotificationService())

	notice, err := svc.ForgotPassword(context.Background(), "  Nobody@Example.com ")
	if err != nil {
		t.Fatalf("expected success regardless of account existence, got: %v", err)
	}
	if notice.Type != service.NoticePasswordResetRequested {
		t.Errorf("unexpected notice: %+v", notice)
	}
	if api.ForgotPasswordCallCount != 1 {
		t.Errorf("expected 1 backend call, got %d", api.ForgotPasswordCallCount)
	}
}

func TestForgotPassword_Validation(t *testing.T) {
	t.Parallel()

	for _, email := range []string{"", "   ", "not-an-email", "a@"} {
		email := email
		t.Run(fmt.Sprintf("email=%q", email), func(t *testing.T) {
			t.Parallel()

			api := NewMockBackendAPI()
			svc := service.NewRecoveryService(api, nil, service.NewNotificationService())

			_, err := svc.ForgotPassword(context.Background(), email)
			if !errors.Is(err, service.ErrInvalidEmail) {
				t.Errorf("expected ErrInvalidEmail, got %v", err)
			}
			if api.ForgotPasswordCallCount != 0 {
				t.Errorf("expected no backend calls, got %d", api.ForgotPasswordCallCount)
			}
		})
	}
}

func TestForgotPassword_TransportError_IsReported(t *testing.T) {
	t.Parallel()

	api := NewMockBackendAPI()
	api.ForgotPasswordError = fmt.Errorf("%w: timeout", backend.ErrTransport)
	svc := service.NewRecoveryService(api, nil, service.NewNotificationService())

	_, err := svc.ForgotPassword(context.Background(), "user@example.com")
	if !errors.Is(err, backend.ErrTransport) {
		t.Errorf("expected ErrTransport, got %v", err)
	}
}

func TestForgotPassword_RateLimitedPerEmail(t *testing.T) {
	t.Parallel()

	api := NewMockBackendAPI()
	limiter := NewMockRateLimiter(2)
	svc := service.NewRecoveryService(api, limiter, service.NewNotificationService())

	for i := 0; i < 2; i++ {
		if _, err := svc.ForgotPassword(context.Background(), "User@Example.com"); err != nil {
			t.Fatalf("attempt %d: expected no error, got: %v", i+1, err)
		}
	}

	_, err := svc.ForgotPassword(context.Background(), "user@example.com")
	if !errors.Is(err, service.ErrTooManyRequests) {
		t.Errorf("expected ErrTooManyRequests, got %v", err)
	}
	if api.ForgotPasswordCallCount != 2 {
		t.Errorf("expected 2 backend calls, got %d", api.ForgotPasswordCallCount)
	}

	if _, err := svc.ForgotPassword(context.Background(), "other@example.com"); err != nil {
		t.Errorf("expected other address to be unaffected, got: %v", err)
	}
}

func TestForgotPassword_LimiterDown_FailsOpen(t *testing.T) {
	t.Parallel()

	api := NewMockBackendAPI()
	limiter := NewMockRateLimiter(1)
	limiter.AllowError = errors.New("redis unavailable")
	svc := service.NewRecoveryService(api, limiter, service.NewNotificationService())

	if _, err := svc.ForgotPassword(context.Background(), "user@example.com"); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
	if api.ForgotPasswordCallCount != 1 {
		t.Errorf("expected 1 backend call, got %d", api.ForgotPasswordCallCount)
	}
}

func TestResetPassword_ShortPassword_SendsNoRequest(t *testing.T) {
	t.Parallel()

	api := NewMockBackendAPI()
	svc := service.NewRecoveryService(api, nil, service.NewNotificationService())

	_, err := svc.ResetPassword(context.Background(), "reset-token", "1234567")
	if !errors.Is(err, service.ErrPasswordTooShort) {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}
	if api.ResetPasswordCallCount != 0 {
		t.Errorf("expected no backend calls, got %d", api.ResetPasswordCallCount)
	}
}

func TestResetPassword(t *testing.T) {
	t.Parallel()

	t.Run("valid request is forwarded", func(t *testing.T) {
		t.Parallel()

		api := NewMockBackendAPI()
		svc := service.NewRecoveryService(api, nil, service.NewNotificationService())

		notice, err := svc.ResetPassword(context.Background(), "reset-token", "12345678")
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if notice.Type != service.NoticePasswordResetDone {
			t.Errorf("unexpected notice: %+v", notice)
		}
		if api.LastResetPasswordRequest != [2]string{"reset-token", "12345678"} {
			t.Errorf("unexpected forwarded request: %v", api.LastResetPasswordRequest)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		api := NewMockBackendAPI()
		api.ResetPasswordError = &backend.StatusError{StatusCode: 400, Message: "Invalid or expired token"}
		svc := service.NewRecoveryService(api, nil, service.NewNotificationService())

		_, err := svc.ResetPassword(context.Background(), "old-token", "12345678")
		if !errors.Is(err, service.ErrInvalidResetToken) {
			t.Errorf("expected ErrInvalidResetToken, got %v", err)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()

		api := NewMockBackendAPI()
		svc := service.NewRecoveryService(api, nil, service.NewNotificationService())

		_, err := svc.ResetPassword(context.Background(), "", "12345678")
		if !errors.Is(err, service.ErrInvalidResetToken) {
			t.Errorf("expected ErrInvalidResetToken, got %v", err)
		}
		if api.ResetPasswordCallCount != 0 {
			t.Errorf("expected no backend calls, got %d", api.ResetPasswordCallCount)
		}
	})
}

func TestVerifyResetToken(t *testing.T) {
	t.Parallel()

	api := NewMockBackendAPI()
	api.ValidTokens["good"] = true
	svc := service.NewRecoveryService(api, nil, service.NewNotificationService())

	if valid, err := svc.VerifyResetToken(context.Background(), "good"); err != nil || !valid {
		t.Errorf("expected good token to be valid, got %v, %v", valid, err)
	}
	if valid, err := svc.VerifyResetToken(context.Background(), "stale"); err != nil || valid {
		t.Errorf("expected stale token to be invalid, got %v, %v", valid, err)
	}
	if _, err := svc.VerifyResetToken(context.Background(), ""); !errors.Is(err, service.ErrInvalidResetToken) {
		t.Errorf("expected ErrInvalidResetToken, got %v", err)
	}
	if api.VerifyTokenCallCount != 2 {
		t.Errorf("expected 2 backend calls, got %d", api.VerifyTokenCallCount)
	}
}

// ──────────────────────────────────────────────
// 2. FAVORITES
// ──────────────────────────────────────────────

func favoritesFixture() *MockBackendAPI {
	api := NewMockBackendAPI()
	api.Favorites = []domain.FavoriteEvent{
		{ID: "fav-1", EventID: "evt-1", EventName: "Concierto X", VenueName: "Foro Sol", VenueCity: "CDMX"},
		{ID: "fav-2", EventID: "evt-2", EventName: "Festival Y", VenueName: "Parque Fundidora", VenueCity: "Monterrey"},
		{ID: "fav-3", EventID: "evt-3", EventName: "Noche de Jazz", VenueName: "Teatro Degollado", VenueCity: "Guadalajara"},
	}
	return api
}

func TestFavorites_List_RequiresSession(t *testing.T) {
	t.Parallel()

	api := favoritesFixture()
	svc := service.NewFavoritesService(api, service.NewNotificationService())

	_, err := svc.List(context.Background(), domain.Session{}, "")
	if !errors.Is(err, service.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
	if api.ListFavoritesCallCount != 0 {
		t.Errorf("expected no backend calls, got %d", api.ListFavoritesCallCount)
	}
}

func TestFavorites_FilterIsIdempotent(t *testing.T) {
	t.Parallel()

	api := favoritesFixture()
	svc := service.NewFavoritesService(api, service.NewNotificationService())

	for _, query := range []string{"", "o", "MONTERREY", "foro", "jazz", "zzz"} {
		once, err := svc.List(context.Background(), ValidSession(), query)
		if err != nil {
			t.Fatalf("query %q: expected no error, got: %v", query, err)
		}

		twice := service.FilterFavorites(once, query)
		if len(twice) != len(once) {
			t.Errorf("query %q: expected %d favorites after refiltering, got %d", query, len(once), len(twice))
			continue
		}
		for i := range once {
			if once[i].ID != twice[i].ID {
				t.Errorf("query %q: element %d changed from %s to %s", query, i, once[i].ID, twice[i].ID)
			}
		}
	}
}

func TestFavorites_Remove(t *testing.T) {
	t.Parallel()

	api := favoritesFixture()
	svc := service.NewFavoritesService(api, service.NewNotificationService())

	notice, err := svc.Remove(context.Background(), ValidSession(), "evt-2")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if notice.Type != service.NoticeFavoriteRemoved {
		t.Errorf("unexpected notice: %+v", notice)
	}

	remaining, _ := svc.List(context.Background(), ValidSession(), "")
	if len(remaining) != 2 {
		t.Errorf("expected 2 remaining favorites, got %d", len(remaining))
	}

	if _, err := svc.Remove(context.Background(), ValidSession(), ""); !errors.Is(err, service.ErrInvalidEventID) {
		t.Errorf("expected ErrInvalidEventID, got %v", err)
	}
}

// ──────────────────────────────────────────────
// 3. ARTISTS
// ──────────────────────────────────────────────

func TestArtists_CacheAside(t *testing.T) {
	t.Parallel()

	bio := "Banda de rock alternativo"
	api := NewMockBackendAPI()
	api.Artists = []domain.Artist{
		{ID: "a-1", Name: "Los Rayos", ShortBio: &bio, Genres: []string{"rock"}},
		{ID: "a-2", Name: "DJ Luna", Genres: []string{"electronic", "house"}},
	}
	cache := NewMockArtistCache()
	svc := service.NewArtistService(api, cache)

	first, err := svc.ListActive(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	second, err := svc.ListActive(context.Background(), "HOUSE")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(first) != 2 {
		t.Errorf("expected 2 artists, got %d", len(first))
	}
	if len(second) != 1 || second[0].ID != "a-2" {
		t.Errorf("expected genre match on a-2, got %+v", second)
	}
	if api.ListArtistsCallCount != 1 {
		t.Errorf("expected second list to be served from cache, got %d backend calls", api.ListArtistsCallCount)
	}

	byBio, _ := svc.ListActive(context.Background(), "alternativo")
	if len(byBio) != 1 || byBio[0].ID != "a-1" {
		t.Errorf("expected bio match on a-1, got %+v", byBio)
	}
}

func TestArtists_CacheReadError_FallsBackToBackend(t *testing.T) {
	t.Parallel()

	api := NewMockBackendAPI()
	api.Artists = []domain.Artist{{ID: "a-1", Name: "Los Rayos"}}
	cache := NewMockArtistCache()
	cache.GetError = errors.New("redis unavailable")
	svc := service.NewArtistService(api, cache)

	artists, err := svc.ListActive(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(artists) != 1 {
		t.Errorf("expected 1 artist, got %d", len(artists))
	}
	if api.ListArtistsCallCount != 1 {
		t.Errorf("expected 1 backend call, got %d", api.ListArtistsCallCount)
	}
}
