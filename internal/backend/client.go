package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"

	"ticketportal/internal/domain"
)

const internalKeyHeader = "X-Internal-API-Key"

// Client is an HTTP implementation of API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a backend client. Outbound requests are recorded as New Relic
// external segments when the request context carries a transaction.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: newrelic.NewRoundTripper(http.DefaultTransport),
		},
	}
}

// NewClientWithHTTPClient creates a backend client using the given HTTP client.
func NewClientWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: httpClient,
	}
}

// VerifyPayment calls GET /api/payments/verify.
func (c *Client) VerifyPayment(ctx context.Context, externalReference, paymentID string) (*VerifyResponse, error) {
	q := url.Values{}
	q.Set("external_reference", externalReference)
	q.Set("payment_id", paymentID)

	var out VerifyResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/payments/verify?"+q.Encode(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TicketArtifact calls GET /api/tickets/<code>/pdf and returns the open body.
func (c *Client) TicketArtifact(ctx context.Context, ticketCode string) (*Artifact, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/tickets/"+url.PathEscape(ticketCode)+"/pdf", nil, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, statusError(resp)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}

	return &Artifact{
		Body:          resp.Body,
		ContentType:   contentType,
		ContentLength: resp.ContentLength,
		FileName:      ArtifactFileName(ticketCode),
	}, nil
}

// ListFavorites calls GET /api/users/me/favorites.
func (c *Client) ListFavorites(ctx context.Context, session domain.Session) ([]domain.FavoriteEvent, error) {
	var out struct {
		Favorites []domain.FavoriteEvent `json:"favorites"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/users/me/favorites", &session, nil, &out); err != nil {
		return nil, err
	}
	if out.Favorites == nil {
		out.Favorites = []domain.FavoriteEvent{}
	}
	return out.Favorites, nil
}

// RemoveFavorite calls DELETE /api/users/me/favorites/<eventId>.
func (c *Client) RemoveFavorite(ctx context.Context, session domain.Session, eventID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/users/me/favorites/"+url.PathEscape(eventID), &session, nil, nil)
}

// ListArtists calls GET /api/artists.
func (c *Client) ListArtists(ctx context.Context, activeOnly bool) ([]domain.Artist, error) {
	path := "/api/artists"
	if activeOnly {
		path += "?active=true"
	}

	var out struct {
		Artists []domain.Artist `json:"artists"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	if out.Artists == nil {
		out.Artists = []domain.Artist{}
	}
	return out.Artists, nil
}

// ForgotPassword calls POST /api/auth/forgot-password.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.doJSON(ctx, http.MethodPost, "/api/auth/forgot-password", nil, body, nil)
}

// VerifyResetToken calls GET /api/auth/verify-reset-token. An invalid or expired
// token is reported as false, not as an error.
func (c *Client) VerifyResetToken(ctx context.Context, token string) (bool, error) {
	var out struct {
		Valid bool `json:"valid"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/api/auth/verify-reset-token?token="+url.QueryEscape(token), nil, nil, &out)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusBadRequest {
			return false, nil
		}
		return false, err
	}
	return out.Valid, nil
}

// ResetPassword calls POST /api/auth/reset-password.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]string{"token": token, "password": password}
	return c.doJSON(ctx, http.MethodPost, "/api/auth/reset-password", nil, body, nil)
}

// ListEvents calls GET /api/events?all=true.
func (c *Client) ListEvents(ctx context.Context, session domain.Session) ([]domain.EventSummary, error) {
	var out []domain.EventSummary
	if err := c.doJSON(ctx, http.MethodGet, "/api/events?all=true", &session, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.EventSummary{}
	}
	return out, nil
}

// DeleteEvent calls DELETE /api/events/<id>.
func (c *Client) DeleteEvent(ctx context.Context, session domain.Session, eventID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/events/"+url.PathEscape(eventID), &session, nil, nil)
}

func (c *Client) newRequest(ctx context.Context, method, path string, session *domain.Session, body any) (*http.Request, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("backend base url is empty")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(internalKeyHeader, c.apiKey)
	}
	if session != nil && session.Token != "" {
		req.Header.Set("Authorization", session.AuthorizationHeader())
	}
	return req, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, session *domain.Session, body, out any) error {
	req, err := c.newRequest(ctx, method, path, session, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	// A body cut short by a timeout or reset is a transport failure, and so
	// is a 2xx body that is not the JSON the endpoint promises.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading %s response: %w", ErrTransport, path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: failed to decode %s response: %w", ErrTransport, path, err)
	}
	return nil
}

// statusError builds a StatusError, keeping the backend's message verbatim.
func statusError(resp *http.Response) error {
	se := &StatusError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(raw) == 0 {
		return se
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if body.Message != "" {
			se.Message = body.Message
		} else {
			se.Message = body.Error
		}
	}
	return se
}
