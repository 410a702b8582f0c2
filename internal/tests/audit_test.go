package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"ticketportal/internal/domain"
	"ticketportal/internal/service"
)

// ──────────────────────────────────────────────
// AUDIT TRAIL ACCESS
// ──────────────────────────────────────────────

func TestAuditService_OutcomeAccessNeedsVerifiedAdmin(t *testing.T) {
	t.Parallel()

	repo := NewMockPaymentOutcomeRepository()
	audit := service.NewAuditService(repo, "ADMIN")
	audit.Record(context.Background(), &domain.PaymentOutcomeRecord{
		ExternalReference: "REF-1",
		PaymentID:         "555",
		Page:              domain.PageSuccess,
		Outcome:           domain.OutcomeUnresolved,
	})
	id := repo.Records()[0].ID
	future := time.Now().Add(time.Hour)

	testCases := []struct {
		name    string
		session domain.Session
		wantErr error
	}{
		{
			name:    "verified admin",
			session: domain.Session{Token: "t", Subject: "admin-1", Role: "ADMIN", ExpiresAt: future, Verified: true},
		},
		{
			name:    "no session",
			session: domain.Session{},
			wantErr: service.ErrUnauthenticated,
		},
		{
			name:    "unverified admin claim",
			session: domain.Session{Token: "x", Subject: "admin-1", Role: "ADMIN"},
			wantErr: service.ErrUnauthenticated,
		},
		{
			name:    "expired admin",
			session: domain.Session{Token: "t", Role: "ADMIN", ExpiresAt: time.Now().Add(-time.Minute), Verified: true},
			wantErr: service.ErrUnauthenticated,
		},
		{
			name:    "verified viewer",
			session: domain.Session{Token: "t", Subject: "user-1", Role: "VIEWER", ExpiresAt: future, Verified: true},
			wantErr: service.ErrForbidden,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			records, err := audit.ListOutcomes(context.Background(), tc.session, "", 0)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("list: expected %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr != nil && records != nil {
				t.Errorf("list: expected no records, got %d", len(records))
			}

			record, err := audit.GetOutcome(context.Background(), tc.session, id)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("get: expected %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr != nil && record != nil {
				t.Errorf("get: expected no record, got %+v", record)
			}
		})
	}
}
