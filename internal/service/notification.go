package service

import (
	"context"
	"fmt"
	"log"
	"time"
)

// NoticeType represents the kind of user-facing notice.
type NoticeType string

const (
	NoticeEventDeleted           NoticeType = "EVENT_DELETED"
	NoticeEventDeleteFailed      NoticeType = "EVENT_DELETE_FAILED"
	NoticeFavoriteRemoved        NoticeType = "FAVORITE_REMOVED"
	NoticePasswordResetRequested NoticeType = "PASSWORD_RESET_REQUESTED"
	NoticePasswordResetDone      NoticeType = "PASSWORD_RESET_DONE"
)

// NoticeLevel is how a notice is presented (a success or error toast).
type NoticeLevel string

const (
	LevelSuccess NoticeLevel = "success"
	LevelError   NoticeLevel = "error"
)

// Notice is a toast-style message returned alongside an action result.
type Notice struct {
	Type      NoticeType  `json:"type"`
	Level     NoticeLevel `json:"level"`
	Message   string      `json:"message"`
	CreatedAt time.Time   `json:"created_at"`
}

// NotificationService builds and logs user-facing notices.
type NotificationService struct{}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// EventDeleted is the notice shown after an admin deletes an event.
func (s *NotificationService) EventDeleted(ctx context.Context, eventName string) Notice {
	return s.send(ctx, Notice{
		Type:    NoticeEventDeleted,
		Level:   LevelSuccess,
		Message: fmt.Sprintf("Event %q deleted", eventName),
	})
}

// EventDeleteFailed carries the backend's message verbatim.
func (s *NotificationService) EventDeleteFailed(ctx context.Context, err error) Notice {
	message := "Error deleting the event"
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return s.send(ctx, Notice{
		Type:    NoticeEventDeleteFailed,
		Level:   LevelError,
		Message: message,
	})
}

// FavoriteRemoved is the notice shown after a favorite is removed.
func (s *NotificationService) FavoriteRemoved(ctx context.Context) Notice {
	return s.send(ctx, Notice{
		Type:    NoticeFavoriteRemoved,
		Level:   LevelSuccess,
		Message: "Removed from favorites",
	})
}

// PasswordResetRequested never reveals whether the address has an account.
func (s *NotificationService) PasswordResetRequested(ctx context.Context) Notice {
	return s.send(ctx, Notice{
		Type:    NoticePasswordResetRequested,
		Level:   LevelSuccess,
		Message: "If the email exists, you will receive instructions",
	})
}

// PasswordResetDone is the notice shown after a successful reset.
func (s *NotificationService) PasswordResetDone(ctx context.Context) Notice {
	return s.send(ctx, Notice{
		Type:    NoticePasswordResetDone,
		Level:   LevelSuccess,
		Message: "Password updated successfully",
	})
}

func (s *NotificationService) send(ctx context.Context, notice Notice) Notice {
	notice.CreatedAt = time.Now()

	log.Printf("[NOTICE] Type=%s, Level=%s, Message=%s", notice.Type, notice.Level, notice.Message)

	return notice
}
