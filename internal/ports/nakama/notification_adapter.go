package nakama

import (
	"context"
	"fmt"

	"virusgame/internal/ports"
)

// notificationSender is the part of runtime.NakamaModule the notifier needs.
type notificationSender interface {
	NotificationSend(ctx context.Context, userID, subject string, content map[string]interface{}, code int, sender string, persistent bool) error
}

// NakamaNotifierAdapter implements ports.NotifierPort with in-app notifications.
type NakamaNotifierAdapter struct {
	nk notificationSender
}

// NewNakamaNotifierAdapter creates a new notifier adapter.
func NewNakamaNotifierAdapter(nk notificationSender) *NakamaNotifierAdapter {
	return &NakamaNotifierAdapter{nk: nk}
}

// Notify sends a non-persistent system notification.
func (a *NakamaNotifierAdapter) Notify(ctx context.Context, n ports.Notification) error {
	if err := a.nk.NotificationSend(ctx, n.UserID, n.Subject, n.Content, NotificationCodeTurn, "", false); err != nil {
		return fmt.Errorf("failed to notify user %s: %w", n.UserID, err)
	}
	return nil
}
