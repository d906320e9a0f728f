package repository

import "context"

// NotificationRepository pushes lifecycle announcements to the
// configured channel. Implementations are best-effort; callers log
// failures and move on.
type NotificationRepository interface {
	Send(ctx context.Context, content string) error
}
