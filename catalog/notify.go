package catalog

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notification levels.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notification is a transient, dismissable outcome report, the toast of
// the admin screen. Nothing reported this way is fatal and nothing is
// retried automatically.
type Notification struct {
	ID       string
	Type     string
	Title    string
	Message  string
	Duration time.Duration
}

// Notifier receives outcome notifications.
type Notifier interface {
	Notify(n Notification)
}

// Confirmer guards destructive operations. Confirm returns false to abort.
type Confirmer interface {
	Confirm(prompt string) bool
}

// LogNotifier is the default Notifier; it writes notifications to the
// global zap logger.
type LogNotifier struct{}

func (LogNotifier) Notify(n Notification) {
	fields := []zap.Field{
		zap.String("id", n.ID),
		zap.String("title", n.Title),
		zap.String("message", n.Message),
	}
	if n.Type == NoticeError {
		zap.L().Error("notification", fields...)
		return
	}
	zap.L().Info("notification", fields...)
}

func newNotification(kind, title, message string, duration time.Duration) Notification {
	return Notification{
		ID:       uuid.NewString(),
		Type:     kind,
		Title:    title,
		Message:  message,
		Duration: duration,
	}
}
