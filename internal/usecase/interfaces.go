package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/pkwt-tracker/internal/entity"
)

// ReminderEmail carries the template data of one contract-expiry email.
type ReminderEmail struct {
	To            []string
	EmployeeName  string
	Unit          string
	ContractEnd   string
	DaysRemaining int
	ReminderType  string
	Priority      string
	DashboardURL  string
}

type EmailService interface {
	SendReminder(ctx context.Context, email ReminderEmail) error
	SendPlain(ctx context.Context, to []string, subject, body string) error
}

type EventPublisher interface {
	PublishReminderEvent(ctx context.Context, ev entity.ReminderEvent) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(p entity.Principal) (string, time.Time, error)
}

// FeedCache holds computed notification feeds for a bounded time.
type FeedCache interface {
	Get(key string) ([]entity.Notification, bool)
	Set(key string, feed []entity.Notification)
	Clear()
}

// MetricsRecorder receives the outcome of each reminder email attempt.
type MetricsRecorder interface {
	RecordReminderEmail(result string)
	RecordSync(upserted, resolved int)
}
