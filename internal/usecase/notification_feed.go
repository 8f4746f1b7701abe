package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/xavierca1/pkwt-tracker/internal/entity"
)

var priorityRank = map[string]int{
	entity.PriorityUrgent: 0,
	entity.PriorityHigh:   1,
	entity.PriorityMedium: 2,
	entity.PriorityLow:    3,
}

// NotificationFeedUseCase serves each user's notification list from server-held state:
// feeds are cached per unit scope with a TTL, and read marks are persisted per user.
type NotificationFeedUseCase struct {
	Reminders entity.ReminderRepositoryInterface
	Reads     entity.NotificationReadRepositoryInterface
	Cache     FeedCache
	Now       func() time.Time
}

func NewNotificationFeedUseCase(reminders entity.ReminderRepositoryInterface, reads entity.NotificationReadRepositoryInterface, cache FeedCache) *NotificationFeedUseCase {
	return &NotificationFeedUseCase{Reminders: reminders, Reads: reads, Cache: cache, Now: time.Now}
}

type FeedOutput struct {
	Unread        int                   `json:"unread"`
	Notifications []entity.Notification `json:"notifications"`
}

func (uc *NotificationFeedUseCase) Feed(ctx context.Context, p entity.Principal) (*FeedOutput, error) {
	feed, err := uc.feedFor(ctx, p.UnitScope())
	if err != nil {
		return nil, err
	}

	read, err := uc.Reads.ReadSet(ctx, p.UserID)
	if err != nil {
		return nil, dbError("failed to load read marks", err)
	}

	// copy so the cached slice is never mutated
	out := &FeedOutput{Notifications: make([]entity.Notification, len(feed))}
	for i, n := range feed {
		n.Read = read[n.ReminderID]
		if !n.Read {
			out.Unread++
		}
		out.Notifications[i] = n
	}
	return out, nil
}

func (uc *NotificationFeedUseCase) MarkRead(ctx context.Context, p entity.Principal, reminderID string) error {
	if reminderID == "" {
		return &DomainError{Code: CodeValidation, Message: "reminder id is required"}
	}
	if err := uc.Reads.MarkRead(ctx, p.UserID, reminderID, uc.Now()); err != nil {
		return dbError("failed to mark notification read", err)
	}
	return nil
}

func (uc *NotificationFeedUseCase) feedFor(ctx context.Context, unit string) ([]entity.Notification, error) {
	key := "feed:" + unit
	if uc.Cache != nil {
		if feed, ok := uc.Cache.Get(key); ok {
			return feed, nil
		}
	}

	reminders, err := uc.Reminders.List(ctx, entity.ReminderFilter{Unit: unit, ActiveOnly: true})
	if err != nil {
		return nil, dbError("failed to list reminders", err)
	}

	feed := BuildNotifications(reminders)
	if uc.Cache != nil {
		uc.Cache.Set(key, feed)
	}
	return feed, nil
}

// BuildNotifications turns active reminders into feed entries, most pressing first.
func BuildNotifications(reminders []*entity.Reminder) []entity.Notification {
	feed := make([]entity.Notification, 0, len(reminders))
	for _, r := range reminders {
		if !r.IsActive() {
			continue
		}
		feed = append(feed, entity.Notification{
			ReminderID:    r.ID,
			EmployeeID:    r.EmployeeID,
			Title:         notificationTitle(r),
			Message:       notificationMessage(r),
			Priority:      r.Priority,
			DaysRemaining: r.DaysRemaining,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		ri, rj := priorityRank[feed[i].Priority], priorityRank[feed[j].Priority]
		if ri != rj {
			return ri < rj
		}
		return feed[i].DaysRemaining < feed[j].DaysRemaining
	})
	return feed
}

func notificationTitle(r *entity.Reminder) string {
	if r.ReminderType == entity.ReminderTypeOverdue {
		return "Contract expired: " + r.EmployeeName
	}
	return "Contract ending: " + r.EmployeeName
}

func notificationMessage(r *entity.Reminder) string {
	switch {
	case r.DaysRemaining < 0:
		return fmt.Sprintf("%s (%s) passed contract end %d days ago and is awaiting evaluation", r.EmployeeName, r.Unit, -r.DaysRemaining)
	case r.DaysRemaining == 0:
		return fmt.Sprintf("%s (%s) contract ends today", r.EmployeeName, r.Unit)
	default:
		return fmt.Sprintf("%s (%s) contract ends in %d days", r.EmployeeName, r.Unit, r.DaysRemaining)
	}
}
