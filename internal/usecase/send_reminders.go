package usecase

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/pkwt-tracker/internal/entity"
)

const (
	// SendModeHR mails every reminder to the configured HR recipients.
	SendModeHR = "hr"
	// SendModeUnit additionally routes each reminder to the branch admins of the employee's unit.
	SendModeUnit = "unit"

	EmailResultSent    = "sent"
	EmailResultSkipped = "skipped"
	EmailResultFailed  = "failed"
)

const contractDateLayout = "02 January 2006"

type SendRemindersInput struct {
	Mode  string
	Force bool
}

type SendFailure struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

type SendRemindersOutput struct {
	Sync      *SyncResult   `json:"sync,omitempty"`
	SyncError string        `json:"sync_error,omitempty"`
	Mode      string        `json:"mode"`
	Forced    bool          `json:"forced"`
	Total     int           `json:"total"`
	Sent      int           `json:"sent"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	Failures  []SendFailure `json:"failures,omitempty"`
}

// SendRemindersUseCase is the scheduled pipeline: sync, then mail every active reminder
// whose cooldown has elapsed, one at a time.
type SendRemindersUseCase struct {
	Sync         *SyncRemindersUseCase
	Reminders    entity.ReminderRepositoryInterface
	Admins       entity.BranchAdminRepositoryInterface
	Email        EmailService
	Events       EventPublisher
	Metrics      MetricsRecorder
	HRRecipients []string
	DashboardURL string
	Location     *time.Location
	Now          func() time.Time
}

func NewSendRemindersUseCase(
	sync *SyncRemindersUseCase,
	reminders entity.ReminderRepositoryInterface,
	admins entity.BranchAdminRepositoryInterface,
	email EmailService,
	events EventPublisher,
	hrRecipients []string,
	dashboardURL string,
) *SendRemindersUseCase {
	loc := time.UTC
	if sync != nil && sync.Location != nil {
		loc = sync.Location
	}
	return &SendRemindersUseCase{
		Sync:         sync,
		Reminders:    reminders,
		Admins:       admins,
		Email:        email,
		Events:       events,
		HRRecipients: hrRecipients,
		DashboardURL: dashboardURL,
		Location:     loc,
		Now:          time.Now,
	}
}

func (uc *SendRemindersUseCase) Execute(ctx context.Context, input SendRemindersInput) (*SendRemindersOutput, error) {
	mode := input.Mode
	if mode == "" {
		mode = SendModeHR
	}
	if mode != SendModeHR && mode != SendModeUnit {
		return nil, &DomainError{Code: CodeValidation, Message: "mode must be hr or unit"}
	}

	out := &SendRemindersOutput{Mode: mode, Forced: input.Force}

	if uc.Sync != nil {
		res, err := uc.Sync.Execute(ctx)
		out.Sync = res
		if err != nil {
			// the reminders that did sync are still worth sending
			log.Printf("[send-reminders] sync error: %v", err)
			out.SyncError = err.Error()
		}
	}

	reminders, err := uc.Reminders.List(ctx, entity.ReminderFilter{ActiveOnly: true})
	if err != nil {
		return nil, dbError("failed to list reminders", err)
	}
	out.Total = len(reminders)

	for _, r := range reminders {
		now := uc.now()

		if !input.Force && !entity.ShouldSendEmail(r.LastEmailSentAt, now) {
			out.Skipped++
			uc.record(EmailResultSkipped)
			continue
		}

		recipients, err := uc.recipients(ctx, mode, r.Unit)
		if err != nil {
			out.Failed++
			out.Failures = append(out.Failures, SendFailure{EmployeeID: r.EmployeeID, Reason: err.Error()})
			uc.record(EmailResultFailed)
			continue
		}
		if len(recipients) == 0 {
			log.Printf("[send-reminders] no recipients for unit %q, skipping %s", r.Unit, r.EmployeeID)
			out.Skipped++
			uc.record(EmailResultSkipped)
			continue
		}

		if err := uc.Email.SendReminder(ctx, uc.buildEmail(r, recipients)); err != nil {
			log.Printf("[send-reminders] email for %s failed: %v", r.EmployeeID, err)
			out.Failed++
			out.Failures = append(out.Failures, SendFailure{EmployeeID: r.EmployeeID, Reason: err.Error()})
			uc.record(EmailResultFailed)
			uc.publish(ctx, r.EmployeeID, entity.EventEmailFailed, err.Error(), recipients, now)
			continue
		}

		out.Sent++
		uc.record(EmailResultSent)

		if err := uc.Reminders.MarkNotified(ctx, r.EmployeeID, now); err != nil {
			// the email is out; the next run may send once more
			log.Printf("[send-reminders] CRITICAL: sent to %s but failed to mark notified: %v", r.EmployeeID, err)
		}
		uc.publish(ctx, r.EmployeeID, entity.EventReminderNotified, r.Priority, recipients, now)
	}

	log.Printf("[send-reminders] mode=%s force=%t total=%d sent=%d skipped=%d failed=%d",
		mode, input.Force, out.Total, out.Sent, out.Skipped, out.Failed)

	return out, nil
}

func (uc *SendRemindersUseCase) recipients(ctx context.Context, mode, unit string) ([]string, error) {
	seen := make(map[string]bool)
	var list []string
	add := func(addr string) {
		addr = strings.ToLower(strings.TrimSpace(addr))
		if addr == "" || seen[addr] {
			return
		}
		seen[addr] = true
		list = append(list, addr)
	}

	for _, addr := range uc.HRRecipients {
		add(addr)
	}

	if mode == SendModeUnit && uc.Admins != nil {
		admins, err := uc.Admins.ListByUnit(ctx, unit)
		if err != nil {
			return nil, dbError("failed to list branch admins", err)
		}
		for _, a := range admins {
			add(a.Email)
		}
	}

	sort.Strings(list)
	return list, nil
}

func (uc *SendRemindersUseCase) buildEmail(r *entity.Reminder, to []string) ReminderEmail {
	return ReminderEmail{
		To:            to,
		EmployeeName:  r.EmployeeName,
		Unit:          r.Unit,
		ContractEnd:   r.ContractEnd.In(uc.Location).Format(contractDateLayout),
		DaysRemaining: r.DaysRemaining,
		ReminderType:  r.ReminderType,
		Priority:      r.Priority,
		DashboardURL:  uc.DashboardURL,
	}
}

func (uc *SendRemindersUseCase) publish(ctx context.Context, employeeID, eventType, detail string, recipients []string, at time.Time) {
	if uc.Events == nil {
		return
	}
	ev := entity.ReminderEvent{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		Type:       eventType,
		Detail:     detail,
		Recipients: recipients,
		OccurredAt: at,
	}
	if err := uc.Events.PublishReminderEvent(ctx, ev); err != nil {
		log.Printf("[send-reminders] failed to publish %s for %s: %v", eventType, employeeID, err)
	}
}

func (uc *SendRemindersUseCase) record(result string) {
	if uc.Metrics != nil {
		uc.Metrics.RecordReminderEmail(result)
	}
}

func (uc *SendRemindersUseCase) now() time.Time {
	if uc.Now == nil {
		return time.Now()
	}
	return uc.Now()
}
