package usecase

import (
	"context"
	"net/mail"
	"strings"
	"time"
)

const (
	TestEmailReminder = "reminder"
	TestEmailPlain    = "plain"
)

// SendTestEmailUseCase is the manual diagnostic for the email provider.
type SendTestEmailUseCase struct {
	Email        EmailService
	Fallback     []string
	DashboardURL string
}

func NewSendTestEmailUseCase(email EmailService, fallback []string, dashboardURL string) *SendTestEmailUseCase {
	return &SendTestEmailUseCase{Email: email, Fallback: fallback, DashboardURL: dashboardURL}
}

type TestEmailOutput struct {
	Kind       string   `json:"kind"`
	Recipients []string `json:"recipients"`
}

func (uc *SendTestEmailUseCase) Execute(ctx context.Context, to, kind string) (*TestEmailOutput, error) {
	recipients := uc.Fallback
	if strings.TrimSpace(to) != "" {
		recipients = nil
		for _, addr := range strings.Split(to, ",") {
			addr = strings.TrimSpace(addr)
			if _, err := mail.ParseAddress(addr); err != nil {
				return nil, &DomainError{Code: CodeValidation, Message: "invalid recipient " + addr}
			}
			recipients = append(recipients, addr)
		}
	}
	if len(recipients) == 0 {
		return nil, &DomainError{Code: CodeValidation, Message: "no recipients configured"}
	}

	var err error
	switch kind {
	case "", TestEmailReminder:
		kind = TestEmailReminder
		err = uc.Email.SendReminder(ctx, ReminderEmail{
			To:            recipients,
			EmployeeName:  "Test Employee",
			Unit:          "Test Unit",
			ContractEnd:   time.Now().AddDate(0, 0, 7).Format(contractDateLayout),
			DaysRemaining: 7,
			ReminderType:  "upcoming",
			Priority:      "high",
			DashboardURL:  uc.DashboardURL,
		})
	case TestEmailPlain:
		err = uc.Email.SendPlain(ctx, recipients, "Test email", "This is a test email from the PKWT contract tracker.")
	default:
		return nil, &DomainError{Code: CodeValidation, Message: "kind must be reminder or plain"}
	}
	if err != nil {
		return nil, err
	}

	return &TestEmailOutput{Kind: kind, Recipients: recipients}, nil
}
