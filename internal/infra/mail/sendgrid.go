package mail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/xavierca1/pkwt-tracker/internal/usecase"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendGridSender delivers mail through the SendGrid v3 API.
type SendGridSender struct {
	key  string
	from *sgmail.Email
	host string
}

func NewSendGridSender(key, fromName, fromEmail string) *SendGridSender {
	return &SendGridSender{
		key:  key,
		from: sgmail.NewEmail(fromName, fromEmail),
		host: sendgridHost,
	}
}

func (s *SendGridSender) SendReminder(ctx context.Context, e usecase.ReminderEmail) error {
	r, err := RenderReminder(e)
	if err != nil {
		return err
	}
	return s.send(ctx, s.prepare(e.To, r))
}

func (s *SendGridSender) SendPlain(ctx context.Context, to []string, subject, body string) error {
	return s.send(ctx, s.prepare(to, &Rendered{Subject: subject, Text: body}))
}

func (s *SendGridSender) prepare(to []string, r *Rendered) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = r.Subject
	for _, addr := range to {
		p.AddTos(sgmail.NewEmail("", addr))
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", r.Text))
	if r.HTML != "" {
		m.AddContent(sgmail.NewContent("text/html", r.HTML))
	}
	return m
}

func (s *SendGridSender) send(ctx context.Context, m *sgmail.SGMailV3) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	req := sendgrid.GetRequest(s.key, sendgridEndpoint, s.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.API(req)
	if err != nil {
		return &usecase.ProviderError{Provider: "sendgrid", Err: err}
	}
	if res.StatusCode >= http.StatusBadRequest {
		return &usecase.ProviderError{
			Provider: "sendgrid",
			Err:      fmt.Errorf("status %d: %s", res.StatusCode, res.Body),
		}
	}
	return nil
}
