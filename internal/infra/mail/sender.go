package mail

import (
	"context"
	"fmt"
	"log"

	"github.com/xavierca1/pkwt-tracker/internal/usecase"
	"gopkg.in/gomail.v2"
)

// SMTPSender delivers mail through an SMTP relay.
type SMTPSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewSMTPSender(host string, port int, user, password, from string) *SMTPSender {
	if from == "" {
		from = user
	}
	return &SMTPSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

func (s *SMTPSender) SendReminder(ctx context.Context, e usecase.ReminderEmail) error {
	r, err := RenderReminder(e)
	if err != nil {
		return err
	}
	return s.send(ctx, s.buildMessage(e.To, r))
}

func (s *SMTPSender) SendPlain(ctx context.Context, to []string, subject, body string) error {
	return s.send(ctx, s.buildMessage(to, &Rendered{Subject: subject, Text: body}))
}

func (s *SMTPSender) buildMessage(to []string, r *Rendered) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", r.Subject)
	m.SetBody("text/plain", r.Text)
	if r.HTML != "" {
		m.AddAlternative("text/html", r.HTML)
	}
	return m
}

func (s *SMTPSender) send(ctx context.Context, m *gomail.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("[mail] smtp delivery to %v failed: %v", m.GetHeader("To"), err)
		return &usecase.ProviderError{Provider: "smtp", Err: fmt.Errorf("failed to send email: %w", err)}
	}
	return nil
}
