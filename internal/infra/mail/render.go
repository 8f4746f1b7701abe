package mail

import (
	"bytes"
	"embed"
	"fmt"
	htmltmpl "html/template"
	"strings"
	texttmpl "text/template"

	"github.com/xavierca1/pkwt-tracker/internal/usecase"
)

//go:embed templates/*
var templateFS embed.FS

var (
	reminderHTML = htmltmpl.Must(htmltmpl.ParseFS(templateFS, "templates/reminder.gohtml"))
	reminderText = texttmpl.Must(texttmpl.ParseFS(templateFS, "templates/reminder.txt"))
)

var priorityColors = map[string]string{
	"urgent": "#b91c1c",
	"high":   "#d97706",
	"medium": "#2563eb",
	"low":    "#059669",
}

// RenderReminder builds the subject and the text/HTML pair of a contract reminder.
func RenderReminder(e usecase.ReminderEmail) (*Rendered, error) {
	data := reminderData{
		EmployeeName: e.EmployeeName,
		Unit:         e.Unit,
		ContractEnd:  e.ContractEnd,
		Priority:     strings.ToUpper(e.Priority),
		Color:        priorityColors[e.Priority],
		DashboardURL: e.DashboardURL,
	}
	if data.Color == "" {
		data.Color = "#52606d"
	}

	switch {
	case e.DaysRemaining < 0:
		data.Headline = "Contract expired, evaluation pending"
		data.StatusLine = fmt.Sprintf("expired %d days ago", -e.DaysRemaining)
	case e.DaysRemaining == 0:
		data.Headline = "Contract ends today"
		data.StatusLine = "ends today"
	default:
		data.Headline = "Contract ending soon"
		data.StatusLine = fmt.Sprintf("%d days remaining", e.DaysRemaining)
	}
	data.Subject = fmt.Sprintf("[PKWT %s] %s: %s (%s)", data.Priority, data.Headline, e.EmployeeName, e.Unit)

	var html, text bytes.Buffer
	if err := reminderHTML.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render html template: %w", err)
	}
	if err := reminderText.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("failed to render text template: %w", err)
	}

	return &Rendered{Subject: data.Subject, Text: text.String(), HTML: html.String()}, nil
}
