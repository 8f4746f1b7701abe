package handlers

import (
	"net/http"

	"github.com/xavierca1/pkwt-tracker/internal/usecase"
)

// TestEmailHandler triggers diagnostic emails: /api/test-email sends a sample reminder,
// /api/test-email/plain a plain-text message. ?to= overrides the HR recipients.
type TestEmailHandler struct {
	UC *usecase.SendTestEmailUseCase
}

func NewTestEmailHandler(uc *usecase.SendTestEmailUseCase) *TestEmailHandler {
	return &TestEmailHandler{UC: uc}
}

func (h *TestEmailHandler) Reminder(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, usecase.TestEmailReminder)
}

func (h *TestEmailHandler) Plain(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, usecase.TestEmailPlain)
}

func (h *TestEmailHandler) send(w http.ResponseWriter, r *http.Request, kind string) {
	out, err := h.UC.Execute(r.Context(), r.URL.Query().Get("to"), kind)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"kind":       out.Kind,
		"recipients": out.Recipients,
	})
}
