package handlers

import (
	"net/http"

	"github.com/xavierca1/pkwt-tracker/internal/usecase"
)

// CronHandler exposes the scheduled reminder pipeline to external cron triggers.
type CronHandler struct {
	Send *usecase.SendRemindersUseCase
}

func NewCronHandler(send *usecase.SendRemindersUseCase) *CronHandler {
	return &CronHandler{Send: send}
}

func (h *CronHandler) SendReminders(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, usecase.SendRemindersInput{Mode: usecase.SendModeHR})
}

func (h *CronHandler) SendRemindersV2(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, usecase.SendRemindersInput{Mode: usecase.SendModeUnit})
}

// ForceSend ignores the 24h cooldown. ?mode=hr|unit, unit by default.
func (h *CronHandler) ForceSend(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = usecase.SendModeUnit
	}
	h.run(w, r, usecase.SendRemindersInput{Mode: mode, Force: true})
}

func (h *CronHandler) run(w http.ResponseWriter, r *http.Request, input usecase.SendRemindersInput) {
	out, err := h.Send.Execute(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
