package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/pkwt-tracker/internal/entity"
	"github.com/xavierca1/pkwt-tracker/internal/usecase"
)

type ReminderHandler struct {
	Query *usecase.ReminderQueryUseCase
	Sync  *usecase.SyncRemindersUseCase
}

func NewReminderHandler(query *usecase.ReminderQueryUseCase, sync *usecase.SyncRemindersUseCase) *ReminderHandler {
	return &ReminderHandler{Query: query, Sync: sync}
}

func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := entity.ReminderFilter{
		Unit:   q.Get("unit"),
		Status: q.Get("status"),
	}
	if v := q.Get("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "active must be a boolean")
			return
		}
		filter.ActiveOnly = active
	}

	list, err := h.Query.List(r.Context(), principal(r), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if list == nil {
		list = []*entity.Reminder{}
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleSync reruns the projection. Partial failures still answer with an error status,
// with the partial counts in the body.
func (h *ReminderHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	res, err := h.Sync.Execute(r.Context())
	if err != nil {
		if res == nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":   usecase.ErrorCode(err),
			"message": "reminder sync finished with errors",
			"result":  res,
		})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ReminderHandler) Events(w http.ResponseWriter, r *http.Request) {
	events, err := h.Query.EventsFor(r.Context(), principal(r), chi.URLParam(r, "employeeId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if events == nil {
		events = []*entity.ReminderEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *ReminderHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	out, err := h.Query.Dashboard(r.Context(), principal(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
