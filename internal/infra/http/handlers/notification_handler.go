package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/pkwt-tracker/internal/usecase"
)

type NotificationHandler struct {
	Feed *usecase.NotificationFeedUseCase
}

func NewNotificationHandler(feed *usecase.NotificationFeedUseCase) *NotificationHandler {
	return &NotificationHandler{Feed: feed}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.Feed.Feed(r.Context(), principal(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.Feed.MarkRead(r.Context(), principal(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
