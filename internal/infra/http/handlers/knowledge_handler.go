package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/pkwt-tracker/internal/entity"
	"github.com/xavierca1/pkwt-tracker/internal/usecase"
)

type KnowledgeHandler struct {
	Service *usecase.KnowledgeService
}

func NewKnowledgeHandler(service *usecase.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{Service: service}
}

func (h *KnowledgeHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if list == nil {
		list = []*entity.KnowledgeEntry{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *KnowledgeHandler) Get(w http.ResponseWriter, r *http.Request) {
	k, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, k)
}

func (h *KnowledgeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.KnowledgeInput
	if !decodeJSON(w, r, &input) {
		return
	}

	k, err := h.Service.Create(r.Context(), principal(r), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, k)
}

func (h *KnowledgeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.KnowledgeInput
	if !decodeJSON(w, r, &input) {
		return
	}

	k, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, k)
}

func (h *KnowledgeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
