package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/pkwt-tracker/internal/entity"
	"github.com/xavierca1/pkwt-tracker/internal/usecase"
)

type ApplicantHandler struct {
	Service *usecase.ApplicantService
}

func NewApplicantHandler(service *usecase.ApplicantService) *ApplicantHandler {
	return &ApplicantHandler{Service: service}
}

func (h *ApplicantHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context(), r.URL.Query().Get("stage"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if list == nil {
		list = []*entity.Applicant{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ApplicantHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *ApplicantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.ApplicantInput
	if !decodeJSON(w, r, &input) {
		return
	}

	a, err := h.Service.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *ApplicantHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.ApplicantInput
	if !decodeJSON(w, r, &input) {
		return
	}

	a, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *ApplicantHandler) MoveStage(w http.ResponseWriter, r *http.Request) {
	var input usecase.MoveStageInput
	if !decodeJSON(w, r, &input) {
		return
	}

	a, err := h.Service.MoveStage(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *ApplicantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
