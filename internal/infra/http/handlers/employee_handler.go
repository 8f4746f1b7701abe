package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/pkwt-tracker/internal/entity"
	"github.com/xavierca1/pkwt-tracker/internal/usecase"
)

type EmployeeHandler struct {
	Service  *usecase.EmployeeService
	Evaluate *usecase.EvaluateEmployeeUseCase
}

func NewEmployeeHandler(service *usecase.EmployeeService, evaluate *usecase.EvaluateEmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{Service: service, Evaluate: evaluate}
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := entity.EmployeeFilter{
		Unit:   q.Get("unit"),
		Status: q.Get("status"),
		Search: q.Get("q"),
	}

	list, err := h.Service.List(r.Context(), principal(r), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if list == nil {
		list = []*entity.Employee{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.Service.Get(r.Context(), principal(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.EmployeeInput
	if !decodeJSON(w, r, &input) {
		return
	}

	e, err := h.Service.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.EmployeeInput
	if !decodeJSON(w, r, &input) {
		return
	}

	e, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EmployeeHandler) CreateEvaluation(w http.ResponseWriter, r *http.Request) {
	var input usecase.EvaluateEmployeeInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.EmployeeID = chi.URLParam(r, "id")

	ev, err := h.Evaluate.Execute(r.Context(), principal(r), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

func (h *EmployeeHandler) ListEvaluations(w http.ResponseWriter, r *http.Request) {
	list, err := h.Evaluate.ListEvaluations(r.Context(), r.URL.Query().Get("employee_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if list == nil {
		list = []*entity.PerformanceEvaluation{}
	}
	writeJSON(w, http.StatusOK, list)
}
