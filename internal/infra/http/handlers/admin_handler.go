package handlers

import (
	"net/http"

	"github.com/xavierca1/pkwt-tracker/internal/entity"
	"github.com/xavierca1/pkwt-tracker/internal/usecase"
)

type AdminHandler struct {
	CreateAdmin *usecase.CreateAdminUseCase
	Admins      entity.BranchAdminRepositoryInterface
}

func NewAdminHandler(createAdmin *usecase.CreateAdminUseCase, admins entity.BranchAdminRepositoryInterface) *AdminHandler {
	return &AdminHandler{CreateAdmin: createAdmin, Admins: admins}
}

func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateAdminInput
	if !decodeJSON(w, r, &input) {
		return
	}

	out, err := h.CreateAdmin.Execute(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *AdminHandler) ListBranchAdmins(w http.ResponseWriter, r *http.Request) {
	var (
		list []*entity.BranchAdmin
		err  error
	)
	if unit := r.URL.Query().Get("unit"); unit != "" {
		list, err = h.Admins.ListByUnit(r.Context(), unit)
	} else {
		list, err = h.Admins.List(r.Context())
	}
	if err != nil {
		writeError(w, r, &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: "failed to list branch admins", Err: err})
		return
	}
	if list == nil {
		list = []*entity.BranchAdmin{}
	}
	writeJSON(w, http.StatusOK, list)
}
