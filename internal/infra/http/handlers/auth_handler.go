package handlers

import (
	"net/http"

	"github.com/xavierca1/pkwt-tracker/internal/usecase"
)

type AuthHandler struct {
	Login *usecase.LoginUseCase
}

func NewAuthHandler(login *usecase.LoginUseCase) *AuthHandler {
	return &AuthHandler{Login: login}
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginInput
	if !decodeJSON(w, r, &input) {
		return
	}

	out, err := h.Login.Execute(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, principal(r))
}
