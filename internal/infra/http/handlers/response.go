package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/xavierca1/pkwt-tracker/internal/entity"
	"github.com/xavierca1/pkwt-tracker/internal/infra/http/middleware"
	"github.com/xavierca1/pkwt-tracker/internal/usecase"
)

// ErrorReporter receives unexpected (5xx) handler errors.
type ErrorReporter interface {
	ReportRequest(r *http.Request, err error)
}

var reporter ErrorReporter

func SetErrorReporter(r ErrorReporter) {
	reporter = r
}

type ErrorResponse struct {
	Error   string                    `json:"error"`
	Message string                    `json:"message"`
	Fields  []usecase.ValidationError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[http] failed to encode response: %v", err)
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// writeError maps use case errors onto HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	body := ErrorResponse{Error: usecase.ErrorCode(err), Message: err.Error()}

	var de *usecase.DomainError
	if errors.As(err, &de) {
		body.Fields = de.Fields
	}

	if status >= http.StatusInternalServerError {
		log.Printf("[http] %s %s: %v", r.Method, r.URL.Path, err)
		if reporter != nil {
			reporter.ReportRequest(r, err)
		}
		if usecase.IsTechnicalError(err) || body.Error == usecase.CodeUnknown {
			body.Message = "internal error"
		}
	}

	writeJSON(w, status, body)
}

func statusFor(err error) int {
	switch usecase.ErrorCode(err) {
	case usecase.CodeValidation:
		return http.StatusBadRequest
	case usecase.CodeNotFound:
		return http.StatusNotFound
	case usecase.CodeConflict:
		return http.StatusConflict
	case usecase.CodeUnauth:
		return http.StatusUnauthorized
	case usecase.CodeForbidden:
		return http.StatusForbidden
	case usecase.CodeProvider:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "invalid JSON body")
		return false
	}
	return true
}

func principal(r *http.Request) entity.Principal {
	p, _ := middleware.PrincipalFrom(r.Context())
	return p
}
