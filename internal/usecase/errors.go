package usecase

import (
	"errors"
	"fmt"
)

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeUnauth     = "UNAUTHORIZED"
	CodeForbidden  = "FORBIDDEN"
	CodeProvider   = "PROVIDER_ERROR"
	CodeDatabase   = "DATABASE_ERROR"
	CodeUnknown    = "UNKNOWN"
)

type DomainError struct {
	Code    string
	Message string
	Fields  []ValidationError
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error { return e.Err }

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// ProviderError wraps a failure of the outbound email provider.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

func notFound(msg string) error {
	return &DomainError{Code: CodeNotFound, Message: msg}
}

func forbidden(msg string) error {
	return &DomainError{Code: CodeForbidden, Message: msg}
}

func dbError(msg string, err error) error {
	return &TechnicalError{Code: CodeDatabase, Message: msg, Err: err}
}

// ErrorCode extracts the code used in JSON error bodies.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te.Code
	}
	if IsProviderError(err) {
		return CodeProvider
	}
	return CodeUnknown
}
