package httperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindConflict Kind = iota
	KindValidation
	KindNotFound
	KindInternal
)

func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusConflict
	}
}

// BusinessError is an expected failure of a core operation. Code is stable and
// machine-readable; Message is plain text for the caller to render.
type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
	Field   string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func ErrConflict(code, message string) error {
	return BusinessError{Kind: KindConflict, Code: code, Message: message}
}

func ErrNotFound(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func ErrValidation(field, message string) error {
	return BusinessError{Kind: KindValidation, Code: "validation_failed", Message: message, Field: field}
}

func ErrInternal(code, message string) error {
	return BusinessError{Kind: KindInternal, Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return KindInternal, false
}
