// Package apperr defines the single error shape shared by the product
// service, its HTTP handlers and the catalog client.
package apperr

import (
	"errors"
	"net/http"
)

// Kind tags an Error with the failure class it belongs to.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindTransport
	KindStorage
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindTransport:
		return "transport"
	case KindStorage:
		return "storage"
	case KindForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Fixed messages used across the service and the client.
const (
	MsgMissingFields  = "Please provide all required fields"
	MsgInvalidFields  = "Product fields failed validation"
	MsgNotFound       = "Product not found"
	MsgNoResponse     = "No response from server"
	MsgInternalServer = "Something went wrong on the server"
)

// Error is a failure carrying its kind and a human-readable message.
// Status is the HTTP status when one is known (server responses on the
// client side). Fields holds per-field messages for validation failures.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation builds a validation failure. fields may be nil.
func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// NotFound builds a not-found failure.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Storage wraps an underlying persistence failure.
func Storage(message string, err error) *Error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}

// Transport builds a failure for a request that never got a response.
func Transport(message string, err error) *Error {
	return &Error{Kind: KindTransport, Message: message, Err: err}
}

// Forbidden builds a failure for a request the authorization hook rejected.
func Forbidden(message string, err error) *Error {
	return &Error{Kind: KindForbidden, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

var statusByKind = map[Kind]int{
	KindValidation: http.StatusBadRequest,
	KindNotFound:   http.StatusNotFound,
	KindTransport:  http.StatusBadGateway,
	KindStorage:    http.StatusInternalServerError,
	KindForbidden:  http.StatusForbidden,
}

// StatusCode maps err to the HTTP status the API answers with.
func StatusCode(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Status != 0 {
			return appErr.Status
		}
		if code, ok := statusByKind[appErr.Kind]; ok {
			return code
		}
	}
	return http.StatusInternalServerError
}

// KindForStatus classifies an HTTP error status returned by the API.
func KindForStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindForbidden
	default:
		return KindStorage
	}
}
