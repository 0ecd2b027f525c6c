package storefront

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a gateway failure.
type ErrorKind string

const (
	// ErrConnection means the remote service could not be reached at all.
	ErrConnection ErrorKind = "connection"
	// ErrValidation means the server rejected the request with field-level errors.
	ErrValidation ErrorKind = "validation"
	// ErrAuthorization means the server answered 401 and the session was invalidated.
	ErrAuthorization ErrorKind = "authorization"
	// ErrServer covers every other non-2xx response.
	ErrServer ErrorKind = "server"
)

// FieldError is a single structured validation error from the server.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// GatewayError is the error type returned by every failed gateway call.
type GatewayError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Fields  []FieldError
	cause   error
}

func (e *GatewayError) Error() string {
	switch {
	case len(e.Fields) > 0:
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, f.Field+": "+f.Message)
		}
		return fmt.Sprintf("storefront: validation failed (%s)", strings.Join(parts, "; "))
	case e.Message != "":
		return "storefront: " + e.Message
	case e.cause != nil:
		return "storefront: " + e.cause.Error()
	default:
		return fmt.Sprintf("storefront: request failed with status %d", e.Status)
	}
}

func (e *GatewayError) Unwrap() error { return e.cause }

func connectionError(cause error) *GatewayError {
	return &GatewayError{Kind: ErrConnection, Message: "service unreachable", cause: cause}
}

func validationError(status int, fields []FieldError) *GatewayError {
	return &GatewayError{Kind: ErrValidation, Status: status, Fields: fields}
}

func authorizationError(status int) *GatewayError {
	return &GatewayError{Kind: ErrAuthorization, Status: status, Message: "session expired"}
}

func serverError(status int, message string) *GatewayError {
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}
	return &GatewayError{Kind: ErrServer, Status: status, Message: message}
}

// IsConnectionError reports whether err represents an unreachable service.
func IsConnectionError(err error) bool { return hasKind(err, ErrConnection) }

// IsValidationError reports whether err carries field-level server errors.
func IsValidationError(err error) bool { return hasKind(err, ErrValidation) }

// IsAuthorizationError reports whether err came from an HTTP 401.
func IsAuthorizationError(err error) bool { return hasKind(err, ErrAuthorization) }

// IsServerError reports whether err is a non-2xx failure outside the
// validation and authorization categories.
func IsServerError(err error) bool { return hasKind(err, ErrServer) }

func hasKind(err error, kind ErrorKind) bool {
	var ge *GatewayError
	return errors.As(err, &ge) && ge.Kind == kind
}
