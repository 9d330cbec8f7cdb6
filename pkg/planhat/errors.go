package planhat

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the error kinds callers are expected to branch on.
var (
	// ErrNotFound indicates a lookup found no matching object, either in a
	// collection or on the API side (HTTP 404).
	ErrNotFound = errors.New("planhat: not found")

	// ErrBadRequest indicates the API rejected the request (HTTP 400).
	ErrBadRequest = errors.New("planhat: bad request")

	// ErrAuthFailed indicates credentials were rejected (HTTP 401/403).
	ErrAuthFailed = errors.New("planhat: authentication failed")

	// ErrRateLimited indicates the API's rate limits were exceeded (HTTP 429).
	ErrRateLimited = errors.New("planhat: rate limit exceeded")

	// ErrServerError indicates a 5xx response from the API.
	ErrServerError = errors.New("planhat: server error")

	// ErrTypeMismatch indicates an object or collection of the wrong kind,
	// or a response body of an unexpected shape.
	ErrTypeMismatch = errors.New("planhat: type mismatch")

	// ErrAPIKeyRequired indicates authentication is not configured. Kept
	// distinct from ErrAuthFailed so callers can tell "misconfigured"
	// from "rejected".
	ErrAPIKeyRequired = errors.New("planhat: no API key configured")

	// ErrTenantUUIDRequired indicates the tenant UUID needed for analytics
	// calls is not configured.
	ErrTenantUUIDRequired = errors.New("planhat: no tenant UUID configured")

	// ErrInvalidIDType indicates an IDType outside the known set.
	ErrInvalidIDType = errors.New("planhat: invalid ID type")

	// ErrNoUsableID indicates an object has none of its identity fields set.
	ErrNoUsableID = errors.New("planhat: object has no usable identifier")

	// ErrUntypedList indicates an operation that needs the list's element
	// kind was called on an empty, untyped list.
	ErrUntypedList = errors.New("planhat: list element kind not established")

	// ErrUnknownKind indicates a Kind outside the closed set.
	ErrUnknownKind = errors.New("planhat: unknown object kind")

	// ErrConfigRequired indicates a nil client configuration.
	ErrConfigRequired = errors.New("planhat: config is required")

	// ErrEndpointRequired indicates an empty API endpoint.
	ErrEndpointRequired = errors.New("planhat: API endpoint is required")
)

// APIError represents an error response from the Planhat API. The raw body
// is retained because the vendor does not guarantee a structured error
// payload.
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Message is a short human-readable description.
	Message string

	// Body is the raw response body, if any.
	Body []byte
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("planhat: HTTP %d: %s: %s", e.StatusCode, e.Message, string(e.Body))
	}

	return fmt.Sprintf("planhat: HTTP %d: %s", e.StatusCode, e.Message)
}

// Is maps the status code onto the sentinel errors so callers can use
// errors.Is against the taxonomy.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrBadRequest:
		return e.StatusCode == http.StatusBadRequest
	case ErrAuthFailed:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrServerError:
		return e.StatusCode >= http.StatusInternalServerError
	default:
		return false
	}
}

// NotFoundError is returned by collection lookups that found no match.
type NotFoundError struct {
	// Kind is the element kind of the collection that was searched.
	Kind Kind

	// IDType is the identifier scheme the lookup used.
	IDType IDType

	// ID is the identifier that was not found.
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("planhat: no %s with %s %q", e.Kind.Singular(), e.IDType.Name(), e.ID)
}

// Is reports a match against ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// TypeMismatchError is returned when an operation received an object of
// the wrong kind, or decoded a response body of an unexpected shape.
type TypeMismatchError struct {
	// Want describes the expected kind or shape.
	Want string

	// Got describes what was received instead.
	Got string
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("planhat: expected %s, got %s", e.Want, e.Got)
}

// Is reports a match against ErrTypeMismatch.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// IsNotFound reports whether err is a not-found condition, either a
// collection lookup miss or an API 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRateLimited reports whether err is a rate limit error.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsAuthFailed reports whether err indicates rejected credentials.
func IsAuthFailed(err error) bool {
	return errors.Is(err, ErrAuthFailed)
}
