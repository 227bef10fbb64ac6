package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind tags an Error with the failure family the orchestrator switches on.
// Storage and audit kinds are kept as parallel families since they are
// distinct backends with distinct operator runbooks.
type Kind string

const (
	KindFetch Kind = "weather_fetch"

	KindStorage           Kind = "storage"
	KindStorageConnection Kind = "storage_connection"
	KindStorageData       Kind = "storage_data"
	KindStoragePermission Kind = "storage_permission"
	// KindCache means the cache is unusable this request (corrupt or
	// unreadable entry). "Cache empty" is not an error and has no kind.
	KindCache Kind = "cache"

	KindAudit           Kind = "audit"
	KindAuditConnection Kind = "audit_connection"
	KindAuditData       Kind = "audit_data"
	KindAuditPermission Kind = "audit_permission"
)

// Error is the tagged failure every gateway returns. Message is safe to
// show to clients; Err carries the full cause for server-side logs.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Fetch builds a weather-fetch failure with a caller-chosen status
// (404 city not found, 503 upstream or network failure, 500 unexpected).
func Fetch(message string, statusCode int, cause error) *Error {
	return &Error{Kind: KindFetch, Message: message, StatusCode: statusCode, Err: cause}
}

func Storage(message string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: message, StatusCode: http.StatusInternalServerError, Err: cause}
}

func StorageConnection(message string, cause error) *Error {
	return &Error{Kind: KindStorageConnection, Message: message, StatusCode: http.StatusServiceUnavailable, Err: cause}
}

func StorageData(message string, cause error) *Error {
	return &Error{Kind: KindStorageData, Message: message, StatusCode: http.StatusBadRequest, Err: cause}
}

func StoragePermission(message string, cause error) *Error {
	return &Error{Kind: KindStoragePermission, Message: message, StatusCode: http.StatusForbidden, Err: cause}
}

func Cache(message string, cause error) *Error {
	return &Error{Kind: KindCache, Message: message, StatusCode: http.StatusInternalServerError, Err: cause}
}

func Audit(message string, cause error) *Error {
	return &Error{Kind: KindAudit, Message: message, StatusCode: http.StatusInternalServerError, Err: cause}
}

func AuditConnection(message string, cause error) *Error {
	return &Error{Kind: KindAuditConnection, Message: message, StatusCode: http.StatusServiceUnavailable, Err: cause}
}

func AuditData(message string, cause error) *Error {
	return &Error{Kind: KindAuditData, Message: message, StatusCode: http.StatusBadRequest, Err: cause}
}

func AuditPermission(message string, cause error) *Error {
	return &Error{Kind: KindAuditPermission, Message: message, StatusCode: http.StatusForbidden, Err: cause}
}

// As unwraps err to a tagged *Error if there is one in the chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}

// IsPermission reports whether err is a storage or audit permission
// failure. The orchestrator re-raises these even from best-effort
// paths since they signal a configuration problem worth surfacing.
func IsPermission(err error) bool {
	appErr, ok := As(err)
	if !ok {
		return false
	}
	return appErr.Kind == KindStoragePermission || appErr.Kind == KindAuditPermission
}

// StatusCode returns the HTTP status carried by err, or 500 when err
// is not a tagged failure.
func StatusCode(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
