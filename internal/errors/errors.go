package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrEmailTaken is returned when a registration or update collides with an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrDuplicateTimeLog is returned when a time log already exists for the same user, date and project.
	ErrDuplicateTimeLog = errors.New("time log already exists for this date and project")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned for malformed, tampered or expired tokens alike.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrForbidden is returned when the caller's role or ownership scope denies the operation.
	ErrForbidden = errors.New("insufficient permissions")
	// ErrUserInactive is returned when a deactivated user attempts to authenticate.
	ErrUserInactive = errors.New("user account is deactivated")
	// ErrStorageUnavailable is returned when the storage backend cannot be reached.
	ErrStorageUnavailable = errors.New("storage backend unavailable")
	// ErrExportUnavailable is returned when the export storage is not configured.
	ErrExportUnavailable = errors.New("export storage not configured")
)

// ValidationError carries itemized per-field failures so callers see every
// violated rule at once.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError builds a ValidationError from per-field messages.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Envelope is the uniform response body shape used by every endpoint.
type Envelope struct {
	Success bool              `json:"success"`
	Data    interface{}       `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return NewHTTPError(http.StatusBadRequest, ve.Error(), "VALIDATION_FAILED")
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNotFound.Error(), "NOT_FOUND")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, ErrEmailTaken.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrDuplicateTimeLog):
		return NewHTTPError(http.StatusConflict, ErrDuplicateTimeLog.Error(), "DUPLICATE_TIME_LOG")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidToken.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrUserInactive):
		return NewHTTPError(http.StatusForbidden, ErrUserInactive.Error(), "USER_INACTIVE")
	case errors.Is(err, ErrStorageUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, ErrStorageUnavailable.Error(), "STORAGE_UNAVAILABLE")
	case errors.Is(err, ErrExportUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, ErrExportUnavailable.Error(), "EXPORT_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
