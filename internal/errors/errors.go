package errors

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"net/http"
	"syscall"
)

var (
	// ErrProjectNotFound is returned when a project is not found.
	ErrProjectNotFound = errors.New("project not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrMissingFields is returned when required submission fields are absent.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidCategory is returned when the category is not a known value.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrInvalidStatus is returned when a status value is outside the moderation enum.
	ErrInvalidStatus = errors.New("invalid status value")
	// ErrAdminOnly is returned when a non-admin attempts a moderation action.
	ErrAdminOnly = errors.New("admins only")
	// ErrNotProjectOwner is returned when a non-owner non-admin attempts deletion.
	ErrNotProjectOwner = errors.New("not authorized to delete this project")
	// ErrNotApproved is returned when featuring a project that is not approved.
	ErrNotApproved = errors.New("only approved projects can be featured")
	// ErrStoreUnavailable is returned when the data store cannot be reached.
	ErrStoreUnavailable = errors.New("service temporarily unavailable")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
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

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Internal detail never
// reaches the client; callers log the full error server-side.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrProjectNotFound):
		return NewHTTPError(http.StatusNotFound, ErrProjectNotFound.Error(), "PROJECT_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrMissingFields):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_FIELDS")
	case errors.Is(err, ErrInvalidCategory):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidCategory.Error(), "INVALID_CATEGORY")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidStatus.Error(), "INVALID_STATUS")
	case errors.Is(err, ErrAdminOnly):
		return NewHTTPError(http.StatusForbidden, ErrAdminOnly.Error(), "ADMIN_ONLY")
	case errors.Is(err, ErrNotProjectOwner):
		return NewHTTPError(http.StatusForbidden, ErrNotProjectOwner.Error(), "NOT_OWNER")
	case errors.Is(err, ErrNotApproved):
		return NewHTTPError(http.StatusBadRequest, ErrNotApproved.Error(), "NOT_APPROVED")
	case errors.Is(err, ErrStoreUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		isStoreUnreachable(err):
		return NewHTTPError(http.StatusServiceUnavailable, ErrStoreUnavailable.Error(), "SERVICE_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

// isStoreUnreachable reports whether err is the data store being unreachable
// rather than a logic failure: a refused or dropped connection surfacing
// through the driver. These are transient and get a 503, not a 500.
func isStoreUnreachable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
