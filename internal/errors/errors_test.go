package errors

import (
	"context"
	"database/sql/driver"
	"fmt"
	"net"
	"net/http"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{name: "project not found", err: ErrProjectNotFound, expectedStatus: http.StatusNotFound, expectedCode: "PROJECT_NOT_FOUND"},
		{name: "user not found", err: ErrUserNotFound, expectedStatus: http.StatusNotFound, expectedCode: "USER_NOT_FOUND"},
		{name: "missing fields", err: ErrMissingFields, expectedStatus: http.StatusBadRequest, expectedCode: "MISSING_FIELDS"},
		{name: "invalid category", err: ErrInvalidCategory, expectedStatus: http.StatusBadRequest, expectedCode: "INVALID_CATEGORY"},
		{name: "invalid status", err: ErrInvalidStatus, expectedStatus: http.StatusBadRequest, expectedCode: "INVALID_STATUS"},
		{name: "admin only", err: ErrAdminOnly, expectedStatus: http.StatusForbidden, expectedCode: "ADMIN_ONLY"},
		{name: "not owner", err: ErrNotProjectOwner, expectedStatus: http.StatusForbidden, expectedCode: "NOT_OWNER"},
		{name: "not approved", err: ErrNotApproved, expectedStatus: http.StatusBadRequest, expectedCode: "NOT_APPROVED"},
		{name: "store unavailable", err: ErrStoreUnavailable, expectedStatus: http.StatusServiceUnavailable, expectedCode: "SERVICE_UNAVAILABLE"},
		{name: "request deadline", err: context.DeadlineExceeded, expectedStatus: http.StatusServiceUnavailable, expectedCode: "SERVICE_UNAVAILABLE"},
		{name: "unknown error", err: assert.AnError, expectedStatus: http.StatusInternalServerError, expectedCode: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTPUnwrapsChains(t *testing.T) {
	wrapped := fmt.Errorf("create project: %w", fmt.Errorf("%w: name is mandatory", ErrMissingFields))
	httpErr := MapErrorToHTTP(wrapped)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, "MISSING_FIELDS", httpErr.Code)
	// Wrapped field detail stays in the message for the client form.
	assert.Contains(t, httpErr.Message, "name is mandatory")
}

func TestMapErrorToHTTPStoreUnreachable(t *testing.T) {
	// A refused MySQL dial surfacing through gorm must read as transient.
	dialErr := &net.OpError{
		Op:  "dial",
		Net: "tcp",
		Err: os.NewSyscallError("connect", syscall.ECONNREFUSED),
	}
	httpErr := MapErrorToHTTP(fmt.Errorf("create project: %w", dialErr))
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
	assert.Equal(t, "SERVICE_UNAVAILABLE", httpErr.Code)
	assert.Equal(t, ErrStoreUnavailable.Error(), httpErr.Message)

	httpErr = MapErrorToHTTP(fmt.Errorf("fetch project: %w", driver.ErrBadConn))
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
	assert.Equal(t, "SERVICE_UNAVAILABLE", httpErr.Code)
}

func TestMapErrorToHTTPHidesInternalDetail(t *testing.T) {
	httpErr := MapErrorToHTTP(fmt.Errorf("dial tcp 10.0.0.5:3306: connection refused"))
	assert.Equal(t, "internal server error", httpErr.Message)

	resp := httpErr.ToErrorResponse()
	assert.Equal(t, "internal server error", resp.Error)
	assert.Equal(t, "INTERNAL_ERROR", resp.Code)
}
