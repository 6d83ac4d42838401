package dto

import "net/http"

// Generic error codes used by the transport layer itself. Domain error
// codes are produced by the domain packages and mapped below.
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeTooLarge     = "REQUEST_TOO_LARGE"
	ErrCodeRateLimited  = "RATE_LIMITED"
)

// errorStatusMap maps domain error codes to HTTP status codes. Codes not
// listed here fall back to 500 so new domain failures surface loudly.
var errorStatusMap = map[string]int{
	// validation failures on input values
	"INVALID_INPUT":           http.StatusBadRequest,
	"INVALID_NAME":            http.StatusBadRequest,
	"INVALID_EMAIL":           http.StatusBadRequest,
	"INVALID_PHONE":           http.StatusBadRequest,
	"INVALID_PASSWORD":        http.StatusBadRequest,
	"INVALID_CODE":            http.StatusBadRequest,
	"INVALID_PERMISSION_CODE": http.StatusBadRequest,
	"INVALID_TITLE":           http.StatusBadRequest,
	"INVALID_SLUG":            http.StatusBadRequest,
	"INVALID_SUMMARY":         http.StatusBadRequest,
	"INVALID_DIR_KEY":         http.StatusBadRequest,
	"INVALID_DESCRIPTION":     http.StatusBadRequest,
	"INVALID_TIME":            http.StatusBadRequest,
	"INVALID_DATE":            http.StatusBadRequest,
	"INVALID_CAPACITY":        http.StatusBadRequest,
	"INVALID_FEE":             http.StatusBadRequest,
	"INVALID_RINK":            http.StatusBadRequest,
	"INVALID_SESSION":         http.StatusBadRequest,
	"INVALID_WINDOW":          http.StatusBadRequest,
	"INVALID_TARGET":          http.StatusBadRequest,
	"INVALID_REGISTRATION":    http.StatusBadRequest,
	"INVALID_ACTION":          http.StatusBadRequest,

	// authentication
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,

	// authorization and account state
	"FORBIDDEN":           http.StatusForbidden,
	"ACCOUNT_PENDING":     http.StatusForbidden,
	"ACCOUNT_INACTIVE":    http.StatusForbidden,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,
	"ACCOUNT_LOCKED":      http.StatusForbidden,

	// missing resources
	"NOT_FOUND":         http.StatusNotFound,
	"MEMBER_NOT_FOUND":  http.StatusNotFound,
	"ROLE_NOT_FOUND":    http.StatusNotFound,
	"EVENT_NOT_FOUND":   http.StatusNotFound,
	"BOOKING_NOT_FOUND": http.StatusNotFound,
	"ORPHAN_NOT_FOUND":  http.StatusNotFound,

	// conflicts with existing state
	"EMAIL_TAKEN":          http.StatusConflict,
	"CODE_TAKEN":           http.StatusConflict,
	"SLUG_TAKEN":           http.StatusConflict,
	"ALREADY_EXISTS":       http.StatusConflict,
	"ALREADY_REGISTERED":   http.StatusConflict,
	"POOL_EXISTS":          http.StatusConflict,
	"RINK_UNAVAILABLE":     http.StatusConflict,
	"NOT_ORPHANED":         http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// operations rejected by the aggregate's current state
	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"ALREADY_ACTIVE":     http.StatusUnprocessableEntity,
	"ALREADY_INACTIVE":   http.StatusUnprocessableEntity,
	"ALREADY_ENABLED":    http.StatusUnprocessableEntity,
	"ALREADY_DISABLED":   http.StatusUnprocessableEntity,
	"ALREADY_PUBLISHED":  http.StatusUnprocessableEntity,
	"ALREADY_ARCHIVED":   http.StatusUnprocessableEntity,
	"ALREADY_CANCELLED":  http.StatusUnprocessableEntity,
	"ALREADY_LOCKED":     http.StatusUnprocessableEntity,
	"ALREADY_WITHDRAWN":  http.StatusUnprocessableEntity,
	"POOL_CLOSED":        http.StatusUnprocessableEntity,
	"POOL_FULL":          http.StatusUnprocessableEntity,
	"SYSTEM_ROLE":        http.StatusUnprocessableEntity,
	"ROLE_IN_USE":        http.StatusUnprocessableEntity,
	"MISSING_CONTENT":    http.StatusUnprocessableEntity,

	// transport-level codes
	"REQUEST_TOO_LARGE": http.StatusRequestEntityTooLarge,
	"RATE_LIMITED":      http.StatusTooManyRequests,

	// server-side failures
	"INTERNAL_ERROR":      http.StatusInternalServerError,
	"RENDER_FAILED":       http.StatusInternalServerError,
	"PASSWORD_HASH_ERROR": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := errorStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ValidationDetail represents a single field validation failure
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationErrorResponse creates an error response with per-field details
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:      ErrCodeInvalidInput,
			Message:   message,
			RequestID: requestID,
		},
		Data: details,
	}
}
