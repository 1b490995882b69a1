package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation      = "ERR_VALIDATION"
	ErrCodeEmptyOrder      = "ERR_EMPTY_ORDER"
	ErrCodeInvalidOrder    = "ERR_INVALID_ORDER"
	ErrCodeInvalidSize     = "ERR_INVALID_SIZE"
	ErrCodeInvalidQuantity = "ERR_INVALID_QUANTITY"
	ErrCodeInvalidFilter   = "ERR_INVALID_FILTER"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when the session is missing or no longer valid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeInvalidCredentials is used when phone and password do not match
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
)

// Resource error codes
const (
	ErrCodeNotFound        = "ERR_NOT_FOUND"
	ErrCodeOrderNotFound   = "ERR_ORDER_NOT_FOUND"
	ErrCodeUnknownResource = "ERR_UNKNOWN_RESOURCE"
)

// Business rule error codes
const (
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeExportTooLarge is used when a report has more rows than one export may carry
	ErrCodeExportTooLarge = "ERR_EXPORT_TOO_LARGE"
)

// Input error codes
const (
	ErrCodeBadRequest        = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput      = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON       = "ERR_INVALID_JSON"
	ErrCodeInvalidFormat     = "ERR_INVALID_FORMAT"
	ErrCodeRequestTooLarge   = "ERR_REQUEST_TOO_LARGE"
	ErrCodeFormatUnavailable = "ERR_FORMAT_UNAVAILABLE"
)

// Backend error codes
const (
	// ErrCodeBackend is used when the order backend rejects a call
	ErrCodeBackend = "ERR_BACKEND"
	// ErrCodeBackendUnavailable is used when the order backend cannot be reached
	ErrCodeBackendUnavailable = "ERR_BACKEND_UNAVAILABLE"
	// ErrCodeServiceUnavailable is used while the service shuts down
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeEmptyOrder:      http.StatusBadRequest,
	ErrCodeInvalidOrder:    http.StatusBadRequest,
	ErrCodeInvalidSize:     http.StatusBadRequest,
	ErrCodeInvalidQuantity: http.StatusBadRequest,
	ErrCodeInvalidFilter:   http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeOrderNotFound:   http.StatusNotFound,
	ErrCodeUnknownResource: http.StatusNotFound,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:   http.StatusUnprocessableEntity,
	ErrCodeExportTooLarge: http.StatusUnprocessableEntity,

	// Input errors
	ErrCodeBadRequest:        http.StatusBadRequest,
	ErrCodeInvalidInput:      http.StatusBadRequest,
	ErrCodeInvalidJSON:       http.StatusBadRequest,
	ErrCodeInvalidFormat:     http.StatusBadRequest,
	ErrCodeRequestTooLarge:   http.StatusRequestEntityTooLarge,
	ErrCodeFormatUnavailable: http.StatusNotImplemented,

	// Backend errors
	ErrCodeBackend:            http.StatusBadGateway,
	ErrCodeBackendUnavailable: http.StatusBadGateway,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"INVALID_INPUT":         ErrCodeInvalidInput,
	"INVALID_STATE":         ErrCodeInvalidState,
	"UNAUTHORIZED":          ErrCodeUnauthorized,
	"EMPTY_ORDER":           ErrCodeEmptyOrder,
	"INVALID_ORDER":         ErrCodeInvalidOrder,
	"INVALID_SIZE":          ErrCodeInvalidSize,
	"DUPLICATE_SIZE":        ErrCodeInvalidSize,
	"INVALID_QUANTITY":      ErrCodeInvalidQuantity,
	"INVALID_STATUS":        ErrCodeInvalidFilter,
	"INVALID_FILTER":        ErrCodeInvalidFilter,
	"INVALID_PARTY":         ErrCodeValidation,
	"INVALID_DESIGN":        ErrCodeValidation,
	"INVALID_TRANSPORT":     ErrCodeValidation,
	"INVALID_PHONE":         ErrCodeValidation,
	"INVALID_PASSWORD":      ErrCodeValidation,
	"INVALID_NAME":          ErrCodeValidation,
	"INVALID_CREDENTIALS":   ErrCodeInvalidCredentials,
	"INVALID_SESSION":       ErrCodeUnauthorized,
	"SESSION_NOT_FOUND":     ErrCodeUnauthorized,
	"ORDER_NOT_FOUND":       ErrCodeOrderNotFound,
	"UNKNOWN_RESOURCE":      ErrCodeUnknownResource,
	"INVALID_RESOURCE":      ErrCodeUnknownResource,
	"INVALID_FORMAT":        ErrCodeInvalidFormat,
	"FORMAT_UNAVAILABLE":    ErrCodeFormatUnavailable,
	"EXPORT_TOO_LARGE":      ErrCodeExportTooLarge,
	"CACHE_CLOSED":          ErrCodeServiceUnavailable,
	"INVALID_ORDER_PAYLOAD": ErrCodeBackend,
}

// NormalizeErrorCode converts a domain error code to the API format
// Codes already in the API format or unknown pass through unchanged
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
