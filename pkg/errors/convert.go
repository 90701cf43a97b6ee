package errors

import "net/http"

// statusByCode maps an error code to its HTTP status.
var statusByCode = map[string]int{
	ErrInternal:         http.StatusInternalServerError,
	ErrNotFound:         http.StatusNotFound,
	ErrInvalidArgument:  http.StatusBadRequest,
	ErrUnauthenticated:  http.StatusUnauthorized,
	ErrUnauthorized:     http.StatusForbidden,
	ErrConflict:         http.StatusConflict,
	ErrTimeout:          http.StatusGatewayTimeout,
	ErrNotImplemented:   http.StatusNotImplemented,
	ErrMethodNotAllowed: http.StatusMethodNotAllowed,
}

// ToHTTPStatus returns the HTTP status for an error code.
// Unknown codes map to 500.
func ToHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// httpStatusToCode is the reverse of ToHTTPStatus.
func httpStatusToCode(status int) string {
	for code, s := range statusByCode {
		if s == status {
			return code
		}
	}
	return ErrInternal
}
