package auth

import "time"

// Error codes used in HTTP error bodies.
const (
	CodeTokenAuthFailed    = "TOKEN_AUTHENTICATION_FAILED"
	CodeNotAuthenticated   = "NOT_AUTHENTICATED"
	CodeAnonymousPrincipal = "ANONYMOUS_PRINCIPAL"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeAccessDenied       = "ACCESS_DENIED"
	CodeModelFailure       = "MODEL_OPERATION_FAILED"
	CodeInternal           = "INTERNAL_ERROR"
)

// ErrorResponse is the JSON error body returned to clients. Timestamp is
// epoch milliseconds, set once at construction.
type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// NewErrorResponse builds an error body stamped with the current time.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		ErrorCode: code,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	}
}
