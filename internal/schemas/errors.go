package schemas

import (
	"fmt"
	"strings"
)

// Error codes carried by AppError.
const (
	CodeNetworkError     = "NETWORK_ERROR"
	CodeTimeoutError     = "TIMEOUT_ERROR"
	CodeValidationError  = "VALIDATION_ERROR"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeServerError      = "SERVER_ERROR"
	CodeAPIError         = "API_ERROR"
	CodeUnknownError     = "UNKNOWN_ERROR"
	CodePermissionDenied = "PERMISSION_DENIED"
	CodeRoleRestricted   = "ROLE_RESTRICTED"
)

// User-facing messages.
const (
	MessageNetworkError     = "Unable to connect to the server. Please check your internet connection."
	MessageTimeoutError     = "Request timed out. Please try again."
	MessageUnauthorized     = "Please log in to continue."
	MessageForbidden        = "You do not have permission to perform this action."
	MessageNotFound         = "The requested resource was not found."
	MessageServerError      = "Server error. Please try again later."
	MessageValidationError  = "Please check your input and try again."
	MessageUnknownError     = "An unexpected error occurred. Please try again."
	MessageInvalidEmail     = "Please enter a valid email address."
	MessageInvalidResponse  = "Invalid response from server."
	MessageAdminRestricted  = "Admin accounts can only access the admin dashboard."
	MessageGuestSwapRequest = "Please log in or create an account to request a skill swap."
	MessageAdminSwapRequest = "Admin accounts cannot send swap requests."
)

// AppError is the uniform error descriptor produced for every failure.
type AppError struct {
	Message string      `json:"message"`
	Code    string      `json:"code"`
	Status  int         `json:"status,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
	}
	return e.Code + ": " + e.Message
}

// NewAppError builds an AppError without status or details.
func NewAppError(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// FieldError is one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ResponseError is returned by the HTTP adapter for non-2xx responses.
type ResponseError struct {
	Method string
	Path   string
	Status int
	Body   []byte
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s %s: status %d", strings.ToUpper(e.Method), e.Path, e.Status)
}

// ErrorDTO is the error envelope written by the BFF.
type ErrorDTO struct {
	Error AppError `json:"error"`
}
