package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"skillswap-web/internal/schemas"
)

// ErrNetwork marks a request that never produced a response.
var ErrNetwork = errors.New("network error")

// ParseAPIError converts any failure of the HTTP layer into the uniform AppError.
func ParseAPIError(err error) *schemas.AppError {
	if err == nil {
		return nil
	}

	var appErr *schemas.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var respErr *schemas.ResponseError
	if errors.As(err, &respErr) {
		return parseResponseError(respErr)
	}

	if isTimeout(err) {
		return &schemas.AppError{
			Message: schemas.MessageTimeoutError,
			Code:    schemas.CodeTimeoutError,
		}
	}

	if isNetworkFailure(err) {
		return &schemas.AppError{
			Message: schemas.MessageNetworkError,
			Code:    schemas.CodeNetworkError,
		}
	}

	message := err.Error()
	if message == "" {
		message = schemas.MessageUnknownError
	}
	return &schemas.AppError{
		Message: message,
		Code:    schemas.CodeUnknownError,
	}
}

func parseResponseError(respErr *schemas.ResponseError) *schemas.AppError {
	status := respErr.Status
	body := decodeBody(respErr.Body)

	switch status {
	case 400:
		message := bodyMessage(body, "message", "error", "detail")
		if message == "" {
			message = schemas.MessageValidationError
		}
		return &schemas.AppError{
			Message: message,
			Code:    schemas.CodeValidationError,
			Status:  status,
			Details: body,
		}
	case 401:
		return &schemas.AppError{Message: schemas.MessageUnauthorized, Code: schemas.CodeUnauthorized, Status: status}
	case 403:
		return &schemas.AppError{Message: schemas.MessageForbidden, Code: schemas.CodeForbidden, Status: status}
	case 404:
		return &schemas.AppError{Message: schemas.MessageNotFound, Code: schemas.CodeNotFound, Status: status}
	case 500:
		return &schemas.AppError{Message: schemas.MessageServerError, Code: schemas.CodeServerError, Status: status}
	default:
		message := bodyMessage(body, "message")
		if message == "" {
			message = schemas.MessageUnknownError
		}
		return &schemas.AppError{
			Message: message,
			Code:    schemas.CodeAPIError,
			Status:  status,
			Details: body,
		}
	}
}

// decodeBody returns the JSON-decoded body, the raw text when it is not JSON,
// or nil when it is empty.
func decodeBody(raw []byte) interface{} {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return string(raw)
	}
	return decoded
}

func bodyMessage(body interface{}, keys ...string) string {
	obj, ok := body.(map[string]interface{})
	if !ok {
		return ""
	}
	for _, key := range keys {
		if message, ok := obj[key].(string); ok && message != "" {
			return message
		}
	}
	return ""
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}

func isNetworkFailure(err error) bool {
	if errors.Is(err, ErrNetwork) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	return strings.Contains(err.Error(), "Network Error")
}

// IsRetryableError reports whether an operation that failed with appErr may be retried.
func IsRetryableError(appErr *schemas.AppError) bool {
	if appErr == nil {
		return false
	}
	switch appErr.Code {
	case schemas.CodeNetworkError, schemas.CodeTimeoutError, schemas.CodeServerError:
		return true
	}
	return false
}

// RetryOperation runs op up to maxRetries+1 times, waiting baseDelay*2^attempt
// between attempts. Non-retryable failures are returned immediately; on
// exhaustion the last normalized error is returned.
func RetryOperation[T any](ctx context.Context, op func(ctx context.Context) (T, error), maxRetries int, baseDelay time.Duration) (T, *schemas.AppError) {
	var zero T
	var lastErr *schemas.AppError

	for attempt := 0; attempt <= maxRetries; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		lastErr = ParseAPIError(err)
		if attempt == maxRetries || !IsRetryableError(lastErr) {
			return zero, lastErr
		}

		delay := baseDelay * time.Duration(1<<attempt)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ParseAPIError(ctx.Err())
		case <-timer.C:
		}
	}

	return zero, lastErr
}

// HandleAsyncOperation runs op and never lets a failure escape: the failure is
// normalized, handed to handler (when given) and returned.
func HandleAsyncOperation[T any](op func() (T, error), handler func(*schemas.AppError)) (T, *schemas.AppError) {
	data, err := op()
	if err == nil {
		return data, nil
	}

	appErr := ParseAPIError(err)
	if handler != nil {
		handler(appErr)
	}
	var zero T
	return zero, appErr
}

// GetUserFriendlyMessage returns the message to show for appErr.
func GetUserFriendlyMessage(appErr *schemas.AppError) string {
	if appErr == nil || appErr.Message == "" {
		return schemas.MessageUnknownError
	}
	return appErr.Message
}

// LogAppError logs appErr with the place it surfaced.
func LogAppError(ctx context.Context, appErr *schemas.AppError, where string) {
	if where == "" {
		where = "App"
	}
	log.WithFields(log.Fields{
		"traceId": TraceIdFromContext(ctx),
		"service": ExtractServiceName(),
		"context": where,
		"code":    appErr.Code,
		"status":  appErr.Status,
		"details": appErr.Details,
	}).Error(appErr.Message)
}
