package utils

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"skillswap-web/internal/schemas"
)

// WriteAndLogResponse encodes the response object to JSON and writes it with the given status code.
func WriteAndLogResponse(ctx *gin.Context, response interface{}, statusCode int) {
	LogMessageWithFields(ctx, "info", "Returning response")
	ctx.JSON(statusCode, response)
}

// WriteAndLogError logs the provided error and sends an error response with the specified status code and error details.
func WriteAndLogError(c *gin.Context, appErr *schemas.AppError, statusCode int, err error) {
	if err != nil {
		LogMessageWithFields(c, "error", "Error occurred: "+err.Error())
	}
	LogMessageWithFields(c, "error", "Returning "+appErr.Code+" / "+appErr.Message)
	errorDto := &schemas.ErrorDTO{
		Error: *appErr,
	}
	c.JSON(statusCode, errorDto)
}

// AbortWithError writes the error envelope and stops the handler chain.
func AbortWithError(c *gin.Context, appErr *schemas.AppError, statusCode int, err error) {
	WriteAndLogError(c, appErr, statusCode, err)
	c.Abort()
}

// RequestContext derives the context handed to the coordinator: it is cancelled
// with the request and carries the request's trace id.
func RequestContext(c *gin.Context) context.Context {
	return context.WithValue(c.Request.Context(), TraceIdKey, c.GetString(TraceIdKey.String()))
}

// SanitizedPayload returns the body stored by the validation middleware.
func SanitizedPayload[T any](c *gin.Context) *T {
	return c.MustGet(SanitizedPayloadKey.String()).(*T)
}

// IsUUID reports whether value is a well-formed UUID.
func IsUUID(value string) bool {
	if value == "" {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}
