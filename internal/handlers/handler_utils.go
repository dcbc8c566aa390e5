package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"skillswap-web/internal/coordinator"
	"skillswap-web/internal/schemas"
	"skillswap-web/internal/utils"
)

// sessionHandler resolves the coordinator of the requesting browser.
type sessionHandler struct {
	Sessions SessionProvider
}

func (handler *sessionHandler) session(c *gin.Context) (context.Context, *coordinator.Coordinator) {
	ctx := utils.RequestContext(c)
	return ctx, handler.Sessions.Coordinator(ctx, c.GetString(utils.BrowserSessionKey.String()))
}

// render answers an intent with the fresh view model. Failed intents are
// reported through the view's notices and last error, not the status code.
func render(c *gin.Context, coord *coordinator.Coordinator) {
	offset, limit := utils.ParsePaginationParams(c)
	view := coord.Render(coordinator.ViewOptions{Offset: offset, Limit: limit})
	utils.WriteAndLogResponse(c, view, http.StatusOK)
}

func pathID(c *gin.Context, key string) schemas.ID {
	return schemas.ID(c.Param(key))
}

// statusFor maps an AppError to the status of a non-view response.
func statusFor(appErr *schemas.AppError) int {
	if appErr.Status != 0 {
		return appErr.Status
	}
	switch appErr.Code {
	case schemas.CodeValidationError:
		return http.StatusBadRequest
	case schemas.CodeUnauthorized:
		return http.StatusUnauthorized
	case schemas.CodePermissionDenied, schemas.CodeRoleRestricted, schemas.CodeForbidden:
		return http.StatusForbidden
	case schemas.CodeNotFound:
		return http.StatusNotFound
	case schemas.CodeTimeoutError:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
