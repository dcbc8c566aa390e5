package middleware

import (
	"github.com/gin-gonic/gin"
	"skillswap-web/internal/utils"
)

// InjectTrace tags every request with a trace id, reusing the caller's X-Trace-Id
// when it is a valid UUID so traces can span the frontend, the BFF and the backend.
func InjectTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceId := c.GetHeader("X-Trace-Id")
		if !utils.IsUUID(traceId) {
			traceId = utils.GenerateTraceId()
		}
		c.Set(utils.TraceIdKey.String(), traceId)
		c.Header("X-Trace-Id", traceId)
		c.Next()
	}
}
