package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"skillswap-web/internal/schemas"
	"skillswap-web/internal/utils"
)

// ValidateAndSanitizeStruct binds the JSON body into a fresh T, strips markup from
// its free-text fields and validates it. Handlers read the result with
// utils.SanitizedPayload. Failures end the request with a 400 carrying field errors.
func ValidateAndSanitizeStruct[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		obj := new(T)
		if err := c.ShouldBindJSON(obj); err != nil {
			utils.AbortWithError(c, schemas.NewAppError(schemas.CodeValidationError, schemas.MessageValidationError), http.StatusBadRequest, err)
			return
		}

		validator := utils.GetValidator()
		if err := validator.SanitizeData(obj); err != nil {
			utils.AbortWithError(c, schemas.NewAppError(schemas.CodeValidationError, schemas.MessageValidationError), http.StatusBadRequest, err)
			return
		}

		if appErr := validator.ValidateStruct(obj); appErr != nil {
			utils.AbortWithError(c, appErr, http.StatusBadRequest, nil)
			return
		}

		c.Set(utils.SanitizedPayloadKey.String(), obj)
		c.Next()
	}
}
