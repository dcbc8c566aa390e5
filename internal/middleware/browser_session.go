package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"skillswap-web/internal/utils"
)

// browserSessionMaxAge matches how long a browser's local storage is retained.
const browserSessionMaxAge = 30 * 24 * 60 * 60

// BrowserSession identifies the browser behind a request by the session header or
// cookie, issuing a new id when neither carries a valid one.
func BrowserSession(secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(utils.BrowserSessionHeader)
		if sessionID == "" {
			sessionID, _ = c.Cookie(utils.BrowserSessionCookie)
		}
		if !utils.IsUUID(sessionID) {
			sessionID = uuid.New().String()
			utils.LogMessageWithFields(c, "debug", "Issued new browser session")
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(utils.BrowserSessionCookie, sessionID, browserSessionMaxAge, "/", "", secureCookie, true)
		c.Header(utils.BrowserSessionHeader, sessionID)
		c.Set(utils.BrowserSessionKey.String(), sessionID)
		c.Next()
	}
}
