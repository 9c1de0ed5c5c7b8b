// internal/interfaces/http/middleware/session.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/your-org/storefront/internal/config"
)

// SessionKey is the gin context key under which the session id is stored.
const SessionKey = "session_id"

// Session assigns each browser a stable session id cookie. Cart and
// favorites documents are keyed by it, so the same visitor sees the same
// cart across requests without signing in.
func Session(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := cfg.Security.SessionCookieName

		sessionID, err := c.Cookie(name)
		if err != nil || sessionID == "" {
			sessionID = uuid.New().String()
			c.SetCookie(name, sessionID, int(cfg.Security.SessionTTL.Seconds()), "/", "", cfg.IsProduction(), true)
		}

		c.Set(SessionKey, sessionID)
		c.Next()
	}
}

// SessionID returns the session id set by the Session middleware.
func SessionID(c *gin.Context) string {
	return c.GetString(SessionKey)
}
