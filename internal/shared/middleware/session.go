package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"biblioteca-console/internal/gateway"
	"biblioteca-console/internal/session"
	"biblioteca-console/internal/shared/response"
	"biblioteca-console/pkg/logger"
)

const sessionContextKey = "console_session"

// LoadSession resolves the session cookie into the request's identity. It
// never rejects by itself: anonymous requests pass through untouched so the
// login endpoints stay reachable. When a session exists, the backend bearer
// token is injected into the request context for the gateway client.
func LoadSession(store *session.Store, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cookieName)
		if err != nil || sessionID == "" {
			c.Next()
			return
		}

		sess, err := store.Get(c.Request.Context(), sessionID)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				logger.Error("session load failed", err)
			}
			c.Next()
			return
		}

		c.Set(sessionContextKey, sess)
		c.Request = c.Request.WithContext(
			gateway.WithToken(c.Request.Context(), sess.Token),
		)
		c.Next()
	}
}

// RequireSession gates protected routes: no authenticated session, no view.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := SessionFrom(c); !ok {
			response.Unauthorized(c, "sesión requerida")
			c.Abort()
			return
		}
		c.Next()
	}
}

// SessionFrom fetches the loaded session, if any.
func SessionFrom(c *gin.Context) (*session.Session, bool) {
	value, exists := c.Get(sessionContextKey)
	if !exists {
		return nil, false
	}
	sess, ok := value.(*session.Session)
	return sess, ok
}
