package middleware

import (
	"errors"

	"mindhaven/internal/config"
	"mindhaven/internal/logger"
	"mindhaven/internal/session"
	appErrors "mindhaven/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	SessionKey      = "session"
	SessionTokenKey = "session_token"
)

// SessionMiddleware resolves the browser's session cookie into a session
// record. Requests without a valid session pass through as anonymous;
// access control is the role middleware's job.
func SessionMiddleware(cfg *config.SessionConfig, store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cfg.CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		record, err := store.Get(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, appErrors.ErrSessionNotFound) {
				logger.Error("Failed to load session",
					zap.String("request_id", GetRequestID(c)),
					zap.Error(err),
				)
			}
			c.Next()
			return
		}

		c.Set(SessionKey, record)
		c.Set(SessionTokenKey, token)
		c.Next()
	}
}

// GetSession returns the logged-in session record, or nil for anonymous
// requests.
func GetSession(c *gin.Context) *session.Record {
	value, exists := c.Get(SessionKey)
	if !exists {
		return nil
	}

	record, ok := value.(*session.Record)
	if !ok || !record.LoggedIn {
		return nil
	}
	return record
}

// GetSessionToken returns the raw token for the current session, if any.
func GetSessionToken(c *gin.Context) string {
	value, exists := c.Get(SessionTokenKey)
	if !exists {
		return ""
	}
	token, _ := value.(string)
	return token
}
