package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CartCookieName names the cookie carrying the opaque cart session id.
	CartCookieName = "cartSessionId"

	sessionIDKey      = "cart_session_id"
	sessionPresentKey = "cart_session_present"
	sessionConfigKey  = "cart_session_config"
)

type SessionConfig struct {
	MaxAge time.Duration
	Secure bool
}

// CartSession resolves the cart session from the cartSessionId cookie. It
// never sets a cookie itself; handlers that may start a cart call
// EnsureSession once the request is known to be valid.
func CartSession(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(CartCookieName)
		present := err == nil && sessionID != ""
		if !present {
			sessionID = ""
		}

		c.Set(sessionIDKey, sessionID)
		c.Set(sessionPresentKey, present)
		c.Set(sessionConfigKey, cfg)
		c.Next()
	}
}

// EnsureSession returns the request's cart session, issuing a fresh id as an
// HttpOnly cookie when the client sent none. Repeated calls within one request
// return the same id.
func EnsureSession(c *gin.Context) string {
	if sessionID := SessionID(c); sessionID != "" {
		return sessionID
	}

	cfg, _ := c.MustGet(sessionConfigKey).(SessionConfig)
	sessionID := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CartCookieName, sessionID, int(cfg.MaxAge.Seconds()), "/", "", cfg.Secure, true)
	c.Set(sessionIDKey, sessionID)
	return sessionID
}

// SessionID returns the cart session for the request, or "" when there is none.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

// HasSessionCookie reports whether the client sent a cart session cookie.
func HasSessionCookie(c *gin.Context) bool {
	return c.GetBool(sessionPresentKey)
}
