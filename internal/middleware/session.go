package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/limitless-club/booking/internal/auth"
	"github.com/limitless-club/booking/pkg/response"
)

// ContextSessionUser is the key for the signed-in staff username.
const ContextSessionUser = "session_user"

// RequireSession lets staff with a valid session cookie through. Browsers
// without one are sent to the login page and come back afterwards.
func RequireSession(sessions *auth.SessionService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err == nil && token != "" {
			if claims, err := sessions.Validate(token); err == nil {
				c.Set(ContextSessionUser, claims.Username)
				c.Next()
				return
			}
		}
		if response.WantsJSON(c) {
			response.Unauthorized(c, "login required")
			c.Abort()
			return
		}
		c.Redirect(http.StatusSeeOther, "/login?callbackUrl="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

// OptionalSession sets the session user when a valid cookie is present.
func OptionalSession(sessions *auth.SessionService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(cookieName); err == nil && token != "" {
			if claims, err := sessions.Validate(token); err == nil {
				c.Set(ContextSessionUser, claims.Username)
			}
		}
		c.Next()
	}
}
