package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/mixlist/internal/session"
	"github.com/windoze95/mixlist/internal/util"
)

// SessionCookieName is the cookie carrying the browser's session id.
const SessionCookieName = "mixlist_session"

// AttachSessionToContext resolves the session cookie, creating a session when
// the cookie is missing or names an unknown session, and stores the id in the
// context. The cookie has no expiry, so it ends with the browser session.
func AttachSessionToContext(store *session.MemoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(SessionCookieName)
		sess := store.GetOrCreate(cookie)

		if sess.ID != cookie {
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     SessionCookieName,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		c.Set(util.SessionContextKey, sess.ID)
		c.Next()
	}
}

// RequireSession stores the cookie's session id in the context, or answers
// 404 when the cookie is missing or names an unknown session. It never
// creates a session; only the page does.
func RequireSession(store *session.MemoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil || cookie == "" {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		if _, err := store.Get(cookie); err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.Set(util.SessionContextKey, cookie)
		c.Next()
	}
}
