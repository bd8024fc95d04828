package middleware

import (
	"net/http"
	"strings"

	"complaint_tracker/internal/domain"
	"complaint_tracker/internal/store"
	"complaint_tracker/internal/utils"

	"github.com/gin-gonic/gin"
)

// SessionKey is the gin context key carrying the *domain.Session.
const SessionKey = "session"

// sessionFromRequest resolves the bearer token against the persisted session
// record. A token whose session id no longer matches the record is stale
// (logged out, or superseded by a newer login) and resolves to nil.
func sessionFromRequest(c *gin.Context, secret string, st *store.Store) *domain.Session {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil
	}
	claims, err := utils.ParseJWT(strings.TrimPrefix(authHeader, "Bearer "), secret)
	if err != nil {
		return nil
	}
	sess, err := st.Session()
	if err != nil || sess == nil || sess.ID != claims.SessionID {
		return nil
	}
	return sess
}

// SessionMiddleware requires a valid, still-active session.
func SessionMiddleware(secret string, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFromRequest(c, secret, st)
		if sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		c.Set(SessionKey, sess)
		c.Next()
	}
}

// OptionalSessionMiddleware attaches the session when one resolves and lets
// anonymous callers through. Complaint submission and upvotes work either
// way.
func OptionalSessionMiddleware(secret string, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess := sessionFromRequest(c, secret, st); sess != nil {
			c.Set(SessionKey, sess)
		}
		c.Next()
	}
}

// CurrentSession pulls the session placed by the middleware, or nil.
func CurrentSession(c *gin.Context) *domain.Session {
	if v, ok := c.Get(SessionKey); ok {
		if sess, ok := v.(*domain.Session); ok {
			return sess
		}
	}
	return nil
}
