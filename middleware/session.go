package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/skillplus-backend/utils"
)

const sessionKey = "session"

// TokenVerifier decodes a bearer token into a session.
type TokenVerifier interface {
	Verify(token string) (*utils.Session, error)
}

// Session decodes an optional bearer token and stores the result in the gin
// context. Missing, malformed or expired tokens leave the request anonymous;
// RequireRoles decides what anonymous callers may do.
func Session(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		// Cho iOS: thử X-Auth-Token nếu không có Authorization
		if authHeader == "" {
			authHeader = c.GetHeader("X-Auth-Token")
		}
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.Next()
			return
		}

		session, err := tokens.Verify(parts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// GetSession returns the caller's session, or nil for anonymous requests.
func GetSession(c *gin.Context) *utils.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*utils.Session)
	return s
}
