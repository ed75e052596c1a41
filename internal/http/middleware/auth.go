package middleware

import (
	"net/http"
	"strings"

	"busfinder/internal/domain"

	"github.com/gin-gonic/gin"
)

// TokenParser validates a bearer token.
type TokenParser interface {
	ParseToken(raw string) (domain.RequestContext, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's role under "userRole" for RequireRoles.
func RequireAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "missing bearer token",
				"request_id": GetRequestID(c),
			})
			return
		}

		rc, err := parser.ParseToken(strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      err.Error(),
				"request_id": GetRequestID(c),
			})
			return
		}

		c.Set("userSubject", rc.Subject)
		c.Set("userRole", rc.Role)
		c.Next()
	}
}
