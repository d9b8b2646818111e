package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campus-routine/routine-api/internal/service"
	appErrors "github.com/campus-routine/routine-api/pkg/errors"
	"github.com/campus-routine/routine-api/pkg/response"
)

// ContextAdminKey is the gin context key storing admin session claims.
const ContextAdminKey = "adminClaims"

// AdminRequired protects routes behind the admin session cookie. API clients
// without cookie support may send the token as a Bearer header instead.
func AdminRequired(authService *service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			header := c.GetHeader("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				token = parts[1]
			}
		}
		if token == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextAdminKey, claims)
		c.Next()
	}
}
