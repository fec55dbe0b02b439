package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/achievement-console/internal/models"
	appErrors "github.com/noah-isme/achievement-console/pkg/errors"
	"github.com/noah-isme/achievement-console/pkg/response"
)

// RequireRoles admits callers whose token carries one of roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		value, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := value.(*models.JWTClaims)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; ok {
			c.Next()
			return
		}
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "غير مصرح لك بالوصول إلى هذه الصفحة"))
		c.Abort()
	}
}
