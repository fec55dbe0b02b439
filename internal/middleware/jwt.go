package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/achievement-console/internal/service"
	appErrors "github.com/noah-isme/achievement-console/pkg/errors"
	"github.com/noah-isme/achievement-console/pkg/httpclient"
	"github.com/noah-isme/achievement-console/pkg/logger"
	"github.com/noah-isme/achievement-console/pkg/middleware/requestid"
	"github.com/noah-isme/achievement-console/pkg/response"
)

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

// JWT protects routes by requiring a valid access token. The token and the
// request id are forwarded to backend calls made while serving the request.
func JWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}
		token := strings.TrimSpace(parts[1])

		claims, err := authService.ValidateToken(token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Set(logger.UserIDKey, claims.UserID)

		ctx := httpclient.WithBearer(c.Request.Context(), token)
		if id := requestid.Value(c); id != "" {
			ctx = httpclient.WithRequestID(ctx, id)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
