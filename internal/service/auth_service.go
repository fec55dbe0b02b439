package service

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/achievement-console/internal/models"
	appErrors "github.com/noah-isme/achievement-console/pkg/errors"
)

const defaultDisplayName = "مستخدم"

// AuthConfig defines how access tokens issued by the backend are verified.
type AuthConfig struct {
	AccessTokenSecret string
}

// AuthService validates session tokens and exposes the signed-in user.
type AuthService struct {
	logger *zap.Logger
	config AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{logger: logger, config: config}
}

// ValidateToken parses and validates an HS256 access token.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	})
	if err != nil {
		s.logger.Debug("token rejected", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

// CurrentUser builds the dashboard identity card from session claims.
func CurrentUser(claims *models.JWTClaims) models.CurrentUser {
	user := models.CurrentUser{FullName: defaultDisplayName, Role: models.RoleUser}
	if claims != nil {
		user.ID = claims.UserID
		user.Username = claims.Username
		if name := strings.TrimSpace(claims.FullName); name != "" {
			user.FullName = name
		}
		if claims.Role == models.RoleAdmin {
			user.Role = models.RoleAdmin
		}
	}
	if user.Role == models.RoleAdmin {
		user.RoleDisplayName = "مدير النظام"
		user.RoleBadgeClass = "badge bg-danger"
	} else {
		user.RoleDisplayName = "مستخدم"
		user.RoleBadgeClass = "badge bg-primary"
	}
	return user
}
