package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/achievement-console/internal/service"
	appErrors "github.com/noah-isme/achievement-console/pkg/errors"
	"github.com/noah-isme/achievement-console/pkg/response"
)

// AuthHandler exposes the signed-in identity.
type AuthHandler struct{}

// NewAuthHandler creates a new handler.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Me godoc
// @Summary Signed-in user card
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, service.CurrentUser(claims))
}
