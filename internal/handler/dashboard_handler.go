package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/achievement-console/internal/models"
	"github.com/noah-isme/achievement-console/internal/service"
	appErrors "github.com/noah-isme/achievement-console/pkg/errors"
	"github.com/noah-isme/achievement-console/pkg/export"
	"github.com/noah-isme/achievement-console/pkg/response"
)

type dashboardService interface {
	Load(ctx context.Context, claims *models.JWTClaims) *service.DashboardView
}

type exportService interface {
	ExportActivities(ctx context.Context, format export.Format) (*service.ExportResult, error)
	OpenDownload(token string) (*service.ExportDownload, error)
}

// DashboardHandler wires dashboard and export services to HTTP endpoints.
type DashboardHandler struct {
	dashboard dashboardService
	exports   exportService
}

// NewDashboardHandler constructs the handler. exports may be nil when
// exporting is disabled.
func NewDashboardHandler(dashboard dashboardService, exports exportService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, exports: exports}
}

// Dashboard godoc
// @Summary Activity statistics, table and recent achievements
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	view := h.dashboard.Load(c.Request.Context(), claims)
	if len(view.Failures) > 0 {
		response.WithNotice(c, http.StatusOK, view, response.Failure(view.Failures[0].Message))
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Export godoc
// @Summary Export the activity table
// @Tags Dashboard
// @Produce json
// @Param format query string false "csv, pdf or xlsx" default(csv)
// @Success 201 {object} response.Envelope
// @Router /dashboard/export [post]
func (h *DashboardHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "export service not configured"))
		return
	}
	format, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatCSV)))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	result, err := h.exports.ExportActivities(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result, response.Success("تم تصدير الأنشطة بنجاح"))
}

// Download godoc
// @Summary Download an export via signed token
// @Tags Dashboard
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} binary
// @Router /exports/{token} [get]
func (h *DashboardHandler) Download(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "export service not configured"))
		return
	}
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	download, err := h.exports.OpenDownload(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer download.File.Close() //nolint:errcheck
	info, err := download.File.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read export"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", download.Name))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, info.Size(), download.ContentType, download.File, nil)
}
