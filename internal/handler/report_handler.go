package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/achievement-console/internal/dto"
	"github.com/noah-isme/achievement-console/internal/service"
	appErrors "github.com/noah-isme/achievement-console/pkg/errors"
	"github.com/noah-isme/achievement-console/pkg/response"
)

type workspaceRegistry interface {
	Get(userID string) *service.ReportWorkspace
	Discard(ctx context.Context, userID string) error
}

// ReportHandler serves the reports screen. Each authenticated user works on
// their own workspace.
type ReportHandler struct {
	registry workspaceRegistry
}

// NewReportHandler constructs handler.
func NewReportHandler(registry workspaceRegistry) *ReportHandler {
	return &ReportHandler{registry: registry}
}

func (h *ReportHandler) workspace(c *gin.Context) (*service.ReportWorkspace, bool) {
	userID := userIDFromContext(c)
	if userID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil, false
	}
	return h.registry.Get(userID), true
}

func optionType(c *gin.Context) (service.OptionType, bool) {
	t, err := service.ParseOptionType(c.Param("type"))
	if err != nil {
		response.Error(c, err)
		return "", false
	}
	return t, true
}

// LoadWorkspace godoc
// @Summary Load users, criteria and previous reports
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/workspace/load [post]
func (h *ReportHandler) LoadWorkspace(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	view, failures := ws.Load(c.Request.Context())
	if len(failures) == 0 {
		response.JSON(c, http.StatusOK, view)
		return
	}
	response.WithNotice(c, http.StatusOK, view, response.Failure(failures[0].Message), map[string]interface{}{"failures": failures})
}

// GetWorkspace godoc
// @Summary Current reports screen state
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/workspace [get]
func (h *ReportHandler) GetWorkspace(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, ws.View())
}

// CloseWorkspace godoc
// @Summary Discard the caller's reports workspace and its saved filters
// @Tags Reports
// @Success 204
// @Router /reports/workspace [delete]
func (h *ReportHandler) CloseWorkspace(c *gin.Context) {
	userID := userIDFromContext(c)
	if userID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.registry.Discard(c.Request.Context(), userID); err != nil {
		if errors.Is(err, appErrors.ErrGenerationInProgress) {
			response.Error(c, err)
			return
		}
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to discard workspace"))
		return
	}
	response.NoContent(c)
}

// SearchOptions godoc
// @Summary Search one option set
// @Tags Reports
// @Accept json
// @Produce json
// @Param type path string true "users|mainCriteria|subCriteria|status"
// @Param payload body dto.OptionSearchRequest true "Term"
// @Success 200 {object} response.Envelope
// @Router /reports/options/{type}/search [post]
func (h *ReportHandler) SearchOptions(c *gin.Context) {
	t, ok := optionType(c)
	if !ok {
		return
	}
	var req dto.OptionSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, ws.Search(t, req.Term))
}

// ToggleOption godoc
// @Summary Select or deselect one option
// @Tags Reports
// @Accept json
// @Produce json
// @Param type path string true "users|mainCriteria|subCriteria|status"
// @Param payload body dto.OptionToggleRequest true "Value"
// @Success 200 {object} response.Envelope
// @Router /reports/options/{type}/toggle [post]
func (h *ReportHandler) ToggleOption(c *gin.Context) {
	t, ok := optionType(c)
	if !ok {
		return
	}
	var req dto.OptionToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	view, err := ws.Toggle(t, req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// SelectAll godoc
// @Summary Select every displayed option
// @Tags Reports
// @Produce json
// @Param type path string true "users|mainCriteria|subCriteria|status"
// @Success 200 {object} response.Envelope
// @Router /reports/options/{type}/select-all [post]
func (h *ReportHandler) SelectAll(c *gin.Context) {
	t, ok := optionType(c)
	if !ok {
		return
	}
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, ws.SelectAll(t))
}

// ClearSelection godoc
// @Summary Clear one option set
// @Tags Reports
// @Produce json
// @Param type path string true "users|mainCriteria|subCriteria|status"
// @Success 200 {object} response.Envelope
// @Router /reports/options/{type}/clear [post]
func (h *ReportHandler) ClearSelection(c *gin.Context) {
	t, ok := optionType(c)
	if !ok {
		return
	}
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, ws.ClearSelection(t))
}

// ToggleDropdown godoc
// @Summary Open or close a dropdown
// @Tags Reports
// @Produce json
// @Param type path string true "users|mainCriteria|subCriteria|status"
// @Success 200 {object} response.Envelope
// @Router /reports/dropdowns/{type}/toggle [post]
func (h *ReportHandler) ToggleDropdown(c *gin.Context) {
	t, ok := optionType(c)
	if !ok {
		return
	}
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, ws.ToggleDropdown(t))
}

// CloseDropdowns godoc
// @Summary Close every dropdown
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/dropdowns/close [post]
func (h *ReportHandler) CloseDropdowns(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, ws.CloseAllDropdowns())
}

// UpdateFilters godoc
// @Summary Set dates, report type or catalog type filter
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body dto.ReportFiltersRequest true "Filters"
// @Success 200 {object} response.Envelope
// @Router /reports/filters [put]
func (h *ReportHandler) UpdateFilters(c *gin.Context) {
	var req dto.ReportFiltersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	view, err := ws.UpdateFilters(c.Request.Context(), service.FilterUpdate{
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		ReportType:     req.ReportType,
		FileTypeFilter: req.FileTypeFilter,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// ClearFilters godoc
// @Summary Reset every filter
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/filters [delete]
func (h *ReportHandler) ClearFilters(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	view, notice := ws.ClearAllFilters(c.Request.Context())
	response.WithNotice(c, http.StatusOK, view, response.Success(notice))
}

// Generate godoc
// @Summary Generate a report from the current filters
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /reports/generate [post]
func (h *ReportHandler) Generate(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	view, outcome := ws.Generate(c.Request.Context())
	if outcome.Err != nil {
		if outcome.Result == nil {
			response.Error(c, outcome.Err)
			return
		}
		response.ErrorWithData(c, outcome.Err, view)
		return
	}
	response.WithNotice(c, http.StatusOK, view, response.Success(service.SuccessMessage(outcome.Result.FileType)))
}

// ListFiles godoc
// @Summary Filtered report catalog
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/files [get]
func (h *ReportHandler) ListFiles(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	view := ws.View()
	response.JSON(c, http.StatusOK, view.Files, map[string]interface{}{
		"total":         view.TotalFiles,
		"old":           view.OldFiles,
		"filterSummary": view.FilterSummary,
	})
}

// RefreshFiles godoc
// @Summary Re-fetch the report catalog
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/files/refresh [post]
func (h *ReportHandler) RefreshFiles(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	view, err := ws.RefreshFiles(c.Request.Context())
	if err != nil {
		response.ErrorWithData(c, err, view)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// SearchFiles godoc
// @Summary Search the report catalog
// @Description The search is applied after a short pause; searchPending is true until then.
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body dto.FileSearchRequest true "Term"
// @Success 200 {object} response.Envelope
// @Router /reports/files/search [put]
func (h *ReportHandler) SearchFiles(c *gin.Context) {
	var req dto.FileSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, ws.UpdateSearch(c.Request.Context(), req.Term))
}

// DeleteFile godoc
// @Summary Delete one report
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.Envelope
// @Router /reports/files/{id} [delete]
func (h *ReportHandler) DeleteFile(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	view, notice, err := ws.DeleteFile(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithNotice(c, http.StatusOK, view, response.Success(notice))
}

// OldFiles godoc
// @Summary Preview reports a bulk deletion would remove
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/files/old [get]
func (h *ReportHandler) OldFiles(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	files := ws.OldFiles()
	response.JSON(c, http.StatusOK, dto.OldFilesResponse{Count: len(files), Files: files})
}

// DeleteOldFiles godoc
// @Summary Delete every old report
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/files/old [delete]
func (h *ReportHandler) DeleteOldFiles(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	view, result, notice := ws.DeleteOldFiles(c.Request.Context())
	payload := dto.BulkDeleteResponse{
		Workspace: view,
		Targeted:  result.Targeted,
		Deleted:   result.Deleted,
		Failed:    result.Failed,
	}
	n := response.Success(notice.Message)
	if notice.Warning {
		n = response.Warning(notice.Message)
	}
	response.WithNotice(c, http.StatusOK, payload, n)
}

// FileLink godoc
// @Summary View and download links of a report
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.Envelope
// @Router /reports/files/{id}/link [get]
func (h *ReportHandler) FileLink(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	link, err := ws.Link(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, link)
}
