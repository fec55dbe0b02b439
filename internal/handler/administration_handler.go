package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/achievement-console/internal/dto"
	"github.com/noah-isme/achievement-console/internal/models"
	"github.com/noah-isme/achievement-console/internal/service"
	appErrors "github.com/noah-isme/achievement-console/pkg/errors"
	"github.com/noah-isme/achievement-console/pkg/response"
)

type administrationService interface {
	Load(ctx context.Context, filter models.UserFilter) (*service.AdministrationView, error)
	CreateUser(ctx context.Context, req service.CreateUserRequest) error
	UpdateUser(ctx context.Context, id string, req service.UpdateUserRequest) error
	ToggleStatus(ctx context.Context, id string) (models.UserStatus, error)
	DeleteUser(ctx context.Context, id string) error
	ListSectors(ctx context.Context) ([]models.Sector, error)
	CreateSector(ctx context.Context, req service.SectorRequest) error
	UpdateSector(ctx context.Context, id string, req service.SectorRequest, filter models.UserFilter) (*service.AdministrationView, error)
	DeleteSector(ctx context.Context, id string, filter models.UserFilter) (*service.AdministrationView, error)
}

// AdministrationHandler exposes user and sector management. Every mutation
// answers with the reloaded screen.
type AdministrationHandler struct {
	admin administrationService
}

// NewAdministrationHandler constructs handler.
func NewAdministrationHandler(admin administrationService) *AdministrationHandler {
	return &AdministrationHandler{admin: admin}
}

// ListUsers godoc
// @Summary Administration screen
// @Tags Administration
// @Produce json
// @Param search query string false "Full name contains"
// @Param sector query string false "Sector ID"
// @Success 200 {object} response.Envelope
// @Router /admin/users [get]
func (h *AdministrationHandler) ListUsers(c *gin.Context) {
	view, err := h.admin.Load(c.Request.Context(), userFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// CreateUser godoc
// @Summary Add a user
// @Tags Administration
// @Accept json
// @Produce json
// @Param payload body service.CreateUserRequest true "User"
// @Success 201 {object} response.Envelope
// @Router /admin/users [post]
func (h *AdministrationHandler) CreateUser(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	if err := h.admin.CreateUser(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	h.reload(c, http.StatusCreated, service.NoticeUserCreated)
}

// UpdateUser godoc
// @Summary Edit a user
// @Tags Administration
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param payload body service.UpdateUserRequest true "User"
// @Success 200 {object} response.Envelope
// @Router /admin/users/{id} [put]
func (h *AdministrationHandler) UpdateUser(c *gin.Context) {
	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	if err := h.admin.UpdateUser(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	h.reload(c, http.StatusOK, service.NoticeUserUpdated)
}

// ToggleStatus godoc
// @Summary Toggle a user between active and inactive
// @Tags Administration
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /admin/users/{id}/status [patch]
func (h *AdministrationHandler) ToggleStatus(c *gin.Context) {
	status, err := h.admin.ToggleStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.admin.Load(c.Request.Context(), userFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithNotice(c, http.StatusOK, dto.StatusToggleResponse{Status: status, Administration: view}, response.Success(service.NoticeStatusUpdated))
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags Administration
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /admin/users/{id} [delete]
func (h *AdministrationHandler) DeleteUser(c *gin.Context) {
	if err := h.admin.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	h.reload(c, http.StatusOK, service.NoticeUserDeleted)
}

// ListSectors godoc
// @Summary List sectors
// @Tags Administration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/sectors [get]
func (h *AdministrationHandler) ListSectors(c *gin.Context) {
	sectors, err := h.admin.ListSectors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sectors)
}

// CreateSector godoc
// @Summary Add a sector
// @Tags Administration
// @Accept json
// @Produce json
// @Param payload body service.SectorRequest true "Sector"
// @Success 201 {object} response.Envelope
// @Router /admin/sectors [post]
func (h *AdministrationHandler) CreateSector(c *gin.Context) {
	var req service.SectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	if err := h.admin.CreateSector(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	h.reload(c, http.StatusCreated, service.NoticeSectorSaved)
}

// UpdateSector godoc
// @Summary Rename a sector
// @Tags Administration
// @Accept json
// @Produce json
// @Param id path string true "Sector ID"
// @Param payload body service.SectorRequest true "Sector"
// @Success 200 {object} response.Envelope
// @Router /admin/sectors/{id} [put]
func (h *AdministrationHandler) UpdateSector(c *gin.Context) {
	var req service.SectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	view, err := h.admin.UpdateSector(c.Request.Context(), c.Param("id"), req, userFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithNotice(c, http.StatusOK, view, response.Success(service.NoticeSectorSaved))
}

// DeleteSector godoc
// @Summary Delete a sector
// @Tags Administration
// @Produce json
// @Param id path string true "Sector ID"
// @Success 200 {object} response.Envelope
// @Router /admin/sectors/{id} [delete]
func (h *AdministrationHandler) DeleteSector(c *gin.Context) {
	view, err := h.admin.DeleteSector(c.Request.Context(), c.Param("id"), userFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithNotice(c, http.StatusOK, view, response.Success(service.NoticeSectorDeleted))
}

func (h *AdministrationHandler) reload(c *gin.Context, status int, notice string) {
	view, err := h.admin.Load(c.Request.Context(), userFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithNotice(c, status, view, response.Success(notice))
}

func userFilter(c *gin.Context) models.UserFilter {
	var q dto.UserListQuery
	_ = c.ShouldBindQuery(&q)
	return q.ToFilter()
}
