package dto

import (
	"github.com/noah-isme/achievement-console/internal/models"
	"github.com/noah-isme/achievement-console/internal/service"
)

// UserListQuery filters the administration user table.
type UserListQuery struct {
	Search string `form:"search"`
	Sector string `form:"sector"`
}

// ToFilter converts the query into a service filter.
func (q UserListQuery) ToFilter() models.UserFilter {
	return models.UserFilter{Search: q.Search, Sector: q.Sector}
}

// OptionSearchRequest searches one option set.
type OptionSearchRequest struct {
	Term string `json:"term"`
}

// OptionToggleRequest flips one option.
type OptionToggleRequest struct {
	Value string `json:"value" binding:"required"`
}

// ReportFiltersRequest updates dates, report type or the catalog type filter.
// Omitted fields keep their value.
type ReportFiltersRequest struct {
	StartDate      *string                `json:"startDate"`
	EndDate        *string                `json:"endDate"`
	ReportType     *models.ReportType     `json:"reportType"`
	FileTypeFilter *models.FileTypeFilter `json:"fileTypeFilter"`
}

// FileSearchRequest searches the report catalog.
type FileSearchRequest struct {
	Term string `json:"term"`
}

// OldFilesResponse previews the files a bulk deletion would remove.
type OldFilesResponse struct {
	Count int                     `json:"count"`
	Files []models.ReportFileView `json:"files"`
}

// BulkDeleteResponse carries the catalog after a bulk deletion and its counts.
type BulkDeleteResponse struct {
	Workspace service.WorkspaceView `json:"workspace"`
	Targeted  int                   `json:"targeted"`
	Deleted   int                   `json:"deleted"`
	Failed    int                   `json:"failed"`
}

// StatusToggleResponse reports a user's new status with the refreshed table.
type StatusToggleResponse struct {
	Status         models.UserStatus           `json:"status"`
	Administration *service.AdministrationView `json:"administration"`
}
