package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/noah-isme/achievement-console/internal/models"
	"github.com/noah-isme/achievement-console/pkg/httpclient"
)

// ActivityRepository proxies activity, feed and report file endpoints.
type ActivityRepository struct {
	client httpclient.Client
}

// NewActivityRepository creates a new instance of ActivityRepository.
func NewActivityRepository(client httpclient.Client) *ActivityRepository {
	return &ActivityRepository{client: client}
}

// ListActivities returns the current user's activities from {success, activities}.
func (r *ActivityRepository) ListActivities(ctx context.Context) ([]models.Activity, error) {
	var raw json.RawMessage
	if err := r.client.Do(ctx, httpclient.Request{Route: routeActivities, Path: routeActivities}, &raw); err != nil {
		return nil, err
	}
	if err := businessError(decodeEnvelope(raw), "فشل تحميل الأنشطة"); err != nil {
		return nil, err
	}
	activities := make([]models.Activity, 0)
	if err := unwrapList(raw, &activities, "activities", "data"); err != nil {
		return nil, err
	}
	return activities, nil
}

// ListRecentAchievements returns the feed, bare or under {activities}.
func (r *ActivityRepository) ListRecentAchievements(ctx context.Context) ([]models.RecentAchievement, error) {
	var raw json.RawMessage
	if err := r.client.Do(ctx, httpclient.Request{Route: routeRecent, Path: routeRecent}, &raw); err != nil {
		return nil, err
	}
	items := make([]models.RecentAchievement, 0)
	if err := unwrapList(raw, &items, "activities"); err != nil {
		return nil, err
	}
	return items, nil
}

// ListReportFiles returns previously generated reports from {success, pdfFiles}.
func (r *ActivityRepository) ListReportFiles(ctx context.Context) ([]models.ReportFile, error) {
	var raw json.RawMessage
	if err := r.client.Do(ctx, httpclient.Request{Route: routeReports, Path: routeReports}, &raw); err != nil {
		return nil, err
	}
	if err := businessError(decodeEnvelope(raw), "فشل في تحميل التقارير السابقة"); err != nil {
		return nil, err
	}
	files := make([]models.ReportFile, 0)
	if err := unwrapList(raw, &files, "pdfFiles"); err != nil {
		return nil, err
	}
	return files, nil
}

// GenerateReport asks the backend to render a report. A success:false reply
// is returned as-is so the caller can surface its message.
func (r *ActivityRepository) GenerateReport(ctx context.Context, reportType models.ReportType, filter models.ReportFilter) (*models.ReportGenerationResponse, error) {
	var resp models.ReportGenerationResponse
	path := routeReports + "/" + string(reportType)
	req := httpclient.Request{Method: http.MethodPost, Route: path, Path: path, Body: filter}
	if err := r.client.Do(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteReportFile removes a generated report.
func (r *ActivityRepository) DeleteReportFile(ctx context.Context, id string) error {
	var raw json.RawMessage
	req := httpclient.Request{Method: http.MethodDelete, Route: routeReport, Path: routeReports + "/" + url.PathEscape(id)}
	if err := r.client.Do(ctx, req, &raw); err != nil {
		return err
	}
	return businessError(decodeEnvelope(raw), "فشل في حذف التقرير")
}
