package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/achievement-console/internal/middleware"
	"github.com/noah-isme/achievement-console/internal/models"
	"github.com/noah-isme/achievement-console/internal/service"
)

type stubReportBackend struct {
	mu           sync.Mutex
	files        []models.ReportFile
	generateResp *models.ReportGenerationResponse
	generateErr  error
	generated    []models.ReportFilter

	generateStarted chan struct{}
	generateGate    chan struct{}
}

func (b *stubReportBackend) ListUsers(context.Context) ([]models.User, error) {
	return []models.User{{ID: "u1", FullName: "أحمد علي"}, {ID: "u2", FullName: "سارة"}}, nil
}

func (b *stubReportBackend) ListMainCriteria(context.Context) ([]models.MainCriteria, error) {
	return []models.MainCriteria{{ID: "m1", Name: "القيادة"}}, nil
}

func (b *stubReportBackend) ListSubCriteria(context.Context) ([]models.SubCriteria, error) {
	return nil, errors.New("sub criteria unavailable")
}

func (b *stubReportBackend) ListReportFiles(context.Context) ([]models.ReportFile, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.ReportFile{}, b.files...), nil
}

func (b *stubReportBackend) GenerateReport(_ context.Context, _ models.ReportType, filter models.ReportFilter) (*models.ReportGenerationResponse, error) {
	if b.generateGate != nil {
		close(b.generateStarted)
		<-b.generateGate
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.generated = append(b.generated, filter)
	return b.generateResp, b.generateErr
}

func (b *stubReportBackend) DeleteReportFile(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	kept := b.files[:0]
	for _, f := range b.files {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	b.files = kept
	return nil
}

type envelopeBody struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Notice *struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"notice"`
	Meta map[string]interface{} `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelopeBody {
	t.Helper()
	var body envelopeBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func newReportRouter(backend *stubReportBackend, claims *models.JWTClaims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	now := func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	registry := service.NewWorkspaceRegistry(
		service.WorkspaceConfig{SearchDebounce: 20 * time.Millisecond},
		service.WorkspaceDeps{Backend: backend, Now: now},
		time.Hour, nil,
	)
	h := NewReportHandler(registry)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set(middleware.ContextUserKey, claims)
		}
		c.Next()
	})
	reports := r.Group("/reports")
	reports.POST("/workspace/load", h.LoadWorkspace)
	reports.GET("/workspace", h.GetWorkspace)
	reports.DELETE("/workspace", h.CloseWorkspace)
	reports.POST("/options/:type/toggle", h.ToggleOption)
	reports.POST("/options/:type/search", h.SearchOptions)
	reports.PUT("/filters", h.UpdateFilters)
	reports.DELETE("/filters", h.ClearFilters)
	reports.POST("/generate", h.Generate)
	reports.GET("/files", h.ListFiles)
	reports.GET("/files/old", h.OldFiles)
	reports.DELETE("/files/old", h.DeleteOldFiles)
	reports.DELETE("/files/:id", h.DeleteFile)
	reports.GET("/files/:id/link", h.FileLink)
	return r
}

func perform(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func reportBackend() *stubReportBackend {
	return &stubReportBackend{
		files: []models.ReportFile{
			{ID: "old-1", PDFURL: "https://files/old_one.pdf", CreatedAt: "2024-12-01T00:00:00Z"},
			{ID: "new-1", PDFURL: "https://files/fresh_report.docx", CreatedAt: "2025-02-27T00:00:00Z"},
		},
		generateResp: &models.ReportGenerationResponse{Success: true, File: "https://files/generated.pdf"},
	}
}

var reportUser = &models.JWTClaims{UserID: "u1", Role: models.RoleUser}

func TestReportHandlerRequiresSession(t *testing.T) {
	r := newReportRouter(reportBackend(), nil)

	rec := perform(r, http.MethodGet, "/reports/workspace", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReportHandlerLoadSurfacesFailures(t *testing.T) {
	r := newReportRouter(reportBackend(), reportUser)

	rec := perform(r, http.MethodPost, "/reports/workspace/load", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	require.NotNil(t, body.Notice)
	assert.Equal(t, "error", body.Notice.Kind)
	assert.Equal(t, "فشل في تحميل المعايير الفرعية", body.Notice.Message)
	assert.Contains(t, body.Meta, "failures")

	var view service.WorkspaceView
	require.NoError(t, json.Unmarshal(body.Data, &view))
	assert.Equal(t, 2, view.TotalFiles)
	assert.Equal(t, 1, view.OldFiles)
}

func TestReportHandlerGenerateFlow(t *testing.T) {
	backend := reportBackend()
	r := newReportRouter(backend, reportUser)
	require.Equal(t, http.StatusOK, perform(r, http.MethodPost, "/reports/workspace/load", nil).Code)

	rec := perform(r, http.MethodPost, "/reports/generate", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MISSING_DATES", decodeEnvelope(t, rec).Error.Code)

	rec = perform(r, http.MethodPost, "/reports/options/users/toggle", map[string]string{"value": "u1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = perform(r, http.MethodPut, "/reports/filters", map[string]string{"startDate": "2025-01-01", "endDate": "2025-02-01"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = perform(r, http.MethodPost, "/reports/generate", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	require.NotNil(t, body.Notice)
	assert.Equal(t, "success", body.Notice.Kind)
	assert.Equal(t, "تم إنشاء التقرير PDF بنجاح!", body.Notice.Message)

	var view service.WorkspaceView
	require.NoError(t, json.Unmarshal(body.Data, &view))
	require.NotNil(t, view.Generation.Result)
	assert.True(t, view.Generation.ShowResults)
	assert.Equal(t, "https://files/generated.pdf", view.Generation.Result.File)

	require.Len(t, backend.generated, 1)
	assert.Equal(t, "u1", backend.generated[0].User)
	assert.Equal(t, "2025-01-01", backend.generated[0].StartDate)
}

func TestReportHandlerGenerateRejectedKeepsResult(t *testing.T) {
	backend := reportBackend()
	backend.generateResp = &models.ReportGenerationResponse{Success: false, Message: "لا توجد بيانات"}
	r := newReportRouter(backend, reportUser)
	perform(r, http.MethodPut, "/reports/filters", map[string]string{"startDate": "2025-01-01", "endDate": "2025-02-01"})

	rec := perform(r, http.MethodPost, "/reports/generate", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "لا توجد بيانات", body.Notice.Message)
	var view service.WorkspaceView
	require.NoError(t, json.Unmarshal(body.Data, &view))
	require.NotNil(t, view.Generation.Result)
	assert.False(t, view.Generation.Result.Success)
}

func TestReportHandlerRejectsUnknownOptionSet(t *testing.T) {
	r := newReportRouter(reportBackend(), reportUser)

	rec := perform(r, http.MethodPost, "/reports/options/teachers/search", map[string]string{"term": "x"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportHandlerInvalidFilterDate(t *testing.T) {
	r := newReportRouter(reportBackend(), reportUser)

	rec := perform(r, http.MethodPut, "/reports/filters", map[string]string{"startDate": "01/02/2025"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_DATE", decodeEnvelope(t, rec).Error.Code)
}

func TestReportHandlerOldFilesAndBulkDelete(t *testing.T) {
	r := newReportRouter(reportBackend(), reportUser)
	perform(r, http.MethodPost, "/reports/workspace/load", nil)

	rec := perform(r, http.MethodGet, "/reports/files/old", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var preview struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &preview))
	assert.Equal(t, 1, preview.Count)

	rec = perform(r, http.MethodDelete, "/reports/files/old", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "success", body.Notice.Kind)
	assert.Equal(t, "تم حذف 1 تقرير بنجاح", body.Notice.Message)

	rec = perform(r, http.MethodDelete, "/reports/files/old", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeEnvelope(t, rec)
	assert.Equal(t, "warning", body.Notice.Kind)
	assert.Equal(t, "لا توجد تقارير قديمة للحذف", body.Notice.Message)
}

func TestReportHandlerDeleteAndLink(t *testing.T) {
	r := newReportRouter(reportBackend(), reportUser)
	perform(r, http.MethodPost, "/reports/workspace/load", nil)

	rec := perform(r, http.MethodGet, "/reports/files/new-1/link", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var link service.FileLink
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &link))
	assert.Equal(t, "https://files/fresh_report.docx", link.DownloadURL)
	assert.Equal(t, models.ReportTypeDOCX, link.FileType)

	rec = perform(r, http.MethodDelete, "/reports/files/new-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "تم حذف التقرير بنجاح", decodeEnvelope(t, rec).Notice.Message)

	rec = perform(r, http.MethodGet, "/reports/files/new-1/link", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportHandlerClearFiltersAndClose(t *testing.T) {
	r := newReportRouter(reportBackend(), reportUser)
	perform(r, http.MethodPut, "/reports/filters", map[string]string{"startDate": "2025-01-01"})

	rec := perform(r, http.MethodDelete, "/reports/filters", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "تم مسح جميع الفلاتر بنجاح", body.Notice.Message)
	var view service.WorkspaceView
	require.NoError(t, json.Unmarshal(body.Data, &view))
	assert.Empty(t, view.StartDate)

	rec = perform(r, http.MethodDelete, "/reports/workspace", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestReportHandlerCloseRefusedWhileGenerating(t *testing.T) {
	backend := reportBackend()
	backend.generateStarted = make(chan struct{})
	backend.generateGate = make(chan struct{})
	r := newReportRouter(backend, reportUser)
	perform(r, http.MethodPut, "/reports/filters", map[string]string{"startDate": "2025-01-01", "endDate": "2025-02-01"})

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		done <- perform(r, http.MethodPost, "/reports/generate", nil)
	}()
	<-backend.generateStarted

	rec := perform(r, http.MethodDelete, "/reports/workspace", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "GENERATION_IN_PROGRESS", decodeEnvelope(t, rec).Error.Code)

	close(backend.generateGate)
	assert.Equal(t, http.StatusOK, (<-done).Code)

	rec = perform(r, http.MethodDelete, "/reports/workspace", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
