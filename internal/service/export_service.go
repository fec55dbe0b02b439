package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/achievement-console/internal/models"
	appErrors "github.com/noah-isme/achievement-console/pkg/errors"
	"github.com/noah-isme/achievement-console/pkg/export"
	"github.com/noah-isme/achievement-console/pkg/storage"
)

const activitiesExportTitle = "تقرير الأنشطة"

// Activity export columns.
const (
	colTitle        = "العنوان"
	colStatus       = "الحالة"
	colSaveStatus   = "حالة الحفظ"
	colUser         = "المستخدم"
	colMainCriteria = "المعيار الرئيسي"
	colSubCriteria  = "المعيار الفرعي"
	colCreatedAt    = "تاريخ الإنشاء"
)

// Download token failures.
var (
	ErrExportInvalid  = appErrors.Clone(appErrors.ErrForbidden, "رابط التحميل غير صالح")
	ErrExportExpired  = appErrors.New("EXPORT_EXPIRED", http.StatusGone, "انتهت صلاحية رابط التحميل")
	ErrExportNotFound = appErrors.Clone(appErrors.ErrNotFound, "ملف التصدير غير موجود")
)

type activitySource interface {
	Activities(ctx context.Context) ([]models.ActivityRow, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

// DatasetRenderer renders an export file.
type DatasetRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	ID        string        `json:"id"`
	Token     string        `json:"token"`
	URL       string        `json:"url"`
	Format    export.Format `json:"format"`
	Rows      int           `json:"rows"`
	ExpiresAt time.Time     `json:"expiresAt"`
}

// ExportDownload is an opened export ready to be streamed.
type ExportDownload struct {
	File        *os.File
	Name        string
	ContentType string
}

// ExportService renders the dashboard activity table and serves the files
// through signed, expiring URLs.
type ExportService struct {
	source    activitySource
	storage   fileStorage
	renderers map[export.Format]DatasetRenderer
	signer    *storage.SignedURLSigner
	logger    *zap.Logger
	cfg       ExportConfig
	now       func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to
// the default exporters.
func NewExportService(source activitySource, store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger, renderers map[export.Format]DatasetRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	all := map[export.Format]DatasetRenderer{
		export.FormatCSV:  export.NewCSVExporter(),
		export.FormatPDF:  export.NewPDFExporter(),
		export.FormatXLSX: export.NewXLSXExporter(),
	}
	for format, r := range renderers {
		if r != nil {
			all[format] = r
		}
	}
	return &ExportService{
		source:    source,
		storage:   store,
		renderers: all,
		signer:    signer,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// ExportActivities renders the activity table in format and returns a
// signed download URL.
func (s *ExportService) ExportActivities(ctx context.Context, format export.Format) (*ExportResult, error) {
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	rows, err := s.source.Activities(ctx)
	if err != nil {
		return nil, appErrors.Clone(appErrors.FromError(err), msgLoadActivities)
	}

	dataset := ActivitiesDataset(rows)
	payload, err := renderer.Render(dataset, activitiesExportTitle)
	if err != nil {
		s.logger.Error("failed to render export", zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	id := uuid.NewString()
	relPath, err := s.storage.Save(s.buildFilename(id, format), payload)
	if err != nil {
		s.logger.Error("failed to store export", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}

	token, expiresAt, err := s.signer.Generate(id, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export")
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	s.logger.Info("activities exported", zap.String("export_id", id), zap.String("format", string(format)), zap.Int("rows", len(rows)))
	return &ExportResult{
		ID:        id,
		Token:     token,
		URL:       fmt.Sprintf("%s/exports/%s", prefix, token),
		Format:    format,
		Rows:      len(rows),
		ExpiresAt: expiresAt,
	}, nil
}

// OpenDownload validates token and opens the referenced file. The caller
// closes the file.
func (s *ExportService) OpenDownload(token string) (*ExportDownload, error) {
	claims, err := s.signer.Parse(token, false)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, ErrExportExpired
		}
		return nil, ErrExportInvalid
	}
	file, err := s.storage.Open(claims.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrExportNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open export")
	}
	format, err := export.ParseFormat(strings.TrimPrefix(filepath.Ext(claims.Path), "."))
	if err != nil {
		format = export.FormatCSV
	}
	return &ExportDownload{File: file, Name: filepath.Base(claims.Path), ContentType: format.ContentType()}, nil
}

// Cleanup removes files older than ttl (defaults to configured ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

// RunCleanup removes expired exports every interval until ctx is done.
func (s *ExportService) RunCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.Cleanup(0)
			if err != nil {
				s.logger.Warn("export cleanup failed", zap.Error(err))
				continue
			}
			if len(removed) > 0 {
				s.logger.Info("expired exports removed", zap.Int("count", len(removed)))
			}
		}
	}
}

// ActivitiesDataset tabulates activity rows.
func ActivitiesDataset(rows []models.ActivityRow) export.Dataset {
	dataset := export.Dataset{
		Headers: []string{colTitle, colStatus, colSaveStatus, colUser, colMainCriteria, colSubCriteria, colCreatedAt},
		Rows:    make([]map[string]string, 0, len(rows)),
	}
	for _, row := range rows {
		dataset.Rows = append(dataset.Rows, map[string]string{
			colTitle:        row.ActivityTitle,
			colStatus:       row.Status,
			colSaveStatus:   row.SaveStatus,
			colUser:         refLabel(row.User),
			colMainCriteria: refLabel(row.MainCriteria),
			colSubCriteria:  refLabel(row.SubCriteria),
			colCreatedAt:    row.FormattedDate,
		})
	}
	return dataset
}

func refLabel(ref models.Ref) string {
	if ref.Name != "" {
		return ref.Name
	}
	return ref.ID
}

func (s *ExportService) buildFilename(id string, format export.Format) string {
	timestamp := s.now().UTC().Format("20060102_150405")
	return fmt.Sprintf("activities_%s_%s.%s", timestamp, id[:8], format)
}
