package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/achievement-console/internal/models"
	appErrors "github.com/noah-isme/achievement-console/pkg/errors"
	"github.com/noah-isme/achievement-console/pkg/export"
	"github.com/noah-isme/achievement-console/pkg/storage"
)

type activitySourceStub struct {
	rows []models.ActivityRow
	err  error
}

func (s activitySourceStub) Activities(context.Context) ([]models.ActivityRow, error) {
	return s.rows, s.err
}

func exportRows() []models.ActivityRow {
	return []models.ActivityRow{
		{
			Activity: models.Activity{
				ID:            "a1",
				ActivityTitle: "مبادرة القراءة",
				Status:        models.ActivityStatusApproved,
				User:          models.Ref{ID: "u1", Name: "أحمد", Embedded: true},
				MainCriteria:  models.Ref{ID: "m1"},
			},
			FormattedDate: "5 يناير 2025",
		},
	}
}

func newExportServiceForTest(t *testing.T, src activitySource) *ExportService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	return NewExportService(src, store, signer, ExportConfig{APIPrefix: "/api/v1/", ResultTTL: time.Hour}, zap.NewNop(), nil)
}

func TestActivitiesDataset(t *testing.T) {
	dataset := ActivitiesDataset(exportRows())

	require.Len(t, dataset.Rows, 1)
	assert.Equal(t, []string{"مبادرة القراءة", "معتمد", "", "أحمد", "m1", "", "5 يناير 2025"}, dataset.Records()[0])
}

func TestExportActivitiesCSVRoundTrip(t *testing.T) {
	svc := newExportServiceForTest(t, activitySourceStub{rows: exportRows()})

	result, err := svc.ExportActivities(context.Background(), export.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Rows)
	assert.True(t, strings.HasPrefix(result.URL, "/api/v1/exports/"))

	download, err := svc.OpenDownload(result.Token)
	require.NoError(t, err)
	defer download.File.Close()

	assert.Equal(t, "text/csv; charset=utf-8", download.ContentType)
	assert.True(t, strings.HasSuffix(download.Name, ".csv"))
	body, err := io.ReadAll(download.File)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, string(body), "مبادرة القراءة")
}

func TestExportActivitiesXLSX(t *testing.T) {
	svc := newExportServiceForTest(t, activitySourceStub{rows: exportRows()})

	result, err := svc.ExportActivities(context.Background(), export.FormatXLSX)
	require.NoError(t, err)

	download, err := svc.OpenDownload(result.Token)
	require.NoError(t, err)
	defer download.File.Close()
	assert.Equal(t, export.FormatXLSX.ContentType(), download.ContentType)
}

func TestExportActivitiesSourceFailure(t *testing.T) {
	svc := newExportServiceForTest(t, activitySourceStub{err: errors.New("down")})

	_, err := svc.ExportActivities(context.Background(), export.FormatCSV)
	require.Error(t, err)
	assert.Equal(t, "فشل تحميل الأنشطة", appErrors.Message(err, ""))
}

func TestOpenDownloadRejectsBadTokens(t *testing.T) {
	svc := newExportServiceForTest(t, activitySourceStub{rows: exportRows()})

	_, err := svc.OpenDownload("garbage")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	result, err := svc.ExportActivities(context.Background(), export.FormatCSV)
	require.NoError(t, err)
	_, err = svc.OpenDownload(result.Token + "x")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestOpenDownloadMissingFile(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	svc := NewExportService(activitySourceStub{}, store, signer, ExportConfig{}, nil, nil)

	token, _, err := signer.Generate("abc", "missing.csv")
	require.NoError(t, err)

	_, err = svc.OpenDownload(token)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
