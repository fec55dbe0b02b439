package service

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/achievement-console/internal/models"
	appErrors "github.com/noah-isme/achievement-console/pkg/errors"
	"github.com/noah-isme/achievement-console/pkg/httpclient"
)

type fakeReportBackend struct {
	mu sync.Mutex

	users    []models.User
	usersErr error
	main     []models.MainCriteria
	sub      []models.SubCriteria
	files    []models.ReportFile
	filesErr error

	generateResp  *models.ReportGenerationResponse
	generateErr   error
	generateGate  chan struct{}
	generated     []models.ReportFilter
	deleteErrs    map[string]error
	deleteDelay   time.Duration
	deleted       []string
	listFileCalls int
}

func (f *fakeReportBackend) ListUsers(context.Context) ([]models.User, error) {
	return f.users, f.usersErr
}

func (f *fakeReportBackend) ListMainCriteria(context.Context) ([]models.MainCriteria, error) {
	return f.main, nil
}

func (f *fakeReportBackend) ListSubCriteria(context.Context) ([]models.SubCriteria, error) {
	return f.sub, nil
}

func (f *fakeReportBackend) ListReportFiles(ctx context.Context) ([]models.ReportFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listFileCalls++
	if f.filesErr != nil {
		return nil, f.filesErr
	}
	return append([]models.ReportFile{}, f.files...), nil
}

func (f *fakeReportBackend) GenerateReport(ctx context.Context, _ models.ReportType, filter models.ReportFilter) (*models.ReportGenerationResponse, error) {
	if f.generateGate != nil {
		<-f.generateGate
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generated = append(f.generated, filter)
	return f.generateResp, f.generateErr
}

func (f *fakeReportBackend) DeleteReportFile(ctx context.Context, id string) error {
	if f.deleteDelay > 0 {
		select {
		case <-time.After(f.deleteDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deleteErrs[id]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	kept := f.files[:0]
	for _, file := range f.files {
		if file.ID != id {
			kept = append(kept, file)
		}
	}
	f.files = kept
	return nil
}

func (f *fakeReportBackend) calls() (lists int, deleted []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listFileCalls, append([]string{}, f.deleted...)
}

type fakeReportMetrics struct {
	mu          sync.Mutex
	generations []bool
	deleted     int
	failed      int
}

func (m *fakeReportMetrics) RecordReportGeneration(_ models.ReportType, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generations = append(m.generations, success)
}

func (m *fakeReportMetrics) RecordBulkDelete(deleted, failed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted += deleted
	m.failed += failed
}

type memorySnapshots struct {
	mu    sync.Mutex
	snaps map[string]*models.WorkspaceSnapshot
}

func (s *memorySnapshots) Get(_ context.Context, userID string) (*models.WorkspaceSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snaps[userID]
	if !ok {
		return nil, appErrors.ErrCacheMiss
	}
	return snap, nil
}

func (s *memorySnapshots) Save(_ context.Context, userID string, snap *models.WorkspaceSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snaps == nil {
		s.snaps = make(map[string]*models.WorkspaceSnapshot)
	}
	s.snaps[userID] = snap
	return nil
}

func (s *memorySnapshots) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snaps, userID)
	return nil
}

func newWorkspaceBackend() *fakeReportBackend {
	return &fakeReportBackend{
		users: []models.User{{ID: "u1", FullName: "أحمد علي"}, {ID: "u2", FullName: "سارة"}},
		main:  []models.MainCriteria{{ID: "m1", Name: "القيادة"}},
		sub:   []models.SubCriteria{{ID: "s1", Name: "التخطيط", MainCriteria: models.Ref{ID: "m1"}}},
		files: []models.ReportFile{
			{ID: "old-1", PDFURL: "https://files/old_one.pdf", CreatedAt: "2024-11-01T00:00:00Z"},
			{ID: "old-2", PDFURL: "https://files/old_two.docx", CreatedAt: "2024-12-01T00:00:00Z"},
			{ID: "new-1", PDFURL: "https://files/fresh_report.pdf", CreatedAt: "2025-02-25T00:00:00Z"},
		},
		generateResp: &models.ReportGenerationResponse{Success: true, File: "https://files/generated.pdf"},
	}
}

func newTestWorkspace(backend *fakeReportBackend, metrics *fakeReportMetrics, store SnapshotStore) *ReportWorkspace {
	deps := WorkspaceDeps{Backend: backend, Now: fixedNow}
	if metrics != nil {
		deps.Metrics = metrics
	}
	if store != nil {
		deps.Snapshots = store
	}
	return NewReportWorkspace("user-1", WorkspaceConfig{SearchDebounce: 50 * time.Millisecond}, deps)
}

func setDates(t *testing.T, ws *ReportWorkspace, start, end string) {
	t.Helper()
	_, err := ws.UpdateFilters(context.Background(), FilterUpdate{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
}

func TestWorkspaceLoadReportsFailuresPerCollection(t *testing.T) {
	backend := newWorkspaceBackend()
	backend.usersErr = errors.New("boom")
	ws := newTestWorkspace(backend, nil, nil)
	defer ws.Close()

	view, failures := ws.Load(context.Background())

	require.Len(t, failures, 1)
	assert.Equal(t, string(OptionUsers), failures[0].Source)
	assert.Equal(t, "فشل في تحميل قائمة المستخدمين", failures[0].Message)
	assert.True(t, view.Loaded)
	assert.Len(t, view.Files, 3)
	assert.Equal(t, 2, view.OldFiles)
	for _, set := range view.Options {
		if set.Type == OptionMainCriteria {
			assert.Len(t, set.Options, 1)
		}
	}
}

func TestWorkspaceLoadRestoresSnapshot(t *testing.T) {
	store := &memorySnapshots{}
	require.NoError(t, store.Save(context.Background(), "user-1", &models.WorkspaceSnapshot{
		StartDate:      "2025-01-01",
		EndDate:        "2025-01-31",
		ReportType:     models.ReportTypeDOCX,
		FileTypeFilter: models.FileTypePDF,
		SearchTerm:     "fresh",
	}))
	ws := newTestWorkspace(newWorkspaceBackend(), nil, store)
	defer ws.Close()

	view, failures := ws.Load(context.Background())

	assert.Empty(t, failures)
	assert.Equal(t, "2025-01-01", view.StartDate)
	assert.True(t, view.DateComplete)
	assert.Equal(t, models.ReportTypeDOCX, view.ReportType)
	assert.Equal(t, models.FileTypePDF, view.FileTypeFilter)
	require.Len(t, view.Files, 1)
	assert.Equal(t, "new-1", view.Files[0].ID)
}

func TestWorkspaceGenerateValidationKeepsPanelHidden(t *testing.T) {
	backend := newWorkspaceBackend()
	ws := newTestWorkspace(backend, nil, nil)
	defer ws.Close()

	view, outcome := ws.Generate(context.Background())
	assert.ErrorIs(t, outcome.Err, appErrors.ErrMissingDates)
	assert.False(t, view.Generation.ShowResults)
	assert.Equal(t, GenerationIdle, view.Generation.State)

	setDates(t, ws, "2025-02-10", "2025-02-01")
	_, outcome = ws.Generate(context.Background())
	assert.ErrorIs(t, outcome.Err, appErrors.ErrStartAfterEnd)

	setDates(t, ws, "2025-02-01", "2025-04-01")
	_, outcome = ws.Generate(context.Background())
	assert.ErrorIs(t, outcome.Err, appErrors.ErrFutureDate)

	assert.Empty(t, backend.generated)
}

func TestWorkspaceGenerateSuccessRefreshesCatalog(t *testing.T) {
	backend := newWorkspaceBackend()
	metrics := &fakeReportMetrics{}
	ws := newTestWorkspace(backend, metrics, nil)
	defer ws.Close()
	ws.Load(context.Background())

	_, err := ws.Toggle(OptionUsers, "u2")
	require.NoError(t, err)
	setDates(t, ws, "2025-01-01", "2025-02-01")

	view, outcome := ws.Generate(context.Background())

	require.NoError(t, outcome.Err)
	require.NotNil(t, outcome.Result)
	assert.True(t, outcome.Result.Success)
	assert.Equal(t, "https://files/generated.pdf", outcome.Result.File)
	assert.True(t, view.Generation.ShowResults)
	assert.Equal(t, GenerationSucceeded, view.Generation.LastOutcome)
	assert.Equal(t, GenerationIdle, view.Generation.State)

	require.Len(t, backend.generated, 1)
	assert.Equal(t, "u2", backend.generated[0].User)
	assert.Empty(t, backend.generated[0].MainCriteria)

	lists, _ := backend.calls()
	assert.Equal(t, 2, lists)
	assert.Equal(t, []bool{true}, metrics.generations)
	assert.Equal(t, "تم إنشاء التقرير PDF بنجاح!", SuccessMessage(models.ReportTypePDF))
}

func TestWorkspaceGenerateBusinessFailureUsesFallback(t *testing.T) {
	backend := newWorkspaceBackend()
	backend.generateResp = &models.ReportGenerationResponse{Success: false}
	metrics := &fakeReportMetrics{}
	ws := newTestWorkspace(backend, metrics, nil)
	defer ws.Close()
	setDates(t, ws, "2025-01-01", "2025-02-01")

	view, outcome := ws.Generate(context.Background())

	assert.ErrorIs(t, outcome.Err, appErrors.ErrBusiness)
	assert.Equal(t, "فشل في إنشاء التقرير", outcome.Result.Message)
	assert.False(t, outcome.Result.Success)
	assert.True(t, view.Generation.ShowResults)
	assert.Equal(t, GenerationFailed, view.Generation.LastOutcome)
	assert.Equal(t, []bool{false}, metrics.generations)
}

func TestWorkspaceGenerateTransportFailureMessages(t *testing.T) {
	backend := newWorkspaceBackend()
	backend.generateErr = appErrors.Wrap(&httpclient.StatusError{Status: http.StatusBadRequest, Message: "لا توجد أنشطة"}, appErrors.ErrUpstream.Code, http.StatusBadRequest, "backend request failed")
	ws := newTestWorkspace(backend, nil, nil)
	defer ws.Close()
	setDates(t, ws, "2025-01-01", "2025-02-01")

	_, outcome := ws.Generate(context.Background())
	assert.ErrorIs(t, outcome.Err, appErrors.ErrUpstream)
	assert.Equal(t, "لا توجد أنشطة", outcome.Result.Message)

	backend.generateErr = errors.New("connection refused")
	_, outcome = ws.Generate(context.Background())
	assert.Equal(t, "حدث خطأ أثناء إنشاء التقرير", outcome.Result.Message)
}

func TestWorkspaceRejectsConcurrentGeneration(t *testing.T) {
	backend := newWorkspaceBackend()
	backend.generateGate = make(chan struct{})
	ws := newTestWorkspace(backend, nil, nil)
	defer ws.Close()
	setDates(t, ws, "2025-01-01", "2025-02-01")

	done := make(chan GenerateOutcome, 1)
	go func() {
		_, outcome := ws.Generate(context.Background())
		done <- outcome
	}()

	require.Eventually(t, func() bool {
		return ws.View().Generation.State == GenerationGenerating
	}, time.Second, 5*time.Millisecond)

	_, second := ws.Generate(context.Background())
	assert.ErrorIs(t, second.Err, appErrors.ErrGenerationInProgress)

	close(backend.generateGate)
	first := <-done
	require.NoError(t, first.Err)
	assert.Len(t, backend.generated, 1)
}

func TestWorkspaceDeleteFile(t *testing.T) {
	backend := newWorkspaceBackend()
	backend.files = append(backend.files, models.ReportFile{ID: "gen", PDFURL: "https://files/generated.pdf", CreatedAt: "2025-02-28T00:00:00Z"})
	ws := newTestWorkspace(backend, nil, nil)
	defer ws.Close()
	ws.Load(context.Background())

	_, _, err := ws.DeleteFile(context.Background(), "")
	assert.ErrorIs(t, err, ErrReportIDMissing)
	assert.Equal(t, "لا يمكن حذف التقرير: معرف غير موجود", appErrors.Message(err, ""))

	_, _, err = ws.DeleteFile(context.Background(), "missing")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	setDates(t, ws, "2025-01-01", "2025-02-01")
	view, outcome := ws.Generate(context.Background())
	require.NoError(t, outcome.Err)
	require.True(t, view.Generation.ShowResults)

	view, notice, err := ws.DeleteFile(context.Background(), "gen")
	require.NoError(t, err)
	assert.Equal(t, "تم حذف التقرير بنجاح", notice)
	assert.Nil(t, view.Generation.Result)
	assert.False(t, view.Generation.ShowResults)
	assert.Equal(t, 3, view.TotalFiles)
}

func TestWorkspaceDeleteFileFailureKeepsCatalog(t *testing.T) {
	backend := newWorkspaceBackend()
	backend.deleteErrs = map[string]error{"new-1": errors.New("timeout")}
	ws := newTestWorkspace(backend, nil, nil)
	defer ws.Close()
	ws.Load(context.Background())

	view, _, err := ws.DeleteFile(context.Background(), "new-1")
	require.Error(t, err)
	assert.Equal(t, "حدث خطأ أثناء حذف التقرير", appErrors.Message(err, ""))
	assert.Equal(t, 3, view.TotalFiles)
}

func TestWorkspaceDeleteOldFilesWithoutCandidates(t *testing.T) {
	backend := newWorkspaceBackend()
	backend.files = backend.files[2:]
	ws := newTestWorkspace(backend, nil, nil)
	defer ws.Close()
	ws.Load(context.Background())

	_, result, notice := ws.DeleteOldFiles(context.Background())

	assert.Equal(t, 0, result.Targeted)
	assert.True(t, notice.Warning)
	assert.Equal(t, "لا توجد تقارير قديمة للحذف", notice.Message)
	lists, deleted := backend.calls()
	assert.Equal(t, 1, lists)
	assert.Empty(t, deleted)
}

func TestWorkspaceDeleteOldFilesCountsAndRefreshesOnce(t *testing.T) {
	backend := newWorkspaceBackend()
	backend.files = append(backend.files,
		models.ReportFile{ID: "old-3", PDFURL: "https://files/old_three.pdf", CreatedAt: "2024-10-01T00:00:00Z"},
		models.ReportFile{PDFURL: "https://files/orphan.pdf", CreatedAt: "2024-10-02T00:00:00Z"},
	)
	backend.deleteErrs = map[string]error{"old-2": errors.New("locked")}
	metrics := &fakeReportMetrics{}
	ws := newTestWorkspace(backend, metrics, nil)
	defer ws.Close()
	ws.Load(context.Background())
	require.Len(t, ws.OldFiles(), 4)

	view, result, notice := ws.DeleteOldFiles(context.Background())

	assert.Equal(t, BulkDeleteResult{Targeted: 4, Deleted: 2, Failed: 2}, result)
	assert.True(t, notice.Warning)
	assert.Equal(t, "تم حذف 2 تقرير، وفشل حذف 2 تقرير", notice.Message)
	lists, deleted := backend.calls()
	assert.Equal(t, 2, lists)
	assert.ElementsMatch(t, []string{"old-1", "old-3"}, deleted)
	assert.Equal(t, 3, view.TotalFiles)
	assert.Equal(t, 2, metrics.deleted)
	assert.Equal(t, 2, metrics.failed)
}

func TestWorkspaceDeleteOldFilesSurvivesCallerCancellation(t *testing.T) {
	backend := newWorkspaceBackend()
	for i := 3; i <= 6; i++ {
		backend.files = append(backend.files, models.ReportFile{
			ID:        "old-" + strconv.Itoa(i),
			PDFURL:    "https://files/old_" + strconv.Itoa(i) + ".pdf",
			CreatedAt: "2024-10-01T00:00:00Z",
		})
	}
	backend.deleteDelay = 40 * time.Millisecond
	ws := NewReportWorkspace("user-1", WorkspaceConfig{DeleteConcurrency: 2}, WorkspaceDeps{Backend: backend, Now: fixedNow})
	defer ws.Close()
	ws.Load(context.Background())
	require.Len(t, ws.OldFiles(), 6)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)
	view, result, notice := ws.DeleteOldFiles(ctx)

	assert.Equal(t, BulkDeleteResult{Targeted: 6, Deleted: 6}, result)
	assert.False(t, notice.Warning)
	assert.Equal(t, "تم حذف 6 تقرير بنجاح", notice.Message)
	lists, deleted := backend.calls()
	assert.Len(t, deleted, 6)
	assert.Equal(t, 2, lists)
	assert.Equal(t, 1, view.TotalFiles)
}

func TestWorkspaceGenerateSurvivesCallerCancellation(t *testing.T) {
	backend := newWorkspaceBackend()
	backend.generateGate = make(chan struct{})
	backend.files = append(backend.files, models.ReportFile{ID: "gen", PDFURL: "https://files/generated.pdf", CreatedAt: "2025-02-28T00:00:00Z"})
	ws := newTestWorkspace(backend, nil, nil)
	defer ws.Close()
	setDates(t, ws, "2025-01-01", "2025-02-01")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan GenerateOutcome, 1)
	go func() {
		_, outcome := ws.Generate(ctx)
		done <- outcome
	}()
	require.Eventually(t, ws.Busy, time.Second, 5*time.Millisecond)
	cancel()
	close(backend.generateGate)

	outcome := <-done
	require.NoError(t, outcome.Err)
	assert.True(t, outcome.Result.Success)
	assert.Equal(t, 4, ws.View().TotalFiles)
}

func TestBulkDeleteNoticeForFullSuccess(t *testing.T) {
	notice := BulkDeleteNoticeFor(BulkDeleteResult{Targeted: 3, Deleted: 3})
	assert.False(t, notice.Warning)
	assert.Equal(t, "تم حذف 3 تقرير بنجاح", notice.Message)
}

func TestWorkspaceSearchIsDebounced(t *testing.T) {
	ws := newTestWorkspace(newWorkspaceBackend(), nil, nil)
	defer ws.Close()
	ws.Load(context.Background())

	ws.UpdateSearch(context.Background(), "old")
	view := ws.UpdateSearch(context.Background(), "fresh")
	assert.True(t, view.SearchPending)
	assert.Equal(t, "fresh", view.SearchTerm)
	assert.Len(t, view.Files, 3)

	require.Eventually(t, func() bool {
		v := ws.View()
		return !v.SearchPending && len(v.Files) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "new-1", ws.View().Files[0].ID)
}

func TestWorkspaceClearAllFilters(t *testing.T) {
	ws := newTestWorkspace(newWorkspaceBackend(), nil, nil)
	defer ws.Close()
	ws.Load(context.Background())
	_, err := ws.Toggle(OptionMainCriteria, "m1")
	require.NoError(t, err)
	setDates(t, ws, "2025-01-01", "2025-02-01")

	view, notice := ws.ClearAllFilters(context.Background())

	assert.Equal(t, "تم مسح جميع الفلاتر بنجاح", notice)
	assert.Empty(t, view.StartDate)
	assert.False(t, view.DateComplete)
	assert.Empty(t, view.Payload.MainCriteria)
}

func TestWorkspaceUpdateFiltersRejectsUnknownType(t *testing.T) {
	ws := newTestWorkspace(newWorkspaceBackend(), nil, nil)
	defer ws.Close()
	bad := models.ReportType("xls")

	_, err := ws.UpdateFilters(context.Background(), FilterUpdate{ReportType: &bad})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestWorkspaceLink(t *testing.T) {
	ws := newTestWorkspace(newWorkspaceBackend(), nil, nil)
	defer ws.Close()
	ws.Load(context.Background())

	link, err := ws.Link("old-2")
	require.NoError(t, err)
	assert.Equal(t, "old_two", link.FileName)
	assert.Equal(t, models.ReportTypeDOCX, link.FileType)
	assert.Equal(t, "تقرير_الأنشطة_2025-03-01.docx", link.DownloadName)

	_, err = ws.Link("nope")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

type countingGauge struct {
	mu   sync.Mutex
	last int
}

func (g *countingGauge) SetActiveWorkspaces(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last = n
}

func TestWorkspaceRegistryEvictsIdleWorkspaces(t *testing.T) {
	var mu sync.Mutex
	now := catalogNow
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	gauge := &countingGauge{}
	registry := NewWorkspaceRegistry(WorkspaceConfig{}, WorkspaceDeps{Backend: newWorkspaceBackend(), Now: clock}, time.Minute, gauge)

	first := registry.Get("a")
	assert.Same(t, first, registry.Get("a"))
	registry.Get("b")
	assert.Equal(t, 2, gauge.last)

	mu.Lock()
	now = now.Add(45 * time.Second)
	mu.Unlock()
	registry.Get("b").View()

	mu.Lock()
	now = now.Add(30 * time.Second)
	mu.Unlock()

	assert.Equal(t, 1, registry.Sweep())
	assert.Equal(t, 1, registry.Len())
	assert.Equal(t, 1, gauge.last)
	assert.NotSame(t, first, registry.Get("a"))

	registry.Remove("b")
	assert.Equal(t, 1, registry.Len())
}

func TestWorkspaceRegistryDiscardDropsSnapshot(t *testing.T) {
	store := &memorySnapshots{}
	registry := NewWorkspaceRegistry(WorkspaceConfig{}, WorkspaceDeps{Backend: newWorkspaceBackend(), Snapshots: store, Now: fixedNow}, time.Minute, nil)
	ws := registry.Get("u1")
	setDates(t, ws, "2025-01-01", "2025-02-01")

	_, err := store.Get(context.Background(), "u1")
	require.NoError(t, err)

	require.NoError(t, registry.Discard(context.Background(), "u1"))
	assert.Equal(t, 0, registry.Len())
	_, err = store.Get(context.Background(), "u1")
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)
}

func TestWorkspaceRegistryKeepsGeneratingWorkspace(t *testing.T) {
	backend := newWorkspaceBackend()
	backend.generateGate = make(chan struct{})
	store := &memorySnapshots{}
	registry := NewWorkspaceRegistry(WorkspaceConfig{}, WorkspaceDeps{Backend: backend, Snapshots: store, Now: fixedNow}, time.Minute, nil)
	ws := registry.Get("u1")
	setDates(t, ws, "2025-01-01", "2025-02-01")

	done := make(chan GenerateOutcome, 1)
	go func() {
		_, outcome := ws.Generate(context.Background())
		done <- outcome
	}()
	require.Eventually(t, ws.Busy, time.Second, 5*time.Millisecond)

	err := registry.Discard(context.Background(), "u1")
	assert.ErrorIs(t, err, appErrors.ErrGenerationInProgress)
	assert.Same(t, ws, registry.Get("u1"))
	_, second := registry.Get("u1").Generate(context.Background())
	assert.ErrorIs(t, second.Err, appErrors.ErrGenerationInProgress)

	close(backend.generateGate)
	require.NoError(t, (<-done).Err)
	require.NoError(t, registry.Discard(context.Background(), "u1"))
	assert.Equal(t, 0, registry.Len())
}
