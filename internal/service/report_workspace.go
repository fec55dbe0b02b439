package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/achievement-console/internal/models"
	"github.com/noah-isme/achievement-console/pkg/debounce"
	appErrors "github.com/noah-isme/achievement-console/pkg/errors"
	"github.com/noah-isme/achievement-console/pkg/httpclient"
)

// Messages surfaced by the reports workspace.
const (
	msgLoadUsersFailed  = "فشل في تحميل قائمة المستخدمين"
	msgLoadMainFailed   = "فشل في تحميل المعايير الرئيسية"
	msgLoadSubFailed    = "فشل في تحميل المعايير الفرعية"
	msgLoadFilesFailed  = "حدث خطأ أثناء تحميل التقارير السابقة"
	msgGenerateFailed   = "حدث خطأ أثناء إنشاء التقرير"
	msgGenerateRejected = "فشل في إنشاء التقرير"
	msgDeleteFailed     = "حدث خطأ أثناء حذف التقرير"
	msgDeleteMissingID  = "لا يمكن حذف التقرير: معرف غير موجود"
	msgDeleted          = "تم حذف التقرير بنجاح"
	msgNoOldReports     = "لا توجد تقارير قديمة للحذف"
	msgFiltersCleared   = "تم مسح جميع الفلاتر بنجاح"
)

const (
	defaultOldReportAge      = 30 * 24 * time.Hour
	defaultDeleteConcurrency = 4
	defaultSearchDebounce    = 300 * time.Millisecond
	snapshotSaveTimeout      = 2 * time.Second
)

// GenerationState is the report generation lifecycle position.
type GenerationState string

const (
	GenerationIdle       GenerationState = "idle"
	GenerationValidating GenerationState = "validating"
	GenerationGenerating GenerationState = "generating"
	GenerationSucceeded  GenerationState = "succeeded"
	GenerationFailed     GenerationState = "failed"
)

// ErrReportIDMissing rejects deleting a file without an id.
var ErrReportIDMissing = appErrors.Clone(appErrors.ErrValidation, msgDeleteMissingID)

// ReportBackend is the subset of backend calls the workspace needs.
type ReportBackend interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ListMainCriteria(ctx context.Context) ([]models.MainCriteria, error)
	ListSubCriteria(ctx context.Context) ([]models.SubCriteria, error)
	ListReportFiles(ctx context.Context) ([]models.ReportFile, error)
	GenerateReport(ctx context.Context, reportType models.ReportType, filter models.ReportFilter) (*models.ReportGenerationResponse, error)
	DeleteReportFile(ctx context.Context, id string) error
}

// SnapshotStore persists the restorable part of a workspace.
type SnapshotStore interface {
	Get(ctx context.Context, userID string) (*models.WorkspaceSnapshot, error)
	Save(ctx context.Context, userID string, snap *models.WorkspaceSnapshot) error
}

// ReportMetrics receives generation and bulk deletion outcomes.
type ReportMetrics interface {
	RecordReportGeneration(reportType models.ReportType, success bool)
	RecordBulkDelete(deleted, failed int)
}

// WorkspaceConfig tunes a workspace.
type WorkspaceConfig struct {
	SearchDebounce    time.Duration
	OldAfter          time.Duration
	DeleteConcurrency int
}

// WorkspaceDeps groups the collaborators of a workspace.
type WorkspaceDeps struct {
	Backend   ReportBackend
	Snapshots SnapshotStore
	Metrics   ReportMetrics
	Logger    *zap.Logger
	Now       func() time.Time
}

// FilterUpdate changes dates, report type or the catalog type filter. Nil
// fields are left untouched.
type FilterUpdate struct {
	StartDate      *string
	EndDate        *string
	ReportType     *models.ReportType
	FileTypeFilter *models.FileTypeFilter
}

// GenerationView is the result panel state.
type GenerationView struct {
	State       GenerationState         `json:"state"`
	LastOutcome GenerationState         `json:"lastOutcome,omitempty"`
	Result      *models.GeneratedReport `json:"result,omitempty"`
	ShowResults bool                    `json:"showResults"`
}

// WorkspaceView is the full reports screen state.
type WorkspaceView struct {
	Options        []OptionSetView         `json:"options"`
	OpenDropdown   OptionType              `json:"openDropdown,omitempty"`
	StartDate      string                  `json:"startDate"`
	EndDate        string                  `json:"endDate"`
	DateComplete   bool                    `json:"dateComplete"`
	ReportType     models.ReportType       `json:"reportType"`
	FileTypeFilter models.FileTypeFilter   `json:"fileTypeFilter"`
	SearchTerm     string                  `json:"searchTerm"`
	SearchPending  bool                    `json:"searchPending"`
	Files          []models.ReportFileView `json:"files"`
	TotalFiles     int                     `json:"totalFiles"`
	OldFiles       int                     `json:"oldFiles"`
	FilterSummary  string                  `json:"filterSummary"`
	Payload        models.ReportFilter     `json:"payload"`
	Generation     GenerationView          `json:"generation"`
	Loaded         bool                    `json:"loaded"`
}

// LoadFailure names a collection that could not be loaded.
type LoadFailure struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

// GenerateOutcome is the result of one generation request.
type GenerateOutcome struct {
	Result *models.GeneratedReport
	Err    error
}

// BulkDeleteResult reports the settled outcome of deleting old files.
type BulkDeleteResult struct {
	Targeted int `json:"targeted"`
	Deleted  int `json:"deleted"`
	Failed   int `json:"failed"`
}

// FileLink resolves how a report is opened and downloaded.
type FileLink struct {
	ID           string            `json:"id"`
	FileName     string            `json:"fileName"`
	FileType     models.ReportType `json:"fileType"`
	ViewURL      string            `json:"viewUrl"`
	DownloadURL  string            `json:"downloadUrl"`
	DownloadName string            `json:"downloadName"`
}

// ReportWorkspace is one user's reports screen: option sets, dates, report
// type, the file catalog and the generation lifecycle.
type ReportWorkspace struct {
	mu sync.Mutex

	userID  string
	cfg     WorkspaceConfig
	backend ReportBackend
	store   SnapshotStore
	metrics ReportMetrics
	logger  *zap.Logger
	now     func() time.Time

	options     *OptionSets
	catalog     *ReportCatalog
	startDate   string
	endDate     string
	reportType  models.ReportType
	pendingTerm string
	debouncer   *debounce.Debouncer

	state       GenerationState
	lastOutcome GenerationState
	result      *models.GeneratedReport
	showResults bool
	loaded      bool

	lastSeen atomic.Int64
}

// NewReportWorkspace builds an empty workspace for userID.
func NewReportWorkspace(userID string, cfg WorkspaceConfig, deps WorkspaceDeps) *ReportWorkspace {
	if cfg.SearchDebounce <= 0 {
		cfg.SearchDebounce = defaultSearchDebounce
	}
	if cfg.OldAfter <= 0 {
		cfg.OldAfter = defaultOldReportAge
	}
	if cfg.DeleteConcurrency <= 0 {
		cfg.DeleteConcurrency = defaultDeleteConcurrency
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	ws := &ReportWorkspace{
		userID:     userID,
		cfg:        cfg,
		backend:    deps.Backend,
		store:      deps.Snapshots,
		metrics:    deps.Metrics,
		logger:     logger.With(zap.String("user_id", userID)),
		now:        now,
		options:    NewOptionSets(),
		catalog:    NewReportCatalog(now),
		reportType: models.ReportTypePDF,
		debouncer:  debounce.New(cfg.SearchDebounce),
		state:      GenerationIdle,
	}
	ws.touch()
	return ws
}

// Load fetches users, criteria and report files concurrently and restores the
// saved snapshot. Each collection loads independently; failures are reported
// per collection and leave the others applied.
func (w *ReportWorkspace) Load(ctx context.Context) (WorkspaceView, []LoadFailure) {
	w.touch()
	var (
		users []models.User
		main  []models.MainCriteria
		sub   []models.SubCriteria
		files []models.ReportFile
		errs  [4]error
		g     errgroup.Group
	)
	g.Go(func() error { users, errs[0] = w.backend.ListUsers(ctx); return nil })
	g.Go(func() error { main, errs[1] = w.backend.ListMainCriteria(ctx); return nil })
	g.Go(func() error { sub, errs[2] = w.backend.ListSubCriteria(ctx); return nil })
	g.Go(func() error { files, errs[3] = w.backend.ListReportFiles(ctx); return nil })
	_ = g.Wait()

	snap := w.loadSnapshot(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()

	failures := make([]LoadFailure, 0)
	fail := func(source, fallback string, err error) {
		w.logger.Error("reports workspace load failed", zap.String("source", source), zap.Error(err))
		failures = append(failures, LoadFailure{Source: source, Message: fallback})
	}
	if errs[0] == nil {
		w.options.SetUsers(users)
	} else {
		fail(string(OptionUsers), msgLoadUsersFailed, errs[0])
	}
	if errs[1] == nil {
		w.options.SetMainCriteria(main)
	} else {
		fail(string(OptionMainCriteria), msgLoadMainFailed, errs[1])
	}
	if errs[2] == nil {
		w.options.SetSubCriteriaCatalog(sub)
	} else {
		fail(string(OptionSubCriteria), msgLoadSubFailed, errs[2])
	}
	if errs[3] == nil {
		w.catalog.SetFiles(files)
	} else {
		fail("files", backendMessage(errs[3], msgLoadFilesFailed), errs[3])
	}
	w.options.CloseAllDropdowns()
	if snap != nil && !w.loaded {
		w.restoreLocked(snap)
	}
	w.loaded = true
	return w.viewLocked(), failures
}

func (w *ReportWorkspace) loadSnapshot(ctx context.Context) *models.WorkspaceSnapshot {
	if w.store == nil {
		return nil
	}
	snap, err := w.store.Get(ctx, w.userID)
	if err != nil {
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			w.logger.Warn("workspace snapshot unavailable", zap.Error(err))
		}
		return nil
	}
	return snap
}

func (w *ReportWorkspace) restoreLocked(snap *models.WorkspaceSnapshot) {
	w.startDate = snap.StartDate
	w.endDate = snap.EndDate
	if snap.ReportType.Valid() {
		w.reportType = snap.ReportType
	}
	if snap.FileTypeFilter.Valid() {
		w.catalog.SetTypeFilter(snap.FileTypeFilter)
	}
	w.pendingTerm = snap.SearchTerm
	w.catalog.ApplySearch(snap.SearchTerm)
	w.result = snap.LastResult
	w.showResults = snap.ShowResults && snap.LastResult != nil
}

// View returns the current state.
func (w *ReportWorkspace) View() WorkspaceView {
	w.touch()
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.viewLocked()
}

// Search filters one option set.
func (w *ReportWorkspace) Search(t OptionType, term string) WorkspaceView {
	return w.mutate(func() error { w.options.Search(t, term); return nil })
}

// Toggle flips one option.
func (w *ReportWorkspace) Toggle(t OptionType, value string) (WorkspaceView, error) {
	return w.mutateErr(func() error { return w.options.Toggle(t, value) })
}

// SelectAll selects the displayed options of a set.
func (w *ReportWorkspace) SelectAll(t OptionType) WorkspaceView {
	return w.mutate(func() error { w.options.SelectAll(t); return nil })
}

// ClearSelection deselects a whole set.
func (w *ReportWorkspace) ClearSelection(t OptionType) WorkspaceView {
	return w.mutate(func() error { w.options.ClearSelection(t); return nil })
}

// ToggleDropdown opens or closes a dropdown.
func (w *ReportWorkspace) ToggleDropdown(t OptionType) WorkspaceView {
	return w.mutate(func() error { w.options.ToggleDropdown(t); return nil })
}

// CloseAllDropdowns closes the open dropdown.
func (w *ReportWorkspace) CloseAllDropdowns() WorkspaceView {
	return w.mutate(func() error { w.options.CloseAllDropdowns(); return nil })
}

// UpdateFilters applies a FilterUpdate.
func (w *ReportWorkspace) UpdateFilters(ctx context.Context, upd FilterUpdate) (WorkspaceView, error) {
	w.touch()
	w.mu.Lock()
	if upd.ReportType != nil && !upd.ReportType.Valid() {
		w.mu.Unlock()
		return WorkspaceView{}, appErrors.Clone(appErrors.ErrValidation, "نوع التقرير غير صالح")
	}
	if upd.FileTypeFilter != nil && !upd.FileTypeFilter.Valid() {
		w.mu.Unlock()
		return WorkspaceView{}, appErrors.Clone(appErrors.ErrValidation, "نوع الملف غير صالح")
	}
	for _, d := range []*string{upd.StartDate, upd.EndDate} {
		if d == nil || strings.TrimSpace(*d) == "" {
			continue
		}
		if _, err := ParseFilterDate(*d); err != nil {
			w.mu.Unlock()
			return WorkspaceView{}, err
		}
	}
	if upd.StartDate != nil {
		w.startDate = *upd.StartDate
	}
	if upd.EndDate != nil {
		w.endDate = *upd.EndDate
	}
	if upd.ReportType != nil {
		w.reportType = *upd.ReportType
	}
	if upd.FileTypeFilter != nil {
		w.catalog.SetTypeFilter(*upd.FileTypeFilter)
	}
	view, snap := w.viewLocked(), w.snapshotLocked()
	w.mu.Unlock()

	w.saveSnapshot(ctx, snap)
	return view, nil
}

// ClearAllFilters deselects every option and clears both dates.
func (w *ReportWorkspace) ClearAllFilters(ctx context.Context) (WorkspaceView, string) {
	w.touch()
	w.mu.Lock()
	w.options.ClearAll()
	w.startDate = ""
	w.endDate = ""
	view, snap := w.viewLocked(), w.snapshotLocked()
	w.mu.Unlock()

	w.saveSnapshot(ctx, snap)
	return view, msgFiltersCleared
}

// UpdateSearch records a catalog search term. It is applied once the
// debounce quiet period passes without a newer term.
func (w *ReportWorkspace) UpdateSearch(ctx context.Context, term string) WorkspaceView {
	w.touch()
	w.mu.Lock()
	w.pendingTerm = term
	w.debouncer.Trigger(func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.catalog.ApplySearch(w.pendingTerm)
	})
	view, snap := w.viewLocked(), w.snapshotLocked()
	view.SearchPending = true
	w.mu.Unlock()

	w.saveSnapshot(ctx, snap)
	return view
}

// RefreshFiles reloads the catalog from the backend.
func (w *ReportWorkspace) RefreshFiles(ctx context.Context) (WorkspaceView, error) {
	w.touch()
	if err := w.refreshFiles(ctx); err != nil {
		return w.View(), err
	}
	return w.View(), nil
}

func (w *ReportWorkspace) refreshFiles(ctx context.Context) error {
	files, err := w.backend.ListReportFiles(ctx)
	if err != nil {
		w.logger.Error("failed to load report files", zap.Error(err))
		return appErrors.Clone(appErrors.FromError(err), backendMessage(err, msgLoadFilesFailed))
	}
	w.mu.Lock()
	w.catalog.SetFiles(files)
	w.mu.Unlock()
	return nil
}

// Generate validates the filters and asks the backend for a report. Only one
// generation runs at a time per workspace.
func (w *ReportWorkspace) Generate(ctx context.Context) (WorkspaceView, GenerateOutcome) {
	w.touch()
	w.mu.Lock()
	if w.state == GenerationValidating || w.state == GenerationGenerating {
		view := w.viewLocked()
		w.mu.Unlock()
		return view, GenerateOutcome{Err: appErrors.ErrGenerationInProgress}
	}
	w.state = GenerationValidating
	if err := ValidateDateRange(w.startDate, w.endDate, w.now()); err != nil {
		w.state = GenerationIdle
		view := w.viewLocked()
		w.mu.Unlock()
		return view, GenerateOutcome{Err: err}
	}
	w.state = GenerationGenerating
	w.result = nil
	reportType := w.reportType
	payload := BuildReportFilter(w.startDate, w.endDate, w.options)
	w.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	w.logger.Info("generating report", zap.String("type", string(reportType)), zap.Any("filter", payload))
	resp, err := w.backend.GenerateReport(ctx, reportType, payload)

	result := &models.GeneratedReport{FileType: reportType, CreatedAt: w.now().UTC()}
	var outcomeErr error
	switch {
	case err != nil:
		msg := backendMessage(err, msgGenerateFailed)
		w.logger.Error("report generation failed", zap.Error(err))
		result.Message = msg
		outcomeErr = appErrors.Clone(appErrors.FromError(err), msg)
	case !resp.Success || resp.File == "":
		msg := resp.Message
		if msg == "" {
			msg = msgGenerateRejected
		}
		w.logger.Warn("report generation rejected", zap.String("message", msg))
		result.Message = msg
		outcomeErr = appErrors.Clone(appErrors.ErrBusiness, msg)
	default:
		result.Success = true
		result.File = resp.File
		result.Message = resp.Message
	}
	if w.metrics != nil {
		w.metrics.RecordReportGeneration(reportType, result.Success)
	}

	if result.Success {
		if err := w.refreshFiles(ctx); err != nil {
			w.logger.Warn("catalog refresh after generation failed", zap.Error(err))
		}
	}

	w.mu.Lock()
	w.result = result
	w.showResults = true
	if result.Success {
		w.lastOutcome = GenerationSucceeded
	} else {
		w.lastOutcome = GenerationFailed
	}
	w.state = GenerationIdle
	view, snap := w.viewLocked(), w.snapshotLocked()
	w.mu.Unlock()

	w.saveSnapshot(ctx, snap)
	return view, GenerateOutcome{Result: result, Err: outcomeErr}
}

// SuccessMessage is the notice shown after a successful generation.
func SuccessMessage(t models.ReportType) string {
	return "تم إنشاء التقرير " + t.Label() + " بنجاح!"
}

// DeleteFile removes one report. When it is the displayed generated report
// the result panel is cleared.
func (w *ReportWorkspace) DeleteFile(ctx context.Context, id string) (WorkspaceView, string, error) {
	w.touch()
	if id == "" {
		return w.View(), "", ErrReportIDMissing
	}
	w.mu.Lock()
	file, ok := w.catalog.Find(id)
	w.mu.Unlock()
	if !ok {
		return w.View(), "", appErrors.Clone(appErrors.ErrNotFound, "التقرير غير موجود")
	}

	ctx = context.WithoutCancel(ctx)
	if err := w.backend.DeleteReportFile(ctx, id); err != nil {
		w.logger.Error("failed to delete report", zap.String("report_id", id), zap.Error(err))
		msg := backendMessage(err, msgDeleteFailed)
		return w.View(), "", appErrors.Clone(appErrors.FromError(err), msg)
	}

	w.mu.Lock()
	w.catalog.Remove(id)
	if w.result != nil && w.result.File == file.PDFURL {
		w.result = nil
		w.showResults = false
	}
	view, snap := w.viewLocked(), w.snapshotLocked()
	w.mu.Unlock()

	w.saveSnapshot(ctx, snap)
	return view, msgDeleted, nil
}

// OldFiles previews the files a bulk deletion would target.
func (w *ReportWorkspace) OldFiles() []models.ReportFileView {
	w.touch()
	w.mu.Lock()
	defer w.mu.Unlock()
	old := w.catalog.OlderThan(w.cfg.OldAfter)
	out := make([]models.ReportFileView, 0, len(old))
	for _, f := range old {
		out = append(out, w.catalog.View(f))
	}
	return out
}

// DeleteOldFiles deletes every file older than the configured age, one call
// per file with bounded concurrency. Files without an id count as failures.
// The catalog is re-fetched once after every call has settled.
func (w *ReportWorkspace) DeleteOldFiles(ctx context.Context) (WorkspaceView, BulkDeleteResult, *BulkDeleteNotice) {
	w.touch()
	w.mu.Lock()
	old := w.catalog.OlderThan(w.cfg.OldAfter)
	w.mu.Unlock()

	result := BulkDeleteResult{Targeted: len(old)}
	if len(old) == 0 {
		return w.View(), result, &BulkDeleteNotice{Warning: true, Message: msgNoOldReports}
	}

	// Once issued the deletions run to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)
	var deleted, failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(w.cfg.DeleteConcurrency)
	for _, f := range old {
		if f.ID == "" {
			failed.Add(1)
			continue
		}
		g.Go(func() error {
			if err := w.backend.DeleteReportFile(ctx, f.ID); err != nil {
				w.logger.Warn("bulk delete: report not deleted", zap.String("report_id", f.ID), zap.Error(err))
				failed.Add(1)
				return nil
			}
			deleted.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	result.Deleted = int(deleted.Load())
	result.Failed = int(failed.Load())
	if w.metrics != nil {
		w.metrics.RecordBulkDelete(result.Deleted, result.Failed)
	}
	w.logger.Info("bulk delete settled", zap.Int("deleted", result.Deleted), zap.Int("failed", result.Failed))

	if err := w.refreshFiles(ctx); err != nil {
		w.logger.Warn("catalog refresh after bulk delete failed", zap.Error(err))
	}
	return w.View(), result, BulkDeleteNoticeFor(result)
}

// BulkDeleteNotice is the user notification for a bulk deletion.
type BulkDeleteNotice struct {
	Warning bool
	Message string
}

// BulkDeleteNoticeFor renders the outcome message of a bulk deletion.
func BulkDeleteNoticeFor(r BulkDeleteResult) *BulkDeleteNotice {
	if r.Failed == 0 {
		return &BulkDeleteNotice{Message: "تم حذف " + strconv.Itoa(r.Deleted) + " تقرير بنجاح"}
	}
	return &BulkDeleteNotice{
		Warning: true,
		Message: "تم حذف " + strconv.Itoa(r.Deleted) + " تقرير، وفشل حذف " + strconv.Itoa(r.Failed) + " تقرير",
	}
}

// Link resolves view and download details for a report.
func (w *ReportWorkspace) Link(id string) (FileLink, error) {
	w.touch()
	w.mu.Lock()
	file, ok := w.catalog.Find(id)
	var view models.ReportFileView
	if ok {
		view = w.catalog.View(file)
	}
	w.mu.Unlock()
	if !ok {
		return FileLink{}, appErrors.Clone(appErrors.ErrNotFound, "التقرير غير موجود")
	}
	return FileLink{
		ID:           file.ID,
		FileName:     view.FileName,
		FileType:     view.FileType,
		ViewURL:      file.PDFURL,
		DownloadURL:  file.PDFURL,
		DownloadName: DownloadName(view.FileType, w.now()),
	}, nil
}

// Busy reports whether a generation is in flight.
func (w *ReportWorkspace) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state == GenerationValidating || w.state == GenerationGenerating
}

// Close cancels the pending search. The workspace must not be used afterwards.
func (w *ReportWorkspace) Close() {
	w.debouncer.Stop()
}

// LastSeen returns when the workspace was last used.
func (w *ReportWorkspace) LastSeen() time.Time {
	return time.Unix(0, w.lastSeen.Load())
}

// backendMessage picks the backend's own wording for err: the structured body
// of a failed reply or the message of a success:false reply.
func backendMessage(err error, fallback string) string {
	if msg, ok := httpclient.StructuredMessage(err); ok {
		return msg
	}
	if errors.Is(err, appErrors.ErrBusiness) {
		return appErrors.Message(err, fallback)
	}
	return fallback
}

func (w *ReportWorkspace) touch() {
	w.lastSeen.Store(w.now().UnixNano())
}

func (w *ReportWorkspace) mutate(fn func() error) WorkspaceView {
	view, _ := w.mutateErr(fn)
	return view
}

func (w *ReportWorkspace) mutateErr(fn func() error) (WorkspaceView, error) {
	w.touch()
	w.mu.Lock()
	defer w.mu.Unlock()
	err := fn()
	return w.viewLocked(), err
}

func (w *ReportWorkspace) viewLocked() WorkspaceView {
	files := w.catalog.Files()
	return WorkspaceView{
		Options:        w.options.Views(),
		OpenDropdown:   w.options.OpenDropdown(),
		StartDate:      w.startDate,
		EndDate:        w.endDate,
		DateComplete:   w.startDate != "" && w.endDate != "",
		ReportType:     w.reportType,
		FileTypeFilter: w.catalog.TypeFilter(),
		SearchTerm:     w.pendingTerm,
		SearchPending:  w.debouncer.Pending(),
		Files:          files,
		TotalFiles:     w.catalog.Total(),
		OldFiles:       len(w.catalog.OlderThan(w.cfg.OldAfter)),
		FilterSummary:  FilterSummary(w.reportType, w.startDate, w.endDate, w.options),
		Payload:        BuildReportFilter(w.startDate, w.endDate, w.options),
		Generation: GenerationView{
			State:       w.state,
			LastOutcome: w.lastOutcome,
			Result:      w.result,
			ShowResults: w.showResults,
		},
		Loaded: w.loaded,
	}
}

func (w *ReportWorkspace) snapshotLocked() *models.WorkspaceSnapshot {
	return &models.WorkspaceSnapshot{
		StartDate:      w.startDate,
		EndDate:        w.endDate,
		ReportType:     w.reportType,
		FileTypeFilter: w.catalog.TypeFilter(),
		SearchTerm:     w.pendingTerm,
		LastResult:     w.result,
		ShowResults:    w.showResults,
		SavedAt:        w.now().UTC(),
	}
}

func (w *ReportWorkspace) saveSnapshot(ctx context.Context, snap *models.WorkspaceSnapshot) {
	if w.store == nil || snap == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), snapshotSaveTimeout)
	defer cancel()
	if err := w.store.Save(ctx, w.userID, snap); err != nil {
		w.logger.Warn("failed to save workspace snapshot", zap.Error(err))
	}
}
