package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/achievement-console/internal/models"
	appErrors "github.com/noah-isme/achievement-console/pkg/errors"
)

type userLister interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

type criteriaLister interface {
	ListMain(ctx context.Context) ([]models.MainCriteria, error)
	ListSub(ctx context.Context) ([]models.SubCriteria, error)
}

type reportFileBackend interface {
	ListReportFiles(ctx context.Context) ([]models.ReportFile, error)
	GenerateReport(ctx context.Context, reportType models.ReportType, filter models.ReportFilter) (*models.ReportGenerationResponse, error)
	DeleteReportFile(ctx context.Context, id string) error
}

type reportBackend struct {
	userLister
	criteria criteriaLister
	reportFileBackend
}

// NewReportBackend combines the administration, criteria and activity
// repositories into the calls a reports workspace makes.
func NewReportBackend(users userLister, criteria criteriaLister, files reportFileBackend) ReportBackend {
	return &reportBackend{userLister: users, criteria: criteria, reportFileBackend: files}
}

func (b *reportBackend) ListMainCriteria(ctx context.Context) ([]models.MainCriteria, error) {
	return b.criteria.ListMain(ctx)
}

func (b *reportBackend) ListSubCriteria(ctx context.Context) ([]models.SubCriteria, error) {
	return b.criteria.ListSub(ctx)
}

// WorkspaceGauge receives the number of live workspaces.
type WorkspaceGauge interface {
	SetActiveWorkspaces(n int)
}

// WorkspaceRegistry owns one ReportWorkspace per user and evicts the ones
// left idle.
type WorkspaceRegistry struct {
	mu         sync.Mutex
	workspaces map[string]*ReportWorkspace
	cfg        WorkspaceConfig
	deps       WorkspaceDeps
	idleTTL    time.Duration
	gauge      WorkspaceGauge
	logger     *zap.Logger
}

// NewWorkspaceRegistry constructs a registry. gauge may be nil.
func NewWorkspaceRegistry(cfg WorkspaceConfig, deps WorkspaceDeps, idleTTL time.Duration, gauge WorkspaceGauge) *WorkspaceRegistry {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if idleTTL <= 0 {
		idleTTL = 30 * time.Minute
	}
	return &WorkspaceRegistry{
		workspaces: make(map[string]*ReportWorkspace),
		cfg:        cfg,
		deps:       deps,
		idleTTL:    idleTTL,
		gauge:      gauge,
		logger:     deps.Logger,
	}
}

// Get returns the workspace of userID, creating it on first use.
func (r *WorkspaceRegistry) Get(userID string) *ReportWorkspace {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ws, ok := r.workspaces[userID]; ok {
		return ws
	}
	ws := NewReportWorkspace(userID, r.cfg, r.deps)
	r.workspaces[userID] = ws
	r.publishLocked()
	return ws
}

// Remove closes and forgets the workspace of userID.
func (r *WorkspaceRegistry) Remove(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ws, ok := r.workspaces[userID]; ok {
		ws.Close()
		delete(r.workspaces, userID)
		r.publishLocked()
	}
}

type snapshotDeleter interface {
	Delete(ctx context.Context, userID string) error
}

// Discard removes the workspace of userID together with its saved snapshot.
// A workspace with a generation in flight is kept and ErrGenerationInProgress
// returned.
func (r *WorkspaceRegistry) Discard(ctx context.Context, userID string) error {
	r.mu.Lock()
	if ws, ok := r.workspaces[userID]; ok {
		if ws.Busy() {
			r.mu.Unlock()
			return appErrors.ErrGenerationInProgress
		}
		ws.Close()
		delete(r.workspaces, userID)
		r.publishLocked()
	}
	r.mu.Unlock()
	if d, ok := r.deps.Snapshots.(snapshotDeleter); ok {
		return d.Delete(ctx, userID)
	}
	return nil
}

// Len returns the number of live workspaces.
func (r *WorkspaceRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}

// Sweep evicts workspaces unused for longer than the idle TTL and returns
// how many were removed.
func (r *WorkspaceRegistry) Sweep() int {
	cutoff := r.deps.Now().Add(-r.idleTTL)
	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, ws := range r.workspaces {
		if ws.LastSeen().Before(cutoff) && !ws.Busy() {
			ws.Close()
			delete(r.workspaces, id)
			evicted++
		}
	}
	if evicted > 0 {
		r.logger.Info("evicted idle report workspaces", zap.Int("count", evicted))
		r.publishLocked()
	}
	return evicted
}

// Run sweeps periodically until ctx is done, then closes every workspace.
func (r *WorkspaceRegistry) Run(ctx context.Context) {
	interval := r.idleTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *WorkspaceRegistry) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, ws := range r.workspaces {
		ws.Close()
		delete(r.workspaces, id)
	}
	r.publishLocked()
}

func (r *WorkspaceRegistry) publishLocked() {
	if r.gauge != nil {
		r.gauge.SetActiveWorkspaces(len(r.workspaces))
	}
}
