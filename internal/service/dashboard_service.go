package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/achievement-console/internal/models"
	"github.com/noah-isme/achievement-console/pkg/arabic"
)

const (
	recentFeedLimit      = 10
	msgLoadActivities    = "فشل تحميل الأنشطة"
	msgLoadRecentFeed    = "فشل تحميل السجل الزمني"
	activityDateFallback = "غير محدد"
)

type activityRepository interface {
	ListActivities(ctx context.Context) ([]models.Activity, error)
	ListRecentAchievements(ctx context.Context) ([]models.RecentAchievement, error)
}

// DashboardView is the dashboard screen state.
type DashboardView struct {
	CurrentUser models.CurrentUser        `json:"currentUser"`
	Stats       models.ActivityStats      `json:"stats"`
	Activities  []models.ActivityRow      `json:"activities"`
	Recent      []models.AchievementEntry `json:"recentAchievements"`
	Failures    []LoadFailure             `json:"failures,omitempty"`
}

// DashboardService composes the dashboard from the activity backend.
type DashboardService struct {
	activities activityRepository
	feed       *FeedParser
	logger     *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(activities activityRepository, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{activities: activities, feed: NewFeedParser(), logger: logger}
}

// Load fetches activities and the recent feed independently. A failed source
// leaves its section empty and is reported in Failures.
func (s *DashboardService) Load(ctx context.Context, claims *models.JWTClaims) *DashboardView {
	var (
		activities           []models.Activity
		recent               []models.RecentAchievement
		activityErr, feedErr error
		g                    errgroup.Group
	)
	g.Go(func() error { activities, activityErr = s.activities.ListActivities(ctx); return nil })
	g.Go(func() error { recent, feedErr = s.activities.ListRecentAchievements(ctx); return nil })
	_ = g.Wait()

	view := &DashboardView{
		CurrentUser: CurrentUser(claims),
		Activities:  []models.ActivityRow{},
		Recent:      []models.AchievementEntry{},
	}
	if activityErr != nil {
		s.logger.Error("failed to load activities", zap.Error(activityErr))
		view.Failures = append(view.Failures, LoadFailure{Source: "activities", Message: msgLoadActivities})
	} else {
		SortActivities(activities)
		view.Stats = ComputeStats(activities)
		view.Activities = ActivityRows(activities)
	}
	if feedErr != nil {
		s.logger.Error("failed to load recent achievements", zap.Error(feedErr))
		view.Failures = append(view.Failures, LoadFailure{Source: "recentAchievements", Message: msgLoadRecentFeed})
	} else {
		if len(recent) > recentFeedLimit {
			recent = recent[:recentFeedLimit]
		}
		for _, a := range recent {
			view.Recent = append(view.Recent, s.feed.Enrich(a))
		}
	}
	return view
}

// Activities returns the sorted activity rows, used by exports.
func (s *DashboardService) Activities(ctx context.Context) ([]models.ActivityRow, error) {
	activities, err := s.activities.ListActivities(ctx)
	if err != nil {
		s.logger.Error("failed to load activities", zap.Error(err))
		return nil, err
	}
	SortActivities(activities)
	return ActivityRows(activities), nil
}

// SortActivities orders activities newest first. Activities without a
// readable date go last.
func SortActivities(activities []models.Activity) {
	sort.SliceStable(activities, func(i, j int) bool {
		return activityMillis(activities[i]) > activityMillis(activities[j])
	})
}

func activityMillis(a models.Activity) int64 {
	if t, ok := a.CreatedTime(); ok {
		return t.UnixMilli()
	}
	return 0
}

// ComputeStats counts activities per status. Drafts are counted by save
// status, independently of the review status.
func ComputeStats(activities []models.Activity) models.ActivityStats {
	stats := models.ActivityStats{TotalActivities: len(activities)}
	for _, a := range activities {
		switch a.Status {
		case models.ActivityStatusPending:
			stats.PendingActivities++
		case models.ActivityStatusApproved:
			stats.ApprovedActivities++
		case models.ActivityStatusRejected:
			stats.RejectedActivities++
		}
		if a.SaveStatus == models.ActivitySaveDraft {
			stats.DraftActivities++
		}
	}
	return stats
}

// ActivityRows decorates activities with their badge class and display date.
func ActivityRows(activities []models.Activity) []models.ActivityRow {
	rows := make([]models.ActivityRow, 0, len(activities))
	for _, a := range activities {
		rows = append(rows, models.ActivityRow{
			Activity:      a,
			StatusClass:   ActivityStatusClass(a.Status),
			FormattedDate: formatActivityDate(a),
		})
	}
	return rows
}

func formatActivityDate(a models.Activity) string {
	t, ok := a.CreatedTime()
	if !ok {
		return activityDateFallback
	}
	return arabic.FormatDate(t.In(time.UTC))
}
