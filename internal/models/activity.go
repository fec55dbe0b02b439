package models

import "time"

// Activity statuses used by the dashboard counters.
const (
	ActivityStatusPending  = "قيد المراجعة"
	ActivityStatusApproved = "معتمد"
	ActivityStatusRejected = "مرفوض"
	ActivitySaveDraft      = "مسودة"
)

// Activity is an achievement submission listed on the dashboard.
type Activity struct {
	ID                  string `json:"_id"`
	ActivityTitle       string `json:"activityTitle,omitempty"`
	ActivityDescription string `json:"activityDescription,omitempty"`
	Status              string `json:"status,omitempty"`
	SaveStatus          string `json:"SaveStatus,omitempty"`
	User                Ref    `json:"user"`
	MainCriteria        Ref    `json:"MainCriteria"`
	SubCriteria         Ref    `json:"SubCriteria"`
	CreatedAt           string `json:"createdAt,omitempty"`
}

// CreatedTime parses CreatedAt; ok is false when it is missing or malformed.
func (a Activity) CreatedTime() (time.Time, bool) {
	return ParseTimestamp(a.CreatedAt)
}

// ActivityStats are the dashboard counters.
type ActivityStats struct {
	TotalActivities    int `json:"totalActivities"`
	PendingActivities  int `json:"pendingActivities"`
	ApprovedActivities int `json:"approvedActivities"`
	RejectedActivities int `json:"rejectedActivities"`
	DraftActivities    int `json:"draftActivities"`
}

// RecentAchievement is one entry of the backend's recent activity feed.
type RecentAchievement struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Time    string `json:"time"`
	Status  string `json:"status,omitempty"`
}

// AchievementEntry is a feed entry enriched with derived display fields.
type AchievementEntry struct {
	RecentAchievement
	DerivedStatus    string `json:"derivedStatus"`
	StatusClass      string `json:"statusClass"`
	StatusBadgeClass string `json:"statusBadgeClass"`
	Icon             string `json:"icon"`
	Type             string `json:"type"`
	TypeClass        string `json:"typeClass"`
	Actor            string `json:"actor"`
	Action           string `json:"action"`
	Title            string `json:"title"`
	Standard         string `json:"standard"`
	Indicator        string `json:"indicator"`
	Date             string `json:"date"`
	TimeOfDay        string `json:"timeOfDay"`
}

// ActivityRow is an activity shaped for the dashboard table and exports.
type ActivityRow struct {
	Activity
	StatusClass   string `json:"statusClass"`
	FormattedDate string `json:"formattedDate"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp reads the timestamp formats the backend emits.
func ParseTimestamp(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
