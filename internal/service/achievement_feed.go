package service

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/noah-isme/achievement-console/internal/models"
)

// Feed messages are free text written by the backend. Everything below is a
// best-effort reading of that text; unmatched fields stay empty.

const (
	feedStatusNew      = "جديد"
	feedStatusUnknown  = "غير محدد"
	feedUnknownActor   = "مستخدم غير معروف"
	feedTypeAdd        = "إضافة إنجاز"
	feedTypeUpdate     = "تحديث إنجاز"
	feedTypeDelete     = "حذف إنجاز"
	feedTypeOther      = "نشاط"
	feedKeywordAdd     = "إضافة"
	feedKeywordReview  = "مراجعة"
	feedKeywordUpdate  = "تحديث"
	feedKeywordDelete  = "حذف"
	feedDateUnknown    = "غير محدد"
	feedArabicComma    = "،"
	defaultStatusBadge = "badge bg-light text-dark"
)

var (
	feedActorPattern     = regexp.MustCompile(`بواسطة:\s*([^\n]+)`)
	feedTitlePattern     = regexp.MustCompile(`عنوان:\s*"([^"]+)"`)
	feedStandardPattern  = regexp.MustCompile(`ضمن المعيار\s*"([^"]+)"`)
	feedIndicatorPattern = regexp.MustCompile(`-\s*"([^"]+)"\s*[\n\r]`)
	feedDatePattern      = regexp.MustCompile(`(\d{1,2})\x{202F}/\x{202F}(\d{1,2})\x{202F}/\x{202F}(\d{4})`)
	feedTimePattern      = regexp.MustCompile(`(\d{1,2}:\d{1,2}\s*[صمس])`)
)

// FeedParser derives display fields from recent activity messages.
type FeedParser struct {
	policy *bluemonday.Policy
}

// NewFeedParser creates a parser that strips markup from messages first.
func NewFeedParser() *FeedParser {
	return &FeedParser{policy: bluemonday.StrictPolicy()}
}

// Plain strips markup from message and decodes entities.
func (p *FeedParser) Plain(message string) string {
	return html.UnescapeString(p.policy.Sanitize(message))
}

// Enrich derives every display field of an entry.
func (p *FeedParser) Enrich(a models.RecentAchievement) models.AchievementEntry {
	msg := p.Plain(a.Message)
	status := AchievementStatus(msg)
	kind := AchievementType(msg)
	a.Message = msg
	return models.AchievementEntry{
		RecentAchievement: a,
		DerivedStatus:     status,
		StatusClass:       achievementStatusClass(status),
		StatusBadgeClass:  achievementBadgeClass(status),
		Icon:              achievementIcon(status),
		Type:              kind,
		TypeClass:         achievementTypeClass(kind),
		Actor:             AchievementActor(msg),
		Action:            AchievementAction(msg),
		Title:             firstGroup(feedTitlePattern, msg),
		Standard:          firstGroup(feedStandardPattern, msg),
		Indicator:         firstGroup(feedIndicatorPattern, msg),
		Date:              FeedDate(a.Time),
		TimeOfDay:         FeedTimeOfDay(a.Time),
	}
}

// AchievementStatus classifies a message by the first keyword it contains.
func AchievementStatus(message string) string {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, models.ActivityStatusApproved):
		return models.ActivityStatusApproved
	case strings.Contains(m, models.ActivityStatusRejected):
		return models.ActivityStatusRejected
	case strings.Contains(m, feedKeywordReview):
		return models.ActivityStatusPending
	case strings.Contains(m, feedKeywordAdd):
		return feedStatusNew
	default:
		return feedStatusUnknown
	}
}

func achievementStatusClass(status string) string {
	switch status {
	case models.ActivityStatusApproved:
		return "status-approved"
	case models.ActivityStatusRejected:
		return "status-rejected"
	case models.ActivityStatusPending:
		return "status-pending"
	case feedStatusNew:
		return "status-new"
	default:
		return "status-default"
	}
}

func achievementIcon(status string) string {
	switch status {
	case models.ActivityStatusApproved:
		return "fas fa-check-circle"
	case models.ActivityStatusRejected:
		return "fas fa-times-circle"
	case models.ActivityStatusPending:
		return "fas fa-clock"
	case feedStatusNew:
		return "fas fa-plus-circle"
	default:
		return "fas fa-info-circle"
	}
}

func achievementBadgeClass(status string) string {
	switch status {
	case models.ActivityStatusApproved:
		return "badge-success"
	case models.ActivityStatusRejected:
		return "badge-danger"
	case models.ActivityStatusPending:
		return "badge-warning"
	case feedStatusNew:
		return "badge-primary"
	default:
		return "badge-secondary"
	}
}

// AchievementType classifies the kind of change a message reports.
func AchievementType(message string) string {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, feedKeywordAdd):
		return feedTypeAdd
	case strings.Contains(m, feedKeywordUpdate):
		return feedTypeUpdate
	case strings.Contains(m, feedKeywordDelete):
		return feedTypeDelete
	default:
		return feedTypeOther
	}
}

func achievementTypeClass(kind string) string {
	switch kind {
	case feedTypeAdd:
		return "type-new"
	case feedTypeUpdate:
		return "type-update"
	case feedTypeDelete:
		return "type-delete"
	default:
		return "type-default"
	}
}

// AchievementActor returns the name following "بواسطة:".
func AchievementActor(message string) string {
	if actor := firstGroup(feedActorPattern, message); actor != "" {
		return actor
	}
	return feedUnknownActor
}

// AchievementAction summarises the change as a verb phrase.
func AchievementAction(message string) string {
	switch {
	case message == "":
		return ""
	case strings.Contains(message, "تمت إضافة إنجاز جديد"):
		return "أضاف إنجاز جديد"
	case strings.Contains(message, "تم تحديث إنجاز"):
		return "حدث الإنجاز"
	case strings.Contains(message, "تم حذف إنجاز"):
		return "حذف الإنجاز"
	default:
		return "قام بإجراء"
	}
}

// FeedDate rewrites a "D / M / YYYY" timestamp (narrow no-break spaces around
// the slashes) as "YYYY/M/D". Other values keep their part before the first
// Arabic comma.
func FeedDate(raw string) string {
	if raw == "" {
		return feedDateUnknown
	}
	if m := feedDatePattern.FindStringSubmatch(raw); m != nil {
		return m[3] + "/" + m[2] + "/" + m[1]
	}
	if head, _, _ := strings.Cut(raw, feedArabicComma); head != "" {
		return head
	}
	return raw
}

// FeedTimeOfDay extracts "H:MM ص|م" from a feed timestamp.
func FeedTimeOfDay(raw string) string {
	return firstGroup(feedTimePattern, raw)
}

// ActivityStatusClass maps an activity status to its badge class.
func ActivityStatusClass(status string) string {
	switch status {
	case models.ActivityStatusPending:
		return "badge bg-warning"
	case models.ActivityStatusApproved:
		return "badge bg-success"
	case models.ActivityStatusRejected:
		return "badge bg-danger"
	case models.ActivitySaveDraft:
		return "badge bg-secondary"
	default:
		return defaultStatusBadge
	}
}

func firstGroup(re *regexp.Regexp, s string) string {
	if s == "" {
		return ""
	}
	if m := re.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
