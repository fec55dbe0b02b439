package service

import (
	"strings"
	"time"

	"github.com/noah-isme/achievement-console/internal/models"
	"github.com/noah-isme/achievement-console/pkg/arabic"
	appErrors "github.com/noah-isme/achievement-console/pkg/errors"
)

// ErrInvalidDate rejects a date that is neither YYYY-MM-DD nor RFC3339.
var ErrInvalidDate = appErrors.New("INVALID_DATE", appErrors.ErrValidation.Status, "صيغة التاريخ غير صحيحة")

// ParseFilterDate reads a filter date. Plain dates are midnight UTC.
func ParseFilterDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}

// ValidateDateRange checks, in order, that both dates are present, that start
// is not after end and that neither is after now. The first failure wins.
func ValidateDateRange(start, end string, now time.Time) error {
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return appErrors.ErrMissingDates
	}
	startAt, err := ParseFilterDate(start)
	if err != nil {
		return err
	}
	endAt, err := ParseFilterDate(end)
	if err != nil {
		return err
	}
	if startAt.After(endAt) {
		return appErrors.ErrStartAfterEnd
	}
	if startAt.After(now) || endAt.After(now) {
		return appErrors.ErrFutureDate
	}
	return nil
}

// BuildReportFilter serialises the selections into the generation payload.
// Empty selections are omitted.
func BuildReportFilter(start, end string, sets *OptionSets) models.ReportFilter {
	return models.ReportFilter{
		StartDate:    start,
		EndDate:      end,
		MainCriteria: strings.Join(sets.SelectedValues(OptionMainCriteria), ","),
		SubCriteria:  strings.Join(sets.SelectedValues(OptionSubCriteria), ","),
		User:         strings.Join(sets.SelectedValues(OptionUsers), ","),
		Status:       strings.Join(sets.SelectedValues(OptionStatus), ","),
	}
}

// FilterSummary describes the active filters in one line.
func FilterSummary(reportType models.ReportType, start, end string, sets *OptionSets) string {
	parts := []string{"نوع: " + reportType.Label()}
	if start != "" {
		parts = append(parts, "من: "+formatFilterDate(start))
	}
	if end != "" {
		parts = append(parts, "إلى: "+formatFilterDate(end))
	}
	groups := []struct {
		t     OptionType
		title string
	}{
		{OptionMainCriteria, "معايير رئيسية"},
		{OptionSubCriteria, "معايير فرعية"},
		{OptionStatus, "حالات"},
		{OptionUsers, "مستخدمين"},
	}
	for _, g := range groups {
		if labels := sets.SelectedLabels(g.t); len(labels) > 0 {
			parts = append(parts, g.title+": "+strings.Join(labels, "، "))
		}
	}
	return strings.Join(parts, " | ")
}

func formatFilterDate(raw string) string {
	t, err := ParseFilterDate(raw)
	if err != nil {
		return raw
	}
	return arabic.FormatDate(t)
}
