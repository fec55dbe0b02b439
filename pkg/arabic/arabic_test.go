package arabic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDigits(t *testing.T) {
	assert.Equal(t, "2025", NormalizeDigits("٢٠٢٥"))
	assert.Equal(t, "2025", NormalizeDigits("۲۰۲۵"))
	assert.Equal(t, "تقرير 19", NormalizeDigits("تقرير ١9"))
}

func TestFoldForSearch(t *testing.T) {
	assert.Equal(t, FoldForSearch("Report_2025"), FoldForSearch("report_٢٠٢٥"))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "5 يناير 2025", FormatDate(time.Date(2025, time.January, 5, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "ديسمبر", MonthName(time.December))
}
