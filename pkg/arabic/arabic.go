package arabic

import (
	"strconv"
	"strings"
	"time"
)

var months = [...]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// NormalizeDigits maps Arabic-Indic (U+0660..U+0669) and Eastern
// Arabic-Indic (U+06F0..U+06F9) digits to ASCII.
func NormalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '٠' && r <= '٩':
			return '0' + (r - '٠')
		case r >= '۰' && r <= '۹':
			return '0' + (r - '۰')
		default:
			return r
		}
	}, s)
}

// FoldForSearch lowercases and normalises digits so both sides of a match compare equal.
func FoldForSearch(s string) string {
	return strings.ToLower(NormalizeDigits(s))
}

// FormatDate renders t as "<day> <month> <year>" with Arabic month names.
func FormatDate(t time.Time) string {
	return strconv.Itoa(t.Day()) + " " + months[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

// MonthName returns the Arabic name of m.
func MonthName(m time.Month) string {
	return months[m-1]
}
