package service

import (
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/noah-isme/achievement-console/internal/models"
	"github.com/noah-isme/achievement-console/pkg/arabic"
)

const unnamedFile = "ملف بدون اسم"

var reportExtension = regexp.MustCompile(`(?i)\.(pdf|docx)$`)

// FileTypeOf derives the report format from the URL extension.
func FileTypeOf(fileURL string) models.ReportType {
	clean := strings.SplitN(fileURL, "?", 2)[0]
	if strings.EqualFold(path.Ext(clean), ".docx") {
		return models.ReportTypeDOCX
	}
	return models.ReportTypePDF
}

// DeriveFileName builds the display name of a report from its storage URL.
// Stems shorter than three characters fall back to a dated label.
func DeriveFileName(f models.ReportFile, now time.Time) string {
	if f.PDFURL == "" {
		return unnamedFile
	}
	segments := strings.Split(f.PDFURL, "/")
	name := strings.SplitN(segments[len(segments)-1], "?", 2)[0]
	decoded, err := url.PathUnescape(name)
	if err != nil {
		return datedFileName(f, now)
	}
	stem := reportExtension.ReplaceAllString(decoded, "")
	if utf8.RuneCountInString(stem) < 3 {
		return datedFileName(f, now)
	}
	return stem
}

func datedFileName(f models.ReportFile, now time.Time) string {
	created, ok := f.CreatedTime()
	if !ok {
		created = now
	}
	return "تقرير_" + arabic.FormatDate(created)
}

// DownloadName is the suggested file name for a download made on day now.
func DownloadName(t models.ReportType, now time.Time) string {
	return "تقرير_الأنشطة_" + now.UTC().Format(time.DateOnly) + "." + string(t)
}

// ReportCatalog holds previously generated files and their filtered view.
// It is not safe for concurrent use.
type ReportCatalog struct {
	files      []models.ReportFile
	typeFilter models.FileTypeFilter
	search     string
	filtered   []models.ReportFileView
	now        func() time.Time
}

// NewReportCatalog builds an empty catalog showing every type.
func NewReportCatalog(now func() time.Time) *ReportCatalog {
	if now == nil {
		now = time.Now
	}
	return &ReportCatalog{typeFilter: models.FileTypeAll, now: now, filtered: []models.ReportFileView{}}
}

// SetFiles replaces the catalog and re-applies the active filters.
func (c *ReportCatalog) SetFiles(files []models.ReportFile) {
	c.files = append([]models.ReportFile(nil), files...)
	c.apply()
}

// SetTypeFilter changes the type filter.
func (c *ReportCatalog) SetTypeFilter(f models.FileTypeFilter) {
	c.typeFilter = f
	c.apply()
}

// TypeFilter returns the active type filter.
func (c *ReportCatalog) TypeFilter() models.FileTypeFilter {
	return c.typeFilter
}

// ApplySearch sets the filename search term and re-filters.
func (c *ReportCatalog) ApplySearch(term string) {
	c.search = term
	c.apply()
}

// SearchTerm returns the applied search term.
func (c *ReportCatalog) SearchTerm() string {
	return c.search
}

// Find returns the file with the given id.
func (c *ReportCatalog) Find(id string) (models.ReportFile, bool) {
	for _, f := range c.files {
		if f.ID == id {
			return f, true
		}
	}
	return models.ReportFile{}, false
}

// Remove drops the file with the given id and re-applies the filters.
func (c *ReportCatalog) Remove(id string) {
	kept := c.files[:0]
	for _, f := range c.files {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	c.files = kept
	c.apply()
}

// OlderThan returns files created strictly before now minus age. Files with
// an unreadable creation time are never considered old.
func (c *ReportCatalog) OlderThan(age time.Duration) []models.ReportFile {
	cutoff := c.now().Add(-age)
	old := make([]models.ReportFile, 0)
	for _, f := range c.files {
		if created, ok := f.CreatedTime(); ok && created.Before(cutoff) {
			old = append(old, f)
		}
	}
	return old
}

// Files returns the filtered view.
func (c *ReportCatalog) Files() []models.ReportFileView {
	return append([]models.ReportFileView{}, c.filtered...)
}

// Total returns the number of files before filtering.
func (c *ReportCatalog) Total() int {
	return len(c.files)
}

// View decorates a file with derived fields.
func (c *ReportCatalog) View(f models.ReportFile) models.ReportFileView {
	return models.ReportFileView{ReportFile: f, FileName: DeriveFileName(f, c.now()), FileType: FileTypeOf(f.PDFURL)}
}

func (c *ReportCatalog) apply() {
	term := arabic.FoldForSearch(strings.TrimSpace(c.search))
	out := make([]models.ReportFileView, 0, len(c.files))
	for _, f := range c.files {
		view := c.View(f)
		if c.typeFilter != models.FileTypeAll && string(view.FileType) != string(c.typeFilter) {
			continue
		}
		if term != "" && !strings.Contains(arabic.FoldForSearch(view.FileName), term) {
			continue
		}
		out = append(out, view)
	}
	c.filtered = out
}
