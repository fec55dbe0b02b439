package models

import "time"

// ReportType is the generated file format.
type ReportType string

const (
	ReportTypePDF  ReportType = "pdf"
	ReportTypeDOCX ReportType = "docx"
)

// Valid reports whether the type is a known format.
func (t ReportType) Valid() bool {
	return t == ReportTypePDF || t == ReportTypeDOCX
}

// Label is the upper-case form shown to users.
func (t ReportType) Label() string {
	if t == ReportTypeDOCX {
		return "DOCX"
	}
	return "PDF"
}

// FileTypeFilter narrows the report catalog.
type FileTypeFilter string

const (
	FileTypeAll  FileTypeFilter = "all"
	FileTypePDF  FileTypeFilter = "pdf"
	FileTypeDOCX FileTypeFilter = "docx"
)

// Valid reports whether the filter is known.
func (f FileTypeFilter) Valid() bool {
	return f == FileTypeAll || f == FileTypePDF || f == FileTypeDOCX
}

// ReportFile is a previously generated report stored by the backend.
type ReportFile struct {
	ID        string `json:"_id"`
	PDFURL    string `json:"pdfurl"`
	CreatedAt string `json:"createdAt"`
}

// CreatedTime parses CreatedAt.
func (f ReportFile) CreatedTime() (time.Time, bool) {
	return ParseTimestamp(f.CreatedAt)
}

// ReportFileView is a catalog entry with derived display fields.
type ReportFileView struct {
	ReportFile
	FileName string     `json:"fileName"`
	FileType ReportType `json:"fileType"`
}

// ReportFilter is the filter payload sent to the backend generation endpoint.
// The users selection travels under the singular "user" key.
type ReportFilter struct {
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	MainCriteria string `json:"MainCriteria,omitempty"`
	SubCriteria  string `json:"SubCriteria,omitempty"`
	User         string `json:"user,omitempty"`
	Status       string `json:"status,omitempty"`
}

// ReportGenerationResponse is the backend reply to a generation request.
type ReportGenerationResponse struct {
	Success bool   `json:"success"`
	File    string `json:"file,omitempty"`
	Message string `json:"message,omitempty"`
}

// GeneratedReport is the last generation outcome shown in the result panel.
type GeneratedReport struct {
	Success   bool       `json:"success"`
	File      string     `json:"file,omitempty"`
	Message   string     `json:"message,omitempty"`
	FileType  ReportType `json:"fileType,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}
