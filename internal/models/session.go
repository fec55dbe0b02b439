package models

import "time"

// WorkspaceSnapshot is the part of a reports workspace that survives a
// restart or a second gateway instance. Selections are not kept because a
// catalog load resets them.
type WorkspaceSnapshot struct {
	StartDate      string           `json:"startDate,omitempty"`
	EndDate        string           `json:"endDate,omitempty"`
	ReportType     ReportType       `json:"reportType,omitempty"`
	FileTypeFilter FileTypeFilter   `json:"fileTypeFilter,omitempty"`
	SearchTerm     string           `json:"searchTerm,omitempty"`
	LastResult     *GeneratedReport `json:"lastResult,omitempty"`
	ShowResults    bool             `json:"showResults"`
	SavedAt        time.Time        `json:"savedAt"`
}
