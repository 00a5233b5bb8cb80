package models

import (
	"strings"
	"time"
)

// CourseNoteSummary is one row of the all-course notes listing, left-joined
// to the owning term. TermName is empty when the course has no term.
type CourseNoteSummary struct {
	CourseID   int64  `db:"CourseId" json:"course_id"`
	CourseName string `db:"CourseName" json:"course_name"`
	Notes      string `db:"Notes" json:"notes"`
	TermName   string `db:"TermName" json:"term_name"`
}

// TermDisplayName labels term-less courses for display.
func (s CourseNoteSummary) TermDisplayName() string {
	if strings.TrimSpace(s.TermName) == "" {
		return "No term assigned"
	}
	return s.TermName
}

// DisplayNotes substitutes a placeholder when no notes exist.
func (s CourseNoteSummary) DisplayNotes() string {
	if strings.TrimSpace(s.Notes) == "" {
		return "No notes added yet."
	}
	return s.Notes
}

// CourseReportEntry is one row of the class schedule report. The store
// supplies raw untruncated text; the display helpers shape it.
type CourseReportEntry struct {
	TermName   string    `db:"TermName" json:"term_name"`
	CourseName string    `db:"CourseName" json:"course_name"`
	Status     string    `db:"Status" json:"status"`
	StartDate  time.Time `db:"StartDate" json:"start_date"`
	EndDate    time.Time `db:"EndDate" json:"end_date"`
	Notes      string    `db:"Notes" json:"notes"`
}

const maxDisplayCourseNameLength = 40

// DisplayCourseName truncates long course names with an ellipsis marker.
func (e CourseReportEntry) DisplayCourseName() string {
	if strings.TrimSpace(e.CourseName) == "" {
		return "-"
	}
	runes := []rune(e.CourseName)
	if len(runes) <= maxDisplayCourseNameLength {
		return e.CourseName
	}
	return string(runes[:maxDisplayCourseNameLength]) + "…"
}

// DisplayTermName labels term-less courses for display.
func (e CourseReportEntry) DisplayTermName() string {
	if strings.TrimSpace(e.TermName) == "" {
		return "Unassigned Term"
	}
	return e.TermName
}

// SanitizedNotes collapses newline sequences to single spaces so notes fit a
// one-line report cell.
func (e CourseReportEntry) SanitizedNotes() string {
	if strings.TrimSpace(e.Notes) == "" {
		return "-"
	}
	replacer := strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")
	return replacer.Replace(e.Notes)
}
