package models

import "strings"

// CourseStatus is the lifecycle state of a course. The value is the display
// text, which is also the form persisted in the store.
type CourseStatus string

const (
	CourseStatusInProgress CourseStatus = "In Progress"
	CourseStatusCompleted  CourseStatus = "Completed"
	CourseStatusDropped    CourseStatus = "Dropped"
	CourseStatusPlanToTake CourseStatus = "Plan to Take"
)

// AssessmentType distinguishes the two kinds of course assessments.
type AssessmentType string

const (
	AssessmentTypeObjective   AssessmentType = "Objective"
	AssessmentTypePerformance AssessmentType = "Performance"
)

// AssessmentStatus is the lifecycle state of an assessment.
type AssessmentStatus string

const (
	AssessmentStatusNotStarted AssessmentStatus = "Not Started"
	AssessmentStatusScheduled  AssessmentStatus = "Scheduled"
	AssessmentStatusSubmitted  AssessmentStatus = "Submitted"
	AssessmentStatusPassed     AssessmentStatus = "Passed"
	AssessmentStatusFailed     AssessmentStatus = "Failed"
)

// Lookup keys are lowercased display text plus the lowercased compact
// enumeration name ("plan to take" and "plantotake" both resolve).
var courseStatusLookup = statusLookup([]CourseStatus{
	CourseStatusInProgress,
	CourseStatusCompleted,
	CourseStatusDropped,
	CourseStatusPlanToTake,
})

var assessmentTypeLookup = statusLookup([]AssessmentType{
	AssessmentTypeObjective,
	AssessmentTypePerformance,
})

var assessmentStatusLookup = statusLookup([]AssessmentStatus{
	AssessmentStatusNotStarted,
	AssessmentStatusScheduled,
	AssessmentStatusSubmitted,
	AssessmentStatusPassed,
	AssessmentStatusFailed,
})

func statusLookup[T ~string](values []T) map[string]T {
	lookup := make(map[string]T, len(values)*2)
	for _, v := range values {
		display := string(v)
		lookup[strings.ToLower(display)] = v
		lookup[strings.ToLower(strings.ReplaceAll(display, " ", ""))] = v
	}
	return lookup
}

// ParseCourseStatus resolves free text to a course status, matching the
// display text or the enumeration name case-insensitively.
func ParseCourseStatus(text string) (CourseStatus, bool) {
	s, ok := courseStatusLookup[strings.ToLower(strings.TrimSpace(text))]
	return s, ok
}

// NormalizeCourseStatus returns the canonical display text for free text,
// falling back to "In Progress" for blank or unknown values so legacy rows
// stay loadable.
func NormalizeCourseStatus(text string) string {
	if s, ok := ParseCourseStatus(text); ok {
		return string(s)
	}
	return string(CourseStatusInProgress)
}

// CourseStatusOptions lists the selectable course statuses in display order.
func CourseStatusOptions() []string {
	return []string{
		string(CourseStatusInProgress),
		string(CourseStatusCompleted),
		string(CourseStatusDropped),
		string(CourseStatusPlanToTake),
	}
}

// ParseAssessmentType resolves free text to an assessment type.
func ParseAssessmentType(text string) (AssessmentType, bool) {
	t, ok := assessmentTypeLookup[strings.ToLower(strings.TrimSpace(text))]
	return t, ok
}

// NormalizeAssessmentType returns the canonical type text, defaulting
// unknown values to Objective.
func NormalizeAssessmentType(text string) string {
	if t, ok := ParseAssessmentType(text); ok {
		return string(t)
	}
	return string(AssessmentTypeObjective)
}

// ParseAssessmentStatus resolves free text to an assessment status.
func ParseAssessmentStatus(text string) (AssessmentStatus, bool) {
	s, ok := assessmentStatusLookup[strings.ToLower(strings.TrimSpace(text))]
	return s, ok
}

// NormalizeAssessmentStatus returns the canonical display text, falling back
// to "Not Started" for blank or unknown values.
func NormalizeAssessmentStatus(text string) string {
	if s, ok := ParseAssessmentStatus(text); ok {
		return string(s)
	}
	return string(AssessmentStatusNotStarted)
}

// AssessmentStatusOptions lists the selectable assessment statuses in
// display order.
func AssessmentStatusOptions() []string {
	return []string{
		string(AssessmentStatusNotStarted),
		string(AssessmentStatusScheduled),
		string(AssessmentStatusSubmitted),
		string(AssessmentStatusPassed),
		string(AssessmentStatusFailed),
	}
}

// DefaultTitle is the title given to an assessment created implicitly when
// a new course is saved without the editor being opened.
func (t AssessmentType) DefaultTitle() string {
	if t == AssessmentTypePerformance {
		return "Performance Assessment"
	}
	return "Objective Assessment"
}
