// Package notify derives the stable reminder identifiers for courses and
// assessments and applies the scheduling policy around them.
package notify

// Role offsets within an entity's id block.
const (
	startOffset = 1
	endOffset   = 2

	// Assessment ids live in a disjoint block above every course id, so
	// course- and assessment-derived ids never collide.
	assessmentIDBase = 100000
)

// CourseStartID returns the reminder id for a course's start alert.
func CourseStartID(courseID int64) int {
	return int(courseID)*10 + startOffset
}

// CourseEndID returns the reminder id for a course's end alert.
func CourseEndID(courseID int64) int {
	return int(courseID)*10 + endOffset
}

// AssessmentStartID returns the reminder id for an assessment's start alert.
func AssessmentStartID(assessmentID int64) int {
	return int(assessmentID)*10 + startOffset + assessmentIDBase
}

// AssessmentEndID returns the reminder id for an assessment's end alert.
func AssessmentEndID(assessmentID int64) int {
	return int(assessmentID)*10 + endOffset + assessmentIDBase
}
