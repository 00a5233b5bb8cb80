package validation

import (
	"time"

	apperrors "github.com/noah-isme/term-tracker/pkg/errors"
)

// AssessmentDates checks the assessment window and due date: the end may
// not precede the start, and the due date must fall within [start, end].
func AssessmentDates(start, end, due time.Time) error {
	if end.Before(start) {
		return apperrors.Clone(apperrors.ErrValidation, "The anticipated end date must be on or after the anticipated start date.")
	}

	if due.Before(start) {
		return apperrors.Clone(apperrors.ErrValidation, "The due date must be on or after the anticipated start date.")
	}

	if due.After(end) {
		return apperrors.Clone(apperrors.ErrValidation, "The due date must be on or before the anticipated end date.")
	}

	return nil
}
