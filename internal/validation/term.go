// Package validation holds the pure save-time rules for terms, courses and
// assessments. Each rule reports only the first violation, in a fixed order,
// so callers get deterministic feedback.
package validation

import (
	"github.com/noah-isme/term-tracker/internal/models"
	apperrors "github.com/noah-isme/term-tracker/pkg/errors"
)

// TermDates checks that a term exists and does not end before it starts.
func TermDates(term *models.Term) error {
	if term == nil {
		return apperrors.Clone(apperrors.ErrValidation, "Term data must be provided before saving.")
	}

	if term.EndDate.Before(term.StartDate) {
		return apperrors.Clone(apperrors.ErrValidation, "The term end date must be on or after the start date.")
	}

	return nil
}
