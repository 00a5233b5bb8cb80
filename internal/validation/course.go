package validation

import (
	"regexp"
	"strings"

	"github.com/noah-isme/term-tracker/internal/models"
	apperrors "github.com/noah-isme/term-tracker/pkg/errors"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Course checks a course and the externally selected status, in a fixed
// order: presence, name, dates, status, instructor name, phone, email.
// The first violated rule wins.
func Course(course *models.Course, selectedStatus string) error {
	if course == nil {
		return apperrors.Clone(apperrors.ErrValidation, "Course data must be provided before saving.")
	}

	if strings.TrimSpace(course.Name) == "" {
		return apperrors.Clone(apperrors.ErrValidation, "Enter a course name before saving.")
	}

	if course.EndDate.Before(course.StartDate) {
		return apperrors.Clone(apperrors.ErrValidation, "The course end date must be on or after the start date.")
	}

	if strings.TrimSpace(selectedStatus) == "" {
		return apperrors.Clone(apperrors.ErrValidation, "Select a course status before saving.")
	}

	if strings.TrimSpace(course.InstructorName) == "" {
		return apperrors.Clone(apperrors.ErrValidation, "Enter the course instructor's name before saving.")
	}

	if strings.TrimSpace(course.InstructorPhone) == "" {
		return apperrors.Clone(apperrors.ErrValidation, "Enter the course instructor's phone number before saving.")
	}

	if !IsValidEmail(course.InstructorEmail) {
		return apperrors.Clone(apperrors.ErrValidation, "Enter a valid email address for the instructor before saving.")
	}

	return nil
}

// IsValidEmail reports whether the address matches the simple
// local@domain.tld shape used across the app.
func IsValidEmail(email string) bool {
	if strings.TrimSpace(email) == "" {
		return false
	}
	return emailPattern.MatchString(email)
}
