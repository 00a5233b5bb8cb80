package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/internal/models"
	"github.com/noah-isme/term-tracker/internal/validation"
	apperrors "github.com/noah-isme/term-tracker/pkg/errors"
)

type assessmentRepository interface {
	ListByCourse(ctx context.Context, courseID int64) ([]models.Assessment, error)
	FindByCourseAndType(ctx context.Context, courseID int64, assessmentType string) (*models.Assessment, error)
	Save(ctx context.Context, assessment *models.Assessment) (int64, error)
	Delete(ctx context.Context, assessment *models.Assessment) error
}

type assessmentReminderPlanner interface {
	PlanAssessment(assessment *models.Assessment, courseName string) error
	CancelAssessment(assessmentID int64)
}

// AssessmentService orchestrates assessment workflows. Each course holds at
// most one assessment per type, so saves go through an upsert keyed on
// (course, type).
type AssessmentService struct {
	repo      assessmentRepository
	reminders assessmentReminderPlanner
	logger    *zap.Logger
	today     func() time.Time
}

// NewAssessmentService creates a new assessment service instance.
func NewAssessmentService(repo assessmentRepository, reminders assessmentReminderPlanner, logger *zap.Logger) *AssessmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{
		repo:      repo,
		reminders: reminders,
		logger:    logger,
		today: func() time.Time {
			now := time.Now()
			return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		},
	}
}

// WithClock overrides the service's notion of today.
func (s *AssessmentService) WithClock(today func() time.Time) *AssessmentService {
	s.today = today
	return s
}

// ListForCourse returns the assessments of a course.
func (s *AssessmentService) ListForCourse(ctx context.Context, courseID int64) ([]models.Assessment, error) {
	assessments, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to list assessments")
	}
	return assessments, nil
}

// Upsert persists an assessment under the one-per-type rule, adopting the
// identity of an existing assessment of the same type when present. It is
// the save path used when a whole course is committed; a blank title falls
// back to the type's default.
func (s *AssessmentService) Upsert(ctx context.Context, assessment *models.Assessment, courseName string) (int64, error) {
	if assessment == nil || assessment.CourseID <= 0 {
		return 0, apperrors.Clone(apperrors.ErrValidation, "Save the course before updating assessments.")
	}

	s.applyDefaults(assessment)
	// Legacy rows can carry an inverted window; repair it here the way the
	// load path does. The editor path instead rejects such input.
	if assessment.EndDate.Before(assessment.StartDate) {
		assessment.EndDate = assessment.StartDate
	}
	if strings.TrimSpace(assessment.Title) == "" {
		assessment.Title = models.AssessmentType(assessment.Type).DefaultTitle()
	}

	if err := validation.AssessmentDates(assessment.StartDate, assessment.EndDate, assessment.DueDate); err != nil {
		return 0, err
	}

	return s.save(ctx, assessment, courseName)
}

// SaveFromEditor persists an assessment edited explicitly, where a title is
// mandatory.
func (s *AssessmentService) SaveFromEditor(ctx context.Context, assessment *models.Assessment, courseName string) (int64, error) {
	if assessment == nil || assessment.CourseID <= 0 {
		return 0, apperrors.Clone(apperrors.ErrValidation, "Save the course before updating assessments.")
	}

	s.applyDefaults(assessment)

	if strings.TrimSpace(assessment.Title) == "" {
		display := models.AssessmentType(assessment.Type).DefaultTitle()
		return 0, apperrors.Clone(apperrors.ErrValidation,
			fmt.Sprintf("Enter a title for the %s before saving.", strings.ToLower(display)))
	}

	if err := validation.AssessmentDates(assessment.StartDate, assessment.EndDate, assessment.DueDate); err != nil {
		return 0, err
	}

	return s.save(ctx, assessment, courseName)
}

// Delete removes a persisted assessment after revoking its reminders.
func (s *AssessmentService) Delete(ctx context.Context, assessment *models.Assessment) error {
	if assessment == nil || assessment.ID <= 0 {
		return nil
	}

	s.reminders.CancelAssessment(assessment.ID)

	if err := s.repo.Delete(ctx, assessment); err != nil {
		return apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to delete assessment")
	}

	s.logger.Info("assessment deleted", zap.Int64("assessment_id", assessment.ID))
	return nil
}

func (s *AssessmentService) save(ctx context.Context, assessment *models.Assessment, courseName string) (int64, error) {
	assessment.Title = strings.TrimSpace(assessment.Title)

	if assessment.ID == 0 {
		existing, err := s.repo.FindByCourseAndType(ctx, assessment.CourseID, assessment.Type)
		switch {
		case err == nil:
			assessment.ID = existing.ID
		case errors.Is(err, sql.ErrNoRows):
			// First assessment of this type for the course.
		default:
			return 0, apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to look up assessment by type")
		}
	}

	id, err := s.repo.Save(ctx, assessment)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to save assessment")
	}

	if err := s.reminders.PlanAssessment(assessment, courseName); err != nil {
		s.logger.Warn("failed to plan assessment reminders",
			zap.Int64("assessment_id", id), zap.Error(err))
	}

	s.logger.Info("assessment saved",
		zap.Int64("assessment_id", id),
		zap.Int64("course_id", assessment.CourseID),
		zap.String("type", assessment.Type))
	return id, nil
}

// applyDefaults normalises type and status and fills zero dates: the due
// date anchors the window when only it is known. Dates the caller actually
// entered are left untouched so validation judges them as given.
func (s *AssessmentService) applyDefaults(assessment *models.Assessment) {
	assessment.Type = models.NormalizeAssessmentType(assessment.Type)
	assessment.Status = models.NormalizeAssessmentStatus(assessment.Status)

	today := s.today()
	if assessment.DueDate.IsZero() {
		assessment.DueDate = today
	}
	if assessment.StartDate.IsZero() {
		assessment.StartDate = assessment.DueDate
	}
	if assessment.EndDate.IsZero() {
		assessment.EndDate = assessment.DueDate
	}
}
