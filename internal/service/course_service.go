package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/internal/models"
	"github.com/noah-isme/term-tracker/internal/validation"
	apperrors "github.com/noah-isme/term-tracker/pkg/errors"
)

// MaxCoursesPerTerm caps how many courses a single term may hold. The cap
// lives here, not in the repository, so the store keeps accepting legacy
// rows written before the rule existed.
const MaxCoursesPerTerm = 6

type courseRepository interface {
	ListByTerm(ctx context.Context, termID int64) ([]models.Course, error)
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	CountByTerm(ctx context.Context, termID int64) (int, error)
	Save(ctx context.Context, course *models.Course) (int64, error)
	UpdateNotes(ctx context.Context, id int64, notes string) error
	Delete(ctx context.Context, course *models.Course) error
}

type courseAssessmentReader interface {
	ListByCourse(ctx context.Context, courseID int64) ([]models.Assessment, error)
}

type courseReminderPlanner interface {
	PlanCourse(course *models.Course) error
	CancelCourse(courseID int64)
	CancelAssessment(assessmentID int64)
}

// SaveCourseRequest carries a course plus the status choice, which lives
// outside the entity until commit.
type SaveCourseRequest struct {
	Course         *models.Course
	SelectedStatus string
}

// UpdateNotesRequest replaces the notes of a persisted course.
type UpdateNotesRequest struct {
	CourseID int64  `validate:"required,gt=0"`
	Notes    string
}

// CourseService orchestrates course workflows.
type CourseService struct {
	repo        courseRepository
	assessments courseAssessmentReader
	reminders   courseReminderPlanner
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewCourseService creates a new course service instance.
func NewCourseService(repo courseRepository, assessments courseAssessmentReader, reminders courseReminderPlanner, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{
		repo:        repo,
		assessments: assessments,
		reminders:   reminders,
		validator:   validate,
		logger:      logger,
	}
}

// ListForTerm returns the courses of a term ordered by start date.
func (s *CourseService) ListForTerm(ctx context.Context, termID int64) ([]models.Course, error) {
	courses, err := s.repo.ListByTerm(ctx, termID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to list courses")
	}
	return courses, nil
}

// Get returns a course by id.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Clone(apperrors.ErrNotFound, "course not found")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to load course")
	}
	return course, nil
}

// Save validates and persists a course, then replans its reminders. A new
// course must reference a saved term and respect the per-term course cap.
func (s *CourseService) Save(ctx context.Context, req SaveCourseRequest) (int64, error) {
	course := req.Course

	if course != nil && course.TermID == 0 {
		return 0, apperrors.Clone(apperrors.ErrValidation, "Please save the term before adding courses.")
	}

	if err := validation.Course(course, req.SelectedStatus); err != nil {
		return 0, err
	}

	if course.ID == 0 {
		count, err := s.repo.CountByTerm(ctx, course.TermID)
		if err != nil {
			return 0, apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to count courses for term")
		}
		if count >= MaxCoursesPerTerm {
			return 0, apperrors.Clone(apperrors.ErrValidation, "You can only add up to six courses per term.")
		}
	}

	course.Name = strings.TrimSpace(course.Name)
	course.Status = models.NormalizeCourseStatus(req.SelectedStatus)
	course.InstructorName = strings.TrimSpace(course.InstructorName)
	course.InstructorPhone = strings.TrimSpace(course.InstructorPhone)
	course.InstructorEmail = strings.TrimSpace(course.InstructorEmail)
	course.Notes = strings.TrimSpace(course.Notes)

	id, err := s.repo.Save(ctx, course)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to save course")
	}

	// The row is durable at this point; a scheduling hiccup should not
	// fail the save.
	if err := s.reminders.PlanCourse(course); err != nil {
		s.logger.Warn("failed to plan course reminders",
			zap.Int64("course_id", id), zap.Error(err))
	}

	s.logger.Info("course saved", zap.Int64("course_id", id), zap.Int64("term_id", course.TermID))
	return id, nil
}

// UpdateNotes replaces the notes of a persisted course.
func (s *CourseService) UpdateNotes(ctx context.Context, req UpdateNotesRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return apperrors.Wrap(err, apperrors.ErrValidation.Code, "invalid notes payload")
	}

	if err := s.repo.UpdateNotes(ctx, req.CourseID, strings.TrimSpace(req.Notes)); err != nil {
		return apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to update course notes")
	}
	return nil
}

// Delete removes a course and its assessments, revoking their reminders
// first. Callers are expected to have confirmed the deletion with the user.
func (s *CourseService) Delete(ctx context.Context, course *models.Course) error {
	if course == nil || course.ID <= 0 {
		return nil
	}

	assessments, err := s.assessments.ListByCourse(ctx, course.ID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to load assessments for course delete")
	}
	for _, assessment := range assessments {
		s.reminders.CancelAssessment(assessment.ID)
	}
	s.reminders.CancelCourse(course.ID)

	if err := s.repo.Delete(ctx, course); err != nil {
		return apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to delete course")
	}

	s.logger.Info("course deleted", zap.Int64("course_id", course.ID))
	return nil
}
