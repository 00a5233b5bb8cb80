package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/internal/models"
	apperrors "github.com/noah-isme/term-tracker/pkg/errors"
)

const (
	evaluationTermName   = "Term 4"
	evaluationCourseName = "Mobile Application Development Using C# - C971"
)

type seedTermRepository interface {
	FindByName(ctx context.Context, name string) (*models.Term, error)
	Save(ctx context.Context, term *models.Term) (int64, error)
}

type seedCourseRepository interface {
	FindByTermAndName(ctx context.Context, termID int64, name string) (*models.Course, error)
	Save(ctx context.Context, course *models.Course) (int64, error)
}

type seedAssessmentRepository interface {
	FindByCourseAndType(ctx context.Context, courseID int64, assessmentType string) (*models.Assessment, error)
	Save(ctx context.Context, assessment *models.Assessment) (int64, error)
}

// SeedService plants a known evaluation data set: one term, one course and
// both assessment types. Rows are looked up by their natural keys before
// writing, so repeated runs converge on the same data instead of duplicating
// it.
type SeedService struct {
	terms       seedTermRepository
	courses     seedCourseRepository
	assessments seedAssessmentRepository
	logger      *zap.Logger
}

// NewSeedService creates a new seed service instance.
func NewSeedService(terms seedTermRepository, courses seedCourseRepository, assessments seedAssessmentRepository, logger *zap.Logger) *SeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeedService{
		terms:       terms,
		courses:     courses,
		assessments: assessments,
		logger:      logger,
	}
}

// EnsureEvaluationData creates or refreshes the evaluation records.
func (s *SeedService) EnsureEvaluationData(ctx context.Context) error {
	termStart := time.Date(2025, time.January, 8, 0, 0, 0, 0, time.Local)
	termEnd := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.Local)

	term, err := s.terms.FindByName(ctx, evaluationTermName)
	if errors.Is(err, sql.ErrNoRows) {
		term = &models.Term{}
	} else if err != nil {
		return apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to look up evaluation term")
	}
	term.Name = evaluationTermName
	term.StartDate = termStart
	term.EndDate = termEnd
	if _, err := s.terms.Save(ctx, term); err != nil {
		return apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to save evaluation term")
	}

	courseStart := termStart.AddDate(0, 0, 7)
	courseEnd := termEnd.AddDate(0, 0, -7)

	course, err := s.courses.FindByTermAndName(ctx, term.ID, evaluationCourseName)
	if errors.Is(err, sql.ErrNoRows) {
		course = &models.Course{TermID: term.ID}
	} else if err != nil {
		return apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to look up evaluation course")
	}
	course.Name = evaluationCourseName
	course.StartDate = courseStart
	course.EndDate = courseEnd
	course.Status = string(models.CourseStatusInProgress)
	course.InstructorName = "Anika Patel"
	course.InstructorPhone = "555-123-4567"
	course.InstructorEmail = "anika.patel@strimeuniversity.edu"
	course.Notes = "Test Note"
	course.StartAlert = false
	course.EndAlert = false
	if _, err := s.courses.Save(ctx, course); err != nil {
		return apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to save evaluation course")
	}

	objectiveDate := courseStart.AddDate(0, 2, 0)
	if err := s.ensureAssessment(ctx, course.ID, "Mobile App Objective Assessment",
		models.AssessmentTypeObjective, objectiveDate); err != nil {
		return err
	}

	performanceDate := courseEnd.AddDate(0, -1, 0)
	if err := s.ensureAssessment(ctx, course.ID, "Mobile App Performance Assessment",
		models.AssessmentTypePerformance, performanceDate); err != nil {
		return err
	}

	s.logger.Info("evaluation data ensured",
		zap.Int64("term_id", term.ID),
		zap.Int64("course_id", course.ID))
	return nil
}

func (s *SeedService) ensureAssessment(ctx context.Context, courseID int64, title string, assessmentType models.AssessmentType, date time.Time) error {
	assessment, err := s.assessments.FindByCourseAndType(ctx, courseID, string(assessmentType))
	if errors.Is(err, sql.ErrNoRows) {
		assessment = &models.Assessment{CourseID: courseID}
	} else if err != nil {
		return apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to look up evaluation assessment")
	}

	assessment.Title = title
	assessment.Type = string(assessmentType)
	assessment.Status = string(models.AssessmentStatusScheduled)
	assessment.DueDate = date
	assessment.StartDate = date
	assessment.EndDate = date
	assessment.StartAlert = false
	assessment.EndAlert = false

	if _, err := s.assessments.Save(ctx, assessment); err != nil {
		return apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to save evaluation assessment")
	}
	return nil
}
