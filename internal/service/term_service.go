package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/internal/models"
	"github.com/noah-isme/term-tracker/internal/validation"
	apperrors "github.com/noah-isme/term-tracker/pkg/errors"
)

type termRepository interface {
	List(ctx context.Context) ([]models.Term, error)
	FindByID(ctx context.Context, id int64) (*models.Term, error)
	Save(ctx context.Context, term *models.Term) (int64, error)
	Delete(ctx context.Context, term *models.Term) error
}

type termCourseReader interface {
	ListByTerm(ctx context.Context, termID int64) ([]models.Course, error)
}

type termAssessmentReader interface {
	ListByCourse(ctx context.Context, courseID int64) ([]models.Assessment, error)
}

type reminderCanceller interface {
	CancelCourse(courseID int64)
	CancelAssessment(assessmentID int64)
}

// TermService orchestrates term workflows: validation, persistence and
// reminder cleanup on delete.
type TermService struct {
	repo        termRepository
	courses     termCourseReader
	assessments termAssessmentReader
	reminders   reminderCanceller
	logger      *zap.Logger
}

// NewTermService creates a new term service instance.
func NewTermService(repo termRepository, courses termCourseReader, assessments termAssessmentReader, reminders reminderCanceller, logger *zap.Logger) *TermService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TermService{
		repo:        repo,
		courses:     courses,
		assessments: assessments,
		reminders:   reminders,
		logger:      logger,
	}
}

// List returns all terms ordered by start date.
func (s *TermService) List(ctx context.Context) ([]models.Term, error) {
	terms, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to list terms")
	}
	return terms, nil
}

// Get returns a term by id.
func (s *TermService) Get(ctx context.Context, id int64) (*models.Term, error) {
	term, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Clone(apperrors.ErrNotFound, "term not found")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to load term")
	}
	return term, nil
}

// Save validates and persists a term, inserting when its id is zero. The
// persisted id is returned.
func (s *TermService) Save(ctx context.Context, term *models.Term) (int64, error) {
	if term == nil {
		return 0, validation.TermDates(nil)
	}

	if strings.TrimSpace(term.Name) == "" {
		return 0, apperrors.Clone(apperrors.ErrValidation, "Please enter a name for the term.")
	}

	if err := validation.TermDates(term); err != nil {
		return 0, err
	}

	term.Name = strings.TrimSpace(term.Name)

	id, err := s.repo.Save(ctx, term)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to save term")
	}

	s.logger.Info("term saved", zap.Int64("term_id", id))
	return id, nil
}

// Delete removes a term and everything it owns, first revoking the
// reminders of every owned course and assessment. Callers are expected to
// have confirmed the deletion with the user.
func (s *TermService) Delete(ctx context.Context, term *models.Term) error {
	if term == nil || term.ID <= 0 {
		return nil
	}

	courses, err := s.courses.ListByTerm(ctx, term.ID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to load courses for term delete")
	}

	for _, course := range courses {
		assessments, err := s.assessments.ListByCourse(ctx, course.ID)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to load assessments for term delete")
		}
		for _, assessment := range assessments {
			s.reminders.CancelAssessment(assessment.ID)
		}
		s.reminders.CancelCourse(course.ID)
	}

	if err := s.repo.Delete(ctx, term); err != nil {
		return apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to delete term")
	}

	s.logger.Info("term deleted",
		zap.Int64("term_id", term.ID),
		zap.Int("courses_removed", len(courses)))
	return nil
}
