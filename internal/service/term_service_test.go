package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/internal/models"
	apperrors "github.com/noah-isme/term-tracker/pkg/errors"
)

type mockTermRepo struct {
	terms   []models.Term
	nextID  int64
	saveErr error
	listErr error
	deleted []int64
}

func (m *mockTermRepo) List(ctx context.Context) ([]models.Term, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.terms, nil
}

func (m *mockTermRepo) FindByID(ctx context.Context, id int64) (*models.Term, error) {
	for i := range m.terms {
		if m.terms[i].ID == id {
			term := m.terms[i]
			return &term, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockTermRepo) FindByName(ctx context.Context, name string) (*models.Term, error) {
	for i := range m.terms {
		if m.terms[i].Name == name {
			term := m.terms[i]
			return &term, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockTermRepo) Save(ctx context.Context, term *models.Term) (int64, error) {
	if m.saveErr != nil {
		return 0, m.saveErr
	}
	if term.ID == 0 {
		m.nextID++
		term.ID = m.nextID
		m.terms = append(m.terms, *term)
		return term.ID, nil
	}
	for i := range m.terms {
		if m.terms[i].ID == term.ID {
			m.terms[i] = *term
			return term.ID, nil
		}
	}
	m.terms = append(m.terms, *term)
	return term.ID, nil
}

func (m *mockTermRepo) Delete(ctx context.Context, term *models.Term) error {
	m.deleted = append(m.deleted, term.ID)
	return nil
}

type mockReminderLog struct {
	plannedCourses       []int64
	plannedAssessments   []int64
	cancelledCourses     []int64
	cancelledAssessments []int64
	planErr              error
}

func (m *mockReminderLog) PlanCourse(course *models.Course) error {
	if m.planErr != nil {
		return m.planErr
	}
	m.plannedCourses = append(m.plannedCourses, course.ID)
	return nil
}

func (m *mockReminderLog) PlanAssessment(assessment *models.Assessment, courseName string) error {
	if m.planErr != nil {
		return m.planErr
	}
	m.plannedAssessments = append(m.plannedAssessments, assessment.ID)
	return nil
}

func (m *mockReminderLog) CancelCourse(courseID int64) {
	m.cancelledCourses = append(m.cancelledCourses, courseID)
}

func (m *mockReminderLog) CancelAssessment(assessmentID int64) {
	m.cancelledAssessments = append(m.cancelledAssessments, assessmentID)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func TestTermServiceSaveInsertsNewTerm(t *testing.T) {
	repo := &mockTermRepo{}
	svc := NewTermService(repo, &mockCourseRepo{}, &mockAssessmentRepo{}, &mockReminderLog{}, zap.NewNop())

	term := &models.Term{
		Name:      "  Term 1  ",
		StartDate: date(2025, time.January, 1),
		EndDate:   date(2025, time.June, 30),
	}

	id, err := svc.Save(context.Background(), term)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, int64(1), term.ID)
	assert.Equal(t, "Term 1", term.Name)
}

func TestTermServiceSaveRejectsMissingData(t *testing.T) {
	svc := NewTermService(&mockTermRepo{}, &mockCourseRepo{}, &mockAssessmentRepo{}, &mockReminderLog{}, zap.NewNop())

	_, err := svc.Save(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, "Term data must be provided before saving.", apperrors.FromError(err).Message)
}

func TestTermServiceSaveRejectsBlankName(t *testing.T) {
	svc := NewTermService(&mockTermRepo{}, &mockCourseRepo{}, &mockAssessmentRepo{}, &mockReminderLog{}, zap.NewNop())

	_, err := svc.Save(context.Background(), &models.Term{
		Name:      "   ",
		StartDate: date(2025, time.January, 1),
		EndDate:   date(2025, time.June, 30),
	})
	require.Error(t, err)
	assert.Equal(t, "Please enter a name for the term.", apperrors.FromError(err).Message)
}

func TestTermServiceSaveRejectsInvertedDates(t *testing.T) {
	svc := NewTermService(&mockTermRepo{}, &mockCourseRepo{}, &mockAssessmentRepo{}, &mockReminderLog{}, zap.NewNop())

	_, err := svc.Save(context.Background(), &models.Term{
		Name:      "Term 1",
		StartDate: date(2025, time.June, 30),
		EndDate:   date(2025, time.January, 1),
	})
	require.Error(t, err)
	assert.Equal(t, "The term end date must be on or after the start date.", apperrors.FromError(err).Message)
}

func TestTermServiceSaveWrapsStoreFailure(t *testing.T) {
	repo := &mockTermRepo{saveErr: errors.New("disk full")}
	svc := NewTermService(repo, &mockCourseRepo{}, &mockAssessmentRepo{}, &mockReminderLog{}, zap.NewNop())

	_, err := svc.Save(context.Background(), &models.Term{
		Name:      "Term 1",
		StartDate: date(2025, time.January, 1),
		EndDate:   date(2025, time.June, 30),
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrStore))
}

func TestTermServiceGetNotFound(t *testing.T) {
	svc := NewTermService(&mockTermRepo{}, &mockCourseRepo{}, &mockAssessmentRepo{}, &mockReminderLog{}, zap.NewNop())

	_, err := svc.Get(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestTermServiceDeleteCancelsOwnedReminders(t *testing.T) {
	repo := &mockTermRepo{terms: []models.Term{{ID: 1, Name: "Term 1"}}, nextID: 1}
	courses := &mockCourseRepo{courses: []models.Course{
		{ID: 10, TermID: 1, Name: "Software Design"},
		{ID: 11, TermID: 1, Name: "Data Structures"},
	}}
	assessments := &mockAssessmentRepo{assessments: []models.Assessment{
		{ID: 100, CourseID: 10, Type: "Objective"},
		{ID: 101, CourseID: 11, Type: "Performance"},
	}}
	reminders := &mockReminderLog{}
	svc := NewTermService(repo, courses, assessments, reminders, zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), &repo.terms[0]))
	assert.Equal(t, []int64{10, 11}, reminders.cancelledCourses)
	assert.Equal(t, []int64{100, 101}, reminders.cancelledAssessments)
	assert.Equal(t, []int64{1}, repo.deleted)
}

func TestTermServiceDeleteIgnoresUnsavedTerm(t *testing.T) {
	repo := &mockTermRepo{}
	svc := NewTermService(repo, &mockCourseRepo{}, &mockAssessmentRepo{}, &mockReminderLog{}, zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), nil))
	require.NoError(t, svc.Delete(context.Background(), &models.Term{}))
	assert.Empty(t, repo.deleted)
}
