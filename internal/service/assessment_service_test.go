package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/internal/models"
	apperrors "github.com/noah-isme/term-tracker/pkg/errors"
)

type mockAssessmentRepo struct {
	assessments []models.Assessment
	nextID      int64
	saveErr     error
	deleted     []int64
}

func (m *mockAssessmentRepo) ListByCourse(ctx context.Context, courseID int64) ([]models.Assessment, error) {
	var out []models.Assessment
	for _, a := range m.assessments {
		if a.CourseID == courseID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAssessmentRepo) FindByCourseAndType(ctx context.Context, courseID int64, assessmentType string) (*models.Assessment, error) {
	for i := range m.assessments {
		if m.assessments[i].CourseID == courseID && m.assessments[i].Type == assessmentType {
			assessment := m.assessments[i]
			return &assessment, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAssessmentRepo) Save(ctx context.Context, assessment *models.Assessment) (int64, error) {
	if m.saveErr != nil {
		return 0, m.saveErr
	}
	if assessment.ID == 0 {
		m.nextID++
		assessment.ID = m.nextID
		m.assessments = append(m.assessments, *assessment)
		return assessment.ID, nil
	}
	for i := range m.assessments {
		if m.assessments[i].ID == assessment.ID {
			m.assessments[i] = *assessment
			return assessment.ID, nil
		}
	}
	m.assessments = append(m.assessments, *assessment)
	return assessment.ID, nil
}

func (m *mockAssessmentRepo) Delete(ctx context.Context, assessment *models.Assessment) error {
	m.deleted = append(m.deleted, assessment.ID)
	return nil
}

func newAssessmentService(repo *mockAssessmentRepo, reminders *mockReminderLog) *AssessmentService {
	svc := NewAssessmentService(repo, reminders, zap.NewNop())
	return svc.WithClock(func() time.Time { return date(2025, time.March, 1) })
}

func TestAssessmentServiceUpsertAdoptsExistingID(t *testing.T) {
	repo := &mockAssessmentRepo{
		assessments: []models.Assessment{{ID: 5, CourseID: 10, Type: "Objective", Title: "Old Title"}},
		nextID:      5,
	}
	svc := newAssessmentService(repo, &mockReminderLog{})

	id, err := svc.Upsert(context.Background(), &models.Assessment{
		CourseID: 10,
		Type:     "Objective",
		Title:    "New Title",
		DueDate:  date(2025, time.April, 1),
	}, "Software Design")
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
	require.Len(t, repo.assessments, 1)
	assert.Equal(t, "New Title", repo.assessments[0].Title)
}

func TestAssessmentServiceUpsertInsertsFirstOfType(t *testing.T) {
	repo := &mockAssessmentRepo{
		assessments: []models.Assessment{{ID: 5, CourseID: 10, Type: "Objective"}},
		nextID:      5,
	}
	reminders := &mockReminderLog{}
	svc := newAssessmentService(repo, reminders)

	id, err := svc.Upsert(context.Background(), &models.Assessment{
		CourseID: 10,
		Type:     "Performance",
		DueDate:  date(2025, time.April, 1),
	}, "Software Design")
	require.NoError(t, err)
	assert.Equal(t, int64(6), id)
	assert.Equal(t, []int64{6}, reminders.plannedAssessments)
}

func TestAssessmentServiceUpsertDefaultsBlankTitle(t *testing.T) {
	repo := &mockAssessmentRepo{}
	svc := newAssessmentService(repo, &mockReminderLog{})

	_, err := svc.Upsert(context.Background(), &models.Assessment{
		CourseID: 10,
		Type:     "Performance",
		DueDate:  date(2025, time.April, 1),
	}, "Software Design")
	require.NoError(t, err)
	assert.Equal(t, "Performance Assessment", repo.assessments[0].Title)
}

func TestAssessmentServiceUpsertFillsZeroDatesFromDueDate(t *testing.T) {
	repo := &mockAssessmentRepo{}
	svc := newAssessmentService(repo, &mockReminderLog{})

	due := date(2025, time.April, 1)
	_, err := svc.Upsert(context.Background(), &models.Assessment{
		CourseID: 10,
		Type:     "Objective",
		DueDate:  due,
	}, "Software Design")
	require.NoError(t, err)
	saved := repo.assessments[0]
	assert.Equal(t, due, saved.StartDate)
	assert.Equal(t, due, saved.EndDate)
}

func TestAssessmentServiceUpsertDefaultsDueDateToToday(t *testing.T) {
	repo := &mockAssessmentRepo{}
	svc := newAssessmentService(repo, &mockReminderLog{})

	_, err := svc.Upsert(context.Background(), &models.Assessment{
		CourseID: 10,
		Type:     "Objective",
	}, "Software Design")
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 1), repo.assessments[0].DueDate)
}

// The implicit save path repairs an inverted window the way loading a
// legacy row does.
func TestAssessmentServiceUpsertFloorsEndDateToStart(t *testing.T) {
	repo := &mockAssessmentRepo{}
	svc := newAssessmentService(repo, &mockReminderLog{})

	_, err := svc.Upsert(context.Background(), &models.Assessment{
		CourseID:  10,
		Type:      "Objective",
		StartDate: date(2025, time.April, 10),
		EndDate:   date(2025, time.April, 1),
		DueDate:   date(2025, time.April, 10),
	}, "Software Design")
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.April, 10), repo.assessments[0].EndDate)
}

// The editor path must reject an inverted window, never repair it.
func TestAssessmentServiceSaveFromEditorRejectsEndBeforeStart(t *testing.T) {
	repo := &mockAssessmentRepo{}
	svc := newAssessmentService(repo, &mockReminderLog{})

	start := date(2025, time.April, 10)
	_, err := svc.SaveFromEditor(context.Background(), &models.Assessment{
		CourseID:  10,
		Type:      "Objective",
		Title:     "Final Exam",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, -5),
		DueDate:   start,
	}, "Software Design")
	require.Error(t, err)
	assert.Equal(t, "The anticipated end date must be on or after the anticipated start date.", apperrors.FromError(err).Message)
	assert.Empty(t, repo.assessments)
}

func TestAssessmentServiceUpsertRejectsDueBeforeStart(t *testing.T) {
	svc := newAssessmentService(&mockAssessmentRepo{}, &mockReminderLog{})

	_, err := svc.Upsert(context.Background(), &models.Assessment{
		CourseID:  10,
		Type:      "Objective",
		StartDate: date(2025, time.April, 10),
		EndDate:   date(2025, time.April, 20),
		DueDate:   date(2025, time.April, 1),
	}, "Software Design")
	require.Error(t, err)
	assert.Equal(t, "The due date must be on or after the anticipated start date.", apperrors.FromError(err).Message)
}

func TestAssessmentServiceUpsertRequiresSavedCourse(t *testing.T) {
	svc := newAssessmentService(&mockAssessmentRepo{}, &mockReminderLog{})

	_, err := svc.Upsert(context.Background(), &models.Assessment{Type: "Objective"}, "Software Design")
	require.Error(t, err)
	assert.Equal(t, "Save the course before updating assessments.", apperrors.FromError(err).Message)
}

func TestAssessmentServiceSaveFromEditorRequiresTitle(t *testing.T) {
	svc := newAssessmentService(&mockAssessmentRepo{}, &mockReminderLog{})

	_, err := svc.SaveFromEditor(context.Background(), &models.Assessment{
		CourseID: 10,
		Type:     "Performance",
		Title:    "   ",
		DueDate:  date(2025, time.April, 1),
	}, "Software Design")
	require.Error(t, err)
	assert.Equal(t, "Enter a title for the performance assessment before saving.", apperrors.FromError(err).Message)
}

func TestAssessmentServiceSaveFromEditorPersistsTitledAssessment(t *testing.T) {
	repo := &mockAssessmentRepo{}
	svc := newAssessmentService(repo, &mockReminderLog{})

	id, err := svc.SaveFromEditor(context.Background(), &models.Assessment{
		CourseID: 10,
		Type:     "Objective",
		Title:    " Final Exam ",
		DueDate:  date(2025, time.April, 1),
	}, "Software Design")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, "Final Exam", repo.assessments[0].Title)
}

func TestAssessmentServiceDeleteCancelsReminders(t *testing.T) {
	repo := &mockAssessmentRepo{
		assessments: []models.Assessment{{ID: 5, CourseID: 10, Type: "Objective"}},
		nextID:      5,
	}
	reminders := &mockReminderLog{}
	svc := newAssessmentService(repo, reminders)

	require.NoError(t, svc.Delete(context.Background(), &repo.assessments[0]))
	assert.Equal(t, []int64{5}, reminders.cancelledAssessments)
	assert.Equal(t, []int64{5}, repo.deleted)

	require.NoError(t, svc.Delete(context.Background(), nil))
	require.NoError(t, svc.Delete(context.Background(), &models.Assessment{}))
	assert.Len(t, repo.deleted, 1)
}
