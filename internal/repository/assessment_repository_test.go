package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/term-tracker/internal/models"
)

func sampleAssessment() *models.Assessment {
	due := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	return &models.Assessment{
		CourseID:   5,
		Title:      "Objective Assessment",
		Type:       "Objective",
		Status:     "Not Started",
		StartDate:  due.AddDate(0, 0, -7),
		EndDate:    due,
		DueDate:    due,
		StartAlert: true,
	}
}

func TestAssessmentRepositorySaveInsertsWhenIDZero(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	a := sampleAssessment()
	mock.ExpectExec("INSERT INTO Assessments").
		WithArgs(a.CourseID, a.Title, a.Type, a.Status, a.StartDate, a.EndDate,
			a.StartAlert, a.EndAlert, a.DueDate).
		WillReturnResult(sqlmock.NewResult(9, 1))

	id, err := repo.Save(context.Background(), a)
	require.NoError(t, err)
	require.Equal(t, int64(9), id)
	require.Equal(t, int64(9), a.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositorySaveUpdatesWhenIDSet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	a := sampleAssessment()
	a.ID = 9
	mock.ExpectExec("UPDATE Assessments SET").
		WithArgs(a.CourseID, a.Title, a.Type, a.Status, a.StartDate, a.EndDate,
			a.StartAlert, a.EndAlert, a.DueDate, a.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := repo.Save(context.Background(), a)
	require.NoError(t, err)
	require.Equal(t, int64(9), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryFindByCourseAndTypeNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM Assessments WHERE CourseId = \\? AND Type = \\? LIMIT 1").
		WithArgs(int64(5), "Performance").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByCourseAndType(context.Background(), 5, "Performance")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryListByCourse(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	due := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"ID", "CourseId", "Title", "Type", "Status", "StartDate", "EndDate",
		"StartAlertEnabled", "EndAlertEnabled", "DueDate",
	}).
		AddRow(9, 5, "Objective Assessment", "Objective", "Not Started",
			due.AddDate(0, 0, -7), due, true, false, due).
		AddRow(10, 5, "Performance Assessment", "Performance", "Scheduled",
			due, due.AddDate(0, 0, 7), false, false, due)
	mock.ExpectQuery("SELECT (.+) FROM Assessments WHERE CourseId = \\?").
		WithArgs(int64(5)).
		WillReturnRows(rows)

	assessments, err := repo.ListByCourse(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, assessments, 2)
	require.Equal(t, "Performance", assessments[1].Type)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM Assessments WHERE ID = ?")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), &models.Assessment{ID: 9}))
	require.NoError(t, mock.ExpectationsWereMet())
}
