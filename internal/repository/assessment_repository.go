package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/term-tracker/internal/models"
)

const assessmentColumns = `ID, CourseId, Title, Type, Status, StartDate, EndDate,
	StartAlertEnabled, EndAlertEnabled, DueDate`

// AssessmentRepository handles persistence for course assessments.
type AssessmentRepository struct {
	db *sqlx.DB
}

// NewAssessmentRepository instantiates an assessment repository.
func NewAssessmentRepository(db *sqlx.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// ListByCourse returns the assessments owned by a course.
func (r *AssessmentRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Assessment, error) {
	query := fmt.Sprintf(`SELECT %s FROM Assessments WHERE CourseId = ?`, assessmentColumns)
	var assessments []models.Assessment
	if err := r.db.SelectContext(ctx, &assessments, query, courseID); err != nil {
		return nil, fmt.Errorf("list assessments for course: %w", err)
	}
	return assessments, nil
}

// FindByCourseAndType loads the single assessment of the given type for a
// course, serving the upsert-by-type flow. sql.ErrNoRows passes through.
func (r *AssessmentRepository) FindByCourseAndType(ctx context.Context, courseID int64, assessmentType string) (*models.Assessment, error) {
	query := fmt.Sprintf(`SELECT %s FROM Assessments WHERE CourseId = ? AND Type = ? LIMIT 1`, assessmentColumns)
	var assessment models.Assessment
	if err := r.db.GetContext(ctx, &assessment, query, courseID, assessmentType); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// Save inserts the assessment when its ID is zero, updates it otherwise,
// and returns the persisted identifier.
func (r *AssessmentRepository) Save(ctx context.Context, assessment *models.Assessment) (int64, error) {
	if assessment.ID == 0 {
		const query = `INSERT INTO Assessments (CourseId, Title, Type, Status, StartDate, EndDate,
			StartAlertEnabled, EndAlertEnabled, DueDate)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
		res, err := r.db.ExecContext(ctx, query,
			assessment.CourseID, assessment.Title, assessment.Type, assessment.Status,
			assessment.StartDate, assessment.EndDate,
			assessment.StartAlert, assessment.EndAlert, assessment.DueDate)
		if err != nil {
			return 0, fmt.Errorf("insert assessment: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("insert assessment id: %w", err)
		}
		assessment.ID = id
		return id, nil
	}

	const query = `UPDATE Assessments SET CourseId = ?, Title = ?, Type = ?, Status = ?,
		StartDate = ?, EndDate = ?, StartAlertEnabled = ?, EndAlertEnabled = ?, DueDate = ?
		WHERE ID = ?`
	if _, err := r.db.ExecContext(ctx, query,
		assessment.CourseID, assessment.Title, assessment.Type, assessment.Status,
		assessment.StartDate, assessment.EndDate,
		assessment.StartAlert, assessment.EndAlert, assessment.DueDate,
		assessment.ID); err != nil {
		return 0, fmt.Errorf("update assessment: %w", err)
	}
	return assessment.ID, nil
}

// Delete removes an assessment.
func (r *AssessmentRepository) Delete(ctx context.Context, assessment *models.Assessment) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM Assessments WHERE ID = ?`, assessment.ID); err != nil {
		return fmt.Errorf("delete assessment: %w", err)
	}
	return nil
}
