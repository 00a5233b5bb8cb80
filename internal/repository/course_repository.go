package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/term-tracker/internal/models"
)

const courseColumns = `ID, TermId, CourseName, StartDate, EndDate, Status,
	InstructorName, InstructorPhone, InstructorEmail, Notes,
	StartAlertEnabled, EndAlertEnabled`

// CourseRepository handles persistence for courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository instantiates a course repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// ListByTerm returns the courses owned by a term, ordered by start date.
func (r *CourseRepository) ListByTerm(ctx context.Context, termID int64) ([]models.Course, error) {
	query := fmt.Sprintf(`SELECT %s FROM Courses WHERE TermId = ? ORDER BY StartDate`, courseColumns)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, termID); err != nil {
		return nil, fmt.Errorf("list courses for term: %w", err)
	}
	return courses, nil
}

// FindByID loads a course by identifier.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	query := fmt.Sprintf(`SELECT %s FROM Courses WHERE ID = ?`, courseColumns)
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// FindByTermAndName loads a course by owning term and display name.
func (r *CourseRepository) FindByTermAndName(ctx context.Context, termID int64, name string) (*models.Course, error) {
	query := fmt.Sprintf(`SELECT %s FROM Courses WHERE TermId = ? AND CourseName = ? LIMIT 1`, courseColumns)
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, termID, name); err != nil {
		return nil, err
	}
	return &course, nil
}

// CountByTerm returns the number of courses referencing the term.
func (r *CourseRepository) CountByTerm(ctx context.Context, termID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM Courses WHERE TermId = ?`
	var count int
	if err := r.db.GetContext(ctx, &count, query, termID); err != nil {
		return 0, fmt.Errorf("count courses for term: %w", err)
	}
	return count, nil
}

// Save inserts the course when its ID is zero, updates it otherwise, and
// returns the persisted identifier.
func (r *CourseRepository) Save(ctx context.Context, course *models.Course) (int64, error) {
	if course.ID == 0 {
		const query = `INSERT INTO Courses (TermId, CourseName, StartDate, EndDate, Status,
			InstructorName, InstructorPhone, InstructorEmail, Notes,
			StartAlertEnabled, EndAlertEnabled)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		res, err := r.db.ExecContext(ctx, query,
			course.TermID, course.Name, course.StartDate, course.EndDate, course.Status,
			course.InstructorName, course.InstructorPhone, course.InstructorEmail, course.Notes,
			course.StartAlert, course.EndAlert)
		if err != nil {
			return 0, fmt.Errorf("insert course: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("insert course id: %w", err)
		}
		course.ID = id
		return id, nil
	}

	const query = `UPDATE Courses SET TermId = ?, CourseName = ?, StartDate = ?, EndDate = ?,
		Status = ?, InstructorName = ?, InstructorPhone = ?, InstructorEmail = ?, Notes = ?,
		StartAlertEnabled = ?, EndAlertEnabled = ? WHERE ID = ?`
	if _, err := r.db.ExecContext(ctx, query,
		course.TermID, course.Name, course.StartDate, course.EndDate, course.Status,
		course.InstructorName, course.InstructorPhone, course.InstructorEmail, course.Notes,
		course.StartAlert, course.EndAlert, course.ID); err != nil {
		return 0, fmt.Errorf("update course: %w", err)
	}
	return course.ID, nil
}

// UpdateNotes replaces the free-text notes of a course.
func (r *CourseRepository) UpdateNotes(ctx context.Context, id int64, notes string) error {
	const query = `UPDATE Courses SET Notes = ? WHERE ID = ?`
	if _, err := r.db.ExecContext(ctx, query, notes, id); err != nil {
		return fmt.Errorf("update course notes: %w", err)
	}
	return nil
}

// Delete removes a course and cascades to its assessments in one
// transaction.
func (r *CourseRepository) Delete(ctx context.Context, course *models.Course) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete course tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM Assessments WHERE CourseId = ?`, course.ID); err != nil {
		return fmt.Errorf("delete course assessments: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM Courses WHERE ID = ?`, course.ID); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete course tx: %w", err)
	}
	return nil
}
