package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/term-tracker/internal/models"
)

// ReportRepository serves the denormalized read-only reporting queries.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository instantiates a report repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// AllCourseNotes returns one row per course with its term name, empty when
// the course has no term. Term-less courses sort first because their join
// key is NULL.
func (r *ReportRepository) AllCourseNotes(ctx context.Context) ([]models.CourseNoteSummary, error) {
	const query = `SELECT c.ID AS CourseId,
			c.CourseName,
			c.Notes,
			IFNULL(t.Termname, '') AS TermName
		FROM Courses c
		LEFT JOIN Terms t ON c.TermId = t.ID
		ORDER BY t.StartDate, c.CourseName`

	var summaries []models.CourseNoteSummary
	if err := r.db.SelectContext(ctx, &summaries, query); err != nil {
		return nil, fmt.Errorf("list course notes: %w", err)
	}
	return summaries, nil
}

// CourseReportEntries returns one row per course for the class schedule
// report, with raw untruncated text. Display shaping belongs to the caller.
func (r *ReportRepository) CourseReportEntries(ctx context.Context) ([]models.CourseReportEntry, error) {
	const query = `SELECT IFNULL(t.Termname, '') AS TermName,
			c.CourseName,
			c.Status,
			c.StartDate,
			c.EndDate,
			IFNULL(c.Notes, '') AS Notes
		FROM Courses c
		LEFT JOIN Terms t ON c.TermId = t.ID
		ORDER BY t.StartDate, c.CourseName`

	var entries []models.CourseReportEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list course report entries: %w", err)
	}
	return entries, nil
}
