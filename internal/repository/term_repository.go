package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/term-tracker/internal/models"
)

// TermRepository handles persistence for academic terms.
type TermRepository struct {
	db *sqlx.DB
}

// NewTermRepository instantiates a term repository.
func NewTermRepository(db *sqlx.DB) *TermRepository {
	return &TermRepository{db: db}
}

// List returns all terms ordered by start date.
func (r *TermRepository) List(ctx context.Context) ([]models.Term, error) {
	const query = `SELECT ID, Termname, StartDate, EndDate FROM Terms ORDER BY StartDate`
	var terms []models.Term
	if err := r.db.SelectContext(ctx, &terms, query); err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	return terms, nil
}

// FindByID loads a term by identifier. sql.ErrNoRows passes through for the
// caller to map.
func (r *TermRepository) FindByID(ctx context.Context, id int64) (*models.Term, error) {
	const query = `SELECT ID, Termname, StartDate, EndDate FROM Terms WHERE ID = ?`
	var term models.Term
	if err := r.db.GetContext(ctx, &term, query, id); err != nil {
		return nil, err
	}
	return &term, nil
}

// FindByName loads a term by its display name.
func (r *TermRepository) FindByName(ctx context.Context, name string) (*models.Term, error) {
	const query = `SELECT ID, Termname, StartDate, EndDate FROM Terms WHERE Termname = ? LIMIT 1`
	var term models.Term
	if err := r.db.GetContext(ctx, &term, query, name); err != nil {
		return nil, err
	}
	return &term, nil
}

// Save inserts the term when its ID is zero, updates it otherwise, and
// returns the persisted identifier.
func (r *TermRepository) Save(ctx context.Context, term *models.Term) (int64, error) {
	if term.ID == 0 {
		const query = `INSERT INTO Terms (Termname, StartDate, EndDate) VALUES (?, ?, ?)`
		res, err := r.db.ExecContext(ctx, query, term.Name, term.StartDate, term.EndDate)
		if err != nil {
			return 0, fmt.Errorf("insert term: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("insert term id: %w", err)
		}
		term.ID = id
		return id, nil
	}

	const query = `UPDATE Terms SET Termname = ?, StartDate = ?, EndDate = ? WHERE ID = ?`
	if _, err := r.db.ExecContext(ctx, query, term.Name, term.StartDate, term.EndDate, term.ID); err != nil {
		return 0, fmt.Errorf("update term: %w", err)
	}
	return term.ID, nil
}

// Delete removes a term and cascades to its courses and their assessments.
// The whole cascade runs in one transaction so a failure partway through
// cannot leave orphaned child rows.
func (r *TermRepository) Delete(ctx context.Context, term *models.Term) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete term tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM Assessments WHERE CourseId IN (SELECT ID FROM Courses WHERE TermId = ?)`,
		term.ID); err != nil {
		return fmt.Errorf("delete term assessments: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM Courses WHERE TermId = ?`, term.ID); err != nil {
		return fmt.Errorf("delete term courses: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM Terms WHERE ID = ?`, term.ID); err != nil {
		return fmt.Errorf("delete term: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete term tx: %w", err)
	}
	return nil
}
