package schema

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
)

// Base tables carry the full current column set; CREATE TABLE IF NOT EXISTS
// leaves databases created by older releases untouched, and the additive
// column pass below upgrades them.
var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS Terms (
		ID INTEGER PRIMARY KEY AUTOINCREMENT,
		Termname TEXT NOT NULL DEFAULT '',
		StartDate DATETIME NOT NULL DEFAULT '0001-01-01T00:00:00',
		EndDate DATETIME NOT NULL DEFAULT '0001-01-01T00:00:00'
	)`,
	`CREATE TABLE IF NOT EXISTS Courses (
		ID INTEGER PRIMARY KEY AUTOINCREMENT,
		TermId INTEGER NOT NULL DEFAULT 0,
		CourseName TEXT NOT NULL DEFAULT '',
		StartDate DATETIME NOT NULL DEFAULT '0001-01-01T00:00:00',
		EndDate DATETIME NOT NULL DEFAULT '0001-01-01T00:00:00',
		Status TEXT NOT NULL DEFAULT 'In Progress',
		InstructorName TEXT NOT NULL DEFAULT '',
		InstructorPhone TEXT NOT NULL DEFAULT '',
		InstructorEmail TEXT NOT NULL DEFAULT '',
		Notes TEXT NOT NULL DEFAULT '',
		StartAlertEnabled INTEGER NOT NULL DEFAULT 0,
		EndAlertEnabled INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS Assessments (
		ID INTEGER PRIMARY KEY AUTOINCREMENT,
		CourseId INTEGER NOT NULL DEFAULT 0,
		Title TEXT NOT NULL DEFAULT '',
		Type TEXT NOT NULL DEFAULT 'Objective',
		Status TEXT NOT NULL DEFAULT 'Not Started',
		StartDate DATETIME NOT NULL DEFAULT '0001-01-01T00:00:00',
		EndDate DATETIME NOT NULL DEFAULT '0001-01-01T00:00:00',
		StartAlertEnabled INTEGER NOT NULL DEFAULT 0,
		EndAlertEnabled INTEGER NOT NULL DEFAULT 0,
		DueDate DATETIME NOT NULL DEFAULT '0001-01-01T00:00:00'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_courses_term_id ON Courses(TermId)`,
	`CREATE INDEX IF NOT EXISTS idx_assessments_course_id ON Assessments(CourseId)`,
}

type column struct {
	table      string
	name       string
	definition string
}

// Columns added after the initial release, with the defaults legacy rows
// receive. The list is append-only; columns are never dropped or renamed.
var additiveColumns = []column{
	{"Courses", "Status", "TEXT NOT NULL DEFAULT 'In Progress'"},
	{"Courses", "InstructorName", "TEXT NOT NULL DEFAULT ''"},
	{"Courses", "InstructorPhone", "TEXT NOT NULL DEFAULT ''"},
	{"Courses", "InstructorEmail", "TEXT NOT NULL DEFAULT ''"},
	{"Courses", "Notes", "TEXT NOT NULL DEFAULT ''"},
	{"Courses", "StartAlertEnabled", "INTEGER NOT NULL DEFAULT 0"},
	{"Courses", "EndAlertEnabled", "INTEGER NOT NULL DEFAULT 0"},
	{"Assessments", "Type", "TEXT NOT NULL DEFAULT 'Objective'"},
	{"Assessments", "Status", "TEXT NOT NULL DEFAULT 'Not Started'"},
	{"Assessments", "DueDate", "DATETIME NOT NULL DEFAULT '0001-01-01T00:00:00'"},
	{"Assessments", "StartDate", "DATETIME NOT NULL DEFAULT '0001-01-01T00:00:00'"},
	{"Assessments", "EndDate", "DATETIME NOT NULL DEFAULT '0001-01-01T00:00:00'"},
	{"Assessments", "StartAlertEnabled", "INTEGER NOT NULL DEFAULT 0"},
	{"Assessments", "EndAlertEnabled", "INTEGER NOT NULL DEFAULT 0"},
}

// Tables are inspected in a fixed order so concurrent calls and tests see a
// deterministic statement sequence.
var evolvedTables = []string{"Courses", "Assessments"}

var ensureMu sync.Mutex

// Ensure creates the base tables and indexes when absent, then applies the
// additive column evolution. It is idempotent: a call against a current
// schema issues no ALTER statements. Concurrent calls within the process are
// serialised so two callers never race to add the same column.
func Ensure(ctx context.Context, db *sqlx.DB) error {
	ensureMu.Lock()
	defer ensureMu.Unlock()

	for _, stmt := range createStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create base schema: %w", err)
		}
	}

	for _, table := range evolvedTables {
		existing, err := tableColumns(ctx, db, table)
		if err != nil {
			return fmt.Errorf("inspect %s schema: %w", table, err)
		}

		for _, col := range additiveColumns {
			if col.table != table {
				continue
			}
			if existing[strings.ToLower(col.name)] {
				continue
			}

			alter := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", col.table, col.name, col.definition)
			if _, err := db.ExecContext(ctx, alter); err != nil {
				return fmt.Errorf("add column %s.%s: %w", col.table, col.name, err)
			}
			existing[strings.ToLower(col.name)] = true
		}
	}

	return nil
}

// tableColumns returns the live column names of a table, lowercased.
// Extra columns unknown to this release are reported and ignored upstream.
func tableColumns(ctx context.Context, db *sqlx.DB, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var (
			cid        int
			name       string
			colType    string
			notNull    int
			defaultVal interface{}
			pk         int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultVal, &pk); err != nil {
			return nil, err
		}
		columns[strings.ToLower(name)] = true
	}
	return columns, rows.Err()
}
