package models

import "time"

// Term models an academic term owning up to six courses.
// A zero ID marks a term that has not been persisted yet.
type Term struct {
	ID        int64     `db:"ID" json:"id"`
	Name      string    `db:"Termname" json:"name"`
	StartDate time.Time `db:"StartDate" json:"start_date"`
	EndDate   time.Time `db:"EndDate" json:"end_date"`
}
