package models

import "time"

// Assessment models an Objective- or Performance-type evaluation within a
// course. A course holds at most one assessment of each type.
type Assessment struct {
	ID         int64     `db:"ID" json:"id"`
	CourseID   int64     `db:"CourseId" json:"course_id"`
	Title      string    `db:"Title" json:"title"`
	Type       string    `db:"Type" json:"type"`
	Status     string    `db:"Status" json:"status"`
	StartDate  time.Time `db:"StartDate" json:"start_date"`
	EndDate    time.Time `db:"EndDate" json:"end_date"`
	StartAlert bool      `db:"StartAlertEnabled" json:"start_alert"`
	EndAlert   bool      `db:"EndAlertEnabled" json:"end_alert"`
	DueDate    time.Time `db:"DueDate" json:"due_date"`
}
