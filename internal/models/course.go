package models

import "time"

// Course models a unit of study within a term, carrying instructor and
// status metadata. TermID 0 marks a course not yet assigned to a term.
type Course struct {
	ID              int64     `db:"ID" json:"id"`
	TermID          int64     `db:"TermId" json:"term_id"`
	Name            string    `db:"CourseName" json:"name"`
	StartDate       time.Time `db:"StartDate" json:"start_date"`
	EndDate         time.Time `db:"EndDate" json:"end_date"`
	Status          string    `db:"Status" json:"status"`
	InstructorName  string    `db:"InstructorName" json:"instructor_name"`
	InstructorPhone string    `db:"InstructorPhone" json:"instructor_phone"`
	InstructorEmail string    `db:"InstructorEmail" json:"instructor_email"`
	Notes           string    `db:"Notes" json:"notes"`
	StartAlert      bool      `db:"StartAlertEnabled" json:"start_alert"`
	EndAlert        bool      `db:"EndAlertEnabled" json:"end_alert"`
}
