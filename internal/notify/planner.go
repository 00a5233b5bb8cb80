package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/internal/models"
)

// Scheduler is the external reminder collaborator. Re-scheduling an id
// replaces the existing reminder, so replanning is idempotent.
type Scheduler interface {
	Schedule(id int, title, message string, fireAt time.Time) error
	Cancel(id int)
}

// Planner turns entity alert flags into schedule/cancel calls against the
// external scheduler. A reminder fires on the entity date at the configured
// hour; dates already in the past are left unscheduled rather than
// cancelled, matching the alert-flag semantics.
type Planner struct {
	scheduler Scheduler
	now       func() time.Time
	fireHour  int
	logger    *zap.Logger
}

// NewPlanner creates a planner firing reminders at fireHour local time.
func NewPlanner(scheduler Scheduler, fireHour int, logger *zap.Logger) *Planner {
	if fireHour < 0 || fireHour > 23 {
		fireHour = 9
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{
		scheduler: scheduler,
		now:       time.Now,
		fireHour:  fireHour,
		logger:    logger,
	}
}

// WithClock overrides the planner's clock.
func (p *Planner) WithClock(now func() time.Time) *Planner {
	p.now = now
	return p
}

// PlanCourse schedules or cancels the start and end reminders of a
// persisted course according to its alert flags.
func (p *Planner) PlanCourse(course *models.Course) error {
	if course == nil || course.ID <= 0 {
		return nil
	}

	planID := uuid.NewString()
	name := course.Name

	if err := p.apply(planID, CourseStartID(course.ID), course.StartAlert,
		"Course Starts", fmt.Sprintf("%s begins today.", name), course.StartDate); err != nil {
		return err
	}
	return p.apply(planID, CourseEndID(course.ID), course.EndAlert,
		"Course Ends", fmt.Sprintf("%s ends today.", name), course.EndDate)
}

// PlanAssessment schedules or cancels the start and end reminders of a
// persisted assessment. courseName appears in the reminder body.
func (p *Planner) PlanAssessment(assessment *models.Assessment, courseName string) error {
	if assessment == nil || assessment.ID <= 0 {
		return nil
	}

	title := strings.TrimSpace(assessment.Title)
	if title == "" {
		title = models.AssessmentType(models.NormalizeAssessmentType(assessment.Type)).DefaultTitle()
	}
	if strings.TrimSpace(courseName) == "" {
		courseName = "this course"
	}

	planID := uuid.NewString()

	if err := p.apply(planID, AssessmentStartID(assessment.ID), assessment.StartAlert,
		fmt.Sprintf("%s Starts", title),
		fmt.Sprintf("%s for %s starts today.", title, courseName),
		assessment.StartDate); err != nil {
		return err
	}
	return p.apply(planID, AssessmentEndID(assessment.ID), assessment.EndAlert,
		fmt.Sprintf("%s Ends", title),
		fmt.Sprintf("%s for %s ends today.", title, courseName),
		assessment.EndDate)
}

// CancelCourse revokes both reminders of a course, used by delete flows.
func (p *Planner) CancelCourse(courseID int64) {
	if courseID <= 0 {
		return
	}
	p.scheduler.Cancel(CourseStartID(courseID))
	p.scheduler.Cancel(CourseEndID(courseID))
}

// CancelAssessment revokes both reminders of an assessment.
func (p *Planner) CancelAssessment(assessmentID int64) {
	if assessmentID <= 0 {
		return
	}
	p.scheduler.Cancel(AssessmentStartID(assessmentID))
	p.scheduler.Cancel(AssessmentEndID(assessmentID))
}

func (p *Planner) apply(planID string, id int, enabled bool, title, message string, date time.Time) error {
	if !enabled {
		p.scheduler.Cancel(id)
		p.logger.Debug("reminder cancelled",
			zap.String("plan_id", planID), zap.Int("reminder_id", id))
		return nil
	}

	fireAt := time.Date(date.Year(), date.Month(), date.Day(), p.fireHour, 0, 0, 0, time.Local)
	if fireAt.Before(p.now()) {
		p.logger.Debug("reminder in the past, left unscheduled",
			zap.String("plan_id", planID), zap.Int("reminder_id", id), zap.Time("fire_at", fireAt))
		return nil
	}

	if err := p.scheduler.Schedule(id, title, message, fireAt); err != nil {
		return fmt.Errorf("schedule reminder %d: %w", id, err)
	}
	p.logger.Debug("reminder scheduled",
		zap.String("plan_id", planID), zap.Int("reminder_id", id), zap.Time("fire_at", fireAt))
	return nil
}
