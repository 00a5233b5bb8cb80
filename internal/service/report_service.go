package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/internal/models"
	apperrors "github.com/noah-isme/term-tracker/pkg/errors"
	"github.com/noah-isme/term-tracker/pkg/export"
)

const scheduleReportTitle = "Class Schedule Report"

var scheduleReportHeaders = []string{"Term", "Course", "Status", "Start", "End", "Notes"}

type reportRepository interface {
	AllCourseNotes(ctx context.Context) ([]models.CourseNoteSummary, error)
	CourseReportEntries(ctx context.Context) ([]models.CourseReportEntry, error)
}

// ScheduleReport is the assembled class schedule report.
type ScheduleReport struct {
	Title       string                     `json:"title"`
	GeneratedAt time.Time                  `json:"generated_at"`
	Entries     []models.CourseReportEntry `json:"entries"`
}

// ExportRequest selects the rendering format for a schedule report export.
type ExportRequest struct {
	Format string `validate:"required,oneof=csv pdf"`
}

// ReportService assembles read-only reports over the course catalogue and
// renders them for export.
type ReportService struct {
	repo      reportRepository
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewReportService creates a new report service instance.
func NewReportService(repo reportRepository, validate *validator.Validate, logger *zap.Logger) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		repo:      repo,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the report timestamp source.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// CourseNotes returns one row per course with its notes and owning term.
func (s *ReportService) CourseNotes(ctx context.Context) ([]models.CourseNoteSummary, error) {
	summaries, err := s.repo.AllCourseNotes(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to load course notes")
	}
	return summaries, nil
}

// ScheduleReport assembles the class schedule report across every course,
// term-less courses included.
func (s *ReportService) ScheduleReport(ctx context.Context) (*ScheduleReport, error) {
	entries, err := s.repo.CourseReportEntries(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to load schedule report entries")
	}
	return &ScheduleReport{
		Title:       scheduleReportTitle,
		GeneratedAt: s.now(),
		Entries:     entries,
	}, nil
}

// ExportScheduleReport renders the schedule report in the requested format
// and returns the document bytes.
func (s *ReportService) ExportScheduleReport(ctx context.Context, req ExportRequest) ([]byte, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code, "invalid export format")
	}

	report, err := s.ScheduleReport(ctx)
	if err != nil {
		return nil, err
	}

	table := export.Table{
		Title:   report.Title,
		Headers: scheduleReportHeaders,
		Rows:    make([][]string, 0, len(report.Entries)),
	}
	for _, entry := range report.Entries {
		table.Rows = append(table.Rows, []string{
			entry.DisplayTermName(),
			entry.DisplayCourseName(),
			entry.Status,
			entry.StartDate.Format("2006-01-02"),
			entry.EndDate.Format("2006-01-02"),
			entry.SanitizedNotes(),
		})
	}

	var data []byte
	switch req.Format {
	case "pdf":
		data, err = s.pdf.Render(table)
	default:
		data, err = s.csv.Render(table)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrStore.Code, "failed to render schedule report")
	}

	s.logger.Info("schedule report exported",
		zap.String("format", req.Format),
		zap.Int("rows", len(table.Rows)))
	return data, nil
}
