package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/internal/notify"
	"github.com/noah-isme/term-tracker/internal/repository"
	"github.com/noah-isme/term-tracker/internal/schema"
	"github.com/noah-isme/term-tracker/internal/service"
	"github.com/noah-isme/term-tracker/pkg/config"
	"github.com/noah-isme/term-tracker/pkg/database"
	"github.com/noah-isme/term-tracker/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Sugar().Fatalw("termtracker failed", "error", err)
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	ctx := context.Background()

	db, err := database.NewSQLite(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := schema.Ensure(ctx, db); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	termRepo := repository.NewTermRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	reportRepo := repository.NewReportRepository(db)

	planner := notify.NewPlanner(notify.NewLogScheduler(logr), cfg.Reminders.FireHour, logr)
	validate := validator.New()

	termSvc := service.NewTermService(termRepo, courseRepo, assessmentRepo, planner, logr)
	reportSvc := service.NewReportService(reportRepo, validate, logr)

	if cfg.Seed.Enabled {
		seedSvc := service.NewSeedService(termRepo, courseRepo, assessmentRepo, logr)
		if err := seedSvc.EnsureEvaluationData(ctx); err != nil {
			return fmt.Errorf("seed evaluation data: %w", err)
		}
	}

	terms, err := termSvc.List(ctx)
	if err != nil {
		return fmt.Errorf("list terms: %w", err)
	}

	report, err := reportSvc.ScheduleReport(ctx)
	if err != nil {
		return fmt.Errorf("build schedule report: %w", err)
	}

	data, err := reportSvc.ExportScheduleReport(ctx, service.ExportRequest{Format: cfg.Export.Format})
	if err != nil {
		return fmt.Errorf("export schedule report: %w", err)
	}

	if err := os.MkdirAll(cfg.Export.Dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	name := fmt.Sprintf("class-schedule-%s.%s", time.Now().Format("20060102-150405"), cfg.Export.Format)
	path := filepath.Join(cfg.Export.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write schedule report: %w", err)
	}

	logr.Sugar().Infow("termtracker ready",
		"db_path", cfg.Database.Path,
		"terms", len(terms),
		"report_rows", len(report.Entries),
		"report_file", path)
	return nil
}
