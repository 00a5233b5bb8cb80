package notify

import (
	"time"

	"go.uber.org/zap"
)

// LogScheduler is a Scheduler that only records what would be scheduled.
// Headless runs use it in place of a platform notification service.
type LogScheduler struct {
	logger *zap.Logger
}

// NewLogScheduler builds a logging scheduler.
func NewLogScheduler(logger *zap.Logger) *LogScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogScheduler{logger: logger}
}

func (s *LogScheduler) Schedule(id int, title, message string, fireAt time.Time) error {
	s.logger.Info("reminder scheduled",
		zap.Int("reminder_id", id),
		zap.String("title", title),
		zap.String("message", message),
		zap.Time("fire_at", fireAt))
	return nil
}

func (s *LogScheduler) Cancel(id int) {
	s.logger.Info("reminder cancelled", zap.Int("reminder_id", id))
}
