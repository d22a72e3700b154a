package report

import (
	"context"

	"github.com/AzorianSolutions/grandstart/internal/infrastructure/logging"
)

// LogSink writes the run totals to the log at info level.
type LogSink struct {
	logger *logging.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(logger *logging.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Report logs one line per total.
func (l *LogSink) Report(_ context.Context, s Summary, _ []DeviceEvent) error {
	c := s.Counters
	l.logger.Info("total subscribers", "count", c.Subscribers)
	l.logger.Info("total subscriber groups", "count", c.Groups)
	l.logger.Info("total subscriber lines", "count", c.Lines)
	l.logger.Info("total devices", "count", c.Devices)
	l.logger.Info("total HT812 devices", "count", c.HT812)
	l.logger.Info("total HT814 devices", "count", c.HT814)
	l.logger.Info("total HT818 devices", "count", c.HT818)
	l.logger.Info("run complete",
		"run_id", s.RunID,
		"dry_run", s.DryRun,
		"duration", s.Duration().String(),
	)
	return nil
}
