package report

import (
	"context"
	"errors"
	"time"

	"github.com/AzorianSolutions/grandstart/internal/provisioning"
)

// Summary describes one finished run.
type Summary struct {
	RunID         string                `json:"run_id"`
	StartedAt     time.Time             `json:"started_at"`
	FinishedAt    time.Time             `json:"finished_at"`
	InputPath     string                `json:"input_path"`
	TemplatePath  string                `json:"template_path"`
	OutputDir     string                `json:"output_dir"`
	UseLocationID bool                  `json:"use_location_id"`
	DryRun        bool                  `json:"dry_run"`
	Counters      provisioning.Counters `json:"counters"`
}

// Duration returns how long the run took.
func (s Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// DeviceEvent describes one generated configuration.
type DeviceEvent struct {
	RunID        string `json:"run_id"`
	DeviceID     string `json:"device_id"`
	Model        string `json:"model"`
	SubscriberID string `json:"subscriber_id"`
	LocationID   string `json:"location_id,omitempty"`
	Lines        int    `json:"lines"`
	Path         string `json:"path,omitempty"`
}

// Sink receives run results.
type Sink interface {
	Report(ctx context.Context, summary Summary, devices []DeviceEvent) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, summary Summary, devices []DeviceEvent) error

// Report calls f.
func (f SinkFunc) Report(ctx context.Context, summary Summary, devices []DeviceEvent) error {
	return f(ctx, summary, devices)
}

type multiSink []Sink

// Multi returns a Sink that reports to every non-nil sink in order and
// returns their joined errors.
func Multi(sinks ...Sink) Sink {
	var m multiSink
	for _, s := range sinks {
		if s != nil {
			m = append(m, s)
		}
	}
	return m
}

func (m multiSink) Report(ctx context.Context, summary Summary, devices []DeviceEvent) error {
	var errs []error
	for _, s := range m {
		if err := s.Report(ctx, summary, devices); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
