package report

import (
	"context"
	"fmt"

	"github.com/AzorianSolutions/grandstart/internal/infrastructure/influxdb"
	"github.com/AzorianSolutions/grandstart/internal/provisioning"
)

// RunWriter stores run metrics. *influxdb.Client satisfies it.
type RunWriter interface {
	WriteRun(ctx context.Context, m influxdb.RunMetrics) error
}

// InfluxSink writes run metrics to InfluxDB.
type InfluxSink struct {
	w RunWriter
}

// NewInfluxSink creates an InfluxSink.
func NewInfluxSink(w RunWriter) *InfluxSink {
	return &InfluxSink{w: w}
}

// Report writes the run point and per-model device counts.
func (s *InfluxSink) Report(ctx context.Context, summary Summary, _ []DeviceEvent) error {
	if err := s.w.WriteRun(ctx, Metrics(summary)); err != nil {
		return fmt.Errorf("writing run metrics: %w", err)
	}
	return nil
}

// Metrics converts a summary into InfluxDB run metrics.
func Metrics(s Summary) influxdb.RunMetrics {
	c := s.Counters
	return influxdb.RunMetrics{
		RunID:         s.RunID,
		Time:          s.FinishedAt,
		Duration:      s.Duration(),
		DryRun:        s.DryRun,
		UseLocationID: s.UseLocationID,
		Subscribers:   c.Subscribers,
		Groups:        c.Groups,
		Lines:         c.Lines,
		Devices:       c.Devices,
		Models: map[string]int{
			provisioning.HT818.Tag(): c.HT818,
			provisioning.HT814.Tag(): c.HT814,
			provisioning.HT812.Tag(): c.HT812,
		},
	}
}
