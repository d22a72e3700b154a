package report

import (
	"context"
	"fmt"

	"github.com/AzorianSolutions/grandstart/internal/infrastructure/mqtt"
)

// Publisher publishes JSON payloads. *mqtt.Client satisfies it.
type Publisher interface {
	PublishJSON(topic string, v any, retained bool) error
}

// MQTTSink announces generated devices and the run summary.
type MQTTSink struct {
	pub    Publisher
	topics mqtt.Topics
}

// NewMQTTSink creates an MQTTSink publishing under topics.
func NewMQTTSink(pub Publisher, topics mqtt.Topics) *MQTTSink {
	return &MQTTSink{pub: pub, topics: topics}
}

// Report publishes one event per device, the run summary, and the retained
// latest-run summary. Dry runs publish only the summaries.
func (s *MQTTSink) Report(ctx context.Context, summary Summary, devices []DeviceEvent) error {
	if !summary.DryRun {
		for _, d := range devices {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := s.pub.PublishJSON(s.topics.DeviceGenerated(d.SubscriberID, d.DeviceID), d, false); err != nil {
				return fmt.Errorf("publishing device %s: %w", d.DeviceID, err)
			}
		}
	}

	if err := s.pub.PublishJSON(s.topics.RunSummary(summary.RunID), summary, false); err != nil {
		return fmt.Errorf("publishing run summary: %w", err)
	}
	if err := s.pub.PublishJSON(s.topics.LatestRun(), summary, true); err != nil {
		return fmt.Errorf("publishing latest run: %w", err)
	}
	return nil
}
