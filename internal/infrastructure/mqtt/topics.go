package mqtt

import (
	"fmt"
	"strings"
)

// DefaultTopicPrefix roots every topic when none is configured.
const DefaultTopicPrefix = "grandstart"

// Topics builds grandstart topic names under a prefix.
type Topics struct {
	Prefix string
}

func (t Topics) root() string {
	p := strings.Trim(t.Prefix, "/")
	if p == "" {
		return DefaultTopicPrefix
	}
	return p
}

// LatestRun returns the retained topic holding the most recent run summary.
//
// Example: grandstart/runs/latest
func (t Topics) LatestRun() string {
	return t.root() + "/runs/latest"
}

// RunSummary returns the summary topic of one run.
//
// Example: grandstart/runs/6f1c.../summary
func (t Topics) RunSummary(runID string) string {
	return fmt.Sprintf("%s/runs/%s/summary", t.root(), segment(runID))
}

// DeviceGenerated returns the event topic for one generated device config.
//
// Example: grandstart/devices/S100/S100-DEFAULT-HT818-1
func (t Topics) DeviceGenerated(subscriberID, deviceID string) string {
	return fmt.Sprintf("%s/devices/%s/%s", t.root(), segment(subscriberID), segment(deviceID))
}

// AllDevices returns a wildcard matching every device event.
func (t Topics) AllDevices() string {
	return t.root() + "/devices/#"
}

// segment makes s safe as a single topic level.
func segment(s string) string {
	if s == "" {
		return "_"
	}
	return strings.NewReplacer("/", "_", "+", "_", "#", "_").Replace(s)
}

// validatePublishTopic rejects empty topics and wildcards.
func validatePublishTopic(topic string) error {
	if topic == "" {
		return fmt.Errorf("%w: empty", ErrInvalidTopic)
	}
	if strings.ContainsAny(topic, "+#") {
		return fmt.Errorf("%w: wildcard in %q", ErrInvalidTopic, topic)
	}
	return nil
}
