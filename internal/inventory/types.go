package inventory

import (
	"time"

	"github.com/AzorianSolutions/grandstart/internal/provisioning"
)

// Run is one execution of the generator.
type Run struct {
	ID            string                `json:"id"`
	StartedAt     time.Time             `json:"started_at"`
	FinishedAt    time.Time             `json:"finished_at"`
	InputPath     string                `json:"input_path"`
	TemplatePath  string                `json:"template_path"`
	OutputDir     string                `json:"output_dir"`
	UseLocationID bool                  `json:"use_location_id"`
	DryRun        bool                  `json:"dry_run"`
	Counters      provisioning.Counters `json:"counters"`
}

// Device is one configuration file produced by a run.
type Device struct {
	RunID        string `json:"run_id"`
	DeviceID     string `json:"device_id"`
	Model        string `json:"model"`
	SubscriberID string `json:"subscriber_id"`
	LocationID   string `json:"location_id,omitempty"`
	Lines        int    `json:"lines"`
	FilePath     string `json:"file_path,omitempty"`
}
