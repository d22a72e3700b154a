package generator

import (
	"github.com/AzorianSolutions/grandstart/internal/lineimport"
	"github.com/AzorianSolutions/grandstart/internal/provisioning"
	"github.com/AzorianSolutions/grandstart/internal/report"
)

// Request describes one run.
type Request struct {
	InputPath   string
	InputFormat lineimport.Format
	Sheet       string

	TemplatePath string
	OutputDir    string

	SubscriberColumn string
	LocationColumn   string
	UseLocationID    bool

	// Strict fails the run when a rendered configuration still contains
	// $LINE tokens.
	Strict bool

	// DryRun marks the run as not producing files. The caller pairs it
	// with an output.DryRun writer.
	DryRun bool
}

// RenderedConfig is the configuration text of one device.
type RenderedConfig struct {
	DeviceID     string                   `json:"device_id"`
	Class        provisioning.DeviceClass `json:"class"`
	SubscriberID string                   `json:"subscriber_id"`
	LocationID   string                   `json:"location_id,omitempty"`
	Lines        int                      `json:"lines"`
	Text         string                   `json:"-"`

	// Path is where the configuration was written; empty until written.
	Path string `json:"path,omitempty"`
}

// Result is the outcome of a run.
type Result struct {
	RunID    string
	Counters provisioning.Counters
	Configs  []RenderedConfig
	// Files lists written paths in generation order.
	Files   []string
	Summary report.Summary

	// ReportErr holds sink failures. The files were still written.
	ReportErr error
}

// GroupPlan is the sizing decision for one group.
type GroupPlan struct {
	SubscriberID string                    `json:"subscriber_id"`
	LocationID   string                    `json:"location_id,omitempty"`
	Lines        int                       `json:"lines"`
	Counts       provisioning.DeviceCounts `json:"devices"`
	DeviceIDs    []string                  `json:"device_ids"`
}

// Plan is the outcome of sizing without rendering.
type Plan struct {
	Groups   []GroupPlan           `json:"groups"`
	Counters provisioning.Counters `json:"counters"`
}
