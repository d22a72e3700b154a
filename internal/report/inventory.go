package report

import (
	"context"
	"fmt"

	"github.com/AzorianSolutions/grandstart/internal/inventory"
)

// InventorySink records runs and their devices in the inventory.
type InventorySink struct {
	repo inventory.Repository
}

// NewInventorySink creates an InventorySink over repo.
func NewInventorySink(repo inventory.Repository) *InventorySink {
	return &InventorySink{repo: repo}
}

// Report stores the run and its devices.
func (s *InventorySink) Report(ctx context.Context, summary Summary, devices []DeviceEvent) error {
	run := &inventory.Run{
		ID:            summary.RunID,
		StartedAt:     summary.StartedAt,
		FinishedAt:    summary.FinishedAt,
		InputPath:     summary.InputPath,
		TemplatePath:  summary.TemplatePath,
		OutputDir:     summary.OutputDir,
		UseLocationID: summary.UseLocationID,
		DryRun:        summary.DryRun,
		Counters:      summary.Counters,
	}

	records := make([]inventory.Device, len(devices))
	for i, d := range devices {
		records[i] = inventory.Device{
			RunID:        summary.RunID,
			DeviceID:     d.DeviceID,
			Model:        d.Model,
			SubscriberID: d.SubscriberID,
			LocationID:   d.LocationID,
			Lines:        d.Lines,
			FilePath:     d.Path,
		}
	}

	if err := s.repo.RecordRun(ctx, run, records); err != nil {
		return fmt.Errorf("recording run in inventory: %w", err)
	}
	return nil
}
