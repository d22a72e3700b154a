package influxdb

import (
	"sort"
	"strconv"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Measurement names.
const (
	MeasurementRun     = "provisioning_run"
	MeasurementDevices = "provisioned_devices"
)

// RunMetrics summarises one provisioning run.
type RunMetrics struct {
	RunID         string
	Time          time.Time
	Duration      time.Duration
	DryRun        bool
	UseLocationID bool

	Subscribers int
	Groups      int
	Lines       int
	Devices     int

	// Models maps adapter model (HT818, HT814, HT812) to devices generated.
	Models map[string]int
}

// RunPoints converts m into one run point followed by one point per model,
// models in name order.
func RunPoints(m RunMetrics) []*write.Point {
	ts := m.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	tags := map[string]string{
		"dry_run":         strconv.FormatBool(m.DryRun),
		"use_location_id": strconv.FormatBool(m.UseLocationID),
	}

	points := []*write.Point{write.NewPoint(MeasurementRun, tags, map[string]interface{}{
		"run_id":      m.RunID,
		"subscribers": m.Subscribers,
		"groups":      m.Groups,
		"lines":       m.Lines,
		"devices":     m.Devices,
		"duration_ms": m.Duration.Milliseconds(),
	}, ts)}

	models := make([]string, 0, len(m.Models))
	for model := range m.Models {
		models = append(models, model)
	}
	sort.Strings(models)

	for _, model := range models {
		modelTags := map[string]string{"model": model, "dry_run": tags["dry_run"]}
		points = append(points, write.NewPoint(MeasurementDevices, modelTags, map[string]interface{}{
			"run_id": m.RunID,
			"count":  m.Models[model],
		}, ts))
	}
	return points
}
