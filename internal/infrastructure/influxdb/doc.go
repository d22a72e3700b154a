// Package influxdb records provisioning run metrics in InfluxDB.
//
// Each run writes one provisioning_run point (lines, devices, groups,
// subscribers, duration) and one provisioned_devices point per adapter
// model, so device demand can be charted over time.
//
// # Usage
//
//	client, err := influxdb.Connect(ctx, cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.WriteRun(ctx, influxdb.RunMetrics{RunID: id, Devices: 3})
//
// Writes are blocking: a short-lived CLI has no background flusher to rely
// on.
package influxdb
