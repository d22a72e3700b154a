// Package mqtt publishes provisioning notifications to an MQTT broker.
//
// After a run, grandstart can announce what it generated so that other
// tooling (an inventory dashboard, a provisioning server that stages the
// files) can react without polling the output directory:
//
//	{prefix}/runs/latest                       retained run summary
//	{prefix}/runs/{run_id}/summary             run summary
//	{prefix}/devices/{subscriber}/{device_id}  one event per generated config
//
// The client is built for a short-lived process: it connects once, fails
// fast when the broker is unreachable, and disconnects after the run.
//
// # Usage
//
//	client, err := mqtt.Connect(ctx, cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	topic := client.Topics().RunSummary(runID)
//	err = client.PublishJSON(topic, summary, false)
package mqtt
