// Package report delivers the outcome of a provisioning run to its
// destinations: the log, the inventory database, an MQTT broker and
// InfluxDB.
//
// The generator builds one Summary and one DeviceEvent per generated
// configuration, then hands them to a Sink. Sinks are independent; Multi
// calls every sink and joins their errors so one unreachable destination
// does not hide the others.
package report
