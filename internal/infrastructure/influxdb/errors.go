package influxdb

import "errors"

// Domain-specific errors for InfluxDB operations.
var (
	// ErrDisabled is returned when InfluxDB is disabled in configuration.
	ErrDisabled = errors.New("influxdb: disabled in configuration")

	// ErrConnectionFailed is returned when the server cannot be reached.
	ErrConnectionFailed = errors.New("influxdb: connection failed")

	// ErrNotConnected is returned when using a closed client.
	ErrNotConnected = errors.New("influxdb: not connected")

	// ErrWriteFailed is returned when points cannot be written.
	ErrWriteFailed = errors.New("influxdb: write failed")
)
