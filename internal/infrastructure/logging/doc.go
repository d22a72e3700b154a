// Package logging provides structured logging for grandstart.
//
// This package wraps Go's standard log/slog package to provide
// consistent, structured logging across the entire application.
//
// # Features
//
//   - Text output for terminals (default)
//   - JSON output for log shippers
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (trace, debug, info, warn, error)
//
// # Configuration
//
// Logging is configured via the LoggingConfig in grandstart.yaml:
//
//	logging:
//	  level: "info"      # trace, debug, info, warn, error
//	  format: "text"     # text, json
//	  output: "stderr"   # stdout, stderr
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("run complete", "devices", 12)
//	logger.Trace("location sized", "location", "LOC-1")
//
// Never log broker passwords or InfluxDB tokens.
package logging
