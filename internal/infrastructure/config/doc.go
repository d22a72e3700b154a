// Package config handles loading and validating grandstart configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables (and an optional .env file)
//   - Validation of required fields
//   - Default value handling
//
// The tool runs without a configuration file: Load("") returns the defaults
// with environment overrides applied, and CLI flags override the result.
//
// Security Considerations:
//   - Broker and InfluxDB credentials should be set via environment variables
//   - The config file should have restricted permissions (0600)
//
// Usage:
//
//	cfg, err := config.Load("grandstart.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Input.SubscriberColumn)
package config
