package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for grandstart.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Template TemplateConfig `yaml:"template"`
	Grouping GroupingConfig `yaml:"grouping"`
	Logging  LoggingConfig  `yaml:"logging"`
	Database DatabaseConfig `yaml:"database"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
}

// InputConfig describes where subscriber line records come from.
type InputConfig struct {
	// Path is the CSV or XLSX file holding one row per subscriber line.
	Path string `yaml:"path"`

	// Format forces the reader ("csv" or "xlsx"). Empty means detect from
	// the file extension.
	Format string `yaml:"format"`

	// Sheet selects the worksheet for XLSX input. Empty means the first sheet.
	Sheet string `yaml:"sheet"`

	// SubscriberColumn is the header naming the subscriber identifier.
	SubscriberColumn string `yaml:"subscriber_column"`

	// LocationColumn is the header naming the secondary grouping key.
	LocationColumn string `yaml:"location_column"`
}

// OutputConfig describes where rendered configuration files are written.
type OutputConfig struct {
	Dir       string `yaml:"dir"`
	Extension string `yaml:"extension"`
}

// TemplateConfig describes the device configuration template.
type TemplateConfig struct {
	Path        string `yaml:"path"`
	OpenMarker  string `yaml:"open_marker"`
	CloseMarker string `yaml:"close_marker"`

	// Strict turns unresolved $LINE.<field> tokens into a run failure.
	Strict bool `yaml:"strict"`
}

// GroupingConfig controls how a subscriber's lines are partitioned before sizing.
type GroupingConfig struct {
	// UseLocationID splits each subscriber's lines by the location column.
	UseLocationID bool `yaml:"use_location_id"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// DatabaseConfig contains SQLite inventory database settings.
type DatabaseConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings used for run notifications.
type MQTTConfig struct {
	Enabled     bool             `yaml:"enabled"`
	Broker      MQTTBrokerConfig `yaml:"broker"`
	Auth        MQTTAuthConfig   `yaml:"auth"`
	QoS         int              `yaml:"qos"`
	TopicPrefix string           `yaml:"topic_prefix"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// InfluxDBConfig contains InfluxDB connection settings for run metrics.
type InfluxDBConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Token   string `yaml:"token"`
	Org     string `yaml:"org"`
	Bucket  string `yaml:"bucket"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults), skipped when path is empty
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: GRANDSTART_SECTION_KEY
// For example: GRANDSTART_INPUT_PATH, GRANDSTART_USE_LOCATION_ID
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a Config with sensible defaults.
func Defaults() *Config {
	return &Config{
		Input: InputConfig{
			SubscriberColumn: "SUBSCRIBER_ID",
			LocationColumn:   "LOCATION_ID",
		},
		Output: OutputConfig{
			Dir:       ".",
			Extension: ".xml",
		},
		Template: TemplateConfig{
			OpenMarker:  "<!-- for LINE in LINES -->",
			CloseMarker: "<!-- endfor -->",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Database: DatabaseConfig{
			Path:        "./data/grandstart.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "grandstart",
			},
			QoS:         1,
			TopicPrefix: "grandstart",
		},
		InfluxDB: InfluxDBConfig{
			URL:    "http://localhost:8086",
			Bucket: "provisioning",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: GRANDSTART_SECTION_KEY
func applyEnvOverrides(cfg *Config) error {
	// Input
	if v := os.Getenv("GRANDSTART_INPUT_PATH"); v != "" {
		cfg.Input.Path = v
	}
	if v := os.Getenv("GRANDSTART_SUBSCRIBER_COLUMN"); v != "" {
		cfg.Input.SubscriberColumn = v
	}
	if v := os.Getenv("GRANDSTART_LOCATION_COLUMN"); v != "" {
		cfg.Input.LocationColumn = v
	}

	// Output and template
	if v := os.Getenv("GRANDSTART_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("GRANDSTART_TEMPLATE_PATH"); v != "" {
		cfg.Template.Path = v
	}

	// Grouping
	if v := os.Getenv("GRANDSTART_USE_LOCATION_ID"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("GRANDSTART_USE_LOCATION_ID: %w", err)
		}
		cfg.Grouping.UseLocationID = b
	}

	// Logging
	if v := os.Getenv("GRANDSTART_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Database
	if v := os.Getenv("GRANDSTART_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// MQTT
	if v := os.Getenv("GRANDSTART_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("GRANDSTART_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("GRANDSTART_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("GRANDSTART_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Input.SubscriberColumn) == "" {
		errs = append(errs, "input.subscriber_column is required")
	}
	if c.Grouping.UseLocationID && strings.TrimSpace(c.Input.LocationColumn) == "" {
		errs = append(errs, "input.location_column is required when grouping.use_location_id is set")
	}
	switch strings.ToLower(c.Input.Format) {
	case "", "csv", "xlsx":
	default:
		errs = append(errs, "input.format must be csv or xlsx")
	}

	if strings.TrimSpace(c.Template.OpenMarker) == "" || strings.TrimSpace(c.Template.CloseMarker) == "" {
		errs = append(errs, "template.open_marker and template.close_marker are required")
	} else if strings.TrimSpace(c.Template.OpenMarker) == strings.TrimSpace(c.Template.CloseMarker) {
		errs = append(errs, "template.open_marker and template.close_marker must differ")
	}

	if c.Database.Enabled && c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	if c.MQTT.Enabled {
		if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
			errs = append(errs, "mqtt.qos must be 0, 1, or 2")
		}
		if c.MQTT.Broker.Port < 1 || c.MQTT.Broker.Port > 65535 {
			errs = append(errs, "mqtt.broker.port must be between 1 and 65535")
		}
	}

	if c.InfluxDB.Enabled && (c.InfluxDB.URL == "" || c.InfluxDB.Bucket == "") {
		errs = append(errs, "influxdb.url and influxdb.bucket are required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// LoadDotEnv reads KEY=VALUE pairs from path into the process environment.
// Variables that are already set are left untouched. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("opening env file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if key == "" {
			continue
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading env file: %w", err)
	}
	return nil
}
