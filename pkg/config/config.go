package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

type Config struct {
	Environment string `yaml:"environment" default:"production"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"30s"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Extract struct {
		OutputDir        string `yaml:"output_dir" default:"/var/lib/powerpos/reports"`
		IntervalMinutes  int    `yaml:"interval_minutes" default:"5" validate:"gt=0"`
		RetryCount       int    `yaml:"retry_count" default:"3" validate:"gt=0"`
		RetryBaseDelayMS int    `yaml:"retry_base_delay_ms" default:"1000" validate:"gt=0"`
		Timezone         string `yaml:"timezone" default:"Europe/London"`
	} `yaml:"extract"`
	Cleanup struct {
		// Enabled is a pointer so an explicit "false" survives defaulting.
		Enabled              *bool `yaml:"enabled" default:"true"`
		RetentionDays        int   `yaml:"retention_days" default:"30"`
		IntervalHours        int   `yaml:"interval_hours" default:"24"`
		CheckIntervalMinutes int   `yaml:"check_interval_minutes" default:"5" validate:"gt=0"`
	} `yaml:"cleanup"`
	Provider struct {
		Type string `yaml:"type" default:"http" validate:"oneof=http clickhouse"`
		HTTP struct {
			BaseURL string        `yaml:"base_url" default:"http://localhost:9090"`
			APIKey  string        `yaml:"api_key"`
			Timeout time.Duration `yaml:"timeout" default:"30s"`
		} `yaml:"http"`
		ClickHouse struct {
			Host         string        `yaml:"host" default:"localhost"`
			Port         int           `yaml:"port" default:"9000"`
			Database     string        `yaml:"database" default:"powerpos"`
			Table        string        `yaml:"table" default:"powerpos.trades"`
			User         string        `yaml:"user" default:"default"`
			Password     string        `yaml:"password"`
			DialTimeout  time.Duration `yaml:"dial_timeout" default:"5s"`
			ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
			InitSchema   bool          `yaml:"init_schema"`
		} `yaml:"clickhouse"`
	} `yaml:"provider"`
	Events struct {
		Enabled bool `yaml:"enabled"`
		Kafka   struct {
			Brokers      []string      `yaml:"brokers"`
			Topic        string        `yaml:"topic" default:"powerpos.cycle-outcomes"`
			RequiredAcks int           `yaml:"required_acks" default:"-1"`
			Compression  string        `yaml:"compression" default:"gzip"`
			MaxAttempts  int           `yaml:"max_attempts" default:"3"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
		} `yaml:"kafka"`
	} `yaml:"events"`
	Heartbeat struct {
		Enabled bool `yaml:"enabled"`
		Redis   struct {
			Host     string        `yaml:"host" default:"localhost"`
			Port     int           `yaml:"port" default:"6379"`
			Password string        `yaml:"password"`
			DB       int           `yaml:"db"`
			Key      string        `yaml:"key" default:"powerpos:heartbeat"`
			TTL      time.Duration `yaml:"ttl" default:"15m"`
		} `yaml:"redis"`
	} `yaml:"heartbeat"`
}

// Load reads a YAML config file, applies defaults, validates and clamps.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.finalize(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment
// variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("POWERPOS_OUTPUT_DIR"); v != "" {
		c.Extract.OutputDir = v
	}
	if v := os.Getenv("POWERPOS_PROVIDER"); v != "" {
		c.Provider.Type = v
	}
	if v := os.Getenv("POWERPOS_PROVIDER_URL"); v != "" {
		c.Provider.HTTP.BaseURL = v
	}
	if v := os.Getenv("POWERPOS_PROVIDER_API_KEY"); v != "" {
		c.Provider.HTTP.APIKey = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Events.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("POWERPOS_EXTRACT_INTERVAL_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Extract.IntervalMinutes = n
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Default returns a config with all defaults applied, no file needed.
func Default() (*Config, error) {
	var c Config
	if err := c.finalize(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) finalize() error {
	if err := defaults.Set(c); err != nil {
		return fmt.Errorf("apply defaults: %w", err)
	}
	c.clamp()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

// clamp forces retention and cleanup cadence into their allowed ranges
// instead of rejecting the config; an out-of-range value is an operator
// typo, not a reason to refuse to start.
func (c *Config) clamp() {
	if c.Cleanup.RetentionDays < 1 {
		c.Cleanup.RetentionDays = 1
	}
	if c.Cleanup.RetentionDays > 365 {
		c.Cleanup.RetentionDays = 365
	}
	if c.Cleanup.IntervalHours < 1 {
		c.Cleanup.IntervalHours = 1
	}
	if c.Cleanup.IntervalHours > 168 {
		c.Cleanup.IntervalHours = 168
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Extract.OutputDir == "" {
		return fmt.Errorf("extract.output_dir is required")
	}
	if c.Provider.Type == "http" && c.Provider.HTTP.BaseURL == "" {
		return fmt.Errorf("provider.http.base_url is required")
	}
	if c.Events.Enabled && len(c.Events.Kafka.Brokers) == 0 {
		return fmt.Errorf("events.kafka.brokers cannot be empty when events are enabled")
	}
	return nil
}

// ExtractInterval returns the extraction cadence as a duration.
func (c *Config) ExtractInterval() time.Duration {
	return time.Duration(c.Extract.IntervalMinutes) * time.Minute
}

// RetryBaseDelay returns the first backoff delay as a duration.
func (c *Config) RetryBaseDelay() time.Duration {
	return time.Duration(c.Extract.RetryBaseDelayMS) * time.Millisecond
}

// Retention returns the report retention period as a duration.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.Cleanup.RetentionDays) * 24 * time.Hour
}

// CleanupInterval returns how often a cleanup pass should run.
func (c *Config) CleanupInterval() time.Duration {
	return time.Duration(c.Cleanup.IntervalHours) * time.Hour
}

// CleanupCheckInterval returns the cleanup loop tick interval.
func (c *Config) CleanupCheckInterval() time.Duration {
	return time.Duration(c.Cleanup.CheckIntervalMinutes) * time.Minute
}

// CleanupEnabled reports whether retention cleanup should run.
func (c *Config) CleanupEnabled() bool {
	return c.Cleanup.Enabled == nil || *c.Cleanup.Enabled
}
