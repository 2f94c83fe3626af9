package app

import (
	"fmt"

	"github.com/kbukum/transcribealpha/config"
	"github.com/kbukum/transcribealpha/document"
	"github.com/kbukum/transcribealpha/media"
	"github.com/kbukum/transcribealpha/observability"
	"github.com/kbukum/transcribealpha/server"
	"github.com/kbukum/transcribealpha/storage"
	"github.com/kbukum/transcribealpha/transcription"
	"github.com/kbukum/transcribealpha/transcription/gemini"
	"github.com/kbukum/transcribealpha/version"
)

// ServiceName names the service in logs, telemetry and config lookup.
const ServiceName = "transcribealpha"

// EnvAliases maps the deployment's environment variables onto config keys.
var EnvAliases = map[string]string{
	"GEMINI_API_KEY":       "gemini.api_key",
	"R2_ENDPOINT":          "storage.endpoint",
	"R2_ACCESS_KEY_ID":     "storage.access_key",
	"R2_SECRET_ACCESS_KEY": "storage.secret_key",
	"R2_BUCKET_NAME":       "storage.bucket",
	"PORT":                 "server.port",
}

// Config is the full configuration tree.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Gemini        gemini.Config        `yaml:"gemini" mapstructure:"gemini"`
	Transcription transcription.Config `yaml:"transcription" mapstructure:"transcription"`
	Storage       storage.Config       `yaml:"storage" mapstructure:"storage"`
	Media         media.Config         `yaml:"media" mapstructure:"media"`
	Document      document.Config      `yaml:"document" mapstructure:"document"`
	Tracing       observability.Config `yaml:"tracing" mapstructure:"tracing"`
	Metrics       observability.Config `yaml:"metrics" mapstructure:"metrics"`
}

// LoadConfig reads config.yml, .env and the environment. An empty path
// searches the default locations.
func LoadConfig(path string) (*Config, error) {
	opts := []config.LoaderOption{config.WithEnvAliases(EnvAliases)}
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	cfg := &Config{}
	if err := config.LoadConfig(ServiceName, cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults fills every section's defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	if c.Version == "" {
		c.Version = version.Get().Short()
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Gemini.ApplyDefaults()
	c.Transcription.ApplyDefaults()
	c.Storage.ApplyDefaults()
	c.Media.ApplyDefaults()
	for _, o := range []*observability.Config{&c.Tracing, &c.Metrics} {
		if o.Environment == "" {
			o.Environment = c.Environment
		}
		o.ApplyDefaults()
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Gemini.Validate(); err != nil {
		return err
	}
	if err := c.Transcription.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be between 0 and 1 (got: %g)", c.Tracing.SampleRate)
	}
	return nil
}
