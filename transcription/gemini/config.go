package gemini

import (
	"errors"
	"time"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-pro-exp-03-25"

// Config holds Gemini client settings.
type Config struct {
	// APIKey authenticates every call. Required.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	// Model names the generative model.
	Model string `yaml:"model" mapstructure:"model"`
	// BaseURL overrides the API endpoint, mostly for proxies.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// UploadTimeout bounds a single file upload. Zero means no extra deadline.
	UploadTimeout time.Duration `yaml:"upload_timeout" mapstructure:"upload_timeout"`
}

// ApplyDefaults sets the default model and upload timeout.
func (c *Config) ApplyDefaults() {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.UploadTimeout == 0 {
		c.UploadTimeout = 10 * time.Minute
	}
}

// Validate fails when credentials are missing so the process stops at startup.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("gemini: api_key is required (set GEMINI_API_KEY)")
	}
	return nil
}
