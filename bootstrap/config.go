package bootstrap

import (
	"github.com/kbukum/transcribealpha/config"
)

// Config is the constraint for application configuration types.
// Any struct embedding config.ServiceConfig satisfies it via promoted methods:
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Gemini gemini.Config `yaml:"gemini" mapstructure:"gemini"`
//	}
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
