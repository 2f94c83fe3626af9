package storage

import (
	"errors"
	"fmt"
	"time"
)

// Provider constants for supported storage backends.
const (
	ProviderLocal = "local"
	ProviderS3    = "s3"
)

// Default configuration values.
const (
	DefaultProvider      = ProviderS3
	DefaultBucket        = "transcript"
	DefaultBasePath      = "/tmp/transcribealpha-storage"
	DefaultRegion        = "auto"
	DefaultPresignExpiry = time.Hour
	DefaultMaxFileSize   = int64(2 << 30) // 2 GB
)

// Config holds storage configuration.
type Config struct {
	// Enabled controls whether the storage component is active.
	Enabled bool `mapstructure:"enabled" json:"enabled"`

	// Provider selects the storage backend: "s3" or "local".
	Provider string `mapstructure:"provider" json:"provider"`

	// Bucket is the S3 bucket name.
	Bucket string `mapstructure:"bucket" json:"bucket"`

	// Region is the signing region. R2 uses "auto".
	Region string `mapstructure:"region" json:"region"`

	// Endpoint is a custom S3-compatible endpoint (R2, MinIO).
	Endpoint string `mapstructure:"endpoint" json:"endpoint"`

	// AccessKey is the access key ID.
	AccessKey string `mapstructure:"access_key" json:"access_key"`

	// SecretKey is the secret access key.
	SecretKey string `mapstructure:"secret_key" json:"-"`

	// BasePath is the root directory for local storage.
	BasePath string `mapstructure:"base_path" json:"base_path"`

	// PresignExpiry is how long presigned upload URLs stay valid.
	PresignExpiry time.Duration `mapstructure:"presign_expiry" json:"presign_expiry"`

	// MaxFileSize bounds objects read back into memory.
	MaxFileSize int64 `mapstructure:"max_file_size" json:"max_file_size"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.Bucket == "" {
		c.Bucket = DefaultBucket
	}
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.BasePath == "" {
		c.BasePath = DefaultBasePath
	}
	if c.PresignExpiry <= 0 {
		c.PresignExpiry = DefaultPresignExpiry
	}
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
}

// Validate checks that the configuration is valid for the selected provider.
// A disabled store is always valid.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	switch c.Provider {
	case ProviderLocal:
		if c.BasePath == "" {
			return errors.New("storage: base_path is required for local provider")
		}
	case ProviderS3:
		var errs []error
		if c.Bucket == "" {
			errs = append(errs, errors.New("bucket is required"))
		}
		if c.Endpoint == "" {
			errs = append(errs, errors.New("endpoint is required (set R2_ENDPOINT)"))
		}
		if c.AccessKey == "" || c.SecretKey == "" {
			errs = append(errs, errors.New("access_key and secret_key are required (set R2_ACCESS_KEY_ID and R2_SECRET_ACCESS_KEY)"))
		}
		if len(errs) > 0 {
			return fmt.Errorf("storage: invalid s3 config: %w", errors.Join(errs...))
		}
	default:
		return fmt.Errorf("storage: unsupported provider %q", c.Provider)
	}
	return nil
}

// GetBucket returns the bucket name.
func (c *Config) GetBucket() string { return c.Bucket }
