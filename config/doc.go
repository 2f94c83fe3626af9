// Package config loads service configuration with Viper.
//
// Values come from a YAML file (searched under ./cmd/<service>/ and the
// working directory), then a .env file, then process environment variables.
// Environment variables override file values: GEMINI_API_KEY binds to
// gemini.api_key, STORAGE_BUCKET to storage.bucket and so on. Legacy
// variable names can be mapped explicitly with WithEnvAliases.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("transcribealpha", &cfg,
//	    config.WithEnvAliases(map[string]string{"R2_BUCKET_NAME": "storage.bucket"}))
package config
