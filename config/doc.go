// Package config loads the ambient configuration of a streamcast process:
// logging, diagnostics, metrics and tracing.
//
// It uses Viper to read a YAML file, godotenv to load an optional .env file,
// and environment variables for overrides.
//
// # Usage
//
//	cfg, err := config.Load()
//	cfg, err := config.Load(config.WithConfigFile("deploy/streamcast.yml"))
//
// Environment variables override file values using the STREAMCAST_ prefix
// with underscore-separated paths (e.g., STREAMCAST_METRICS_BACKEND).
package config
