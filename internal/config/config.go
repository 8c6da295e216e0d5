// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
)

// Environment variables read by FromEnv.
const (
	EnvAddr     = "OTS_ADDR"
	EnvCatalog  = "OTS_CATALOG"
	EnvLogLevel = "OTS_LOG_LEVEL"
)

// Config holds process-wide settings. Command-line flags override it.
type Config struct {
	// Addr is the HTTP listen address for ots serve.
	Addr string
	// CatalogPath is a bolt catalog file; empty means the built-in parts.
	CatalogPath string
	LogLevel    slog.Level
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:        os.Getenv(EnvAddr),
		CatalogPath: os.Getenv(EnvCatalog),
		LogLevel:    slog.LevelInfo,
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvLogLevel, err)
		}
	}
	return cfg, nil
}
