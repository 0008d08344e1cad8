package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eea/tex2png/internal/config"
)

const envPrefix = "TEX2PNG_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // TEX2PNG_CONFIG: config file name or path
	Engine     string // TEX2PNG_ENGINE: vector or browser
	Timeout    string // TEX2PNG_TIMEOUT: conversion deadline
}

// knownEnvVars lists valid TEX2PNG_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"TEX2PNG_CONFIG":  true,
	"TEX2PNG_ENGINE":  true,
	"TEX2PNG_TIMEOUT": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath: os.Getenv("TEX2PNG_CONFIG"),
		Engine:     os.Getenv("TEX2PNG_ENGINE"),
		Timeout:    os.Getenv("TEX2PNG_TIMEOUT"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized TEX2PNG_* variables.
// Helps catch typos like TEX2PNG_ENGIN.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overlays non-empty environment values on cfg.
// Resulting priority: flags > env vars > config file > defaults
// (flags are applied later via mergeFlags, which validates the result).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Engine != "" {
		cfg.Render.Engine = env.Engine
	}
	if env.Timeout != "" {
		cfg.Render.Timeout = env.Timeout
	}
}

// mergeFlags overlays explicitly set flags on cfg and validates the merged
// configuration.
func mergeFlags(f *cliFlags, cfg *config.Config) error {
	if f.engine != "" {
		cfg.Render.Engine = f.engine
	}
	if f.timeout != "" {
		cfg.Render.Timeout = f.timeout
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return nil
}
