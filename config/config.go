package config

import (
	"errors"
	"fmt"

	"github.com/LegacyCodeHQ/amalgam/collector"
	"github.com/LegacyCodeHQ/amalgam/emitter"
	"github.com/LegacyCodeHQ/amalgam/includes"
)

// Default values for every setting.
const (
	DefaultTargetPath     = "./Nexus.h"
	DefaultWriteMode      = string(emitter.WriteModeWrite)
	DefaultHeaderOrder    = string(collector.HeaderOrderDiscovery)
	DefaultIncludeScanner = string(includes.ScannerLine)
	DefaultLogLevel       = "info"
)

// ErrEmptyTargetPath is returned when no target path is configured.
var ErrEmptyTargetPath = errors.New("target path must not be empty")

// Config is the resolved configuration for one amalgamation run.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	TargetPath          string   `mapstructure:"target_path"`
	BlacklistedIncludes []string `mapstructure:"blacklisted_includes"`
	WriteMode           string   `mapstructure:"write_mode"`
	HeaderOrder         string   `mapstructure:"header_order"`
	IncludeScanner      string   `mapstructure:"include_scanner"`
	Directives          []string `mapstructure:"directives"`
	LogLevel            string   `mapstructure:"log_level"`
}

// Validate checks that every enumerated setting holds a known value.
func (c *Config) Validate() error {
	if c.TargetPath == "" {
		return ErrEmptyTargetPath
	}
	if _, err := emitter.ParseWriteMode(c.WriteMode); err != nil {
		return err
	}
	if _, err := collector.ParseHeaderOrder(c.HeaderOrder); err != nil {
		return err
	}
	if _, err := includes.NewScanner(includes.ScannerKind(c.IncludeScanner)); err != nil {
		return fmt.Errorf("invalid include_scanner: %w", err)
	}
	return nil
}

// Mode returns the parsed write mode. Call Validate first.
func (c *Config) Mode() emitter.WriteMode {
	mode, _ := emitter.ParseWriteMode(c.WriteMode)
	return mode
}

// Order returns the parsed header order. Call Validate first.
func (c *Config) Order() collector.HeaderOrder {
	order, _ := collector.ParseHeaderOrder(c.HeaderOrder)
	return order
}

// EmitterDirectives returns the configured directive markers, or nil to
// select emitter.DefaultDirectives.
func (c *Config) EmitterDirectives() []string {
	if len(c.Directives) == 0 {
		return nil
	}
	return c.Directives
}
