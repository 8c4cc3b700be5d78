// Package cli holds the flag, config and output plumbing shared by every
// amalgam command.
package cli

import (
	"fmt"

	"fortio.org/log"
	"github.com/LegacyCodeHQ/amalgam/amalgam"
	"github.com/LegacyCodeHQ/amalgam/config"
	"github.com/LegacyCodeHQ/amalgam/includes"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const configFlag = "config"

// RegisterFlags adds the settings shared by all commands. Flag names match
// the config keys so viper can bind them directly.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String(configFlag, "", "Config file (default: .amalgam.yaml in the current or home directory)")
	flags.String("target_path", config.DefaultTargetPath, "Path to the amalgamated output file")
	flags.StringSlice("blacklisted_includes", nil, "Skip includes whose path contains any of these substrings (comma-separated or repeated)")
	flags.String("write_mode", config.DefaultWriteMode, "Target write mode (write, append)")
	flags.String("header_order", config.DefaultHeaderOrder, "Header emission order (discovery, dependency)")
	flags.String("include_scanner", config.DefaultIncludeScanner, "Include scanner (line, syntax)")
	flags.StringSlice("directives", nil, "Line markers to strip from the output (default: preprocessor guards and includes)")
	flags.String("log_level", config.DefaultLogLevel, "Diagnostics level (debug, verbose, info, warning, error)")
}

// LoadConfig resolves the configuration for cmd and applies its log level.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString(configFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}

	if err := log.SetLogLevelStr(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}

	return cfg, nil
}

// BuildOptions turns a validated config and the positional sources into
// pipeline options.
func BuildOptions(cfg *config.Config, sources []string) (amalgam.Options, error) {
	scanner, err := includes.NewScanner(includes.ScannerKind(cfg.IncludeScanner))
	if err != nil {
		return amalgam.Options{}, err
	}

	return amalgam.Options{
		Sources:     sources,
		TargetPath:  cfg.TargetPath,
		Blacklist:   cfg.BlacklistedIncludes,
		WriteMode:   cfg.Mode(),
		HeaderOrder: cfg.Order(),
		Scanner:     scanner,
		Directives:  cfg.EmitterDirectives(),
	}, nil
}

// LoadOptions is LoadConfig followed by BuildOptions.
func LoadOptions(cmd *cobra.Command, sources []string) (amalgam.Options, error) {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return amalgam.Options{}, err
	}
	return BuildOptions(cfg, sources)
}
