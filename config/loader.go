package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".amalgam"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for amalgam settings.
const envPrefix = "AMALGAM"

// LoadConfig loads configuration from defaults, config file, env vars and
// command-line flags, in increasing order of precedence. Only flags the user
// actually set override the other sources.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viperCfg.AutomaticEnv()

	if flags != nil {
		if err := viperCfg.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("target_path", DefaultTargetPath)
	viperCfg.SetDefault("blacklisted_includes", []string{})
	viperCfg.SetDefault("write_mode", DefaultWriteMode)
	viperCfg.SetDefault("header_order", DefaultHeaderOrder)
	viperCfg.SetDefault("include_scanner", DefaultIncludeScanner)
	viperCfg.SetDefault("directives", []string{})
	viperCfg.SetDefault("log_level", DefaultLogLevel)
}
