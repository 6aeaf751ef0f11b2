package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// envPrefix scopes environment overrides, e.g. OHM_ANALYZER_ANALYSIS_NOMINAL_RESISTANCE.
const envPrefix = "OHM_ANALYZER"

// LoadConfigFromFlags attempts to read and parse configuration from the config
// file path. Any files found in the config_dir it names are merged on top. An
// empty path yields the default configuration.
func LoadConfigFromFlags(configPath, dirPrefix string) (Config, error) {
	if configPath == "" {
		return DefaultConfig()
	}

	configPaths := []string{configPath}

	configDir, err := parseConfigDir(configPath)
	if err != nil {
		return Config{}, err
	}

	if configDir != "" {
		extraConfigPaths, err := filesInFolder(dirPrefix + configDir)
		if err != nil {
			return Config{}, err
		}
		configPaths = append(configPaths, extraConfigPaths...)
	}

	return ParseConfigs(configPaths)
}

// DefaultConfig returns the configuration built from defaults and environment
// overrides only.
func DefaultConfig() (Config, error) {
	return ParseConfigs(nil)
}

// filesInFolder returns a slice of all file paths in a given folder.
func filesInFolder(folder string) ([]string, error) {
	var files []string
	err := filepath.Walk(folder, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// parseConfigDir attempts to read the config_dir from the config file.
func parseConfigDir(configPath string) (string, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("failed to read config: %w", err)
	}
	return v.GetString("config_dir"), nil
}

// ParseConfig attempts to read and parse configuration from the given file path.
// An error is returned if reading or parsing the config fails.
func ParseConfig(configPath string) (Config, error) {
	return ParseConfigs([]string{configPath})
}

// ParseConfigs attempts to read and parse configuration from the given file paths.
// An error is returned if reading or parsing the configs fails.
func ParseConfigs(configPaths []string) (Config, error) {
	var cfg Config

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	// Allow nested env vars to be read with underscore separators.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Loop over each config path and merge its values into the previous one
	for _, configPath := range configPaths {
		if configPath == "" {
			return cfg, ErrEmptyConfigPath
		}
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
	}

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, decodeHook); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}

	return cfg, cfg.Validate()
}

func setDefaults(v *viper.Viper) {
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}
}
