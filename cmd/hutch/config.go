// Config loading for the hutch CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyBackend   = "backend"
	cfgKeyDataDir   = "data_dir"
	cfgKeyStoreFile = "store_file"
	cfgKeyStoreSize = "store_size"
	cfgKeyLogLevel  = "log_level"

	// Defaults.
	defaultBackend   = "file"
	defaultStoreFile = "hutch.img"
	defaultStoreSize = 4096
	defaultLogLevel  = "warn"
)

// config is the resolved CLI configuration.
type config struct {
	// Backend selects the store implementation: file, sqlite, or memory.
	Backend string

	// DataDir overrides the data directory; empty means unset.
	DataDir string

	// StoreFile is the store file name inside the data directory.
	StoreFile string

	// StoreSize is the store capacity in bytes, fixed at creation.
	StoreSize int32

	// LogLevel is the zerolog level name.
	LogLevel string
}

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Hutch CLI configuration

# Store backend: file, sqlite, or memory
backend: file

# Store capacity in bytes, fixed when the store is created
store_size: 4096

# Store file name inside the data directory
# store_file: hutch.img

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Log level: trace, debug, info, warn, error
log_level: warn
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on
// first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (config, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return config{}, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return config{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyStoreFile, defaultStoreFile)
	v.SetDefault(cfgKeyStoreSize, defaultStoreSize)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return config{}, fmt.Errorf("read config: %w", err)
		}
	}

	c := config{
		Backend:   v.GetString(cfgKeyBackend),
		DataDir:   v.GetString(cfgKeyDataDir),
		StoreFile: v.GetString(cfgKeyStoreFile),
		StoreSize: v.GetInt32(cfgKeyStoreSize),
		LogLevel:  v.GetString(cfgKeyLogLevel),
	}
	if c.StoreSize <= 0 {
		return config{}, fmt.Errorf("config %s: must be positive, got %d", cfgKeyStoreSize, c.StoreSize)
	}
	switch c.Backend {
	case "file", "sqlite", "memory":
	default:
		return config{}, fmt.Errorf("config %s: unknown backend %q (valid: file, sqlite, memory)", cfgKeyBackend, c.Backend)
	}
	return c, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file
// does not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
