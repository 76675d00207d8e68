/*
Package config manages TOML config for bill services.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/Sap-has/bill/internal/utils"
	"github.com/Sap-has/bill/pkg/suggest"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Corpus CorpusConfig `toml:"corpus"`
	Server ServerConfig `toml:"server"`
	Watch  WatchConfig  `toml:"watch"`
}

// CorpusConfig points at the bill name corpus on disk.
type CorpusConfig struct {
	// Path of the corpus JSON file. Empty means resolve against the
	// usual data directories at startup.
	Path string `toml:"path"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	Limit     int `toml:"limit"`
	CacheSize int `toml:"cache_size"`
}

// WatchConfig controls watching the corpus file for outside edits.
type WatchConfig struct {
	Enabled    bool `toml:"enabled"`
	DebounceMS int  `toml:"debounce_ms"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "bill")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "bill")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. BILL_CONFIG environment variable
// 3. Default path: [UserConfigDir]/bill/config.toml
// 4. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	if envPath := os.Getenv("BILL_CONFIG"); envPath != "" {
		if _, statErr := os.Stat(envPath); statErr == nil {
			config, err = LoadConfig(envPath)
			if err != nil {
				log.Warnf("Failed to load config from BILL_CONFIG=%s: %v. Trying default path...", envPath, err)
			} else {
				log.Debugf("Loaded config from BILL_CONFIG: %s", envPath)
				return config, envPath, nil
			}
		} else {
			log.Warnf("Config file from BILL_CONFIG not found at %s: %v. Trying default path...", envPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Path: "",
		},
		Server: ServerConfig{
			Limit:     suggest.DefaultLimit,
			CacheSize: 0,
		},
		Watch: WatchConfig{
			Enabled:    true,
			DebounceMS: 50,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := decodeTOMLFile(configPath, config); err != nil {
		log.Warnf("TOML parsing error in config file %s: %v. Attempting partial recovery...", configPath, err)
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	loose, err := parseLoose(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if corpusSection, ok := section(loose, "corpus"); ok {
		extractCorpusConfig(corpusSection, &config.Corpus)
	}
	if serverSection, ok := section(loose, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	if watchSection, ok := section(loose, "watch"); ok {
		extractWatchConfig(watchSection, &config.Watch)
	}
	return config, nil
}

// extractCorpusConfig extracts corpus configuration from a map
func extractCorpusConfig(data map[string]any, corpus *CorpusConfig) {
	if val, ok := stringValue(data, "path"); ok {
		corpus.Path = val
	}
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := intValue(data, "limit"); ok {
		server.Limit = val
	}
	if val, ok := intValue(data, "cache_size"); ok {
		server.CacheSize = val
	}
}

// extractWatchConfig extracts watcher configuration from a map
func extractWatchConfig(data map[string]any, watch *WatchConfig) {
	if val, ok := boolValue(data, "enabled"); ok {
		watch.Enabled = val
	}
	if val, ok := intValue(data, "debounce_ms"); ok {
		watch.DebounceMS = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return err
	}
	config := DefaultConfig()
	return encodeTOMLFile(config, defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return encodeTOMLFile(config, configPath)
}

// Update changes the config values and saves to file
func (c *Config) Update(configPath string, limit, cacheSize *int, watchEnabled *bool) error {
	if limit != nil {
		c.Server.Limit = *limit
	}
	if cacheSize != nil {
		c.Server.CacheSize = *cacheSize
	}
	if watchEnabled != nil {
		c.Watch.Enabled = *watchEnabled
	}
	return SaveConfig(c, configPath)
}
