package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// ApplyEnvOverrides layers environment variables on top of cfg.
// A .env file in the working directory is honored when present.
//
//	BILL_CORPUS       corpus file path
//	BILL_LIMIT        default suggestion limit
//	BILL_CACHE        cached query capacity, 0 disables
//	BILL_WATCH        enables or disables corpus watching
//	BILL_DEBOUNCE_MS  watcher debounce in milliseconds
func ApplyEnvOverrides(cfg *Config) {
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded environment from .env")
	}
	if v := os.Getenv("BILL_CORPUS"); v != "" {
		cfg.Corpus.Path = v
	}
	if v, ok := envInt("BILL_LIMIT"); ok {
		cfg.Server.Limit = v
	}
	if v, ok := envInt("BILL_CACHE"); ok {
		cfg.Server.CacheSize = v
	}
	if v, ok := envBool("BILL_WATCH"); ok {
		cfg.Watch.Enabled = v
	}
	if v, ok := envInt("BILL_DEBOUNCE_MS"); ok {
		cfg.Watch.DebounceMS = v
	}
}

func envInt(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Warnf("Ignoring %s=%q: not an integer", key, raw)
		return 0, false
	}
	return v, true
}

func envBool(key string) (bool, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Warnf("Ignoring %s=%q: not a boolean", key, raw)
		return false, false
	}
	return v, true
}
