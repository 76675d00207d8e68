// Package logger provides modifications to charmbracelet/log's default
// logger to be used in various files/packages.
//
// Loggers write to stderr: stdout belongs to the msgpack wire protocol in
// server mode and must stay clean.
package logger

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// New creates a new default charm log with a component prefix.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// SetLevelFromEnv applies BILL_DEBUG / BILL_LOG_LEVEL to the global logger.
// Flag-driven levels in main take precedence by calling log.SetLevel after.
func SetLevelFromEnv() {
	if os.Getenv("BILL_DEBUG") == "1" {
		log.SetLevel(log.DebugLevel)
		return
	}
	switch strings.ToLower(os.Getenv("BILL_LOG_LEVEL")) {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	}
}
