// Copyright 2025 The Bill Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the bill name suggestion server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

billserve provides live bill name completion over a growing corpus of
previously used names. It can operate as a MessagePack IPC server for
integration with expense tracker front-ends, or as a CLI application for
testing and debugging.

The engine walks a per-rune trie for case-insensitive prefix matches and
merges in substring matches from a flat scan, preserving the exact casing
names were recorded with. The corpus is a single JSON array on disk,
created empty on first run and grown as hosts commit new names.

# Usage

Start the server with default settings:

	billserve

Use a custom corpus directory and enable debug mode:

	billserve -data /path/to/corpus -d

Run in CLI mode for interactive testing:

	billserve -i -limit 10

The corpus file is unique_names.json, the same file the tracker GUIs read
and write. When no path is configured it is resolved against the working
directory, the executable directory and the user config directory, and
created empty in the config directory if missing everywhere.

# Configuration

Runtime configuration is managed through a TOML file:

	[corpus]
	path = ""

	[server]
	limit = 7
	cache_size = 0

	[watch]
	enabled = true
	debounce_ms = 50

The config file is automatically created with defaults if it doesn't
exist. BILL_CONFIG selects an alternate file; BILL_CORPUS, BILL_LIMIT,
BILL_CACHE, BILL_WATCH and BILL_DEBOUNCE_MS override single values, and a
.env file in the working directory is honored.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Suggestion
requests are processed synchronously with microsecond timing information
included in responses.

Send a suggestion request:

	{"id": "req1", "p": "wal", "l": 7}

Receive names ranked by position in the merged list:

	{"id": "req1", "s": [{"n": "Walmart", "r": 1}, {"n": "Walgreens", "r": 2}], "c": 2, "t": 145}

Corpus management requests allow runtime growth and inspection:

	{"id": "corp1", "a": "add_name", "n": "Home Depot"}
	{"id": "corp2", "a": "get_info"}
	{"id": "corp3", "a": "reload"}

# Server Mode

The default mode starts a MessagePack IPC server that processes
suggestion requests from stdin and writes responses to stdout. This
design enables integration with GUI expense trackers and editors through
process communication.

	srv := server.NewServer(index, store, limit, cacheSize)
	err := srv.Start()

While the server runs, the corpus file is watched for outside edits;
bursts of changes debounce into a single index rebuild that is swapped in
behind a lock. Use -no-watch to disable this.

# CLI Mode

CLI mode provides an interactive interface for testing and debugging
suggestion retrieval. It reads prefixes from stdin, displays ranked
names, and accepts a few ':' commands (:add, :info, :limit, :q).

	inputHandler := cli.NewInputHandler(index, store, cfg, configPath)
	err := inputHandler.Start()

This mode is primarily intended for development and testing new features
before deploying to server mode.

# Suggestion Engine

The core functionality is provided by the suggest package, which indexes
every recorded name in a per-rune trie plus a flat, append-only list.

	ix := suggest.NewNameIndex()
	ix.Insert("Walmart")
	names := ix.Suggestions("wal", 7)

Prefix matches come out in trie traversal order, then substring matches
in insertion order; exact duplicates collapse to their first occurrence.
A small LRU query cache can wrap the index for hot keystroke paths.

# Command Line Flags

The following flags control application behavior:

	-c string
	    Path to a TOML config file
	-data string
	    Directory containing the corpus file
	-d  Enable debug mode with detailed logging
	-i  Run in CLI mode instead of server mode
	-limit int
	    Number of suggestions to return (default from config)
	-cache int
	    Cached query capacity, 0 disables caching
	-no-watch
	    Disable watching the corpus file for outside edits
	-audit
	    Print casing collisions in the corpus and exit
	-rebuild-config
	    Recreate the default config file and exit
	-version
	    Show current version

Explicit flags win over environment variables, which win over the config
file, which wins over built-in defaults.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/Sap-has/bill/internal/cli"
	"github.com/Sap-has/bill/internal/logger"
	"github.com/Sap-has/bill/internal/utils"
	"github.com/Sap-has/bill/internal/watch"
	"github.com/Sap-has/bill/pkg/config"
	"github.com/Sap-has/bill/pkg/corpus"
	"github.com/Sap-has/bill/pkg/server"
	"github.com/Sap-has/bill/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0-beta"
	AppName = "billserve"
	gh      = "https://github.com/Sap-has/bill"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	// custom Flags
	showVersion := flag.Bool("version", false, "Show current version")
	configFlag := flag.String("c", "", "Path to a TOML config file")
	dataDir := flag.String("data", "", "Directory containing the corpus file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("i", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.Server.Limit, "Number of suggestions to return")
	cacheSize := flag.Int("cache", defaultConfig.Server.CacheSize, "Cached query capacity (0 disables)")
	noWatch := flag.Bool("no-watch", false, "Disable watching the corpus file for outside edits")
	auditMode := flag.Bool("audit", false, "Print casing collisions in the corpus and exit")
	rebuildConfig := flag.Bool("rebuild-config", false, "Recreate the default config file and exit")

	flag.Parse()

	if *showVersion {
		showVersionInfo()
		os.Exit(0)
	}

	if *rebuildConfig {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		log.Printf("Recreated default config at %s", config.GetActiveConfigPath(""))
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
		logger.SetLevelFromEnv()
	}

	// Initialize path resolver for robust path handling
	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	cfg, activeConfigPath, err := config.LoadConfigWithPriority(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	config.ApplyEnvOverrides(cfg)

	// explicit flags win over config and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "limit":
			cfg.Server.Limit = *limit
		case "cache":
			cfg.Server.CacheSize = *cacheSize
		}
	})
	if *noWatch {
		cfg.Watch.Enabled = false
	}

	corpusPath := cfg.Corpus.Path
	if *dataDir != "" {
		corpusPath = filepath.Join(*dataDir, corpus.DefaultFileName)
	}
	if corpusPath == "" {
		corpusPath = pathResolver.ResolveCorpusPath(corpus.DefaultFileName)
	}

	store, err := corpus.Open(corpusPath)
	if err != nil {
		log.Fatalf("Failed to open corpus: %v", err)
	}
	log.Debugf("Corpus: %d names from %s", store.Len(), corpusPath)

	if *auditMode {
		runAudit(store)
		return
	}

	index := suggest.BuildIndex(store.Names(), cfg.Server.CacheSize)

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:", "limit", cfg.Server.Limit, "cache", cfg.Server.CacheSize)

		inputHandler := cli.NewInputHandler(index, store, cfg, activeConfigPath)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(index, store, cfg.Server.Limit, cfg.Server.CacheSize)

	if cfg.Watch.Enabled {
		debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
		watcher, err := watch.NewWatcher(corpusPath, debounce)
		if err != nil {
			log.Warnf("Corpus watching unavailable: %v", err)
		} else if err := watcher.Watch(func() {
			if err := srv.Reload(); err != nil {
				log.Warnf("Reloading corpus after change: %v", err)
			}
		}); err != nil {
			log.Warnf("Corpus watching unavailable: %v", err)
		} else {
			defer watcher.Stop()
		}
	}

	showStartupInfo(corpusPath, store.Len(), activeConfigPath)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// showVersionInfo prints the styled version banner.
func showVersionInfo() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()

	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ billserve ] Serves really fast bill name completions!")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// runAudit prints every normalized name recorded under multiple casings,
// exiting nonzero when any exist.
func runAudit(store *corpus.Store) {
	collisions := corpus.Collisions(store.Names())
	if len(collisions) == 0 {
		log.Printf("No casing collisions in %s names", utils.FormatWithCommas(store.Len()))
		return
	}
	log.Printf("Found %d casing collisions:", len(collisions))
	for _, c := range collisions {
		log.Printf("  %s: %s", c.Normalized, strings.Join(c.Casings, ", "))
	}
	os.Exit(1)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(corpusPath string, names int, configPath string) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" billserve ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("corpus: ( %s )", corpusPath)
	log.Infof("names: [ %s ]", utils.FormatWithCommas(names))
	log.Infof("config: ( %s )", config.GetActiveConfigPath(configPath))
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
