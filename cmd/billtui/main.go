package main

import (
	"flag"
	"path/filepath"

	"github.com/Sap-has/bill/internal/tui"
	"github.com/Sap-has/bill/internal/utils"
	"github.com/Sap-has/bill/pkg/config"
	"github.com/Sap-has/bill/pkg/corpus"
	"github.com/Sap-has/bill/pkg/suggest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// billtui is a terminal composer for recording bill names with live
// suggestions, a standalone stand-in for the tracker's entry form.
func main() {
	configFlag := flag.String("c", "", "Path to a TOML config file")
	dataDir := flag.String("data", "", "Directory containing the corpus file")
	limit := flag.Int("limit", 0, "Number of suggestions to show (default from config)")

	flag.Parse()

	// keep log noise off the alt screen
	log.SetLevel(log.ErrorLevel)

	cfg, _, err := config.LoadConfigWithPriority(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	config.ApplyEnvOverrides(cfg)
	if *limit > 0 {
		cfg.Server.Limit = *limit
	}

	corpusPath := cfg.Corpus.Path
	if *dataDir != "" {
		corpusPath = filepath.Join(*dataDir, corpus.DefaultFileName)
	}
	if corpusPath == "" {
		pathResolver, err := utils.NewPathResolver()
		if err != nil {
			log.Fatalf("Failed to initialize path resolver: %v", err)
		}
		corpusPath = pathResolver.ResolveCorpusPath(corpus.DefaultFileName)
	}

	store, err := corpus.Open(corpusPath)
	if err != nil {
		log.Fatalf("Failed to open corpus: %v", err)
	}

	index := suggest.BuildIndex(store.Names(), cfg.Server.CacheSize)
	model := tui.NewModel(index, store, cfg.Server.Limit)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("TUI error: %v", err)
	}
}
