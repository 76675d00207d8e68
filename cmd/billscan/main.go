package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sap-has/bill/internal/scan"
	"github.com/Sap-has/bill/internal/utils"
	"github.com/Sap-has/bill/pkg/corpus"
	"github.com/charmbracelet/log"
)

func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// billscan rebuilds the name corpus from the tracker's yearly bill
// databases. Run it once against an existing install to seed the corpus,
// or with -append to pull in names recorded outside the suggestion flow.
func main() {
	sigHandler()
	dataDir := flag.String("data", ".", "Directory containing bills_<year>.db files")
	outPath := flag.String("out", "", "Corpus file to write (default: resolved unique_names.json)")
	appendMode := flag.Bool("append", false, "Merge scanned names into the existing corpus instead of replacing it")
	debugMode := flag.Bool("d", false, "Toggle debug mode")

	flag.Parse()

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(false)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	path := *outPath
	if path == "" {
		pathResolver, err := utils.NewPathResolver()
		if err != nil {
			log.Fatalf("Failed to initialize path resolver: %v", err)
		}
		path = pathResolver.ResolveCorpusPath(corpus.DefaultFileName)
	}

	dbs, err := scan.Discover(*dataDir)
	if err != nil {
		log.Fatalf("Failed to scan %s: %v", *dataDir, err)
	}
	if len(dbs) == 0 {
		log.Fatalf("No bills_<year>.db files under %s", *dataDir)
	}
	log.Debugf("Found %d year databases", len(dbs))

	names, err := scan.Names(context.Background(), dbs)
	if err != nil {
		log.Fatalf("Failed to read bill names: %v", err)
	}

	store, err := corpus.Open(path)
	if err != nil {
		log.Fatalf("Failed to open corpus: %v", err)
	}

	merged := names
	if *appendMode {
		merged = mergeNew(store.Names(), names)
		log.Debugf("Merging %d scanned names into %d existing", len(names), store.Len())
	}
	if err := store.Replace(merged); err != nil {
		log.Fatalf("Failed to write corpus: %v", err)
	}

	log.Printf("Scanned %d databases, wrote %s names to %s",
		len(dbs), utils.FormatWithCommas(store.Len()), path)
	log.Printf("Distinct: %s", utils.FormatWithCommas(store.Distinct()))
	if collisions := corpus.Collisions(store.Names()); len(collisions) > 0 {
		log.Warnf("Casing collisions: %d (run billserve -audit for details)", len(collisions))
	}
}

// mergeNew appends scanned names the corpus doesn't already hold,
// leaving the existing file order untouched.
func mergeNew(existing, scanned []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		seen[name] = struct{}{}
	}
	merged := make([]string, len(existing), len(existing)+len(scanned))
	copy(merged, existing)
	for _, name := range scanned {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		merged = append(merged, name)
	}
	return merged
}
