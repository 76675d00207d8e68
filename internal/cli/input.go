// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Sap-has/bill/internal/utils"
	"github.com/Sap-has/bill/pkg/config"
	"github.com/Sap-has/bill/pkg/corpus"
	"github.com/Sap-has/bill/pkg/suggest"
	"github.com/charmbracelet/log"
)

// InputHandler processes user input from stdin, providing suggestions.
// Lines starting with ':' are commands; anything else is a live prefix
// query against the index.
type InputHandler struct {
	suggester    suggest.ISuggester
	store        *corpus.Store
	cfg          *config.Config
	configPath   string
	suggestLimit int
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler.
// configPath may be empty, in which case :limit changes are not persisted.
func NewInputHandler(suggester suggest.ISuggester, store *corpus.Store, cfg *config.Config, configPath string) *InputHandler {
	limit := cfg.Server.Limit
	if limit < 1 {
		limit = suggest.DefaultLimit
	}
	return &InputHandler{
		suggester:    suggester,
		store:        store,
		cfg:          cfg,
		configPath:   configPath,
		suggestLimit: limit,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed input to the handlers for processing.
// Loop terminates on :q or when stdin closes.
func (h *InputHandler) Start() error {
	log.Print("bill CLI [BETA]")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a prefix and press Enter to see suggestions (:q to exit, :add NAME, :info, :limit N):")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if h.handleCommand(line) {
				return nil
			}
			continue
		}
		h.handleInput(line)
	}
}

// handleCommand runs one ':' command, reporting whether the loop should end.
func (h *InputHandler) handleCommand(line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	switch cmd {
	case ":q", ":quit":
		return true
	case ":add":
		h.handleAdd(strings.TrimSpace(arg))
	case ":info":
		h.handleInfo()
	case ":limit":
		h.handleLimit(strings.TrimSpace(arg))
	default:
		log.Errorf("Unknown command: %s", cmd)
	}
	return false
}

// handleAdd persists a name and makes it suggestible immediately.
func (h *InputHandler) handleAdd(name string) {
	name = utils.CleanName(name)
	if name == "" {
		log.Error("Usage: :add NAME")
		return
	}
	if err := h.store.Add(name); err != nil {
		log.Errorf("Persisting corpus: %v", err)
		return
	}
	h.suggester.Insert(name)
	log.Printf("Added '%s' (%s names total)", name, utils.FormatWithCommas(h.store.Len()))
}

// handleInfo prints corpus counters and the casing audit.
func (h *InputHandler) handleInfo() {
	log.Printf("Corpus: %s", h.store.Path())
	log.Printf("Names: %s (%s distinct)",
		utils.FormatWithCommas(h.store.Len()), utils.FormatWithCommas(h.store.Distinct()))

	collisions := corpus.Collisions(h.store.Names())
	if len(collisions) == 0 {
		log.Print("No casing collisions")
		return
	}
	log.Printf("Casing collisions: %d", len(collisions))
	for _, c := range collisions {
		log.Printf("  %s: %s", c.Normalized, strings.Join(c.Casings, ", "))
	}
}

// handleLimit changes the suggestion limit, persisting it when a config
// file is active.
func (h *InputHandler) handleLimit(arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		log.Error("Usage: :limit N")
		return
	}
	h.suggestLimit = n
	if h.configPath == "" {
		log.Printf("Limit set to %d", n)
		return
	}
	if err := h.cfg.Update(h.configPath, &n, nil, nil); err != nil {
		log.Warnf("Saving limit to config: %v", err)
		return
	}
	log.Printf("Limit set to %d (saved to %s)", n, h.configPath)
}

// handleInput processes a single prefix to generate suggestions.
// Results are formatted and printed to the log.
func (h *InputHandler) handleInput(prefix string) {
	h.requestCount++
	if h.requestCount%50 == 0 {
		if cached, ok := h.suggester.(interface{ Stats() map[string]int }); ok {
			log.Debug("Cache stats", "stats", cached.Stats())
		}
	}

	start := time.Now()
	log.Debug("Processing request for", "prefix", prefix)
	suggestions := h.suggester.Suggestions(prefix, h.suggestLimit)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for prefix '%s'", elapsed, prefix)

	if len(suggestions) == 0 {
		log.Warnf("No suggestions found for prefix: '%s'", prefix)
		return
	}

	log.Printf("Found %d suggestions for prefix '%s':", len(suggestions), prefix)
	for i, name := range suggestions {
		clName := fmt.Sprintf("\033[38;5;75m%s\033[0m", name)
		log.Printf("%2d. %s", i+1, clName)
	}
}
