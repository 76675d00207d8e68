package server

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/Sap-has/bill/internal/utils"
	"github.com/Sap-has/bill/pkg/corpus"
	"github.com/Sap-has/bill/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for bill name suggestions. The index itself is
// lock-free, so the server owns the mutex: queries take the read side,
// corpus mutations and index swaps take the write side.
type Server struct {
	mu        sync.RWMutex
	suggester suggest.ISuggester
	store     *corpus.Store

	defaultLimit int
	cacheSize    int

	reader io.Reader
	writer io.Writer
}

// NewServer creates a suggestion server using stdin/stdout for IPC.
// defaultLimit applies when a request omits its limit; cacheSize sizes the
// query cache used for rebuilt indexes, 0 disables it.
func NewServer(suggester suggest.ISuggester, store *corpus.Store, defaultLimit, cacheSize int) *Server {
	if defaultLimit < 1 {
		defaultLimit = suggest.DefaultLimit
	}
	return &Server{
		suggester:    suggester,
		store:        store,
		defaultLimit: defaultLimit,
		cacheSize:    cacheSize,
		reader:       os.Stdin,
		writer:       os.Stdout,
	}
}

// Start begins listening for IPC requests
func (s *Server) Start() error {
	log.Debug("Starting server.")

	// Signal that the server is ready
	s.send(map[string]string{"status": "ready"})

	decoder := msgpack.NewDecoder(s.reader)
	for {
		var raw msgpack.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("Reading from stdin: %v", err)
			return err
		}
		s.handleRequest(raw)
	}
}

// handleRequest dispatches one decoded message. A "p" key marks a
// suggestion request, an "a" key a corpus request.
func (s *Server) handleRequest(raw msgpack.RawMessage) {
	var fields map[string]any
	if err := msgpack.Unmarshal(raw, &fields); err != nil {
		s.sendError("", "Invalid msgpack request", CodeInvalidRequest)
		log.Errorf("Unmarshaling request: %v", err)
		return
	}

	if _, ok := fields["a"]; ok {
		var request CorpusRequest
		if err := msgpack.Unmarshal(raw, &request); err != nil {
			s.sendError(requestID(fields), "Invalid corpus request", CodeInvalidRequest)
			log.Errorf("Unmarshaling corpus request: %v", err)
			return
		}
		s.handleCorpus(request)
		return
	}
	if _, ok := fields["p"]; ok {
		var request SuggestRequest
		if err := msgpack.Unmarshal(raw, &request); err != nil {
			s.sendError(requestID(fields), "Invalid suggest request", CodeInvalidRequest)
			log.Errorf("Unmarshaling suggest request: %v", err)
			return
		}
		s.handleSuggest(request)
		return
	}
	s.sendError(requestID(fields), "Unknown request type", CodeInvalidRequest)
}

// handleSuggest serves one keystroke: a read-locked retrieval against the
// live index, timed in microseconds.
func (s *Server) handleSuggest(request SuggestRequest) {
	limit := request.Limit
	if limit < 1 {
		limit = s.defaultLimit
	}

	start := time.Now()
	s.mu.RLock()
	names := s.suggester.Suggestions(request.Prefix, limit)
	s.mu.RUnlock()
	elapsed := time.Since(start)

	suggestions := rankedSuggestions(names)
	s.send(SuggestResponse{
		ID:          request.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// handleCorpus routes corpus management actions
func (s *Server) handleCorpus(request CorpusRequest) {
	switch request.Action {
	case "add_name":
		s.handleAddName(request)
	case "get_info":
		s.handleGetInfo(request)
	case "reload":
		s.handleReload(request)
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown action: %s", request.Action), CodeUnknownAction)
	}
}

// handleAddName persists a new name and inserts it into the live index in
// one write-locked step, so a query never sees one without the other.
func (s *Server) handleAddName(request CorpusRequest) {
	name := utils.CleanName(request.Name)
	if name == "" {
		s.sendError(request.ID, "Missing 'n' parameter", CodeInvalidRequest)
		log.Debug("Name is empty in add_name request")
		return
	}

	s.mu.Lock()
	err := s.store.Add(name)
	if err == nil {
		s.suggester.Insert(name)
	}
	s.mu.Unlock()

	if err != nil {
		s.sendError(request.ID, fmt.Sprintf("Persisting corpus: %v", err), CodeCorpusIO)
		log.Errorf("Persisting corpus: %v", err)
		return
	}
	s.send(CorpusResponse{ID: request.ID, Status: "ok"})
}

// handleGetInfo reports corpus counters including the casing audit
func (s *Server) handleGetInfo(request CorpusRequest) {
	s.mu.RLock()
	info := CorpusInfo{
		Path:       s.store.Path(),
		Names:      s.store.Len(),
		Distinct:   s.store.Distinct(),
		Collisions: len(corpus.Collisions(s.store.Names())),
	}
	s.mu.RUnlock()

	s.send(CorpusResponse{ID: request.ID, Status: "ok", Info: &info})
}

func (s *Server) handleReload(request CorpusRequest) {
	if err := s.Reload(); err != nil {
		s.sendError(request.ID, fmt.Sprintf("Reloading corpus: %v", err), CodeCorpusIO)
		log.Errorf("Reloading corpus: %v", err)
		return
	}
	s.send(CorpusResponse{ID: request.ID, Status: "ok"})
}

// Reload rereads the corpus file, builds a complete new index from the
// snapshot and swaps it in under the write lock. The corpus watcher calls
// this when the file changes on disk.
func (s *Server) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Reload(); err != nil {
		return err
	}
	s.suggester = suggest.BuildIndex(s.store.Names(), s.cacheSize)
	log.Debugf("Corpus reloaded: %d names", s.store.Len())
	return nil
}

// send marshals the given response into msgpack and writes it to the
// client, one complete message per call.
func (s *Server) send(response interface{}) {
	data, err := msgpack.Marshal(response)
	if err != nil {
		log.Errorf("Marshaling response: %v", err)
		return
	}
	if _, err := s.writer.Write(data); err != nil {
		log.Errorf("Writing response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
	})
}

// rankedSuggestions pairs each name with its 1-based position in the
// merged list. Position is the only ranking the corpus has; there are no
// frequencies to weight.
func rankedSuggestions(names []string) []Suggestion {
	result := make([]Suggestion, len(names))
	for i, name := range names {
		result[i] = Suggestion{Name: name, Rank: uint16(i + 1)}
	}
	return result
}

// requestID pulls the ID out of a partially decoded message so errors can
// still be correlated by the client.
func requestID(fields map[string]any) string {
	if id, ok := fields["id"].(string); ok {
		return id
	}
	return ""
}
