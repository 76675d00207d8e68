/*
Package server implements msgpack IPC for bill name completion services.

The server package provides a minimal interface for live name suggestions using msgpack serialization over stdin/stdout.

The protocol uses binary msgpack encoding and supports suggestion requests and corpus management ops.
Messages are processed synchronously with timing info included in responses.

# IPC

The server operates on a request response model where clients send structured messages via stdin and receive responses through stdout.
Each message contains an ID field and other fields based on the operation type.

Suggestion requests use this structure:

	{"id": "req_001", "p": "wal", "l": 7}

The server responds with names ranked by their position in the merged list:

	{"id": "req_001", "s": [{"n": "Walmart", "r": 1}, {"n": "Walgreens", "r": 2}], "c": 2, "t": 145}

An empty "p" is valid and browses the head of the corpus; the "t" field is the retrieval time in microseconds.

Corpus management enables runtime growth and inspection of the name corpus:

	{"id": "corp_001", "a": "add_name", "n": "Home Depot"}
	{"id": "corp_002", "a": "get_info"}
	{"id": "corp_003", "a": "reload"}

Response structures include status information and error details when an op fails.

# Message Types

SuggestRequest and SuggestResponse handle the main prefix suggestion.
Request includes a prefix string and optional limit for result count.
Responses contain suggestion arrays with name strings and rank information, plus timing data.

CorpusRequest and CorpusResponse manage the runtime corpus.
Supported actions: "add_name" persists a name and inserts it live, "get_info" reports corpus counts, "reload" rebuilds the index from the file on disk.

Dispatch peeks at the decoded message: a "p" key makes it a suggestion request, an "a" key a corpus request.

msgpack encoding has ~30 to 50% smaller message sizes compared to JSON.
binary format enables faster parsing and generation, less errors and reducing latency in the per-keystroke path.
*/
package server

// Error codes carried by ErrorResponse.
const (
	CodeInvalidRequest = 400
	CodeUnknownAction  = 404
	CodeCorpusIO       = 500
)

// SuggestRequest - minimal suggestion request
type SuggestRequest struct {
	ID     string `msgpack:"id"`
	Prefix string `msgpack:"p"`
	Limit  int    `msgpack:"l,omitempty"`
}

// Suggestion - one name in a suggestion response
type Suggestion struct {
	Name string `msgpack:"n"`
	Rank uint16 `msgpack:"r"`
}

// SuggestResponse - suggestion response
type SuggestResponse struct {
	ID          string       `msgpack:"id"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	TimeTaken   int64        `msgpack:"t"`
}

// CorpusRequest - corpus management request
type CorpusRequest struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"a"`           // "add_name", "get_info", "reload"
	Name   string `msgpack:"n,omitempty"` // for "add_name"
}

// CorpusInfo - corpus counters for "get_info"
type CorpusInfo struct {
	Path       string `msgpack:"p"`
	Names      int    `msgpack:"n"`
	Distinct   int    `msgpack:"d"`
	Collisions int    `msgpack:"x"`
}

// CorpusResponse - corpus operation response
type CorpusResponse struct {
	ID     string      `msgpack:"id"`
	Status string      `msgpack:"st"`
	Info   *CorpusInfo `msgpack:"i,omitempty"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
