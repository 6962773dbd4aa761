/*
Package server implements msgpack IPC for the wordsieve engine.

The server reads MessagePack requests from stdin and writes one MessagePack
response per request to stdout. Logs go to stderr so the stream stays clean.
Requests are handled synchronously, in order, with timing info in the
responses that do real work.

# IPC

A ready frame is written as soon as the server starts:

	{"status": "ready"}

Every request carries an id and an action. Constraint fields use the same
text forms as the CLI:

	{"id": "r1", "action": "rank", "g": "_a___", "y": "r:1,t:3", "x": "x,y,z", "xp": true, "l": 10}

The server answers with ranked suggestions and the total number of words
that passed the filter:

	{"id": "r1", "s": [{"w": "manor", "r": 1, "s": 412.8, "p": 98}], "c": 1, "t": 310}

Other actions:

	{"id": "p1", "action": "probe", "g": "s_are", "l": 5}
	{"id": "b1", "action": "best", "l": 10}
	{"id": "d1", "action": "daily", "o": 1}
	{"id": "s1", "action": "stats"}
	{"id": "h1", "action": "health"}
	{"id": "c1", "action": "config", "max_limit": 50}

An empty action means rank. Failures come back as an error frame with an
HTTP-like code: 400 for bad requests, 503 before the corpus is loaded and
500 for anything else.
*/
package server

// Request is the single request shape for every action.
type Request struct {
	ID          string `msgpack:"id"`
	Action      string `msgpack:"action,omitempty"`
	Correct     string `msgpack:"g,omitempty"`
	Misplaced   string `msgpack:"y,omitempty"`
	Excluded    string `msgpack:"x,omitempty"`
	ExcludePast bool   `msgpack:"xp,omitempty"`
	Limit       int    `msgpack:"l,omitempty"`
	Offset      int    `msgpack:"o,omitempty"`

	// config action only
	MaxLimit     *int `msgpack:"max_limit,omitempty"`
	DefaultLimit *int `msgpack:"default_limit,omitempty"`
	ProbeLimit   *int `msgpack:"probe_limit,omitempty"`
}

// Suggestion is one ranked word. Confidence is omitted for probes.
type Suggestion struct {
	Word       string  `msgpack:"w"`
	Rank       int     `msgpack:"r"`
	Score      float64 `msgpack:"s"`
	Confidence float64 `msgpack:"p,omitempty"`
}

// RankResponse answers rank and probe. Count is the number of candidates
// that passed the filter, which may exceed len(Suggestions).
type RankResponse struct {
	ID          string       `msgpack:"id"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	TimeTaken   int64        `msgpack:"t"`
}

// WordsResponse answers best.
type WordsResponse struct {
	ID        string   `msgpack:"id"`
	Words     []string `msgpack:"w"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// DailyResponse answers daily.
type DailyResponse struct {
	ID     string `msgpack:"id"`
	Word   string `msgpack:"w"`
	Offset int    `msgpack:"o"`
}

// StatsResponse answers stats.
type StatsResponse struct {
	ID       string         `msgpack:"id"`
	Stats    map[string]int `msgpack:"stats"`
	Requests int            `msgpack:"requests"`
}

// StatusResponse is the ready frame and the health answer.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ConfigResponse reports the server limits after a config request.
type ConfigResponse struct {
	ID           string `msgpack:"id"`
	Status       string `msgpack:"status"`
	Error        string `msgpack:"error,omitempty"`
	MaxLimit     int    `msgpack:"max_limit"`
	DefaultLimit int    `msgpack:"default_limit"`
	ProbeLimit   int    `msgpack:"probe_limit"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
