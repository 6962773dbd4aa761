package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/wordsieve/internal/logger"
	"github.com/bastiangx/wordsieve/pkg/config"
	"github.com/bastiangx/wordsieve/pkg/constraint"
	"github.com/bastiangx/wordsieve/pkg/engine"
	"github.com/bastiangx/wordsieve/pkg/score"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles msgpack IPC for the engine
type Server struct {
	solver       engine.ISolver
	config       *config.Config
	configPath   string
	decoder      *msgpack.Decoder
	encoder      *msgpack.Encoder
	requestCount int
	log          *log.Logger
}

// NewServer creates a server on stdin/stdout. configPath is where config
// updates are persisted; empty keeps them in memory.
func NewServer(solver engine.ISolver, cfg *config.Config, configPath string) *Server {
	return newServer(solver, cfg, configPath, bufio.NewReader(os.Stdin), os.Stdout)
}

func newServer(solver engine.ISolver, cfg *config.Config, configPath string, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		solver:     solver,
		config:     cfg,
		configPath: configPath,
		decoder:    msgpack.NewDecoder(r),
		encoder:    msgpack.NewEncoder(w),
		log:        logger.New("ipc"),
	}
}

// Start writes the ready frame then serves requests until the input ends.
// A frame that cannot be decoded ends the session with an error.
func (s *Server) Start() error {
	s.log.Debug("Starting msgpack server")
	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			s.log.Errorf("Decoding request: %v", err)
			s.sendError("", "malformed request", 400)
			return fmt.Errorf("decode request: %w", err)
		}
		s.requestCount++
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req Request) {
	switch req.Action {
	case "", "rank":
		s.handleRank(req)
	case "probe":
		s.handleProbe(req)
	case "best":
		s.handleBest(req)
	case "daily":
		s.handleDaily(req)
	case "stats":
		s.send(StatsResponse{ID: req.ID, Stats: s.solver.Stats(), Requests: s.requestCount})
	case "health":
		status := "ok"
		if !s.solver.Ready() {
			status = "loading"
		}
		s.send(StatusResponse{ID: req.ID, Status: status})
	case "config":
		s.handleConfig(req)
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

func (s *Server) query(req Request) constraint.Query {
	return constraint.ParseQuery(req.Correct, req.Misplaced, req.Excluded, req.ExcludePast)
}

// limit applies the default for a missing limit and the configured ceiling.
func (s *Server) limit(requested, fallback int) int {
	if requested < 1 {
		requested = fallback
	}
	return min(requested, s.config.Server.MaxLimit)
}

func (s *Server) handleRank(req Request) {
	start := time.Now()
	ranked, err := s.solver.RankCandidates(s.query(req))
	if err != nil {
		s.sendEngineError(req.ID, err)
		return
	}
	total := len(ranked)
	ranked = ranked[:min(total, s.limit(req.Limit, s.config.Server.DefaultLimit))]

	s.send(RankResponse{
		ID:          req.ID,
		Suggestions: toWire(ranked),
		Count:       total,
		TimeTaken:   time.Since(start).Microseconds(),
	})
}

// handleProbe filters with the request constraints, then picks probes that
// split the survivors.
func (s *Server) handleProbe(req Request) {
	start := time.Now()
	q := s.query(req)
	candidates, err := s.solver.Candidates(q)
	if err != nil {
		s.sendEngineError(req.ID, err)
		return
	}
	probes, err := s.solver.StrategicProbes(candidates, q.Correct, q.Excluded, s.limit(req.Limit, s.config.Server.ProbeLimit))
	if err != nil {
		s.sendEngineError(req.ID, err)
		return
	}

	s.send(RankResponse{
		ID:          req.ID,
		Suggestions: toWire(probes),
		Count:       len(candidates),
		TimeTaken:   time.Since(start).Microseconds(),
	})
}

func (s *Server) handleBest(req Request) {
	start := time.Now()
	words, err := s.solver.BestStartingWords(s.limit(req.Limit, s.config.Server.DefaultLimit))
	if err != nil {
		s.sendEngineError(req.ID, err)
		return
	}
	s.send(WordsResponse{
		ID:        req.ID,
		Words:     words,
		Count:     len(words),
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server) handleDaily(req Request) {
	if req.Offset < 0 {
		s.sendError(req.ID, "offset must be >= 0", 400)
		return
	}
	word, err := s.solver.DailyPick(req.Offset)
	if err != nil {
		s.sendEngineError(req.ID, err)
		return
	}
	s.send(DailyResponse{ID: req.ID, Word: word, Offset: req.Offset})
}

func (s *Server) handleConfig(req Request) {
	resp := ConfigResponse{ID: req.ID, Status: "ok"}
	if err := s.config.Update(s.configPath, req.MaxLimit, req.DefaultLimit, req.ProbeLimit); err != nil {
		s.log.Errorf("Saving config to %s: %v", s.configPath, err)
		resp.Status = "error"
		resp.Error = err.Error()
	}
	resp.MaxLimit = s.config.Server.MaxLimit
	resp.DefaultLimit = s.config.Server.DefaultLimit
	resp.ProbeLimit = s.config.Server.ProbeLimit
	s.send(resp)
}

func toWire(list []score.Suggestion) []Suggestion {
	out := make([]Suggestion, len(list))
	for i, sug := range list {
		out[i] = Suggestion{
			Word:       sug.Word,
			Rank:       sug.Rank,
			Score:      sug.Score,
			Confidence: sug.Confidence,
		}
	}
	return out
}

func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
		return fmt.Errorf("encode response: %w", err)
	}
	return nil
}

func (s *Server) sendEngineError(id string, err error) {
	code := 500
	if errors.Is(err, engine.ErrNotReady) {
		code = 503
	}
	s.log.Warnf("Request %s failed: %v", id, err)
	s.sendError(id, err.Error(), code)
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
