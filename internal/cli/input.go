// Package cli handles cmd line input for DBG and for trying constraints by hand
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/wordsieve/internal/logger"
	"github.com/bastiangx/wordsieve/internal/utils"
	"github.com/bastiangx/wordsieve/pkg/config"
	"github.com/bastiangx/wordsieve/pkg/constraint"
	"github.com/bastiangx/wordsieve/pkg/engine"
	"github.com/bastiangx/wordsieve/pkg/score"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	wordStyle   = lipgloss.NewStyle().Bold(true).Width(7).Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
	warnStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.AdaptiveColor{Light: "#d7827e", Dark: "#ea9a97"})
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"})
)

const helpText = `commands:
  rank  g=_a___ y=r:1,t:3 x=x,y,z [past] [n=10]   filter and rank candidates
  probe g=_a___ y=r:1 x=x,y [n=8]                 words that split the candidates
  best  [n]                                       best never-answered openers
  daily [offset]                                  word of the day
  stats                                           corpus statistics
  help                                            this text
a line without a command is ranked. g: letter or _ per slot, y: letter:position
(1-5), x: single letters, past: drop previous answers.`

// command is one parsed input line.
type command struct {
	name  string
	query constraint.Query
	count int
}

// InputHandler reads constraint lines from stdin and prints ranked words.
type InputHandler struct {
	solver       engine.ISolver
	options      config.CliConfig
	in           io.Reader
	out          io.Writer
	requestCount int
	log          *log.Logger
}

// NewInputHandler creates a handler on stdin/stdout with the cli defaults from options
func NewInputHandler(solver engine.ISolver, options config.CliConfig) *InputHandler {
	return &InputHandler{
		solver:  solver,
		options: options,
		in:      os.Stdin,
		out:     os.Stdout,
		log:     logger.New("cli"),
	}
}

// Start begins the interface loop. It returns nil when stdin is closed.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, headerStyle.Render("wordsieve CLI [DBG]"))
	fmt.Fprintln(h.out, dimStyle.Render("type constraints and press Enter, 'help' for syntax (Ctrl+C to exit)"))

	scanner := bufio.NewScanner(h.in)
	for {
		fmt.Fprint(h.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

func (h *InputHandler) handleInput(line string) {
	h.requestCount++
	cmd := h.parseLine(line)
	h.log.Debug("Processing", "command", cmd.name, "query", fmt.Sprintf("%+v", cmd.query), "count", cmd.count)

	start := time.Now()
	var err error
	switch cmd.name {
	case "rank":
		err = h.rank(cmd)
	case "probe":
		err = h.probe(cmd)
	case "best":
		err = h.best(cmd)
	case "daily":
		err = h.daily(cmd)
	case "stats":
		h.stats()
	case "help":
		fmt.Fprintln(h.out, helpText)
	}
	if err != nil {
		h.log.Errorf("%s failed: %v", cmd.name, err)
		return
	}
	h.log.Debugf("Took [ %v ] for %q", time.Since(start), line)
}

// parseLine splits a line into a command and its arguments. Tokens that
// do not parse are logged and skipped.
func (h *InputHandler) parseLine(line string) command {
	fields := strings.Fields(line)
	cmd := command{name: "rank"}
	switch verb := strings.ToLower(fields[0]); verb {
	case "rank", "probe", "best", "daily", "stats", "help":
		cmd.name = verb
		fields = fields[1:]
	}

	switch cmd.name {
	case "rank":
		cmd.count = h.options.DefaultLimit
	case "probe":
		cmd.count = h.options.ProbeLimit
	case "best":
		cmd.count = h.options.DefaultLimit
	}

	var correct, misplaced, excluded string
	excludePast := h.options.ExcludePast
	for _, tok := range fields {
		key, val, hasVal := strings.Cut(tok, "=")
		switch {
		case hasVal && key == "g":
			correct = val
		case hasVal && key == "y":
			misplaced = val
		case hasVal && key == "x":
			excluded = val
		case hasVal && key == "n":
			if n, err := strconv.Atoi(val); err == nil {
				cmd.count = n
			}
		case tok == "past":
			excludePast = true
		case tok == "all":
			excludePast = false
		case !hasVal && (cmd.name == "best" || cmd.name == "daily"):
			if n, err := strconv.Atoi(tok); err == nil {
				cmd.count = n
				continue
			}
			h.log.Warnf("Ignoring argument %q", tok)
		default:
			h.log.Warnf("Ignoring argument %q", tok)
		}
	}
	cmd.query = constraint.ParseQuery(correct, misplaced, excluded, excludePast)
	return cmd
}

func (h *InputHandler) rank(cmd command) error {
	ranked, err := h.solver.RankCandidates(cmd.query)
	if err != nil {
		return err
	}
	if len(ranked) == 0 {
		fmt.Fprintln(h.out, warnStyle.Render("no word fits these constraints"))
		return nil
	}
	fmt.Fprintln(h.out, headerStyle.Render(fmt.Sprintf("%s candidates", utils.FormatWithCommas(len(ranked)))))
	h.printSuggestions(ranked[:min(len(ranked), max(cmd.count, 0))], true)
	return nil
}

func (h *InputHandler) probe(cmd command) error {
	candidates, err := h.solver.Candidates(cmd.query)
	if err != nil {
		return err
	}
	probes, err := h.solver.StrategicProbes(candidates, cmd.query.Correct, cmd.query.Excluded, cmd.count)
	if err != nil {
		return err
	}
	if len(probes) == 0 {
		fmt.Fprintln(h.out, warnStyle.Render("no useful probe"))
		return nil
	}
	fmt.Fprintln(h.out, headerStyle.Render(fmt.Sprintf("probes for %s candidates", utils.FormatWithCommas(len(candidates)))))
	h.printSuggestions(probes, false)
	return nil
}

func (h *InputHandler) best(cmd command) error {
	words, err := h.solver.BestStartingWords(cmd.count)
	if err != nil {
		return err
	}
	fmt.Fprintln(h.out, headerStyle.Render("best starting words"))
	for i, w := range words {
		fmt.Fprintf(h.out, "%2d. %s\n", i+1, wordStyle.Render(w))
	}
	return nil
}

func (h *InputHandler) daily(cmd command) error {
	word, err := h.solver.DailyPick(cmd.count)
	if err != nil {
		return err
	}
	fmt.Fprintf(h.out, "%s %s\n", headerStyle.Render("today:"), wordStyle.Render(word))
	return nil
}

func (h *InputHandler) stats() {
	stats := h.solver.Stats()
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(h.out, "%-14s %10s\n", k, utils.FormatWithCommas(stats[k]))
	}
	fmt.Fprintf(h.out, "%-14s %10s\n", "requests", utils.FormatWithCommas(h.requestCount))
}

func (h *InputHandler) printSuggestions(list []score.Suggestion, withConfidence bool) {
	for _, s := range list {
		row := fmt.Sprintf("%2d. %s", s.Rank, wordStyle.Render(s.Word))
		if h.options.ShowScores {
			row += dimStyle.Render(fmt.Sprintf(" %10.2f", s.Score))
		}
		if withConfidence {
			row += fmt.Sprintf(" %5.1f%%", s.Confidence)
		}
		fmt.Fprintln(h.out, row)
	}
}
