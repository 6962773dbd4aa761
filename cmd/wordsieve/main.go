// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the wordsieve IPC server and its CLI [DBG] mode.

wordsieve narrows a five-letter word puzzle down to the words that still fit
the feedback so far, ranks them by how likely each is to be the answer, and
suggests probe words that split the survivors when guessing blind would be
wasteful. It can operate as a MessagePack IPC server for frontends, or as an
interactive CLI for trying constraints by hand.

# Usage

Start the server with default settings:

	wordsieve

Use a custom word-list directory and enable debug mode:

	wordsieve -data /path/to/lists -d

Run in CLI mode, hiding previous answers:

	wordsieve -c -past -limit 10

The data directory holds three plain text lists, one word per line:

	words.txt          every accepted guess (required)
	common-words.txt   familiar words, most common first
	past-answers.txt   words that have already been answers

Lines that are not five ASCII letters are skipped. A missing common or past
list only degrades ranking quality.

# Configuration

Runtime configuration lives in a TOML file, created with defaults on first
run under ~/.config/wordsieve/config.toml:

	[server]
	max_limit = 100
	default_limit = 20
	probe_limit = 10

	[corpus]
	data_dir = "data/"
	words_file = "words.txt"
	common_file = "common-words.txt"
	past_file = "past-answers.txt"

	[cli]
	default_limit = 15
	probe_limit = 8
	exclude_past = false
	show_scores = true

Unreadable values fall back to their defaults without discarding the rest
of the file. The -data flag overrides corpus.data_dir.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Logs always go
to stderr.

	{"id": "r1", "action": "rank", "g": "_a___", "y": "r:1", "x": "e,s", "l": 5}
	{"id": "r1", "s": [{"w": "manor", "r": 1, "s": 412.8, "p": 98}], "c": 1, "t": 310}

See package server for every action.

# Command Line Flags

	-data string
	    Directory containing the word lists (default from config)
	-config string
	    Path to a config file
	-rebuild-config
	    Rewrite the default config file and exit
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of suggestions shown in CLI mode
	-past
	    Hide previous answers in CLI mode
	-version
	    Show current version
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordsieve/internal/cli"
	"github.com/bastiangx/wordsieve/internal/logger"
	"github.com/bastiangx/wordsieve/internal/utils"
	"github.com/bastiangx/wordsieve/pkg/config"
	"github.com/bastiangx/wordsieve/pkg/corpus"
	"github.com/bastiangx/wordsieve/pkg/engine"
	"github.com/bastiangx/wordsieve/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "wordsieve"
	gh      = "https://github.com/bastiangx/wordsieve"
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

// main wires config, corpus, engine and the chosen frontend together.
// It does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	dataDir := flag.String("data", "", "Directory containing the word lists (default from config)")
	configPath := flag.String("config", "", "Path to a custom config file")
	rebuildConfig := flag.Bool("rebuild-config", false, "Rewrite the default config file and exit")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", 0, fmt.Sprintf("Number of suggestions in CLI mode (default %d from config)", defaultConfig.CLI.DefaultLimit))
	excludePast := flag.Bool("past", false, "Hide previous answers in CLI mode")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if *rebuildConfig {
		path, err := config.RebuildConfigFile()
		if err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote default config to %s\n", path)
		os.Exit(0)
	}

	appConfig, activeConfigPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(activeConfigPath))

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	requestedDir := appConfig.Corpus.DataDir
	if *dataDir != "" {
		requestedDir = *dataDir
	}
	files := appConfig.Corpus.Files()
	resolvedDataDir := pathResolver.GetDataDir(requestedDir, files.Words)
	log.Debugf("Using data dir at: %s", resolvedDataDir)

	var loadOpts []corpus.LoadOption
	if *cliMode {
		loadOpts = append(loadOpts, corpus.WithProgress(os.Stderr))
	}
	words, err := corpus.LoadDir(resolvedDataDir, files, loadOpts...)
	if err != nil {
		log.Fatalf("Failed to load word lists: %v", err)
	}

	eng := engine.New()
	if err := eng.Load(words); err != nil {
		log.Fatalf("Failed to init engine: %v", err)
	}
	log.Debug("Engine init done")

	// CLI is mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		options := appConfig.CLI
		if *limit > 0 {
			options.DefaultLimit = *limit
		}
		if *excludePast {
			options.ExcludePast = true
		}
		log.Debug("Input info:", "limit", options.DefaultLimit, "probeLimit", options.ProbeLimit, "excludePast", options.ExcludePast)

		inputHandler := cli.NewInputHandler(eng, options)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(eng, appConfig, activeConfigPath)

	showStartupInfo(resolvedDataDir, eng.Stats())

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func printVersion() {
	banner := logger.NewWithConfig(os.Stderr, "", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ wordsieve ] Sifts five-letter words down to the answer")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(dataDir string, stats map[string]int) {
	startup := logger.NewWithConfig(os.Stderr, AppName, log.InfoLevel, false, false, log.TextFormatter)

	startup.Infof("Version: %s", Version)
	startup.Infof("Process ID: [ %d ]", os.Getpid())
	startup.Infof("data dir: ( %s )", dataDir)
	startup.Info("corpus",
		"words", utils.FormatWithCommas(stats["totalWords"]),
		"past", utils.FormatWithCommas(stats["pastAnswers"]),
		"common", utils.FormatWithCommas(stats["commonWords"]))
	startup.Info("status: ready")
}
