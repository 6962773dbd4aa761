/*
Package config manages the TOML config for wordsieve.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/wordsieve/internal/utils"
	"github.com/bastiangx/wordsieve/pkg/corpus"
	"github.com/charmbracelet/log"
)

const appDir = "wordsieve"

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Corpus CorpusConfig `toml:"corpus"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxLimit     int `toml:"max_limit"`
	DefaultLimit int `toml:"default_limit"`
	ProbeLimit   int `toml:"probe_limit"`
}

// CorpusConfig locates the word lists.
type CorpusConfig struct {
	DataDir    string `toml:"data_dir"`
	WordsFile  string `toml:"words_file"`
	CommonFile string `toml:"common_file"`
	PastFile   string `toml:"past_file"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int  `toml:"default_limit"`
	ProbeLimit   int  `toml:"probe_limit"`
	ExcludePast  bool `toml:"exclude_past"`
	ShowScores   bool `toml:"show_scores"`
}

// Files returns the list file names, with defaults for blank entries.
func (c CorpusConfig) Files() corpus.Files {
	files := corpus.DefaultFiles
	if c.WordsFile != "" {
		files.Words = c.WordsFile
	}
	if c.CommonFile != "" {
		files.Common = c.CommonFile
	}
	if c.PastFile != "" {
		files.Past = c.PastFile
	}
	return files
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.ExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", appDir)
	if utils.WritableDir(primaryPath) {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", appDir)
	if utils.WritableDir(macOSPath) {
		return macOSPath, nil
	}
	execDir, err := utils.ExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/wordsieve/config.toml
// 3. Builtin defaults
//
// The returned path is empty when builtin defaults are in use.
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:     100,
			DefaultLimit: 20,
			ProbeLimit:   10,
		},
		Corpus: CorpusConfig{
			DataDir:    "data/",
			WordsFile:  corpus.DefaultFiles.Words,
			CommonFile: corpus.DefaultFiles.Common,
			PastFile:   corpus.DefaultFiles.Past,
		},
		CLI: CliConfig{
			DefaultLimit: 15,
			ProbeLimit:   8,
			ExcludePast:  false,
			ShowScores:   true,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file. Keys missing from the file keep their
// defaults; a malformed file is salvaged section by section.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.DecodeTOMLFile(configPath, config); err != nil {
		log.Warnf("TOML parsing error in %s: %v. Attempting partial recovery...", configPath, err)
		return tryPartialParse(configPath)
	}
	config.normalize()
	return config, nil
}

// tryPartialParse keeps every well-typed key from a file the strict decode
// rejected. Anything else stays at its default.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tables, err := utils.DecodeTOMLTables(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if t, ok := utils.Lookup[map[string]any](tables, "server"); ok {
		setInt(t, "max_limit", &config.Server.MaxLimit)
		setInt(t, "default_limit", &config.Server.DefaultLimit)
		setInt(t, "probe_limit", &config.Server.ProbeLimit)
	}
	if t, ok := utils.Lookup[map[string]any](tables, "corpus"); ok {
		setString(t, "data_dir", &config.Corpus.DataDir)
		setString(t, "words_file", &config.Corpus.WordsFile)
		setString(t, "common_file", &config.Corpus.CommonFile)
		setString(t, "past_file", &config.Corpus.PastFile)
	}
	if t, ok := utils.Lookup[map[string]any](tables, "cli"); ok {
		setInt(t, "default_limit", &config.CLI.DefaultLimit)
		setInt(t, "probe_limit", &config.CLI.ProbeLimit)
		setBool(t, "exclude_past", &config.CLI.ExcludePast)
		setBool(t, "show_scores", &config.CLI.ShowScores)
	}
	config.normalize()
	return config, nil
}

func setInt(table map[string]any, key string, dst *int) {
	if v, ok := utils.Lookup[int64](table, key); ok {
		*dst = int(v)
	}
}

func setBool(table map[string]any, key string, dst *bool) {
	if v, ok := utils.Lookup[bool](table, key); ok {
		*dst = v
	}
}

// setString ignores blank values.
func setString(table map[string]any, key string, dst *string) {
	if v, ok := utils.Lookup[string](table, key); ok && v != "" {
		*dst = v
	}
}

// normalize repairs limits a hand-edited file may have broken.
func (c *Config) normalize() {
	defaults := DefaultConfig()
	if c.Server.MaxLimit < 1 {
		log.Warnf("Invalid server.max_limit %d, using %d", c.Server.MaxLimit, defaults.Server.MaxLimit)
		c.Server.MaxLimit = defaults.Server.MaxLimit
	}
	if c.Server.DefaultLimit < 1 || c.Server.DefaultLimit > c.Server.MaxLimit {
		c.Server.DefaultLimit = min(defaults.Server.DefaultLimit, c.Server.MaxLimit)
	}
	if c.Server.ProbeLimit < 1 || c.Server.ProbeLimit > c.Server.MaxLimit {
		c.Server.ProbeLimit = min(defaults.Server.ProbeLimit, c.Server.MaxLimit)
	}
	if c.CLI.DefaultLimit < 1 {
		c.CLI.DefaultLimit = defaults.CLI.DefaultLimit
	}
	if c.CLI.ProbeLimit < 1 {
		c.CLI.ProbeLimit = defaults.CLI.ProbeLimit
	}
}

// RebuildConfigFile force creates a new config.toml at the default path
func RebuildConfigFile() (string, error) {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return "", err
	}
	return defaultPath, SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.AbsPath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.WriteTOMLFile(configPath, config)
}

// Update changes the server limits and saves to file. Nil arguments are
// left untouched. An empty configPath updates memory only.
func (c *Config) Update(configPath string, maxLimit, defaultLimit, probeLimit *int) error {
	server := &c.Server
	if maxLimit != nil {
		server.MaxLimit = *maxLimit
	}
	if defaultLimit != nil {
		server.DefaultLimit = *defaultLimit
	}
	if probeLimit != nil {
		server.ProbeLimit = *probeLimit
	}
	c.normalize()
	if configPath == "" {
		return nil
	}
	return SaveConfig(c, configPath)
}
