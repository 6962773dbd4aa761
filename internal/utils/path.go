package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// PathResolver finds word-list directories relative to the running binary
type PathResolver struct {
	executablePath string
	executableDir  string
	homeDir        string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executablePath: execPath,
		executableDir:  filepath.Dir(execPath),
		homeDir:        homeDir,
	}
	log.Debugf("PathResolver initialized: exec=%s, execDir=%s", pr.executablePath, pr.executableDir)
	return pr, nil
}

// GetDataDir resolves the directory holding the word lists.
// Candidates, in order:
// 1. userSpecifiedPath when absolute
// 2. relative to the executable dir
// 3. relative to the working dir
// 4. <exec>/data, <exec>/../data, ~/.config/wordsieve/data
//
// The first candidate containing marker wins. When none match, the
// executable-relative path is returned so the caller can report it.
func (pr *PathResolver) GetDataDir(userSpecifiedPath, marker string) string {
	candidates := pr.dataDirCandidates(userSpecifiedPath)
	for _, path := range candidates {
		if FileExists(filepath.Join(path, marker)) {
			log.Debugf("Found data directory: %s", path)
			return path
		}
		log.Debugf("Data directory candidate not valid: %s", path)
	}
	return filepath.Join(pr.executableDir, userSpecifiedPath)
}

func (pr *PathResolver) dataDirCandidates(userSpecifiedPath string) []string {
	var candidates []string
	if filepath.IsAbs(userSpecifiedPath) {
		candidates = append(candidates, userSpecifiedPath)
	}
	candidates = append(candidates, filepath.Join(pr.executableDir, userSpecifiedPath))
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userSpecifiedPath))
	}
	return append(candidates,
		filepath.Join(pr.executableDir, "data"),
		filepath.Join(filepath.Dir(pr.executableDir), "data"),
		filepath.Join(pr.homeDir, ".config", "wordsieve", "data"),
	)
}
