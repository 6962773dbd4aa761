package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/wordsieve/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"
)

// ErrMissingWordList is returned when the full dictionary file cannot be found.
var ErrMissingWordList = errors.New("word list not found")

// Files names the three list files inside a data directory
type Files struct {
	Words  string
	Common string
	Past   string
}

// DefaultFiles are the file names written by the word-list updater.
var DefaultFiles = Files{
	Words:  "words.txt",
	Common: "common-words.txt",
	Past:   "past-answers.txt",
}

type loadOptions struct {
	progress io.Writer
}

// LoadOption tweaks LoadDir
type LoadOption func(*loadOptions)

// WithProgress renders a byte progress bar per file on w.
func WithProgress(w io.Writer) LoadOption {
	return func(o *loadOptions) { o.progress = w }
}

// LoadDir reads the three lists from dir and builds a Corpus.
// The full dictionary is required; missing common or past lists degrade to empty.
func LoadDir(dir string, files Files, opts ...LoadOption) (*Corpus, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}
	start := time.Now()

	all, err := readListFile(filepath.Join(dir, files.Words), o.progress)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", filepath.Join(dir, files.Words), ErrMissingWordList)
		}
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	common, err := readOptional(filepath.Join(dir, files.Common), o.progress)
	if err != nil {
		return nil, err
	}
	past, err := readOptional(filepath.Join(dir, files.Past), o.progress)
	if err != nil {
		return nil, err
	}

	c, err := New(all, common, past)
	if err != nil {
		return nil, err
	}
	log.Debugf("Loaded corpus from %s in %v", dir, time.Since(start))
	return c, nil
}

func readOptional(path string, progress io.Writer) ([]string, error) {
	words, err := readListFile(path, progress)
	if errors.Is(err, os.ErrNotExist) {
		log.Warnf("Optional word list %s not found, using an empty list", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return words, nil
}

func readListFile(path string, progress io.Writer) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	if progress != nil {
		if info, statErr := file.Stat(); statErr == nil {
			bar := progressbar.NewOptions64(info.Size(),
				progressbar.OptionSetWriter(progress),
				progressbar.OptionSetDescription(filepath.Base(path)),
				progressbar.OptionShowBytes(true),
				progressbar.OptionClearOnFinish(),
			)
			defer bar.Finish()
			r = io.TeeReader(file, bar)
		}
	}
	return ReadList(r)
}

// ReadList reads one word per line, normalizing case and whitespace.
// Invalid lines are skipped and duplicates keep their first position.
func ReadList(r io.Reader) ([]string, error) {
	var words []string
	filter := utils.NewSeenFilter(1024)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		w, ok := utils.NormalizeWord(scanner.Text())
		if !ok {
			if w != "" {
				log.Debugf("Skipping line %d: %q is not a five-letter word", line, w)
			}
			continue
		}
		if filter.ShouldInclude(w) {
			words = append(words, w)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
