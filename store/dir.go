package store

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/TimothyStiles/rnapmf/potential"
	"github.com/lunny/log"
	"gopkg.in/yaml.v3"
)

const manifestName = "manifest.yaml"

// Manifest records how a directory of score files was produced.
type Manifest struct {
	Bins        int      `yaml:"bins"`
	MaxScore    float64  `yaml:"max_score"`
	Keys        []string `yaml:"keys"`
	Fingerprint string   `yaml:"fingerprint"`
}

// Dir stores one file per pair key in a directory. Each file is named by the
// key followed by Suffix and holds one score per line, formatted with four
// decimal digits, in increasing distance order.
type Dir struct {
	Path   string
	Suffix string
	Layout Layout
	Logger *log.Logger
}

// NewDir returns a directory store with the default suffix and layout.
func NewDir(path string, logger *log.Logger) Dir {
	return Dir{Path: path, Suffix: DefaultSuffix, Layout: DefaultLayout(), Logger: logger}
}

func (d Dir) suffix() string {
	if d.Suffix == "" {
		return DefaultSuffix
	}
	return d.Suffix
}

// File returns the path of the score file of key.
func (d Dir) File(key string) string {
	return filepath.Join(d.Path, key+d.suffix())
}

// Save writes every row of t, replacing existing files, and a manifest.
func (d Dir) Save(t potential.ScoreTable) error {
	if err := os.MkdirAll(d.Path, 0o755); err != nil {
		return err
	}
	bins := 0
	for _, key := range t.Keys() {
		bins = len(t[key])
		if err := os.WriteFile(d.File(key), potential.Encode(t[key]), 0o644); err != nil {
			return fmt.Errorf("saving %s scores: %w", key, err)
		}
	}

	manifest, err := yaml.Marshal(Manifest{
		Bins:        bins,
		MaxScore:    d.Layout.MaxScore,
		Keys:        t.Keys(),
		Fingerprint: t.Fingerprint(),
	})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d.Path, manifestName), manifest, 0o644)
}

// Load reads every score file in the directory. Keys of the layout without a
// file get Layout.Bins copies of Layout.MaxScore and a warning is logged.
// Files that exist but cannot be parsed are an error.
func (d Dir) Load() (potential.ScoreTable, error) {
	logger := discard(d.Logger)
	table := make(potential.ScoreTable)

	matches, err := filepath.Glob(filepath.Join(d.Path, "*"+d.suffix()))
	if err != nil {
		return nil, err
	}
	for _, path := range matches {
		key := strings.TrimSuffix(filepath.Base(path), d.suffix())
		scores, err := readScores(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s scores: %w", key, err)
		}
		if d.Layout.Bins > 0 && len(scores) != d.Layout.Bins {
			return nil, fmt.Errorf("loading %s scores: %w: got %d, want %d",
				key, ErrBinMismatch, len(scores), d.Layout.Bins)
		}
		table[key] = scores
	}

	for _, key := range d.Layout.Keys {
		if _, ok := table[key]; ok {
			continue
		}
		logger.Warnf("score file %s not found, using default score %.1f",
			d.File(key), d.Layout.MaxScore)
		table[key] = potential.DefaultScores(d.Layout.Bins, d.Layout.MaxScore)
	}

	d.checkManifest(table, logger)
	return table, nil
}

func (d Dir) checkManifest(table potential.ScoreTable, logger *log.Logger) {
	data, err := os.ReadFile(filepath.Join(d.Path, manifestName))
	if errors.Is(err, os.ErrNotExist) {
		return
	} else if err != nil {
		logger.Warnf("reading manifest: %s", err)
		return
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		logger.Warnf("reading manifest: %s", err)
		return
	}
	if got := table.Fingerprint(); got != m.Fingerprint {
		logger.Warnf("scores in %s do not match their manifest (fingerprint %s, want %s)",
			d.Path, got, m.Fingerprint)
	}
}

func readScores(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var scores []float64
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		scores = append(scores, v)
	}
	return scores, scanner.Err()
}
