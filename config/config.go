/*
Package config loads the YAML configuration shared by training and
evaluation.

A configuration file only needs the keys it changes; everything else keeps
the values of Default, which reproduce the reference corpus:

	reference_atom: "C3'"
	min_gap: 4
	bins: 20
	bin_width: 1.0
	max_score: 10.0
	floor_frequency: 1.0e-10
	training:
	  mode: corpus
	store:
	  backend: dir
	  suffix: _scores.txt
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/TimothyStiles/rnapmf/checks"
	"github.com/TimothyStiles/rnapmf/io/pdb"
	"github.com/TimothyStiles/rnapmf/potential"
	"github.com/TimothyStiles/rnapmf/store"
	"gopkg.in/yaml.v3"
)

// Training modes.
const (
	ModeCorpus  = "corpus"
	ModePerFile = "per-file"
)

// Store backends.
const (
	BackendDir    = "dir"
	BackendSQLite = "sqlite"
)

type Config struct {
	ReferenceAtom  string   `yaml:"reference_atom"`
	Extensions     []string `yaml:"extensions"`
	MinGap         int      `yaml:"min_gap"`
	Bins           int      `yaml:"bins"`
	BinWidth       float64  `yaml:"bin_width"`
	MaxScore       float64  `yaml:"max_score"`
	FloorFrequency float64  `yaml:"floor_frequency"`
	PairKeys       []string `yaml:"pair_keys"`
	Workers        int      `yaml:"workers"`
	Training       struct {
		Mode string `yaml:"mode"`
	} `yaml:"training"`
	Store struct {
		Backend string `yaml:"backend"`
		// Path is the score directory or database file. Relative paths are
		// resolved against the configuration file's directory.
		Path   string `yaml:"path"`
		Suffix string `yaml:"suffix"`
	} `yaml:"store"`
}

// Default returns the configuration of the reference corpus.
func Default() Config {
	p := potential.DefaultParams()
	c := Config{
		ReferenceAtom:  pdb.C3Prime,
		Extensions:     []string{".pdb", ".pdb.gz", ".ent", ".ent.gz"},
		MinGap:         p.MinGap,
		Bins:           p.Histogram.Bins,
		BinWidth:       p.Histogram.Width,
		MaxScore:       p.MaxScore,
		FloorFrequency: p.Floor,
		PairKeys:       p.Keys,
		Workers:        runtime.NumCPU(),
	}
	c.Training.Mode = ModeCorpus
	c.Store.Backend = BackendDir
	c.Store.Suffix = store.DefaultSuffix
	return c
}

// Load reads the YAML file at path over the defaults and validates the
// result.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Store.Path != "" && !filepath.IsAbs(cfg.Store.Path) {
		cfg.Store.Path = filepath.Join(filepath.Dir(path), cfg.Store.Path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.ReferenceAtom == "":
		return errors.New("reference_atom must not be empty")
	case c.MinGap < 1:
		return fmt.Errorf("min_gap must be at least 1, got %d", c.MinGap)
	case c.Bins < 1:
		return fmt.Errorf("bins must be positive, got %d", c.Bins)
	case c.BinWidth <= 0:
		return fmt.Errorf("bin_width must be positive, got %g", c.BinWidth)
	case c.FloorFrequency <= 0:
		return fmt.Errorf("floor_frequency must be positive, got %g", c.FloorFrequency)
	case len(c.PairKeys) == 0:
		return errors.New("pair_keys must not be empty")
	}
	for _, key := range c.PairKeys {
		if !checks.IsCanonicalPairKey(key) {
			return fmt.Errorf("pair key %q is not two sorted RNA bases", key)
		}
	}
	switch c.Training.Mode {
	case ModeCorpus, ModePerFile:
	default:
		return fmt.Errorf("unknown training mode %q", c.Training.Mode)
	}
	switch c.Store.Backend {
	case BackendDir, BackendSQLite:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return nil
}

// Params returns the numeric parameters of c.
func (c Config) Params() potential.Params {
	keys := make([]string, len(c.PairKeys))
	copy(keys, c.PairKeys)
	return potential.Params{
		MinGap:    c.MinGap,
		Histogram: potential.Histogram{Bins: c.Bins, Width: c.BinWidth},
		MaxScore:  c.MaxScore,
		Floor:     c.FloorFrequency,
		Keys:      keys,
	}
}

// Layout returns the layout of score tables trained with c.
func (c Config) Layout() store.Layout {
	return store.Layout{Keys: c.PairKeys, Bins: c.Bins, MaxScore: c.MaxScore}
}
