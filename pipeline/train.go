package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/TimothyStiles/rnapmf/potential"
	"github.com/TimothyStiles/rnapmf/store"
	"github.com/lunny/log"
)

// ErrNoStructures is returned when no file in a training batch contributed
// any reference atoms.
var ErrNoStructures = errors.New("no usable structures to train on")

// Mode selects how counts are accumulated across a training batch.
type Mode int

const (
	// CorpusWide counts every file into one table and derives scores once.
	CorpusWide Mode = iota
	// PerFile derives and saves scores after each file, from that file's
	// counts only, in lexical order of the paths. The store is left holding
	// the table of the last usable file.
	PerFile
)

func (m Mode) String() string {
	switch m {
	case CorpusWide:
		return "corpus"
	case PerFile:
		return "per-file"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses the name of a mode as returned by its String method.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "corpus":
		return CorpusWide, nil
	case "per-file":
		return PerFile, nil
	}
	return 0, fmt.Errorf("unknown training mode %q", name)
}

// Trainer derives score tables from structure files.
type Trainer struct {
	Params        potential.Params
	ReferenceAtom string
	Mode          Mode
	// Workers is the number of files read concurrently. Zero means one per
	// CPU. PerFile training always reads one file at a time.
	Workers int
	// Store receives the derived tables. It may be nil.
	Store  store.Store
	Logger *log.Logger
}

// Train derives a score table from the structures in paths, saves it to
// t.Store and returns it along with one report per path, in the order of
// paths. Files that cannot be read or have no reference atoms are skipped.
func (t Trainer) Train(paths []string) (potential.ScoreTable, []Report, error) {
	if t.Mode == PerFile {
		return t.trainPerFile(paths)
	}
	logger := discard(t.Logger)
	workers := poolSize(t.Workers, len(paths))
	tables := make([]*potential.CountTable, workers)
	for i := range tables {
		tables[i] = potential.NewCountTable(t.Params.Histogram, t.Params.Keys)
	}

	reports := make([]Report, len(paths))
	used := 0
	count := func(worker int, s *structure) {
		if s.Err == nil {
			s.Pairs = tables[worker].AddStructure(s.atoms, t.Params.MinGap)
		}
		s.atoms = nil
	}
	readAll(paths, t.ReferenceAtom, workers, count, func(s structure) {
		reports[s.index] = s.Report
		if !t.report(logger, s.Report) {
			return
		}
		used++
	})
	if used == 0 {
		return nil, reports, ErrNoStructures
	}

	counts := potential.NewCountTable(t.Params.Histogram, t.Params.Keys)
	for _, table := range tables {
		if err := counts.Merge(table); err != nil {
			return nil, reports, err
		}
	}
	scores := potential.Train(counts, t.Params)
	if err := t.save(scores); err != nil {
		return nil, reports, err
	}
	logger.Infof("Scores derived from %d structures (%d pairs)", used, counts.Total(""))
	return scores, reports, nil
}

func (t Trainer) trainPerFile(paths []string) (potential.ScoreTable, []Report, error) {
	logger := discard(t.Logger)
	reports := make([]Report, len(paths))
	var (
		last    potential.ScoreTable
		saveErr error
	)
	derive := func(_ int, s *structure) {
		if s.Err != nil {
			return
		}
		counts := potential.NewCountTable(t.Params.Histogram, t.Params.Keys)
		s.Pairs = counts.AddStructure(s.atoms, t.Params.MinGap)
		scores := potential.Train(counts, t.Params)
		if err := t.save(scores); err != nil {
			s.Err = err
			saveErr = err
			return
		}
		last = scores
	}
	// A single worker processes files in order, so the last save wins.
	readAll(paths, t.ReferenceAtom, poolSize(1, len(paths)), derive, func(s structure) {
		reports[s.index] = s.Report
		if t.report(logger, s.Report) {
			logger.Infof("Scores calculated and saved for %s", filepath.Base(s.Path))
		}
	})
	if saveErr != nil {
		return nil, reports, saveErr
	}
	if last == nil {
		return nil, reports, ErrNoStructures
	}
	return last, reports, nil
}

// report logs the outcome of reading one file and reports whether it
// contributed to training.
func (t Trainer) report(logger *log.Logger, r Report) bool {
	if r.Err != nil {
		logger.Warnf("skipping %s: %s", r.Path, r.Err)
		return false
	}
	logger.Debugf("%s: %d reference atoms, %d pairs", r.Path, r.Atoms, r.Pairs)
	return true
}

func (t Trainer) save(scores potential.ScoreTable) error {
	if t.Store == nil {
		return nil
	}
	if err := t.Store.Save(scores); err != nil {
		return fmt.Errorf("saving scores: %w", err)
	}
	return nil
}
