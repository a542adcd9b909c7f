package pipeline

import (
	"github.com/TimothyStiles/rnapmf/evaluate"
	"github.com/lunny/log"
)

// Evaluator scores structure files with a loaded score table.
type Evaluator struct {
	Scorer        evaluate.Scorer
	ReferenceAtom string
	// Workers is the number of files read concurrently. Zero means one per
	// CPU.
	Workers int
	Logger  *log.Logger
}

// Evaluate scores every file in paths and returns one report per path, in
// the order of paths. Totals are logged as each file completes.
func (e Evaluator) Evaluate(paths []string) []Report {
	logger := discard(e.Logger)
	reports := make([]Report, len(paths))
	score := func(_ int, s *structure) {
		if s.Err == nil {
			s.Result, s.Err = e.Scorer.Score(s.atoms)
		}
		s.atoms = nil
	}
	readAll(paths, e.ReferenceAtom, poolSize(e.Workers, len(paths)), score, func(s structure) {
		reports[s.index] = s.Report
		if s.Err != nil {
			logger.Errorf("evaluating %s: %s", s.Path, s.Err)
			return
		}
		logger.Infof("Evaluated %s: %d interactions (%d scored), estimated pseudo-energy %.4f",
			s.Path, s.Result.Interactions, s.Result.Matched, s.Result.Energy)
	})
	return reports
}
