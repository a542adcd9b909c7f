package main

import (
	"flag"
	"fmt"

	"github.com/TimothyStiles/rnapmf/evaluate"
	"github.com/TimothyStiles/rnapmf/pipeline"
)

var cmdEvaluate = &command{
	name:            "evaluate",
	positionalUsage: "score-dir pdb-dir",
	shortHelp:       "score every structure in a directory",
	help: `
The evaluate command loads the score tables in score-dir and prints the
estimated pseudo-energy of every structure file in pdb-dir, one line per
structure: the file name, the number of residue pairs considered and the
total score. Lower scores are more native-like.

Missing score tables are replaced by the maximum score in every bin, with a
warning.
`,
	flags: flag.NewFlagSet("evaluate", flag.ExitOnError),
	run:   runEvaluate,
}

func runEvaluate(c *command) {
	c.assertNArg(2)
	cfg := loadConfig()
	table := loadTable(cfg, c.flags.Arg(0))

	scorer := evaluate.NewScorer(table)
	scorer.MinGap = cfg.MinGap
	scorer.BinWidth = cfg.BinWidth
	reports := pipeline.Evaluator{
		Scorer:        scorer,
		ReferenceAtom: cfg.ReferenceAtom,
		Workers:       cfg.Workers,
		Logger:        logger,
	}.Evaluate(structures(cfg, c.flags.Arg(1)))

	for _, r := range reports {
		if r.Err != nil {
			continue
		}
		fmt.Printf("%s\t%d\t%0.4f\n", r.Path, r.Result.Interactions, r.Result.Energy)
	}
}
