package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/TimothyStiles/rnapmf/evaluate"
	"github.com/TimothyStiles/rnapmf/io/pdb"
)

var flagDecoys = 100

var cmdDecoys = &command{
	name:            "decoys",
	positionalUsage: "score-dir pdb-file",
	shortHelp:       "compare a structure with sequence decoys",
	help: `
The decoys command scores a structure and a number of decoys that keep its
geometry but draw every residue at random from the structure's own base
composition. It prints the native score, the mean and standard deviation of
the decoy scores, and the Z-score of the native structure. Strongly negative
Z-scores indicate a sequence that fits its fold.

Decoys are seeded from the file name, so repeated runs print the same
numbers.
`,
	flags: flag.NewFlagSet("decoys", flag.ExitOnError),
	run:   runDecoys,
	addFlags: func(c *command) {
		c.flags.IntVar(&flagDecoys, "n", flagDecoys,
			"The number of decoys to generate.")
	},
}

func runDecoys(c *command) {
	c.assertNArg(2)
	cfg := loadConfig()
	table := loadTable(cfg, c.flags.Arg(0))
	path := c.flags.Arg(1)

	atoms, err := pdb.ReadFile(path, cfg.ReferenceAtom)
	if err != nil {
		fatalf("%s", err)
	}
	scorer := evaluate.NewScorer(table)
	scorer.MinGap = cfg.MinGap
	scorer.BinWidth = cfg.BinWidth

	stats, err := scorer.Decoys(filepath.Base(path), atoms, flagDecoys)
	if err != nil {
		fatalf("%s: %s", path, err)
	}
	fmt.Printf("native\t%0.4f\n", stats.Native.Energy)
	fmt.Printf("decoys\t%d\n", len(stats.Energies))
	fmt.Printf("mean\t%0.4f\n", stats.Mean)
	fmt.Printf("stddev\t%0.4f\n", stats.StdDev)
	fmt.Printf("z\t%0.4f\n", stats.Z)
}
