package main

import (
	"flag"

	"github.com/TimothyStiles/rnapmf/pipeline"
)

var flagTrainMode = ""

var cmdTrain = &command{
	name:            "train",
	positionalUsage: "pdb-dir score-out",
	shortHelp:       "derive score tables from a directory of structures",
	help: `
The train command reads every structure file in pdb-dir and writes one score
table per base-pair type to score-out, replacing any tables already there.

With the default "corpus" mode, distances from every structure are counted
together and a single set of tables is derived. With "per-file" mode, tables
are derived and saved after each structure from that structure alone, so
score-out ends up holding the tables of the last structure in lexical order.

score-out is a directory, or a database file when the configured store
backend is "sqlite".
`,
	flags: flag.NewFlagSet("train", flag.ExitOnError),
	run:   runTrain,
	addFlags: func(c *command) {
		c.flags.StringVar(&flagTrainMode, "mode", flagTrainMode,
			"Either \"corpus\" or \"per-file\". Overrides the configured "+
				"training mode when set.")
	},
}

func runTrain(c *command) {
	c.assertNArg(2)
	cfg := loadConfig()
	pdbDir, out := c.flags.Arg(0), c.flags.Arg(1)

	modeName := cfg.Training.Mode
	if len(flagTrainMode) > 0 {
		modeName = flagTrainMode
	}
	mode, err := pipeline.ParseMode(modeName)
	if err != nil {
		fatalf("%s", err)
	}

	s, closeStore := openStore(cfg, out)
	defer closeStore()

	trainer := pipeline.Trainer{
		Params:        cfg.Params(),
		ReferenceAtom: cfg.ReferenceAtom,
		Mode:          mode,
		Workers:       cfg.Workers,
		Store:         s,
		Logger:        logger,
	}
	table, reports, err := trainer.Train(structures(cfg, pdbDir))
	if err != nil {
		fatalf("training on %s: %s", pdbDir, err)
	}

	skipped := 0
	for _, r := range reports {
		if r.Err != nil {
			skipped++
		}
	}
	logger.Infof("Saved %d score tables to %s (%d of %d files skipped, fingerprint %s)",
		len(table), out, skipped, len(reports), table.Fingerprint())
}
