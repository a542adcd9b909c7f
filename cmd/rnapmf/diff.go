package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/TimothyStiles/rnapmf/store"
)

var cmdDiff = &command{
	name:            "diff",
	positionalUsage: "score-dir-a score-dir-b",
	shortHelp:       "show differences between two sets of score tables",
	help: `
The diff command prints a unified diff of two sets of score tables, one
section per base-pair type, at the persisted precision of four decimal
digits. It exits with status 1 when the tables differ.
`,
	flags: flag.NewFlagSet("diff", flag.ExitOnError),
	run:   runDiff,
}

func runDiff(c *command) {
	c.assertNArg(2)
	cfg := loadConfig()
	a := loadTable(cfg, c.flags.Arg(0))
	b := loadTable(cfg, c.flags.Arg(1))

	text, err := store.Diff(a, b, c.flags.Arg(0), c.flags.Arg(1))
	if err != nil {
		fatalf("%s", err)
	}
	if len(text) > 0 {
		fmt.Print(text)
		os.Exit(1)
	}
}
