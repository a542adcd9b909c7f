package main

import (
	"flag"
	"fmt"
	"strings"
)

var cmdShow = &command{
	name:            "show",
	positionalUsage: "score-dir",
	shortHelp:       "print score tables",
	help: `
The show command prints the score tables in score-dir, one base-pair type per
line followed by its scores in increasing distance order.
`,
	flags: flag.NewFlagSet("show", flag.ExitOnError),
	run:   runShow,
}

func runShow(c *command) {
	c.assertNArg(1)
	cfg := loadConfig()
	table := loadTable(cfg, c.flags.Arg(0))

	for _, key := range table.Keys() {
		fields := make([]string, len(table[key]))
		for i, score := range table[key] {
			fields[i] = fmt.Sprintf("%0.4f", score)
		}
		fmt.Printf("%s\t%s\n", key, strings.Join(fields, "\t"))
	}
}
