// Command rnapmf trains and applies a distance-dependent statistical
// potential for RNA structures.
//
// Training reads the C3' atom of every residue from a directory of PDB
// files, histograms the distances between residues of the same chain that
// are at least four positions apart, and turns the histograms into one
// log-odds score table per base-pair type. Evaluation sums those scores over
// the residue pairs of other structures.
package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

var commands = []*command{
	cmdTrain,
	cmdEvaluate,
	cmdDecoys,
	cmdDiff,
	cmdShow,
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: rnapmf {command} [flags] [arguments]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Use 'rnapmf help {command}' for more details on {command}.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "A list of all available commands:")
	fmt.Fprintln(os.Stderr)
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "    %-10s %s\n", c.name, c.shortHelp)
	}
	fmt.Fprintln(os.Stderr)
	os.Exit(1)
}

func main() {
	var cmd string
	var help bool
	if len(os.Args) < 2 {
		usage()
	} else if strings.TrimLeft(os.Args[1], "-") == "help" {
		if len(os.Args) < 3 {
			usage()
		} else {
			cmd = os.Args[2]
			help = true
		}
	} else {
		cmd = os.Args[1]
	}

	for _, c := range commands {
		if c.name == cmd {
			c.setCommonFlags()
			if help {
				c.showHelp()
			} else {
				c.flags.Usage = c.showUsage
				c.flags.Parse(os.Args[2:])

				if flagCpu < 1 {
					flagCpu = 1
				}
				runtime.GOMAXPROCS(flagCpu)
				setOutputLevel()

				c.run(c)
				return
			}
		}
	}
	fmt.Fprintf(os.Stderr, "Unknown command '%s'. Run 'rnapmf help' for a list of "+
		"available commands.\n", cmd)
	os.Exit(1)
}
