package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/TimothyStiles/rnapmf/config"
	"github.com/TimothyStiles/rnapmf/pipeline"
	"github.com/TimothyStiles/rnapmf/potential"
	"github.com/TimothyStiles/rnapmf/store"
	"github.com/lunny/log"
	"github.com/mitchellh/go-wordwrap"
)

var (
	flagCpu    = runtime.NumCPU()
	flagQuiet  = false
	flagConfig = ""

	logger = pipeline.NewLogger(os.Stderr)
)

type command struct {
	name            string
	positionalUsage string
	shortHelp       string
	help            string
	flags           *flag.FlagSet
	addFlags        func(*command)
	run             func(*command)
}

func (c *command) showUsage() {
	fmt.Fprintf(os.Stderr, "Usage: rnapmf %s [flags] %s\n", c.name, c.positionalUsage)
	c.showFlags()
	os.Exit(1)
}

func (c *command) showHelp() {
	fmt.Fprintf(os.Stderr, "Usage: rnapmf %s [flags] %s\n\n", c.name, c.positionalUsage)
	fmt.Fprintln(os.Stderr, wordwrap.WrapString(strings.TrimSpace(c.help), 79))
	fmt.Fprintln(os.Stderr)
	c.showFlags()
	os.Exit(1)
}

func (c *command) showFlags() {
	c.flags.VisitAll(func(fl *flag.Flag) {
		var def string
		if len(fl.DefValue) > 0 {
			def = fmt.Sprintf(" (default: %s)", fl.DefValue)
		}
		usage := wordwrap.WrapString(strings.Replace(fl.Usage, "\n", " ", -1), 75)
		usage = strings.Replace(usage, "\n", "\n    ", -1)
		fmt.Fprintf(os.Stderr, "-%s%s\n", fl.Name, def)
		fmt.Fprintf(os.Stderr, "    %s\n", usage)
	})
}

func (c *command) setCommonFlags() {
	c.flags.IntVar(&flagCpu, "cpu", flagCpu,
		"Sets the maximum number of CPUs that can be executing simultaneously. "+
			"Structure files are read by this many workers.")
	c.flags.BoolVar(&flagQuiet, "quiet", flagQuiet,
		"When set, progress information and other status messages will "+
			"not be printed to stderr. Warnings and errors still are.")
	c.flags.StringVar(&flagConfig, "config", flagConfig,
		"A YAML configuration file. When empty, the parameters of the "+
			"reference corpus are used.")
	if c.addFlags != nil {
		c.addFlags(c)
	}
}

func (c *command) assertNArg(n int) {
	if c.flags.NArg() != n {
		c.showUsage()
	}
}

// loadConfig returns the configuration named by -config, or the defaults.
func loadConfig() config.Config {
	cfg := config.Default()
	if len(flagConfig) > 0 {
		var err error
		if cfg, err = config.Load(flagConfig); err != nil {
			fatalf("%s", err)
		}
	}
	cfg.Workers = flagCpu
	return cfg
}

// openStore opens the score store at path with the configured backend. The
// returned function closes it.
func openStore(cfg config.Config, path string) (store.Store, func()) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		db, err := store.OpenSQLite(path, cfg.Layout(), logger)
		if err != nil {
			fatalf("%s", err)
		}
		return db, func() { db.Close() }
	default:
		return store.Dir{
			Path:   path,
			Suffix: cfg.Store.Suffix,
			Layout: cfg.Layout(),
			Logger: logger,
		}, func() {}
	}
}

// loadTable loads the score table at path, or at the configured store path
// if path is empty.
func loadTable(cfg config.Config, path string) potential.ScoreTable {
	if path == "" {
		path = cfg.Store.Path
	}
	s, closeStore := openStore(cfg, path)
	defer closeStore()

	table, err := s.Load()
	if err != nil {
		fatalf("loading scores from %s: %s", path, err)
	}
	if len(table) == 0 {
		fatalf("no score data found in %s", path)
	}
	return table
}

func structures(cfg config.Config, dir string) []string {
	paths, err := pipeline.ListStructures(dir, cfg.Extensions)
	if err != nil {
		fatalf("%s", err)
	}
	if len(paths) == 0 {
		fatalf("no structure files in %s", dir)
	}
	return paths
}

func fatalf(format string, v ...interface{}) {
	logger.Errorf(format, v...)
	os.Exit(1)
}

func setOutputLevel() {
	if flagQuiet {
		logger.SetOutputLevel(log.Lwarn)
	}
}
