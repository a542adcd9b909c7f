/*
Package pipeline drives training and evaluation over directories of
structure files.

Each file is read and enumerated by one of several worker goroutines, with no
ordering guarantee between files. Workers never share mutable state: during
training every worker counts into its own potential.CountTable and the tables
are merged by element-wise summation afterwards. Problems with one file, an
unreadable file or a structure without reference atoms, are logged and
reported for that file only; the rest of the batch carries on.
*/
package pipeline

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/TimothyStiles/rnapmf/evaluate"
	"github.com/TimothyStiles/rnapmf/io/pdb"
	"github.com/lunny/log"
	"golang.org/x/exp/slices"
)

// ListStructures returns the regular files in dir whose names end with one
// of exts, sorted by name.
func ListStructures(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		for _, ext := range exts {
			if strings.HasSuffix(entry.Name(), ext) {
				paths = append(paths, filepath.Join(dir, entry.Name()))
				break
			}
		}
	}
	slices.Sort(paths)
	return paths, nil
}

// Report is the outcome of processing one structure file.
type Report struct {
	Path string
	// Atoms is the number of reference atoms read.
	Atoms int
	// Pairs is the number of pairs counted during training.
	Pairs int
	// Result is the evaluation result.
	Result evaluate.Result
	Err    error
}

// structure is what a worker sends back for one file.
type structure struct {
	index int
	atoms []pdb.Atom
	Report
}

// poolSize returns the number of workers to use for n files.
func poolSize(workers, n int) int {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}
	return workers
}

// readAll reads every path with workers goroutines and calls fn for each
// result from the calling goroutine, in completion order. process runs in
// the worker goroutine right after a file is read, and may be nil. Workers
// are numbered from 0, so process can use per-worker state.
func readAll(paths []string, label string, workers int,
	process func(worker int, s *structure), fn func(s structure)) {

	jobs := make(chan int, len(paths))
	results := make(chan structure, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := range jobs {
				s := structure{index: i, Report: Report{Path: paths[i]}}
				s.atoms, s.Err = pdb.ReadFile(paths[i], label)
				s.Atoms = len(s.atoms)
				if s.Err == nil && s.Atoms == 0 {
					s.Err = evaluate.ErrEmptyStructure
				}
				if process != nil {
					process(worker, &s)
				}
				results <- s
			}
		}(w)
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	go func() {
		wg.Wait()
		close(results)
	}()

	for s := range results {
		fn(s)
	}
}

// NewLogger returns a logger writing to w with level and timestamp prefixes.
func NewLogger(w io.Writer) *log.Logger {
	l := log.New(w, "", log.Llevel|log.LstdFlags)
	l.SetOutputLevel(log.Linfo)
	return l
}

func discard(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return log.New(io.Discard, "", 0)
}
