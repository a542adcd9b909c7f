/*
Package store persists score tables.

Two backends are provided: Dir writes one text file per pair key, the format
read and written by the training and evaluation tools, and SQLite keeps every
table row in a single database file. Both substitute a default row of
maximally unfavorable scores, with a warning, when an expected key is
missing on load.
*/
package store

import (
	"errors"
	"io"

	"github.com/TimothyStiles/rnapmf/potential"
	"github.com/lunny/log"
)

// DefaultSuffix is appended to the pair key to name a score file.
const DefaultSuffix = "_scores.txt"

// ErrBinMismatch is returned when a persisted row does not have the expected
// number of bins.
var ErrBinMismatch = errors.New("wrong number of score bins")

// Store saves and loads score tables.
type Store interface {
	Save(t potential.ScoreTable) error
	Load() (potential.ScoreTable, error)
}

// Layout describes the table a store expects to load.
type Layout struct {
	// Keys are loaded even when missing from the store.
	Keys     []string
	Bins     int
	MaxScore float64
}

// DefaultLayout is the layout of tables trained with potential.DefaultParams.
func DefaultLayout() Layout {
	p := potential.DefaultParams()
	return Layout{Keys: p.Keys, Bins: p.Histogram.Bins, MaxScore: p.MaxScore}
}

func discard(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return log.New(io.Discard, "", 0)
}
