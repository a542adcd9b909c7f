/*
Package evaluate scores RNA structures with a distance-dependent statistical
potential.

Every pair of residues of the same chain that are at least MinGap apart in
sequence contributes the table's score for its base-pair type at the distance
between the two reference atoms. The sum of those contributions is a
pseudo-energy: lower is more native-like.
*/
package evaluate

import (
	"errors"

	"github.com/TimothyStiles/rnapmf/io/pdb"
	"github.com/TimothyStiles/rnapmf/potential"
)

// ErrEmptyStructure is returned when a structure has no reference atoms.
var ErrEmptyStructure = errors.New("no reference atoms in structure")

// Scorer applies a score table to structures.
type Scorer struct {
	Table  potential.ScoreTable
	MinGap int
	// BinWidth is the width of the table's distance bins.
	BinWidth float64
}

// NewScorer returns a scorer using the default gap and unit width bins.
func NewScorer(table potential.ScoreTable) Scorer {
	return Scorer{Table: table, MinGap: potential.MinGap, BinWidth: 1}
}

// Result holds the pseudo-energy of a structure.
type Result struct {
	// Energy is the sum of every pair's score.
	Energy float64
	// Interactions is the number of enumerated pairs, whether or not their
	// key was in the table.
	Interactions int
	// Matched is the number of pairs whose key was in the table.
	Matched int
}

// Add accumulates one pair contribution.
func (r *Result) Add(energy float64, matched bool) {
	r.Energy += energy
	r.Interactions++
	if matched {
		r.Matched++
	}
}

// Score sums the table's scores over every pair of atoms. Pairs whose key is
// missing from the table contribute 0. An empty atom list returns
// ErrEmptyStructure and a zero Result.
func (s Scorer) Score(atoms []pdb.Atom) (Result, error) {
	if len(atoms) == 0 {
		return Result{}, ErrEmptyStructure
	}
	var r Result
	e := potential.NewEnumerator(atoms, s.MinGap)
	for e.Next() {
		p := e.Pair()
		r.Add(s.Table.Lookup(p.Base1, p.Base2, p.Distance, s.width()))
	}
	return r, nil
}

func (s Scorer) width() float64 {
	if s.BinWidth <= 0 {
		return 1
	}
	return s.BinWidth
}
