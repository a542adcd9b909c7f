package potential

import (
	"github.com/TimothyStiles/rnapmf/io/pdb"
)

// Pair is a single observation of two residues and the distance between
// their reference atoms.
type Pair struct {
	Base1, Base2 string
	Distance     float64
}

// Key returns the canonical key of the pair's residue types.
func (p Pair) Key() string {
	return CanonicalKey(p.Base1, p.Base2)
}

// CanonicalKey concatenates two residue codes in lexicographic order, so that
// CanonicalKey("U", "A") == CanonicalKey("A", "U") == "AU".
func CanonicalKey(base1, base2 string) string {
	if base2 < base1 {
		base1, base2 = base2, base1
	}
	return base1 + base2
}

// Enumerator walks every pair of atoms (i, j) with j >= i+gap that belong to
// the same chain, in ascending order of i and then j. Pairs are computed on
// demand, so only the atoms themselves are held in memory.
//
// Use it like a bufio.Scanner:
//
//	e := NewEnumerator(atoms, MinGap)
//	for e.Next() {
//		p := e.Pair()
//		...
//	}
type Enumerator struct {
	atoms []pdb.Atom
	gap   int
	i, j  int
	pair  Pair
}

// NewEnumerator returns an enumerator over atoms. A gap smaller than 1 is
// treated as 1, so an atom is never paired with itself.
func NewEnumerator(atoms []pdb.Atom, gap int) *Enumerator {
	if gap < 1 {
		gap = 1
	}
	e := &Enumerator{atoms: atoms, gap: gap}
	e.Reset()
	return e
}

// Reset rewinds the enumerator to the first pair.
func (e *Enumerator) Reset() {
	e.i = 0
	e.j = e.gap - 1
	e.pair = Pair{}
}

// Next advances to the next qualifying pair. It returns false when there are
// no pairs left.
func (e *Enumerator) Next() bool {
	n := len(e.atoms)
	for e.i < n {
		e.j++
		if e.j >= n {
			e.i++
			e.j = e.i + e.gap - 1
			continue
		}
		a, b := e.atoms[e.i], e.atoms[e.j]
		if a.Chain != b.Chain {
			continue
		}
		e.pair = Pair{Base1: a.Residue, Base2: b.Residue, Distance: a.Distance(b)}
		return true
	}
	return false
}

// Pair returns the pair found by the last call to Next.
func (e *Enumerator) Pair() Pair {
	return e.pair
}

// Indices returns the atom indices of the pair found by the last call to Next.
func (e *Enumerator) Indices() (int, int) {
	return e.i, e.j
}

// Pairs collects every pair of atoms into a slice.
func Pairs(atoms []pdb.Atom, gap int) []Pair {
	var pairs []Pair
	e := NewEnumerator(atoms, gap)
	for e.Next() {
		pairs = append(pairs, e.Pair())
	}
	return pairs
}
